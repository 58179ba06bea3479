package updater

import "go.uber.org/zap"

// Config holds the updater configuration.
type Config struct {
	// Logger is used for session logging (optional)
	Logger *zap.Logger

	// Events receives structured status events (optional)
	Events EventFunc

	// Info is free-form metadata forwarded in the request
	Info string

	// SoftwareSet selects the software collection in the image description
	SoftwareSet string

	// RunningMode selects the mode within SoftwareSet
	RunningMode string

	// DisableStore asks the engine not to keep a copy of the image
	DisableStore bool

	// Opener opens the image for each session
	Opener SourceOpener
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Logger: zap.NewNop(),
		Opener: OpenFile,
	}
}

// Option is a functional option for configuring the Updater.
type Option func(*Config)

// WithLogger sets the logger used for session logging.
//
// Example:
//
//	logger, _ := zap.NewProduction()
//	u := updater.New(engine, updater.WithLogger(logger))
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithStatusEvents sets a callback receiving every status message in
// structured form.
//
// Example:
//
//	u := updater.New(engine,
//	    updater.WithStatusEvents(func(e updater.StatusEvent) {
//	        fmt.Printf("#%d %s: %s\n", e.Sequence, e.Current, e.Description)
//	    }),
//	)
func WithStatusEvents(fn EventFunc) Option {
	return func(c *Config) {
		c.Events = fn
	}
}

// WithInfo sets the info string sent with each request.
func WithInfo(info string) Option {
	return func(c *Config) {
		c.Info = info
	}
}

// WithSoftwareSet selects the software collection and running mode.
//
// Example:
//
//	u := updater.New(engine, updater.WithSoftwareSet("stable", "copy2"))
func WithSoftwareSet(set, mode string) Option {
	return func(c *Config) {
		c.SoftwareSet = set
		c.RunningMode = mode
	}
}

// WithDisableStore asks the engine not to store the image.
func WithDisableStore(disable bool) Option {
	return func(c *Config) {
		c.DisableStore = disable
	}
}

// WithSourceOpener replaces the function used to open images.
// Default is OpenFile.
func WithSourceOpener(open SourceOpener) Option {
	return func(c *Config) {
		if open != nil {
			c.Opener = open
		}
	}
}
