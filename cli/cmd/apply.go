package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/moffa90/go-swupdate/cli/config"
	clilog "github.com/moffa90/go-swupdate/cli/log"
	"github.com/moffa90/go-swupdate/cli/render"
	"github.com/moffa90/go-swupdate/libswupdate"
	"github.com/moffa90/go-swupdate/source"
	"github.com/moffa90/go-swupdate/updater"
)

// EngineFactory creates the engine for one invocation. bufferSize is 0 when
// not configured.
type EngineFactory func(bufferSize int) updater.Engine

// NativeEngine returns the libswupdate engine.
func NativeEngine(bufferSize int) updater.Engine {
	if bufferSize > 0 {
		return libswupdate.New(libswupdate.WithBufferSize(bufferSize))
	}
	return libswupdate.New()
}

// ApplyCommand returns the apply command.
//
// Exit codes:
//   - 0: session finished successfully
//   - 1: usage or configuration error
//   - 2: image could not be opened
//   - 3: engine failed to start or rejected a command
//   - 4: another session is in flight
//   - 5: engine reported a failed update
func ApplyCommand(newEngine EngineFactory) *cli.Command {
	return &cli.Command{
		Name:      "apply",
		Usage:     "Apply an update image and wait for the engine to finish",
		ArgsUsage: "[IMAGE]",
		Flags:     applyFlags(),
		Action:    applyAction(newEngine),
	}
}

func applyAction(newEngine EngineFactory) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return cli.Exit(err.Error(), ExitUsage)
		}
		if cfg.Image == "" {
			return cli.Exit("--image is required", ExitUsage)
		}

		format, err := render.ParseFormat(cfg.Format)
		if err != nil {
			return cli.Exit(err.Error(), ExitUsage)
		}

		logger, err := clilog.New(c.App.ErrWriter, cfg.Log.Level, cfg.Log.Encoding)
		if err != nil {
			return cli.Exit(err.Error(), ExitUsage)
		}
		defer func() { _ = logger.Sync() }()

		source.SetLogger(logger.Named("source"))
		libswupdate.SetLogger(logger.Named("libswupdate"))
		defer source.SetLogger(nil)
		defer libswupdate.SetLogger(nil)

		r := render.NewRenderer(format, c.App.Writer)

		u := updater.New(newEngine(cfg.Engine.BufferSize),
			updater.WithLogger(logger.Named("updater")),
			updater.WithInfo(cfg.Request.Info),
			updater.WithSoftwareSet(cfg.Request.SoftwareSet, cfg.Request.RunningMode),
			updater.WithDisableStore(cfg.Request.DisableStore),
			updater.WithStatusEvents(func(e updater.StatusEvent) {
				if err := r.Event(e); err != nil {
					logger.Warn("cannot render status event", zap.Error(err))
				}
			}),
		)

		if cfg.AES.IsSet() {
			if err := u.SetAESKey(c.Context, cfg.AES.Key, cfg.AES.IVT); err != nil {
				return exitError(err)
			}
		}

		if cfg.Versions.IsSet() {
			err := u.SetVersionRange(c.Context, updater.VersionRange{
				Minimum: cfg.Versions.Minimum,
				Maximum: cfg.Versions.Maximum,
				Current: cfg.Versions.Current,
			})
			if err != nil {
				return exitError(err)
			}
		}

		report, err := u.Run(c.Context, cfg.Image, cfg.DryRun, func(line string) {
			if err := r.Line(line); err != nil {
				logger.Warn("cannot render status line", zap.Error(err))
			}
		})
		if err != nil {
			return exitError(err)
		}

		if err := r.Report(report); err != nil {
			return cli.Exit(fmt.Sprintf("cannot write report: %v", err), ExitUsage)
		}

		if !report.Succeeded() {
			return cli.Exit(fmt.Sprintf("update of %s finished with %s", cfg.Image, report.Result), ExitFailed)
		}
		return nil
	}
}

// loadConfig reads --config when given and applies flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := &config.Config{}
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.IsSet("image") {
		cfg.Image = c.String("image")
	} else if c.Args().Present() {
		cfg.Image = c.Args().First()
	}
	if c.IsSet("dry-run") {
		cfg.DryRun = c.Bool("dry-run")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-encoding") {
		cfg.Log.Encoding = c.String("log-encoding")
	}
	if c.IsSet("info") {
		cfg.Request.Info = c.String("info")
	}
	if c.IsSet("software-set") {
		cfg.Request.SoftwareSet = c.String("software-set")
	}
	if c.IsSet("running-mode") {
		cfg.Request.RunningMode = c.String("running-mode")
	}
	if c.IsSet("disable-store") {
		cfg.Request.DisableStore = c.Bool("disable-store")
	}
	if c.IsSet("min-version") {
		cfg.Versions.Minimum = c.String("min-version")
	}
	if c.IsSet("max-version") {
		cfg.Versions.Maximum = c.String("max-version")
	}
	if c.IsSet("current-version") {
		cfg.Versions.Current = c.String("current-version")
	}
	if c.IsSet("aes-key") {
		cfg.AES.Key = c.String("aes-key")
	}
	if c.IsSet("aes-ivt") {
		cfg.AES.IVT = c.String("aes-ivt")
	}
	if c.IsSet("buffer-size") {
		cfg.Engine.BufferSize = c.Int("buffer-size")
	}

	if cfg.Engine.BufferSize < 0 {
		return nil, fmt.Errorf("invalid buffer size %d", cfg.Engine.BufferSize)
	}
	return cfg, nil
}

// exitError maps updater errors to exit codes.
func exitError(err error) error {
	var (
		openErr  *updater.SourceOpenError
		startErr *updater.StartError
		cmdErr   *updater.CommandError
	)

	switch {
	case errors.As(err, &openErr):
		return cli.Exit(err.Error(), ExitSourceOpen)
	case errors.As(err, &startErr), errors.As(err, &cmdErr), errors.Is(err, updater.ErrUnsupported):
		return cli.Exit(err.Error(), ExitEngine)
	case errors.Is(err, updater.ErrSessionInFlight):
		return cli.Exit(err.Error(), ExitInFlight)
	default:
		return cli.Exit(err.Error(), ExitUsage)
	}
}
