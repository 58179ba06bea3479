// Package cmd provides CLI commands for the swupdate-apply binary.
package cmd

import "github.com/urfave/cli/v2"

// Exit codes for the apply command.
const (
	ExitOK         = 0
	ExitUsage      = 1
	ExitSourceOpen = 2
	ExitEngine     = 3
	ExitInFlight   = 4
	ExitFailed     = 5
)

// Shared flags.
var (
	// FormatFlag selects output format: text, json, msgpack.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: text, json, msgpack",
	}

	// ConfigFlag points at a YAML config file.
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to a YAML config file; flags override its values",
		EnvVars: []string{"SWUPDATE_APPLY_CONFIG"},
	}

	// LogLevelFlag sets the log level.
	LogLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "Log level: debug, info, warn, error",
	}

	// LogEncodingFlag sets the log encoding.
	LogEncodingFlag = &cli.StringFlag{
		Name:  "log-encoding",
		Usage: "Log encoding on stderr: console, json",
	}
)

// applyFlags returns the flags of the apply command.
func applyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "image",
			Aliases: []string{"i"},
			Usage:   "Path to the .swu image",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Validate the image without installing it",
		},
		&cli.StringFlag{
			Name:  "info",
			Usage: "Free-form metadata forwarded to the engine",
		},
		&cli.StringFlag{
			Name:  "software-set",
			Usage: "Software collection to install",
		},
		&cli.StringFlag{
			Name:  "running-mode",
			Usage: "Running mode within the software collection",
		},
		&cli.BoolFlag{
			Name:  "disable-store",
			Usage: "Ask the engine not to store a copy of the image",
		},
		&cli.StringFlag{
			Name:  "min-version",
			Usage: "Minimum accepted version, sent before the update",
		},
		&cli.StringFlag{
			Name:  "max-version",
			Usage: "Maximum accepted version, sent before the update",
		},
		&cli.StringFlag{
			Name:  "current-version",
			Usage: "Currently running version, sent before the update",
		},
		&cli.StringFlag{
			Name:    "aes-key",
			Usage:   "AES key for encrypted images, 64 hex digits",
			EnvVars: []string{"SWUPDATE_AES_KEY"},
		},
		&cli.StringFlag{
			Name:    "aes-ivt",
			Usage:   "AES initialization vector, 32 hex digits",
			EnvVars: []string{"SWUPDATE_AES_IVT"},
		},
		&cli.IntFlag{
			Name:  "buffer-size",
			Usage: "Read buffer handed to the engine, in bytes",
		},
		ConfigFlag,
		FormatFlag,
		LogLevelFlag,
		LogEncodingFlag,
	}
}
