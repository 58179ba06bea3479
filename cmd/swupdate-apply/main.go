// Package main provides the swupdate-apply CLI entrypoint.
//
// Usage:
//
//	swupdate-apply apply --image /tmp/update.swu [--dry-run] [--format json]
//	swupdate-apply version
//
// Exit codes for `apply`:
//   - 0: update finished successfully
//   - 1: usage or configuration error
//   - 2: image could not be opened
//   - 3: engine failed to start or rejected a command
//   - 4: another update session is in flight
//   - 5: engine reported a failed update
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/moffa90/go-swupdate/cli/cmd"
)

// Set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	app := &cli.App{
		Name:           "swupdate-apply",
		Usage:          "Apply SWUpdate images through libswupdate",
		Version:        fmt.Sprintf("%s (commit: %s)", version, commit),
		ExitErrHandler: exitErrHandler,
		Commands: []*cli.Command{
			cmd.ApplyCommand(cmd.NativeEngine),
			cmd.VersionCommand(version, commit),
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// exitErrHandler handles errors from the CLI, preserving exit codes from cli.Exit().
func exitErrHandler(_ *cli.Context, err error) {
	if err == nil {
		return
	}

	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()

		// cli.Exit("", N).Error() returns "exit status N"
		if msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
