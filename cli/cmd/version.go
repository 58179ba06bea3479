package cmd

import (
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/moffa90/go-swupdate/cli/render"
	"github.com/moffa90/go-swupdate/libswupdate"
	"github.com/moffa90/go-swupdate/protocol"
)

// VersionResponse is the response for the version command.
type VersionResponse struct {
	Version    string `json:"version" msgpack:"version"`
	Commit     string `json:"commit" msgpack:"commit"`
	GoVersion  string `json:"go_version" msgpack:"go_version"`
	APIVersion int    `json:"api_version" msgpack:"api_version"`
	Native     bool   `json:"native" msgpack:"native"`
}

// VersionCommand returns the version command.
// It must not contact the engine.
func VersionCommand(version, commit string) *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show version information",
		Flags:  []cli.Flag{FormatFlag},
		Action: versionAction(version, commit),
	}
}

func versionAction(version, commit string) cli.ActionFunc {
	return func(c *cli.Context) error {
		format, err := render.ParseFormat(c.String("format"))
		if err != nil {
			return cli.Exit(err.Error(), ExitUsage)
		}

		return render.NewRenderer(format, c.App.Writer).Render(VersionResponse{
			Version:    version,
			Commit:     commit,
			GoVersion:  runtime.Version(),
			APIVersion: protocol.APIVersion,
			Native:     libswupdate.Available,
		})
	}
}
