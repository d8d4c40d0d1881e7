// Package registryclient provides a minimal smoke-test client for the
// in-memory registry server implemented in [github.com/wuxler/ruasec/pkg/registry/server]:
// enough to push and pull a blob or a manifest against a running instance
// without standing up a full distribution-spec client.
package registryclient

import (
	"github.com/urfave/cli/v3"
)

// New creates a new Command.
func New() *Command {
	return &Command{}
}

// Command is a command for exercising the registry's HTTP surface directly,
// independent of the test suite.
type Command struct{}

// ToCLI transforms to a *cli.Command.
func (c *Command) ToCLI() *cli.Command {
	return &cli.Command{
		Name:            "registry-client",
		Aliases:         []string{"rc"},
		Usage:           "Exercise a running registry server (smoke test)",
		HideHelpCommand: true,
		Commands: []*cli.Command{
			NewPushBlobCommand().ToCLI(),
			NewPullBlobCommand().ToCLI(),
			NewPushManifestCommand().ToCLI(),
			NewPullManifestCommand().ToCLI(),
		},
	}
}
