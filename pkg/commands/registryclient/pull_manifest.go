package registryclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/ruasec/pkg/cmd"
	"github.com/wuxler/ruasec/pkg/cmdhelper"
	"github.com/wuxler/ruasec/pkg/util/xhttp"
	"github.com/wuxler/ruasec/pkg/util/xio"
)

// NewPullManifestCommand returns a command with default values.
func NewPullManifestCommand() *PullManifestCommand {
	return &PullManifestCommand{}
}

// PullManifestCommand fetches a manifest by tag or digest from a running
// registry server and writes it to a local file.
type PullManifestCommand struct{}

// ToCLI transforms to a *cli.Command.
func (c *PullManifestCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:      "pull-manifest",
		Usage:     "Fetch a manifest by tag or digest",
		ArgsUsage: "SERVER REPO REFERENCE FILE",
		UsageText: `ruasec registry-client pull-manifest SERVER REPO REFERENCE FILE

# Fetch the "latest" manifest of repo "myrepo" and write it to ./out.json
$ ruasec registry-client pull-manifest http://127.0.0.1:8080 myrepo latest ./out.json
`,
		Before: cli.BeforeFunc(cmd.ExactArgs(4)),
		Action: c.Run,
	}
}

// Run is the main function for the current command.
func (c *PullManifestCommand) Run(ctx context.Context, command *cli.Command) error {
	server := command.Args().Get(0)
	repo := command.Args().Get(1)
	reference := command.Args().Get(2)
	path := command.Args().Get(3)

	url := fmt.Sprintf("%s/v2/%s/manifests/%s", server, repo, reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer xio.CloseAndSkipError(resp.Body)
	if err := xhttp.Success(resp); err != nil {
		return err
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil { //nolint:gomnd // standard file mode
		return err
	}

	cmdhelper.Fprintf(command.Writer, "pulled manifest %s/%s (%s) -> %s\n", repo, reference, resp.Header.Get("Content-Type"), path)
	return nil
}
