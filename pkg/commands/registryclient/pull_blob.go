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

// NewPullBlobCommand returns a command with default values.
func NewPullBlobCommand() *PullBlobCommand {
	return &PullBlobCommand{}
}

// PullBlobCommand fetches a blob by digest from a running registry server
// and writes it to a local file.
type PullBlobCommand struct{}

// ToCLI transforms to a *cli.Command.
func (c *PullBlobCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:      "pull-blob",
		Usage:     "Fetch a blob by digest",
		ArgsUsage: "SERVER REPO DIGEST FILE",
		UsageText: `ruasec registry-client pull-blob SERVER REPO DIGEST FILE

# Fetch a blob from repo "myrepo" and write it to ./out.bin
$ ruasec registry-client pull-blob http://127.0.0.1:8080 myrepo sha256:... ./out.bin
`,
		Before: cli.BeforeFunc(cmd.ExactArgs(4)),
		Action: c.Run,
	}
}

// Run is the main function for the current command.
func (c *PullBlobCommand) Run(ctx context.Context, command *cli.Command) error {
	server := command.Args().Get(0)
	repo := command.Args().Get(1)
	digest := command.Args().Get(2)
	path := command.Args().Get(3)

	url := fmt.Sprintf("%s/v2/%s/blobs/%s", server, repo, digest)
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

	cmdhelper.Fprintf(command.Writer, "pulled blob %s (%d bytes) -> %s\n", digest, len(content), path)
	return nil
}
