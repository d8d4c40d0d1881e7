package registryclient

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wuxler/ruasec/pkg/cmd"
	"github.com/wuxler/ruasec/pkg/cmdhelper"
	registrydigest "github.com/wuxler/ruasec/pkg/registry/digest"
	"github.com/wuxler/ruasec/pkg/util/xhttp"
	"github.com/wuxler/ruasec/pkg/util/xio"
)

// NewPushBlobCommand returns a command with default values.
func NewPushBlobCommand() *PushBlobCommand {
	return &PushBlobCommand{}
}

// PushBlobCommand pushes a local file as a blob, monolithically, to a
// running registry server.
type PushBlobCommand struct{}

// ToCLI transforms to a *cli.Command.
func (c *PushBlobCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:      "push-blob",
		Usage:     "Push a local file as a blob",
		ArgsUsage: "SERVER REPO FILE",
		UsageText: `ruasec registry-client push-blob SERVER REPO FILE

# Push ./layer.tar.gz as a blob in repo "myrepo" on a local server
$ ruasec registry-client push-blob http://127.0.0.1:8080 myrepo ./layer.tar.gz
`,
		Before: cli.BeforeFunc(cmd.ExactArgs(3)),
		Action: c.Run,
	}
}

// Run is the main function for the current command.
func (c *PushBlobCommand) Run(ctx context.Context, command *cli.Command) error {
	server := command.Args().Get(0)
	repo := command.Args().Get(1)
	path := command.Args().Get(2)

	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dgst := registrydigest.FromBytes(content)

	startURL := fmt.Sprintf("%s/v2/%s/blobs/uploads", server, repo)
	startReq, err := http.NewRequestWithContext(ctx, http.MethodPost, startURL, http.NoBody)
	if err != nil {
		return err
	}
	startResp, err := http.DefaultClient.Do(startReq)
	if err != nil {
		return err
	}
	defer xio.CloseAndSkipError(startResp.Body)
	if err := xhttp.Success(startResp, http.StatusAccepted); err != nil {
		return err
	}
	location := startResp.Header.Get("Location")

	completeURL := fmt.Sprintf("%s%s?digest=%s", server, location, dgst.String())
	completeReq, err := http.NewRequestWithContext(ctx, http.MethodPut, completeURL, bytes.NewReader(content))
	if err != nil {
		return err
	}
	completeResp, err := http.DefaultClient.Do(completeReq)
	if err != nil {
		return err
	}
	defer xio.CloseAndSkipError(completeResp.Body)
	if err := xhttp.Success(completeResp, http.StatusCreated); err != nil {
		return err
	}

	cmdhelper.Fprintf(command.Writer, "pushed blob %s (%d bytes)\n", dgst.String(), len(content))
	return nil
}
