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
	"github.com/wuxler/ruasec/pkg/util/xhttp"
	"github.com/wuxler/ruasec/pkg/util/xio"
)

// NewPushManifestCommand returns a command with default values.
func NewPushManifestCommand() *PushManifestCommand {
	return &PushManifestCommand{contentType: "application/vnd.oci.image.manifest.v1+json"}
}

// PushManifestCommand pushes a local manifest file to a running registry
// server under a given tag or digest reference.
type PushManifestCommand struct {
	contentType string
}

// ToCLI transforms to a *cli.Command.
func (c *PushManifestCommand) ToCLI() *cli.Command {
	return &cli.Command{
		Name:      "push-manifest",
		Usage:     "Push a local manifest file under a reference",
		ArgsUsage: "SERVER REPO REFERENCE FILE",
		UsageText: `ruasec registry-client push-manifest SERVER REPO REFERENCE FILE

# Push ./manifest.json as repo "myrepo", tag "latest"
$ ruasec registry-client push-manifest http://127.0.0.1:8080 myrepo latest ./manifest.json
`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "content-type",
				Usage:       "manifest content type",
				Value:       c.contentType,
				Destination: &c.contentType,
			},
		},
		Before: cli.BeforeFunc(cmd.ExactArgs(4)),
		Action: c.Run,
	}
}

// Run is the main function for the current command.
func (c *PushManifestCommand) Run(ctx context.Context, command *cli.Command) error {
	server := command.Args().Get(0)
	repo := command.Args().Get(1)
	reference := command.Args().Get(2)
	path := command.Args().Get(3)

	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/v2/%s/manifests/%s", server, repo, reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(content))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", c.contentType)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer xio.CloseAndSkipError(resp.Body)
	if err := xhttp.Success(resp, http.StatusCreated); err != nil {
		return err
	}

	cmdhelper.Fprintf(command.Writer, "pushed manifest %s/%s -> digest %s\n", repo, reference, resp.Header.Get("Docker-Content-Digest"))
	return nil
}
