package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/crivello-lab/crivello/pkg/cli/config"
	"github.com/crivello-lab/crivello/pkg/domain/model/auth"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/crivello-lab/crivello/pkg/usecase"
	"github.com/crivello-lab/crivello/pkg/utils/safe"
)

// cmdIngest loads the demo corpus into a workspace from the command line,
// without going through the HTTP surface. Mainly useful against the
// firestore backend, where the data survives the process.
func cmdIngest() *cli.Command {
	var workspaceID string
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var embeddingCfg config.Embedding
	var ingestCfg config.Ingest

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "workspace-id",
			Usage:       "Target workspace ID (created when empty)",
			Sources:     cli.EnvVars("CRIVELLO_WORKSPACE_ID"),
			Destination: &workspaceID,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, embeddingCfg.Flags()...)
	flags = append(flags, ingestCfg.Flags()...)

	return &cli.Command{
		Name:    "ingest",
		Aliases: []string{"i"},
		Usage:   "Ingest the demo corpus into a workspace",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			embedder, err := embeddingCfg.Configure(llmClient)
			if err != nil {
				return goerr.Wrap(err, "failed to configure embedding client")
			}

			// The command runs as the fixed development identity with
			// admin rights, the same as no-auth serve mode.
			uc := usecase.New(repo,
				usecase.WithEmbeddingClient(embedder),
				usecase.WithAuthDisabled(true),
				usecase.WithChunking(ingestCfg.ChunkSize(), ingestCfg.ChunkOverlap()),
			)

			var wsID types.WorkspaceID
			if workspaceID != "" {
				wsID = types.WorkspaceID(workspaceID)
				if err := wsID.Validate(); err != nil {
					return err
				}
			} else {
				workspace, err := uc.Workspace.Create(ctx, auth.NewAnonymousUser(), "demo")
				if err != nil {
					return goerr.Wrap(err, "failed to create workspace")
				}
				wsID = workspace.ID
			}

			summary, err := uc.Ingest.IngestDemo(ctx, auth.NewAnonymousUser(), wsID, ingestCfg.DataDir())
			if err != nil {
				return err
			}

			bold := color.New(color.Bold)
			green := color.New(color.FgGreen)
			bold.Println("Ingestion completed")
			fmt.Printf("  workspace: %s\n", wsID)
			green.Printf("  documents: %d\n", summary.Documents)
			green.Printf("  chunks:    %d\n", summary.Chunks)

			return nil
		},
	}
}
