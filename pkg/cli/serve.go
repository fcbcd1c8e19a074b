package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/crivello-lab/crivello/pkg/cli/config"
	httpctrl "github.com/crivello-lab/crivello/pkg/controller/http"
	"github.com/crivello-lab/crivello/pkg/service/answer"
	"github.com/crivello-lab/crivello/pkg/usecase"
	"github.com/crivello-lab/crivello/pkg/utils/logging"
	"github.com/crivello-lab/crivello/pkg/utils/safe"
)

func cmdServe() *cli.Command {
	var addr string
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var embeddingCfg config.Embedding
	var authCfg config.Auth
	var ingestCfg config.Ingest
	var seedCfg config.Seed

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("CRIVELLO_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, embeddingCfg.Flags()...)
	flags = append(flags, authCfg.Flags()...)
	flags = append(flags, ingestCfg.Flags()...)
	flags = append(flags, seedCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := authCfg.Validate(); err != nil {
				return err
			}

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

			ucOpts := []usecase.Option{
				usecase.WithEmbeddingClient(embedder),
				usecase.WithJWTSecret(authCfg.JWTSecret()),
				usecase.WithTokenExpiry(authCfg.TokenExpiry()),
				usecase.WithAuthDisabled(authCfg.NoAuth()),
				usecase.WithChunking(ingestCfg.ChunkSize(), ingestCfg.ChunkOverlap()),
			}

			if llmClient != nil {
				ucOpts = append(ucOpts, usecase.WithSynthesizer(answer.New(llmClient)))
				logging.Default().Info("LLM answer synthesis enabled")
			} else {
				logging.Default().Info("Gemini not configured, answers fall back to top chunk content")
			}

			if authCfg.NoAuth() {
				logging.Default().Warn("Running in no-auth mode (development only)")
			}

			uc := usecase.New(repo, ucOpts...)

			if seed, err := seedCfg.Load(); err != nil {
				return goerr.Wrap(err, "failed to load seed config")
			} else if seed != nil {
				if err := seed.Apply(ctx, repo); err != nil {
					return goerr.Wrap(err, "failed to apply seed config")
				}
			}

			httpHandler := httpctrl.New(uc, httpctrl.WithDataDir(ingestCfg.DataDir()))
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
