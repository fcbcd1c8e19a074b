package config

import (
	"github.com/crivello-lab/crivello/pkg/domain/interfaces"
	"github.com/crivello-lab/crivello/pkg/domain/model"
	embeddingsvc "github.com/crivello-lab/crivello/pkg/service/embedding"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/urfave/cli/v3"
)

// Embedding holds CLI flags for the embedding backend
type Embedding struct {
	backend   string
	dimension int
}

// Flags returns CLI flags for embedding configuration
func (e *Embedding) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "embedding-backend",
			Usage:       "Embedding backend (hash or gemini)",
			Value:       "hash",
			Sources:     cli.EnvVars("CRIVELLO_EMBEDDING_BACKEND"),
			Destination: &e.backend,
		},
		&cli.IntFlag{
			Name:        "embedding-dimension",
			Usage:       "Embedding vector dimension",
			Value:       model.DefaultEmbeddingDimension,
			Sources:     cli.EnvVars("CRIVELLO_EMBEDDING_DIMENSION"),
			Destination: &e.dimension,
		},
	}
}

// Configure builds the embedding client. The gemini backend needs a
// configured LLM client; the hash backend works offline.
func (e *Embedding) Configure(llmClient gollem.LLMClient) (interfaces.EmbeddingClient, error) {
	if e.dimension <= 0 {
		return nil, goerr.New("embedding dimension must be positive", goerr.V("dimension", e.dimension))
	}

	switch e.backend {
	case "hash":
		return embeddingsvc.NewHashClient(e.dimension), nil
	case "gemini":
		if llmClient == nil {
			return nil, goerr.New("gemini embedding backend requires gemini-project")
		}
		return embeddingsvc.NewGollemClient(llmClient, e.dimension), nil
	default:
		return nil, goerr.New("invalid embedding backend", goerr.V("backend", e.backend))
	}
}
