package embedding

import (
	"context"

	"github.com/crivello-lab/crivello/pkg/domain/interfaces"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// GollemClient adapts a gollem LLM client to the embedding contract.
type GollemClient struct {
	client    gollem.LLMClient
	dimension int
}

var _ interfaces.EmbeddingClient = &GollemClient{}

func NewGollemClient(client gollem.LLMClient, dimension int) *GollemClient {
	return &GollemClient{client: client, dimension: dimension}
}

func (c *GollemClient) Dimension() int {
	return c.dimension
}

func (c *GollemClient) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *GollemClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	embeddings, err := c.client.GenerateEmbedding(ctx, c.dimension, texts)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate embeddings",
			goerr.V("count", len(texts)),
			goerr.T(types.TagUnavailable))
	}
	if len(embeddings) != len(texts) {
		return nil, goerr.New("embedding count mismatch",
			goerr.V("requested", len(texts)),
			goerr.V("returned", len(embeddings)),
			goerr.T(types.TagUnavailable))
	}

	vectors := make([][]float32, len(embeddings))
	for i, emb := range embeddings {
		if len(emb) == 0 {
			return nil, goerr.New("embedding generation returned empty vector",
				goerr.V("index", i),
				goerr.T(types.TagUnavailable))
		}
		vec := make([]float32, len(emb))
		for j, v := range emb {
			vec[j] = float32(v)
		}
		vectors[i] = vec
	}
	return vectors, nil
}
