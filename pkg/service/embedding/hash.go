package embedding

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"math"
	"strings"

	"github.com/crivello-lab/crivello/pkg/domain/interfaces"
)

// HashClient is a deterministic embedder for offline development and tests.
// Each lowercased token is hashed into a dimension bucket and the resulting
// count vector is unit-normalized. It captures token overlap only, no
// semantics, but identical input always yields the identical vector.
type HashClient struct {
	dimension int
}

var _ interfaces.EmbeddingClient = &HashClient{}

func NewHashClient(dimension int) *HashClient {
	return &HashClient{dimension: dimension}
}

func (c *HashClient) Dimension() int {
	return c.dimension
}

func (c *HashClient) Embed(ctx context.Context, text string) ([]float32, error) {
	vec := make([]float32, c.dimension)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		sum := md5.Sum([]byte(token))
		bucket := binary.BigEndian.Uint64(sum[:8]) % uint64(c.dimension)
		vec[bucket]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec, nil
}

func (c *HashClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := c.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}
