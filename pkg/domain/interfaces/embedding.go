package interfaces

import "context"

// EmbeddingClient maps text to fixed-dimension unit vectors. The backend is
// swappable (hashing embedder for offline use, Gemini via gollem otherwise);
// the dimension is fixed per deployment.
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}
