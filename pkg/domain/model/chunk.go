package model

import "github.com/crivello-lab/crivello/pkg/domain/types"

// DefaultEmbeddingDimension is the embedding vector dimension used unless
// overridden by configuration.
const DefaultEmbeddingDimension = 384

// Chunk is a contiguous span of a document's normalized text.
// SourceTitle and SourceURL are snapshots taken at chunk creation time and are
// intentionally not re-joined to the document afterwards.
type Chunk struct {
	ID          types.ChunkID
	DocumentID  types.DocumentID
	WorkspaceID types.WorkspaceID
	Content     string
	StartChar   int
	EndChar     int
	ChunkIndex  int
	SourceTitle string
	SourceURL   string
}
