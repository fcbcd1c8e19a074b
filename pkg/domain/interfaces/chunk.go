package interfaces

import (
	"context"

	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
)

// ChunkRepository is the chunk store: documents, chunks and their embedding
// vectors, partitioned by workspace. Every operation takes a workspace ID and
// must never observe another workspace's rows.
type ChunkRepository interface {
	// ReplaceWorkspace atomically replaces the workspace's documents, chunks
	// and vectors. Concurrent readers observe either the old data set or the
	// new one, never a partial mix. The vectors slice must have one entry per
	// chunk.
	ReplaceWorkspace(ctx context.Context, workspaceID types.WorkspaceID, documents []*model.Document, chunks []*model.Chunk, vectors [][]float32) error

	// Search returns the topK chunks most similar to the query vector,
	// scoped to the workspace, in descending score order.
	Search(ctx context.Context, workspaceID types.WorkspaceID, queryVector []float32, topK int) ([]*model.RetrievalResult, error)

	HasData(ctx context.Context, workspaceID types.WorkspaceID) (bool, error)
	ListChunks(ctx context.Context, workspaceID types.WorkspaceID, limit int) ([]*model.Chunk, error)

	ListDocuments(ctx context.Context, workspaceID types.WorkspaceID, limit, offset int) ([]*model.DocumentMetadata, error)

	// GetClassificationMap resolves document IDs to classification labels.
	// Unknown or cross-workspace IDs are simply absent from the result.
	GetClassificationMap(ctx context.Context, workspaceID types.WorkspaceID, documentIDs []types.DocumentID) (map[types.DocumentID]types.ClassificationLabel, error)

	// UpdateClassification mutates a single document's classification label.
	// A document that exists in a different workspace is reported as
	// not-found.
	UpdateClassification(ctx context.Context, workspaceID types.WorkspaceID, documentID types.DocumentID, label types.ClassificationLabel) (*model.DocumentMetadata, error)

	ClearWorkspace(ctx context.Context, workspaceID types.WorkspaceID) error
}
