package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// workspaceData bundles one workspace's documents, chunks and vectors so
// ReplaceWorkspace can swap everything in a single assignment.
type workspaceData struct {
	documents map[types.DocumentID]*model.Document
	docOrder  []types.DocumentID
	chunks    []*model.Chunk
	vectors   [][]float32
}

type chunkRepository struct {
	mu   sync.RWMutex
	data map[types.WorkspaceID]*workspaceData
}

func newChunkRepository() *chunkRepository {
	return &chunkRepository{
		data: make(map[types.WorkspaceID]*workspaceData),
	}
}

func copyDocument(d *model.Document) *model.Document {
	copied := *d
	if d.AccessedAt != nil {
		t := *d.AccessedAt
		copied.AccessedAt = &t
	}
	return &copied
}

func copyChunk(c *model.Chunk) *model.Chunk {
	copied := *c
	return &copied
}

func copyVector(v []float32) []float32 {
	copied := make([]float32, len(v))
	copy(copied, v)
	return copied
}

func (r *chunkRepository) ReplaceWorkspace(ctx context.Context, workspaceID types.WorkspaceID, documents []*model.Document, chunks []*model.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return goerr.New("chunk and vector counts differ",
			goerr.V("chunks", len(chunks)),
			goerr.V("vectors", len(vectors)),
			goerr.T(types.TagIntegrity))
	}

	next := &workspaceData{
		documents: make(map[types.DocumentID]*model.Document, len(documents)),
		docOrder:  make([]types.DocumentID, 0, len(documents)),
		chunks:    make([]*model.Chunk, 0, len(chunks)),
		vectors:   make([][]float32, 0, len(vectors)),
	}
	now := time.Now().UTC()
	for _, doc := range documents {
		stored := copyDocument(doc)
		stored.WorkspaceID = workspaceID
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = now
		}
		next.documents[stored.ID] = stored
		next.docOrder = append(next.docOrder, stored.ID)
	}
	for i, chunk := range chunks {
		stored := copyChunk(chunk)
		stored.WorkspaceID = workspaceID
		next.chunks = append(next.chunks, stored)
		next.vectors = append(next.vectors, copyVector(vectors[i]))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[workspaceID] = next
	return nil
}

func (r *chunkRepository) Search(ctx context.Context, workspaceID types.WorkspaceID, queryVector []float32, topK int) ([]*model.RetrievalResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ws, exists := r.data[workspaceID]
	if !exists || len(ws.chunks) == 0 {
		return nil, nil
	}

	candidates := make([]model.Chunk, len(ws.chunks))
	for i, c := range ws.chunks {
		candidates[i] = *c
	}
	ranked := model.RankTopK(candidates, ws.vectors, queryVector, topK)

	results := make([]*model.RetrievalResult, len(ranked))
	for i := range ranked {
		res := ranked[i]
		results[i] = &res
	}
	return results, nil
}

func (r *chunkRepository) HasData(ctx context.Context, workspaceID types.WorkspaceID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ws, exists := r.data[workspaceID]
	return exists && len(ws.chunks) > 0, nil
}

func (r *chunkRepository) ListChunks(ctx context.Context, workspaceID types.WorkspaceID, limit int) ([]*model.Chunk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ws, exists := r.data[workspaceID]
	if !exists {
		return nil, nil
	}

	n := len(ws.chunks)
	if limit > 0 && limit < n {
		n = limit
	}
	chunks := make([]*model.Chunk, 0, n)
	for _, c := range ws.chunks[:n] {
		chunks = append(chunks, copyChunk(c))
	}
	return chunks, nil
}

func (r *chunkRepository) ListDocuments(ctx context.Context, workspaceID types.WorkspaceID, limit, offset int) ([]*model.DocumentMetadata, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ws, exists := r.data[workspaceID]
	if !exists {
		return nil, nil
	}

	metas := make([]*model.DocumentMetadata, 0, len(ws.docOrder))
	for _, id := range ws.docOrder {
		meta := ws.documents[id].Metadata()
		metas = append(metas, &meta)
	}
	sort.SliceStable(metas, func(i, j int) bool {
		return metas[i].Title < metas[j].Title
	})

	if offset > len(metas) {
		offset = len(metas)
	}
	metas = metas[offset:]
	if limit > 0 && limit < len(metas) {
		metas = metas[:limit]
	}
	return metas, nil
}

func (r *chunkRepository) GetClassificationMap(ctx context.Context, workspaceID types.WorkspaceID, documentIDs []types.DocumentID) (map[types.DocumentID]types.ClassificationLabel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	labels := make(map[types.DocumentID]types.ClassificationLabel, len(documentIDs))
	ws, exists := r.data[workspaceID]
	if !exists {
		return labels, nil
	}
	for _, id := range documentIDs {
		if doc, ok := ws.documents[id]; ok {
			labels[id] = doc.ClassificationLabel
		}
	}
	return labels, nil
}

func (r *chunkRepository) UpdateClassification(ctx context.Context, workspaceID types.WorkspaceID, documentID types.DocumentID, label types.ClassificationLabel) (*model.DocumentMetadata, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws, exists := r.data[workspaceID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "document not found", goerr.V("document_id", documentID))
	}
	doc, ok := ws.documents[documentID]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "document not found", goerr.V("document_id", documentID))
	}

	doc.ClassificationLabel = label
	meta := doc.Metadata()
	return &meta, nil
}

func (r *chunkRepository) ClearWorkspace(ctx context.Context, workspaceID types.WorkspaceID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, workspaceID)
	return nil
}
