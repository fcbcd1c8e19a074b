package usecase

import (
	"context"

	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/model/auth"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/crivello-lab/crivello/pkg/service/ingest"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

const (
	embedBatchSize   = 32
	embedConcurrency = 4
)

// IngestUseCase loads a demo corpus into a workspace.
type IngestUseCase struct {
	uc *UseCases
}

// IngestSummary reports what an ingestion run produced
type IngestSummary struct {
	Documents int `json:"documents"`
	Chunks    int `json:"chunks"`
}

// IngestDemo parses the corpus directory, chunks and embeds every document,
// and atomically replaces the workspace's data set. Admin only. Repeating
// the call resets the workspace to exactly the corpus contents.
func (i *IngestUseCase) IngestDemo(ctx context.Context, user *auth.UserContext, workspaceID types.WorkspaceID, dataDir string) (*IngestSummary, error) {
	if _, err := i.uc.requireAdmin(ctx, workspaceID, user); err != nil {
		return nil, err
	}
	if i.uc.embedder == nil {
		return nil, goerr.New("embedding client not configured", goerr.T(types.TagUnavailable))
	}

	documents, err := ingest.LoadDocumentsFromDir(dataDir)
	if err != nil {
		return nil, err
	}

	chunker, err := ingest.NewChunker(i.uc.chunkSize, i.uc.chunkOverlap)
	if err != nil {
		return nil, err
	}

	var chunks []*model.Chunk
	for _, doc := range documents {
		doc.WorkspaceID = workspaceID
		chunks = append(chunks, chunker.ChunkDocument(doc)...)
	}
	if len(chunks) == 0 {
		return nil, goerr.New("corpus produced no chunks",
			goerr.V("dir", dataDir),
			goerr.T(types.TagValidation))
	}

	vectors, err := i.embedChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	if err := i.uc.repo.Chunk().ReplaceWorkspace(ctx, workspaceID, documents, chunks, vectors); err != nil {
		return nil, err
	}

	i.uc.recorder.Record(ctx, workspaceID, user.ID, types.ActionIngestDemo, model.AuditPayload{
		"documents": len(documents),
		"chunks":    len(chunks),
	})

	return &IngestSummary{
		Documents: len(documents),
		Chunks:    len(chunks),
	}, nil
}

// embedChunks embeds chunk contents in parallel batches. Batch order is
// preserved so vectors line up with chunks.
func (i *IngestUseCase) embedChunks(ctx context.Context, chunks []*model.Chunk) ([][]float32, error) {
	vectors := make([][]float32, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embedConcurrency)

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		start, end := start, end

		g.Go(func() error {
			texts := make([]string, end-start)
			for j, chunk := range chunks[start:end] {
				texts[j] = chunk.Content
			}

			batch, err := i.uc.embedder.EmbedBatch(gctx, texts)
			if err != nil {
				return goerr.Wrap(err, "failed to embed chunk batch",
					goerr.V("offset", start))
			}
			copy(vectors[start:end], batch)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}
