package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type documentDocument struct {
	ID             string     `firestore:"id"`
	WorkspaceID    string     `firestore:"workspace_id"`
	Title          string     `firestore:"title"`
	SourceURL      string     `firestore:"source_url"`
	License        string     `firestore:"license"`
	AccessedAt     *time.Time `firestore:"accessed_at,omitempty"`
	Text           string     `firestore:"text"`
	Classification string     `firestore:"classification_label"`
	CreatedAt      time.Time  `firestore:"created_at"`
}

type chunkDocument struct {
	ID          string             `firestore:"id"`
	DocumentID  string             `firestore:"document_id"`
	WorkspaceID string             `firestore:"workspace_id"`
	Content     string             `firestore:"content"`
	StartChar   int                `firestore:"start_char"`
	EndChar     int                `firestore:"end_char"`
	ChunkIndex  int                `firestore:"chunk_index"`
	SourceTitle string             `firestore:"source_title"`
	SourceURL   string             `firestore:"source_url"`
	Embedding   firestore.Vector32 `firestore:"embedding"`
}

type chunkRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newChunkRepository(client *firestore.Client) *chunkRepository {
	return &chunkRepository{client: client}
}

func (r *chunkRepository) documentsCollection() string {
	return collectionName(r.collectionPrefix, "documents")
}

func (r *chunkRepository) chunksCollection() string {
	return collectionName(r.collectionPrefix, "chunks")
}

func documentToModel(doc *documentDocument) *model.Document {
	return &model.Document{
		ID:                  types.DocumentID(doc.ID),
		WorkspaceID:         types.WorkspaceID(doc.WorkspaceID),
		Title:               doc.Title,
		SourceURL:           doc.SourceURL,
		License:             doc.License,
		AccessedAt:          doc.AccessedAt,
		Text:                doc.Text,
		ClassificationLabel: types.ClassificationLabel(doc.Classification),
		CreatedAt:           doc.CreatedAt,
	}
}

func chunkToModel(doc *chunkDocument) *model.Chunk {
	return &model.Chunk{
		ID:          types.ChunkID(doc.ID),
		DocumentID:  types.DocumentID(doc.DocumentID),
		WorkspaceID: types.WorkspaceID(doc.WorkspaceID),
		Content:     doc.Content,
		StartChar:   doc.StartChar,
		EndChar:     doc.EndChar,
		ChunkIndex:  doc.ChunkIndex,
		SourceTitle: doc.SourceTitle,
		SourceURL:   doc.SourceURL,
	}
}

// ReplaceWorkspace deletes the workspace's documents and chunks and writes
// the new set through a BulkWriter. Firestore offers no unbounded
// multi-collection transaction, so concurrent readers during a replace may
// briefly see a partial set; ingestion is an operator action and replaces are
// rare, which keeps this acceptable.
func (r *chunkRepository) ReplaceWorkspace(ctx context.Context, workspaceID types.WorkspaceID, documents []*model.Document, chunks []*model.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return goerr.New("chunk and vector counts differ",
			goerr.V("chunks", len(chunks)),
			goerr.V("vectors", len(vectors)),
			goerr.T(types.TagIntegrity))
	}

	if err := r.ClearWorkspace(ctx, workspaceID); err != nil {
		return err
	}

	bw := r.client.BulkWriter(ctx)
	now := time.Now().UTC()

	for _, doc := range documents {
		stored := &documentDocument{
			ID:             string(doc.ID),
			WorkspaceID:    string(workspaceID),
			Title:          doc.Title,
			SourceURL:      doc.SourceURL,
			License:        doc.License,
			AccessedAt:     doc.AccessedAt,
			Text:           doc.Text,
			Classification: string(doc.ClassificationLabel),
			CreatedAt:      doc.CreatedAt,
		}
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = now
		}
		docRef := r.client.Collection(r.documentsCollection()).Doc(stored.ID)
		if _, err := bw.Set(docRef, stored); err != nil {
			return goerr.Wrap(err, "failed to enqueue document write", goerr.V("document_id", doc.ID))
		}
	}

	for i, chunk := range chunks {
		stored := &chunkDocument{
			ID:          string(chunk.ID),
			DocumentID:  string(chunk.DocumentID),
			WorkspaceID: string(workspaceID),
			Content:     chunk.Content,
			StartChar:   chunk.StartChar,
			EndChar:     chunk.EndChar,
			ChunkIndex:  chunk.ChunkIndex,
			SourceTitle: chunk.SourceTitle,
			SourceURL:   chunk.SourceURL,
			Embedding:   firestore.Vector32(vectors[i]),
		}
		docRef := r.client.Collection(r.chunksCollection()).Doc(stored.ID)
		if _, err := bw.Set(docRef, stored); err != nil {
			return goerr.Wrap(err, "failed to enqueue chunk write", goerr.V("chunk_id", chunk.ID))
		}
	}

	bw.End()
	return nil
}

func (r *chunkRepository) loadChunks(ctx context.Context, workspaceID types.WorkspaceID) ([]*chunkDocument, error) {
	iter := r.client.Collection(r.chunksCollection()).
		Where("workspace_id", "==", string(workspaceID)).
		Documents(ctx)
	defer iter.Stop()

	var docs []*chunkDocument
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate chunks", goerr.V("workspace_id", workspaceID))
		}

		var cDoc chunkDocument
		if err := doc.DataTo(&cDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal chunk")
		}
		docs = append(docs, &cDoc)
	}

	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].DocumentID != docs[j].DocumentID {
			return docs[i].DocumentID < docs[j].DocumentID
		}
		return docs[i].ChunkIndex < docs[j].ChunkIndex
	})
	return docs, nil
}

// Search fetches the workspace's chunks and ranks them in process. Scoring
// everything keeps ranking identical across backends and the corpus per
// workspace is small enough for a full scan.
func (r *chunkRepository) Search(ctx context.Context, workspaceID types.WorkspaceID, queryVector []float32, topK int) ([]*model.RetrievalResult, error) {
	docs, err := r.loadChunks(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}

	chunks := make([]model.Chunk, len(docs))
	vectors := make([][]float32, len(docs))
	for i, d := range docs {
		chunks[i] = *chunkToModel(d)
		vectors[i] = []float32(d.Embedding)
	}

	ranked := model.RankTopK(chunks, vectors, queryVector, topK)
	results := make([]*model.RetrievalResult, len(ranked))
	for i := range ranked {
		res := ranked[i]
		results[i] = &res
	}
	return results, nil
}

func (r *chunkRepository) HasData(ctx context.Context, workspaceID types.WorkspaceID) (bool, error) {
	iter := r.client.Collection(r.chunksCollection()).
		Where("workspace_id", "==", string(workspaceID)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, goerr.Wrap(err, "failed to probe chunks", goerr.V("workspace_id", workspaceID))
	}
	return true, nil
}

func (r *chunkRepository) ListChunks(ctx context.Context, workspaceID types.WorkspaceID, limit int) ([]*model.Chunk, error) {
	docs, err := r.loadChunks(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	n := len(docs)
	if limit > 0 && limit < n {
		n = limit
	}
	chunks := make([]*model.Chunk, 0, n)
	for _, d := range docs[:n] {
		chunks = append(chunks, chunkToModel(d))
	}
	return chunks, nil
}

func (r *chunkRepository) ListDocuments(ctx context.Context, workspaceID types.WorkspaceID, limit, offset int) ([]*model.DocumentMetadata, error) {
	iter := r.client.Collection(r.documentsCollection()).
		Where("workspace_id", "==", string(workspaceID)).
		Documents(ctx)
	defer iter.Stop()

	var metas []*model.DocumentMetadata
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate documents", goerr.V("workspace_id", workspaceID))
		}

		var dDoc documentDocument
		if err := doc.DataTo(&dDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal document")
		}
		meta := documentToModel(&dDoc).Metadata()
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
	labels := make(map[types.DocumentID]types.ClassificationLabel, len(documentIDs))
	for _, id := range documentIDs {
		doc, err := r.getDocument(ctx, workspaceID, id)
		if err != nil {
			if status.Code(err) == codes.NotFound || goerr.HasTag(err, types.TagNotFound) {
				continue
			}
			return nil, err
		}
		labels[id] = types.ClassificationLabel(doc.Classification)
	}
	return labels, nil
}

func (r *chunkRepository) getDocument(ctx context.Context, workspaceID types.WorkspaceID, documentID types.DocumentID) (*documentDocument, error) {
	docRef := r.client.Collection(r.documentsCollection()).Doc(string(documentID))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "document not found", goerr.V("document_id", documentID))
		}
		return nil, goerr.Wrap(err, "failed to get document", goerr.V("document_id", documentID))
	}

	var dDoc documentDocument
	if err := doc.DataTo(&dDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal document", goerr.V("document_id", documentID))
	}

	// Cross-workspace access is reported as not-found to avoid leaking
	// document existence across tenants.
	if dDoc.WorkspaceID != string(workspaceID) {
		return nil, goerr.Wrap(ErrNotFound, "document not found", goerr.V("document_id", documentID))
	}
	return &dDoc, nil
}

func (r *chunkRepository) UpdateClassification(ctx context.Context, workspaceID types.WorkspaceID, documentID types.DocumentID, label types.ClassificationLabel) (*model.DocumentMetadata, error) {
	dDoc, err := r.getDocument(ctx, workspaceID, documentID)
	if err != nil {
		return nil, err
	}

	docRef := r.client.Collection(r.documentsCollection()).Doc(string(documentID))
	if _, err := docRef.Update(ctx, []firestore.Update{
		{Path: "classification_label", Value: string(label)},
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to update classification", goerr.V("document_id", documentID))
	}

	dDoc.Classification = string(label)
	meta := documentToModel(dDoc).Metadata()
	return &meta, nil
}

func (r *chunkRepository) ClearWorkspace(ctx context.Context, workspaceID types.WorkspaceID) error {
	bw := r.client.BulkWriter(ctx)

	for _, collection := range []string{r.documentsCollection(), r.chunksCollection()} {
		iter := r.client.Collection(collection).
			Where("workspace_id", "==", string(workspaceID)).
			Documents(ctx)

		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				iter.Stop()
				return goerr.Wrap(err, "failed to iterate for deletion", goerr.V("collection", collection))
			}
			if _, err := bw.Delete(doc.Ref); err != nil {
				iter.Stop()
				return goerr.Wrap(err, "failed to enqueue deletion", goerr.V("collection", collection))
			}
		}
		iter.Stop()
	}

	bw.End()
	return nil
}
