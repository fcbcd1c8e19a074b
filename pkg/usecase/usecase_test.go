package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/crivello-lab/crivello/pkg/domain/interfaces"
	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/model/auth"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/crivello-lab/crivello/pkg/repository/memory"
	"github.com/crivello-lab/crivello/pkg/service/embedding"
	"github.com/crivello-lab/crivello/pkg/usecase"
)

const testEmbeddingDimension = 64

func newTestUseCases(t *testing.T, opts ...usecase.Option) (interfaces.Repository, *usecase.UseCases) {
	t.Helper()

	repo := memory.New()
	base := []usecase.Option{
		usecase.WithEmbeddingClient(embedding.NewHashClient(testEmbeddingDimension)),
		usecase.WithJWTSecret([]byte("test-secret-test-secret-test-secret")),
	}
	return repo, usecase.New(repo, append(base, opts...)...)
}

func userContext(id types.UserID, email string) *auth.UserContext {
	return &auth.UserContext{ID: id, Email: email}
}

// registerMember creates an account and joins it to the workspace with the
// given role, returning the caller identity.
func registerMember(t *testing.T, repo interfaces.Repository, uc *usecase.UseCases, wsID types.WorkspaceID, email string, role types.WorkspaceRole) *auth.UserContext {
	t.Helper()
	ctx := context.Background()

	user, err := uc.Auth.Register(ctx, email, "password123")
	gt.NoError(t, err).Required()

	_, err = repo.Workspace().PutMember(ctx, &model.WorkspaceMember{
		WorkspaceID: wsID,
		UserID:      user.ID,
		Role:        role,
	})
	gt.NoError(t, err).Required()

	return &auth.UserContext{ID: user.ID, Email: user.Email}
}

// seedCorpus ingests one single-chunk document per classification label into
// the workspace, embedding the contents with the same hash client the query
// pipeline uses so retrieval scores are meaningful.
func seedCorpus(t *testing.T, repo interfaces.Repository, wsID types.WorkspaceID, contents map[types.ClassificationLabel]string) map[types.ClassificationLabel]types.DocumentID {
	t.Helper()
	ctx := context.Background()
	embedder := embedding.NewHashClient(testEmbeddingDimension)

	ids := make(map[types.ClassificationLabel]types.DocumentID, len(contents))
	var docs []*model.Document
	var chunks []*model.Chunk
	var vectors [][]float32
	for _, label := range []types.ClassificationLabel{
		types.ClassificationPublic,
		types.ClassificationInternal,
		types.ClassificationConfidential,
		types.ClassificationRestricted,
	} {
		content, ok := contents[label]
		if !ok {
			continue
		}
		doc := &model.Document{
			ID:                  types.NewDocumentID(),
			WorkspaceID:         wsID,
			Title:               string(label),
			Text:                content,
			ClassificationLabel: label,
		}
		ids[label] = doc.ID
		docs = append(docs, doc)
		chunks = append(chunks, &model.Chunk{
			ID:          types.NewChunkID(),
			DocumentID:  doc.ID,
			WorkspaceID: wsID,
			Content:     content,
			ChunkIndex:  0,
			SourceTitle: doc.Title,
		})
		vec, err := embedder.Embed(ctx, content)
		gt.NoError(t, err).Required()
		vectors = append(vectors, vec)
	}

	gt.NoError(t, repo.Chunk().ReplaceWorkspace(ctx, wsID, docs, chunks, vectors)).Required()
	return ids
}

// fixedSynthesizer returns a canned answer, or fails when err is set.
type fixedSynthesizer struct {
	answer string
	err    error
	called bool
}

func (s *fixedSynthesizer) Generate(ctx context.Context, question string, chunks []model.Chunk) (string, error) {
	s.called = true
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

func findAuditEvent(t *testing.T, repo interfaces.Repository, wsID types.WorkspaceID, action types.AuditAction) *model.AuditEvent {
	t.Helper()

	events, err := repo.Audit().ListByWorkspace(context.Background(), wsID, 100)
	gt.NoError(t, err).Required()
	for _, ev := range events {
		if ev.Action == action {
			return ev
		}
	}
	return nil
}
