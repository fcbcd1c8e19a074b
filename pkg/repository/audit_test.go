package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/crivello-lab/crivello/pkg/domain/interfaces"
	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
)

func runAuditRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns ID and timestamp", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Audit().Create(ctx, &model.AuditEvent{
			WorkspaceID: types.NewWorkspaceID(),
			UserID:      types.NewUserID(),
			Action:      types.ActionQuery,
			Payload:     model.AuditPayload{"outcome": "success"},
		})
		gt.NoError(t, err).Required()
		gt.String(t, string(created.ID)).NotEqual("")
		gt.Bool(t, created.CreatedAt.IsZero()).False()
	})

	t.Run("ListByWorkspace returns newest first within limit", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		wsID := types.NewWorkspaceID()

		base := time.Now().UTC().Add(-time.Hour)
		for i := 0; i < 5; i++ {
			_, err := repo.Audit().Create(ctx, &model.AuditEvent{
				WorkspaceID: wsID,
				Action:      types.ActionQuery,
				Payload:     model.AuditPayload{"seq": i},
				CreatedAt:   base.Add(time.Duration(i) * time.Minute),
			})
			gt.NoError(t, err).Required()
		}

		events, err := repo.Audit().ListByWorkspace(ctx, wsID, 3)
		gt.NoError(t, err).Required()
		gt.Array(t, events).Length(3)
		for i := 1; i < len(events); i++ {
			gt.Bool(t, !events[i-1].CreatedAt.Before(events[i].CreatedAt)).True()
		}
	})

	t.Run("ListByWorkspace is workspace scoped", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		wsA := types.NewWorkspaceID()
		wsB := types.NewWorkspaceID()

		_, err := repo.Audit().Create(ctx, &model.AuditEvent{WorkspaceID: wsA, Action: types.ActionQuery})
		gt.NoError(t, err).Required()
		_, err = repo.Audit().Create(ctx, &model.AuditEvent{WorkspaceID: wsB, Action: types.ActionIngestDemo})
		gt.NoError(t, err).Required()

		events, err := repo.Audit().ListByWorkspace(ctx, wsA, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, events).Length(1)
		gt.Value(t, events[0].WorkspaceID).Equal(wsA)
	})
}

func TestMemoryAuditRepository(t *testing.T) {
	runAuditRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreAuditRepository(t *testing.T) {
	runAuditRepositoryTest(t, newFirestoreRepository)
}
