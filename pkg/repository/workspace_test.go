package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/crivello-lab/crivello/pkg/domain/interfaces"
	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
)

func runWorkspaceRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and Get", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Workspace().Create(ctx, &model.Workspace{Name: "demo"})
		gt.NoError(t, err).Required()
		gt.String(t, string(created.ID)).NotEqual("")

		got, err := repo.Workspace().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Name).Equal("demo")
	})

	t.Run("Get unknown workspace is not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Workspace().Get(context.Background(), types.NewWorkspaceID())
		gt.Value(t, err).NotNil()
	})

	t.Run("Member lifecycle", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		ws, err := repo.Workspace().Create(ctx, &model.Workspace{Name: "team"})
		gt.NoError(t, err).Required()
		userID := types.NewUserID()

		_, err = repo.Workspace().PutMember(ctx, &model.WorkspaceMember{
			WorkspaceID: ws.ID,
			UserID:      userID,
			Role:        types.RoleAdmin,
		})
		gt.NoError(t, err).Required()

		member, err := repo.Workspace().GetMember(ctx, ws.ID, userID)
		gt.NoError(t, err).Required()
		gt.Value(t, member.Role).Equal(types.RoleAdmin)
		gt.Bool(t, member.CreatedAt.IsZero()).False()

		// PutMember on the same pair updates the role in place.
		_, err = repo.Workspace().PutMember(ctx, &model.WorkspaceMember{
			WorkspaceID: ws.ID,
			UserID:      userID,
			Role:        types.RoleMember,
		})
		gt.NoError(t, err).Required()

		member, err = repo.Workspace().GetMember(ctx, ws.ID, userID)
		gt.NoError(t, err).Required()
		gt.Value(t, member.Role).Equal(types.RoleMember)

		members, err := repo.Workspace().ListMembers(ctx, ws.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, members).Length(1)

		gt.NoError(t, repo.Workspace().DeleteMember(ctx, ws.ID, userID))
		_, err = repo.Workspace().GetMember(ctx, ws.ID, userID)
		gt.Value(t, err).NotNil()
	})

	t.Run("CountMembersByRole", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		ws, err := repo.Workspace().Create(ctx, &model.Workspace{Name: "counted"})
		gt.NoError(t, err).Required()

		for i := 0; i < 2; i++ {
			_, err := repo.Workspace().PutMember(ctx, &model.WorkspaceMember{
				WorkspaceID: ws.ID,
				UserID:      types.NewUserID(),
				Role:        types.RoleAdmin,
			})
			gt.NoError(t, err).Required()
		}
		_, err = repo.Workspace().PutMember(ctx, &model.WorkspaceMember{
			WorkspaceID: ws.ID,
			UserID:      types.NewUserID(),
			Role:        types.RoleMember,
		})
		gt.NoError(t, err).Required()

		admins, err := repo.Workspace().CountMembersByRole(ctx, ws.ID, types.RoleAdmin)
		gt.NoError(t, err).Required()
		gt.Value(t, admins).Equal(2)

		members, err := repo.Workspace().CountMembersByRole(ctx, ws.ID, types.RoleMember)
		gt.NoError(t, err).Required()
		gt.Value(t, members).Equal(1)
	})

	t.Run("ListByUser returns only joined workspaces with role", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		userID := types.NewUserID()

		joined, err := repo.Workspace().Create(ctx, &model.Workspace{Name: "joined"})
		gt.NoError(t, err).Required()
		_, err = repo.Workspace().Create(ctx, &model.Workspace{Name: "other"})
		gt.NoError(t, err).Required()

		_, err = repo.Workspace().PutMember(ctx, &model.WorkspaceMember{
			WorkspaceID: joined.ID,
			UserID:      userID,
			Role:        types.RoleMember,
		})
		gt.NoError(t, err).Required()

		list, err := repo.Workspace().ListByUser(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(1)
		gt.Value(t, list[0].Workspace.ID).Equal(joined.ID)
		gt.Value(t, list[0].Role).Equal(types.RoleMember)
	})
}

func TestMemoryWorkspaceRepository(t *testing.T) {
	runWorkspaceRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreWorkspaceRepository(t *testing.T) {
	runWorkspaceRepositoryTest(t, newFirestoreRepository)
}
