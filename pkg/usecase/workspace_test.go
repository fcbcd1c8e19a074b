package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/crivello-lab/crivello/pkg/domain/types"
)

func TestWorkspaceCreateMakesCallerAdmin(t *testing.T) {
	repo, uc := newTestUseCases(t)
	ctx := context.Background()

	user, err := uc.Auth.Register(ctx, "owner@example.com", "password123")
	gt.NoError(t, err).Required()
	caller := userContext(user.ID, user.Email)

	ws, err := uc.Workspace.Create(ctx, caller, "cucina")
	gt.NoError(t, err).Required()
	gt.Value(t, ws.Name).Equal("cucina")

	member, err := repo.Workspace().GetMember(ctx, ws.ID, user.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, member.Role).Equal(types.RoleAdmin)

	// The personal workspace from registration plus the one just created.
	list, err := uc.Workspace.List(ctx, caller)
	gt.NoError(t, err).Required()
	gt.Array(t, list).Length(2)
	for _, item := range list {
		gt.Value(t, item.Role).Equal(types.RoleAdmin)
	}

	ev := findAuditEvent(t, repo, ws.ID, types.ActionWorkspaceCreate)
	gt.Value(t, ev).NotNil()
}

func TestWorkspaceMemberManagementRequiresAdmin(t *testing.T) {
	repo, uc := newTestUseCases(t)
	ctx := context.Background()

	admin, err := uc.Auth.Register(ctx, "admin@example.com", "password123")
	gt.NoError(t, err).Required()
	ws, err := uc.Workspace.Create(ctx, userContext(admin.ID, admin.Email), "team")
	gt.NoError(t, err).Required()

	member := registerMember(t, repo, uc, ws.ID, "member@example.com", types.RoleMember)
	_, err = uc.Auth.Register(ctx, "newcomer@example.com", "password123")
	gt.NoError(t, err).Required()

	_, err = uc.Workspace.AddMember(ctx, member, ws.ID, "newcomer@example.com", types.RoleMember)
	gt.Value(t, err).NotNil()
	gt.Bool(t, goerr.HasTag(err, types.TagForbidden)).True()

	added, err := uc.Workspace.AddMember(ctx, userContext(admin.ID, admin.Email), ws.ID, "newcomer@example.com", types.RoleMember)
	gt.NoError(t, err).Required()
	gt.Value(t, added.Email).Equal("newcomer@example.com")

	infos, err := uc.Workspace.ListMembers(ctx, member, ws.ID)
	gt.NoError(t, err).Required()
	gt.Array(t, infos).Length(3)
}

func TestWorkspaceNonMemberIsForbidden(t *testing.T) {
	repo, uc := newTestUseCases(t)
	ctx := context.Background()

	admin, err := uc.Auth.Register(ctx, "admin@example.com", "password123")
	gt.NoError(t, err).Required()
	ws, err := uc.Workspace.Create(ctx, userContext(admin.ID, admin.Email), "private")
	gt.NoError(t, err).Required()
	_ = repo

	outsider, err := uc.Auth.Register(ctx, "outsider@example.com", "password123")
	gt.NoError(t, err).Required()

	_, err = uc.Workspace.ListMembers(ctx, userContext(outsider.ID, outsider.Email), ws.ID)
	gt.Value(t, err).NotNil()
	gt.Bool(t, goerr.HasTag(err, types.TagForbidden)).True()
}

func TestWorkspaceUnknownWorkspaceIsNotFound(t *testing.T) {
	_, uc := newTestUseCases(t)
	ctx := context.Background()

	user, err := uc.Auth.Register(ctx, "user@example.com", "password123")
	gt.NoError(t, err).Required()

	_, err = uc.Workspace.ListMembers(ctx, userContext(user.ID, user.Email), types.NewWorkspaceID())
	gt.Value(t, err).NotNil()
	gt.Bool(t, goerr.HasTag(err, types.TagNotFound)).True()
}

func TestWorkspaceLastAdminGuard(t *testing.T) {
	repo, uc := newTestUseCases(t)
	ctx := context.Background()

	admin, err := uc.Auth.Register(ctx, "admin@example.com", "password123")
	gt.NoError(t, err).Required()
	caller := userContext(admin.ID, admin.Email)
	ws, err := uc.Workspace.Create(ctx, caller, "guarded")
	gt.NoError(t, err).Required()

	t.Run("cannot demote the only admin", func(t *testing.T) {
		_, err := uc.Workspace.UpdateMemberRole(ctx, caller, ws.ID, admin.ID, types.RoleMember)
		gt.Value(t, err).NotNil()
		gt.Bool(t, goerr.HasTag(err, types.TagValidation)).True()
	})

	t.Run("cannot remove the only admin", func(t *testing.T) {
		err := uc.Workspace.RemoveMember(ctx, caller, ws.ID, admin.ID)
		gt.Value(t, err).NotNil()
		gt.Bool(t, goerr.HasTag(err, types.TagValidation)).True()
	})

	t.Run("demotion works once a second admin exists", func(t *testing.T) {
		registerMember(t, repo, uc, ws.ID, "second@example.com", types.RoleAdmin)

		info, err := uc.Workspace.UpdateMemberRole(ctx, caller, ws.ID, admin.ID, types.RoleMember)
		gt.NoError(t, err).Required()
		gt.Value(t, info.Role).Equal(types.RoleMember)
	})
}

func TestWorkspaceAddMemberCannotDemoteLastAdmin(t *testing.T) {
	repo, uc := newTestUseCases(t)
	ctx := context.Background()

	admin, err := uc.Auth.Register(ctx, "admin@example.com", "password123")
	gt.NoError(t, err).Required()
	caller := userContext(admin.ID, admin.Email)
	ws, err := uc.Workspace.Create(ctx, caller, "upsert")
	gt.NoError(t, err).Required()

	// Adding an existing member upserts the role, so re-adding the only
	// admin as a member would leave the workspace without one.
	_, err = uc.Workspace.AddMember(ctx, caller, ws.ID, "admin@example.com", types.RoleMember)
	gt.Value(t, err).NotNil()
	gt.Bool(t, goerr.HasTag(err, types.TagValidation)).True()

	admins, err := repo.Workspace().CountMembersByRole(ctx, ws.ID, types.RoleAdmin)
	gt.NoError(t, err).Required()
	gt.Value(t, admins).Equal(1)

	t.Run("allowed once a second admin exists", func(t *testing.T) {
		registerMember(t, repo, uc, ws.ID, "second@example.com", types.RoleAdmin)

		info, err := uc.Workspace.AddMember(ctx, caller, ws.ID, "admin@example.com", types.RoleMember)
		gt.NoError(t, err).Required()
		gt.Value(t, info.Role).Equal(types.RoleMember)
	})
}

func TestWorkspaceAddMemberRejectsInvalidRole(t *testing.T) {
	_, uc := newTestUseCases(t)
	ctx := context.Background()

	admin, err := uc.Auth.Register(ctx, "admin@example.com", "password123")
	gt.NoError(t, err).Required()
	caller := userContext(admin.ID, admin.Email)
	ws, err := uc.Workspace.Create(ctx, caller, "roles")
	gt.NoError(t, err).Required()

	_, err = uc.Auth.Register(ctx, "target@example.com", "password123")
	gt.NoError(t, err).Required()

	_, err = uc.Workspace.AddMember(ctx, caller, ws.ID, "target@example.com", types.WorkspaceRole("owner"))
	gt.Value(t, err).NotNil()
	gt.Bool(t, goerr.HasTag(err, types.TagValidation)).True()
}
