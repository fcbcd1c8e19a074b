package usecase

import (
	"context"
	"strings"

	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/model/auth"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const (
	minWorkspaceNameLength = 2
	maxWorkspaceNameLength = 80
)

// WorkspaceUseCase covers workspace lifecycle and membership management.
type WorkspaceUseCase struct {
	uc *UseCases
}

// Create makes a new workspace with the caller as its first admin.
func (w *WorkspaceUseCase) Create(ctx context.Context, user *auth.UserContext, name string) (*model.Workspace, error) {
	name = strings.TrimSpace(name)
	if len(name) < minWorkspaceNameLength || len(name) > maxWorkspaceNameLength {
		return nil, goerr.New("workspace name length out of range",
			goerr.V("name", name),
			goerr.V("min", minWorkspaceNameLength),
			goerr.V("max", maxWorkspaceNameLength),
			goerr.T(types.TagValidation))
	}

	workspace, err := w.uc.repo.Workspace().Create(ctx, &model.Workspace{Name: name})
	if err != nil {
		return nil, err
	}

	if !w.uc.authDisabled {
		if _, err := w.uc.repo.Workspace().PutMember(ctx, &model.WorkspaceMember{
			WorkspaceID: workspace.ID,
			UserID:      user.ID,
			Role:        types.RoleAdmin,
		}); err != nil {
			return nil, err
		}
	}

	w.uc.recorder.Record(ctx, workspace.ID, user.ID, types.ActionWorkspaceCreate, model.AuditPayload{
		"workspace_name": workspace.Name,
	})
	return workspace, nil
}

// List returns the workspaces the caller belongs to, with their role.
func (w *WorkspaceUseCase) List(ctx context.Context, user *auth.UserContext) ([]*model.WorkspaceWithRole, error) {
	return w.uc.repo.Workspace().ListByUser(ctx, user.ID)
}

// ListMembers returns the workspace's members joined with their email.
// Any member may list; mutation requires admin.
func (w *WorkspaceUseCase) ListMembers(ctx context.Context, user *auth.UserContext, workspaceID types.WorkspaceID) ([]*model.MemberInfo, error) {
	if _, err := w.uc.resolveRole(ctx, workspaceID, user); err != nil {
		return nil, err
	}

	members, err := w.uc.repo.Workspace().ListMembers(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	infos := make([]*model.MemberInfo, 0, len(members))
	for _, member := range members {
		u, err := w.uc.repo.User().Get(ctx, member.UserID)
		if err != nil {
			if isNotFound(err) {
				// A membership pointing at a deleted account means the
				// stored data is inconsistent.
				return nil, goerr.New("membership references unknown user",
					goerr.V("workspace_id", workspaceID),
					goerr.V("user_id", member.UserID),
					goerr.T(types.TagIntegrity))
			}
			return nil, err
		}
		infos = append(infos, &model.MemberInfo{
			UserID:    member.UserID,
			Email:     u.Email,
			Role:      member.Role,
			CreatedAt: member.CreatedAt,
		})
	}
	return infos, nil
}

// AddMember adds a registered user to the workspace by email. Admin only.
func (w *WorkspaceUseCase) AddMember(ctx context.Context, actor *auth.UserContext, workspaceID types.WorkspaceID, email string, role types.WorkspaceRole) (*model.MemberInfo, error) {
	if _, err := w.uc.requireAdmin(ctx, workspaceID, actor); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, goerr.New("invalid workspace role",
			goerr.V("role", role),
			goerr.T(types.TagValidation))
	}

	target, err := w.uc.repo.User().GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, err
	}

	// PutMember is an upsert, so adding an existing admin with a lower role
	// is a demotion and goes through the same guard as an explicit one.
	if existing, err := w.uc.repo.Workspace().GetMember(ctx, workspaceID, target.ID); err == nil {
		if existing.Role == types.RoleAdmin && role != types.RoleAdmin {
			if err := w.guardLastAdmin(ctx, workspaceID); err != nil {
				return nil, err
			}
		}
	} else if !isNotFound(err) {
		return nil, err
	}

	member, err := w.uc.repo.Workspace().PutMember(ctx, &model.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      target.ID,
		Role:        role,
	})
	if err != nil {
		return nil, err
	}

	w.uc.recorder.Record(ctx, workspaceID, actor.ID, types.ActionWorkspaceMemberAdd, model.AuditPayload{
		"member_user_id": string(target.ID),
		"member_role":    string(role),
	})

	return &model.MemberInfo{
		UserID:    member.UserID,
		Email:     target.Email,
		Role:      member.Role,
		CreatedAt: member.CreatedAt,
	}, nil
}

// UpdateMemberRole changes a member's role. Demoting the last admin would
// leave the workspace unmanageable and is rejected.
func (w *WorkspaceUseCase) UpdateMemberRole(ctx context.Context, actor *auth.UserContext, workspaceID types.WorkspaceID, userID types.UserID, role types.WorkspaceRole) (*model.MemberInfo, error) {
	if _, err := w.uc.requireAdmin(ctx, workspaceID, actor); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, goerr.New("invalid workspace role",
			goerr.V("role", role),
			goerr.T(types.TagValidation))
	}

	member, err := w.uc.repo.Workspace().GetMember(ctx, workspaceID, userID)
	if err != nil {
		return nil, err
	}

	if member.Role == types.RoleAdmin && role != types.RoleAdmin {
		if err := w.guardLastAdmin(ctx, workspaceID); err != nil {
			return nil, err
		}
	}

	member.Role = role
	updated, err := w.uc.repo.Workspace().PutMember(ctx, member)
	if err != nil {
		return nil, err
	}

	w.uc.recorder.Record(ctx, workspaceID, actor.ID, types.ActionWorkspaceMemberRoleUpdate, model.AuditPayload{
		"member_user_id": string(userID),
		"member_role":    string(role),
	})

	info := &model.MemberInfo{
		UserID:    updated.UserID,
		Role:      updated.Role,
		CreatedAt: updated.CreatedAt,
	}
	if u, err := w.uc.repo.User().Get(ctx, updated.UserID); err == nil {
		info.Email = u.Email
	}
	return info, nil
}

// RemoveMember deletes a membership. Removing the last admin is rejected for
// the same reason as demotion.
func (w *WorkspaceUseCase) RemoveMember(ctx context.Context, actor *auth.UserContext, workspaceID types.WorkspaceID, userID types.UserID) error {
	if _, err := w.uc.requireAdmin(ctx, workspaceID, actor); err != nil {
		return err
	}

	member, err := w.uc.repo.Workspace().GetMember(ctx, workspaceID, userID)
	if err != nil {
		return err
	}

	if member.Role == types.RoleAdmin {
		if err := w.guardLastAdmin(ctx, workspaceID); err != nil {
			return err
		}
	}

	if err := w.uc.repo.Workspace().DeleteMember(ctx, workspaceID, userID); err != nil {
		return err
	}

	w.uc.recorder.Record(ctx, workspaceID, actor.ID, types.ActionWorkspaceMemberRemove, model.AuditPayload{
		"member_user_id": string(userID),
	})
	return nil
}

func (w *WorkspaceUseCase) guardLastAdmin(ctx context.Context, workspaceID types.WorkspaceID) error {
	admins, err := w.uc.repo.Workspace().CountMembersByRole(ctx, workspaceID, types.RoleAdmin)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return goerr.New("last workspace admin",
			goerr.V("workspace_id", workspaceID),
			goerr.T(types.TagValidation))
	}
	return nil
}
