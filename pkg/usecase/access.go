package usecase

import (
	"context"

	"github.com/crivello-lab/crivello/pkg/domain/model/auth"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// resolveRole determines the caller's role in a workspace. In no-auth mode
// every caller is an admin. A user without a membership gets a forbidden
// error; the workspace itself must exist.
func (uc *UseCases) resolveRole(ctx context.Context, workspaceID types.WorkspaceID, user *auth.UserContext) (types.WorkspaceRole, error) {
	if _, err := uc.repo.Workspace().Get(ctx, workspaceID); err != nil {
		return "", err
	}

	if uc.authDisabled {
		return types.RoleAdmin, nil
	}

	member, err := uc.repo.Workspace().GetMember(ctx, workspaceID, user.ID)
	if err != nil {
		if goerr.HasTag(err, types.TagNotFound) {
			return "", goerr.New("not a workspace member",
				goerr.V("workspace_id", workspaceID),
				goerr.V("user_id", user.ID),
				goerr.T(types.TagForbidden))
		}
		return "", err
	}
	return member.Role, nil
}

// requireAdmin resolves the caller's role and rejects non-admins.
func (uc *UseCases) requireAdmin(ctx context.Context, workspaceID types.WorkspaceID, user *auth.UserContext) (types.WorkspaceRole, error) {
	role, err := uc.resolveRole(ctx, workspaceID, user)
	if err != nil {
		return "", err
	}
	if role != types.RoleAdmin {
		return "", goerr.New("workspace admin role required",
			goerr.V("workspace_id", workspaceID),
			goerr.V("role", role),
			goerr.T(types.TagForbidden))
	}
	return role, nil
}

// isNotFound reports whether the error carries the not-found tag
func isNotFound(err error) bool {
	return err != nil && goerr.HasTag(err, types.TagNotFound)
}
