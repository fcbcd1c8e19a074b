package interfaces

import (
	"context"

	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
)

// WorkspaceRepository persists workspaces and their memberships
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *model.Workspace) (*model.Workspace, error)
	Get(ctx context.Context, id types.WorkspaceID) (*model.Workspace, error)
	ListByUser(ctx context.Context, userID types.UserID) ([]*model.WorkspaceWithRole, error)

	// Membership operations. GetMember returns a not-found error when the
	// user has no membership in the workspace.
	PutMember(ctx context.Context, member *model.WorkspaceMember) (*model.WorkspaceMember, error)
	GetMember(ctx context.Context, workspaceID types.WorkspaceID, userID types.UserID) (*model.WorkspaceMember, error)
	ListMembers(ctx context.Context, workspaceID types.WorkspaceID) ([]*model.WorkspaceMember, error)
	CountMembersByRole(ctx context.Context, workspaceID types.WorkspaceID, role types.WorkspaceRole) (int, error)
	DeleteMember(ctx context.Context, workspaceID types.WorkspaceID, userID types.UserID) error
}
