package model

import (
	"time"

	"github.com/crivello-lab/crivello/pkg/domain/types"
)

// Workspace is the tenancy unit. All documents, chunks and audit events are
// scoped to exactly one workspace.
type Workspace struct {
	ID        types.WorkspaceID
	Name      string
	CreatedAt time.Time
}

// WorkspaceMember binds a user to a workspace with a role. The
// (WorkspaceID, UserID) pair is the identity key: a user holds at most one
// role per workspace.
type WorkspaceMember struct {
	WorkspaceID types.WorkspaceID
	UserID      types.UserID
	Role        types.WorkspaceRole
	CreatedAt   time.Time
}

// MemberInfo is a membership joined with the user's email for listing
type MemberInfo struct {
	UserID    types.UserID
	Email     string
	Role      types.WorkspaceRole
	CreatedAt time.Time
}

// WorkspaceWithRole pairs a workspace with the caller's role in it
type WorkspaceWithRole struct {
	Workspace Workspace
	Role      types.WorkspaceRole
}
