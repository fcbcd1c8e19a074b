package types

import "github.com/m-mizutani/goerr/v2"

// WorkspaceRole represents a member's role within a workspace
type WorkspaceRole string

const (
	RoleAdmin  WorkspaceRole = "admin"
	RoleMember WorkspaceRole = "member"
)

// IsValid checks if the role is part of the fixed vocabulary
func (r WorkspaceRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleMember:
		return true
	default:
		return false
	}
}

func (r WorkspaceRole) String() string { return string(r) }

// ParseWorkspaceRole parses a string into a WorkspaceRole
func ParseWorkspaceRole(s string) (WorkspaceRole, error) {
	role := WorkspaceRole(s)
	if !role.IsValid() {
		return "", goerr.New("invalid workspace role",
			goerr.V("role", s), goerr.T(TagValidation))
	}
	return role, nil
}
