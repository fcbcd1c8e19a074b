package model

import (
	"time"

	"github.com/crivello-lab/crivello/pkg/domain/types"
)

// AuditPayload is the structured key-value payload of an audit event
type AuditPayload map[string]any

// AuditEvent is an append-only record of a workspace-scoped action. The
// application never mutates or deletes audit events; they only disappear
// through workspace-cascade deletion.
type AuditEvent struct {
	ID          types.AuditEventID
	WorkspaceID types.WorkspaceID
	UserID      types.UserID // empty when the action had no authenticated caller
	Action      types.AuditAction
	Payload     AuditPayload
	CreatedAt   time.Time
}
