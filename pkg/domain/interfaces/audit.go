package interfaces

import (
	"context"

	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
)

// AuditRepository persists append-only audit events. There is deliberately no
// update or delete operation.
type AuditRepository interface {
	Create(ctx context.Context, event *model.AuditEvent) (*model.AuditEvent, error)
	ListByWorkspace(ctx context.Context, workspaceID types.WorkspaceID, limit int) ([]*model.AuditEvent, error)
}
