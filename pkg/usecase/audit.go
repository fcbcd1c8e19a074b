package usecase

import (
	"context"

	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/model/auth"
	"github.com/crivello-lab/crivello/pkg/domain/types"
)

// AuditUseCase exposes the audit trail to workspace admins.
type AuditUseCase struct {
	uc *UseCases
}

// List returns the workspace's newest audit events, admin only. The limit is
// clamped by the audit service.
func (a *AuditUseCase) List(ctx context.Context, user *auth.UserContext, workspaceID types.WorkspaceID, limit int) ([]*model.AuditEvent, error) {
	if _, err := a.uc.requireAdmin(ctx, workspaceID, user); err != nil {
		return nil, err
	}
	return a.uc.recorder.List(ctx, workspaceID, limit)
}
