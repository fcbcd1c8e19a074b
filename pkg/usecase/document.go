package usecase

import (
	"context"

	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/model/auth"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// DocumentUseCase covers the document inventory and classification
// management.
type DocumentUseCase struct {
	uc *UseCases
}

// ListDocuments returns the workspace's document metadata. Reading the
// inventory is itself audited since it reveals classification labels.
func (d *DocumentUseCase) ListDocuments(ctx context.Context, user *auth.UserContext, workspaceID types.WorkspaceID, limit, offset int) ([]*model.DocumentMetadata, error) {
	role, err := d.uc.resolveRole(ctx, workspaceID, user)
	if err != nil {
		return nil, err
	}

	metas, err := d.uc.repo.Chunk().ListDocuments(ctx, workspaceID, limit, offset)
	if err != nil {
		return nil, err
	}

	d.uc.recorder.Record(ctx, workspaceID, user.ID, types.ActionDocumentInventoryRead, model.AuditPayload{
		"documents":   len(metas),
		"access_role": string(role),
	})
	return metas, nil
}

// UpdateClassification changes one document's classification label. Admin
// only. A document in another workspace is reported as not found, and the
// failed attempt is audited.
func (d *DocumentUseCase) UpdateClassification(ctx context.Context, user *auth.UserContext, workspaceID types.WorkspaceID, documentID types.DocumentID, label types.ClassificationLabel) (*model.DocumentMetadata, error) {
	if _, err := d.uc.requireAdmin(ctx, workspaceID, user); err != nil {
		return nil, err
	}
	if !label.IsValid() {
		return nil, goerr.New("invalid classification label",
			goerr.V("label", label),
			goerr.T(types.TagValidation))
	}

	meta, err := d.uc.repo.Chunk().UpdateClassification(ctx, workspaceID, documentID, label)
	if err != nil {
		if isNotFound(err) {
			d.uc.recorder.Record(ctx, workspaceID, user.ID, types.ActionDocumentClassificationUpdate, model.AuditPayload{
				"document_id": string(documentID),
				"outcome":     "failure",
				"reason":      "document_not_found",
			})
		}
		return nil, err
	}

	d.uc.recorder.Record(ctx, workspaceID, user.ID, types.ActionDocumentClassificationUpdate, model.AuditPayload{
		"document_id": string(documentID),
		"new_label":   string(label),
	})
	return meta, nil
}

// ListChunks exposes stored chunks for debugging. Member access.
func (d *DocumentUseCase) ListChunks(ctx context.Context, user *auth.UserContext, workspaceID types.WorkspaceID, limit int) ([]*model.Chunk, error) {
	if _, err := d.uc.resolveRole(ctx, workspaceID, user); err != nil {
		return nil, err
	}
	return d.uc.repo.Chunk().ListChunks(ctx, workspaceID, limit)
}
