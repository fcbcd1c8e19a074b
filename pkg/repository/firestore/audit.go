package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
)

type auditDocument struct {
	ID          string         `firestore:"id"`
	WorkspaceID string         `firestore:"workspace_id"`
	UserID      string         `firestore:"user_id"`
	Action      string         `firestore:"action"`
	Payload     map[string]any `firestore:"payload"`
	CreatedAt   time.Time      `firestore:"created_at"`
}

type auditRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAuditRepository(client *firestore.Client) *auditRepository {
	return &auditRepository{client: client}
}

func (r *auditRepository) auditCollection() string {
	return collectionName(r.collectionPrefix, "audit_logs")
}

func auditToModel(doc *auditDocument) *model.AuditEvent {
	return &model.AuditEvent{
		ID:          types.AuditEventID(doc.ID),
		WorkspaceID: types.WorkspaceID(doc.WorkspaceID),
		UserID:      types.UserID(doc.UserID),
		Action:      types.AuditAction(doc.Action),
		Payload:     model.AuditPayload(doc.Payload),
		CreatedAt:   doc.CreatedAt,
	}
}

func (r *auditRepository) Create(ctx context.Context, event *model.AuditEvent) (*model.AuditEvent, error) {
	created := *event
	if created.ID == "" {
		created.ID = types.NewAuditEventID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	doc := &auditDocument{
		ID:          string(created.ID),
		WorkspaceID: string(created.WorkspaceID),
		UserID:      string(created.UserID),
		Action:      string(created.Action),
		Payload:     map[string]any(created.Payload),
		CreatedAt:   created.CreatedAt,
	}
	docRef := r.client.Collection(r.auditCollection()).Doc(doc.ID)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create audit event")
	}

	return auditToModel(doc), nil
}

func (r *auditRepository) ListByWorkspace(ctx context.Context, workspaceID types.WorkspaceID, limit int) ([]*model.AuditEvent, error) {
	query := r.client.Collection(r.auditCollection()).
		Where("workspace_id", "==", string(workspaceID)).
		OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var events []*model.AuditEvent
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate audit events", goerr.V("workspace_id", workspaceID))
		}

		var aDoc auditDocument
		if err := doc.DataTo(&aDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal audit event")
		}
		events = append(events, auditToModel(&aDoc))
	}

	return events, nil
}
