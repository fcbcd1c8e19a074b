package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
)

type auditRepository struct {
	mu     sync.RWMutex
	events map[types.WorkspaceID][]*model.AuditEvent
}

func newAuditRepository() *auditRepository {
	return &auditRepository{
		events: make(map[types.WorkspaceID][]*model.AuditEvent),
	}
}

func copyAuditEvent(ev *model.AuditEvent) *model.AuditEvent {
	copied := *ev
	if ev.Payload != nil {
		payload := make(model.AuditPayload, len(ev.Payload))
		for k, v := range ev.Payload {
			payload[k] = v
		}
		copied.Payload = payload
	}
	return &copied
}

func (r *auditRepository) Create(ctx context.Context, event *model.AuditEvent) (*model.AuditEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyAuditEvent(event)
	if created.ID == "" {
		created.ID = types.NewAuditEventID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.events[created.WorkspaceID] = append(r.events[created.WorkspaceID], created)
	return copyAuditEvent(created), nil
}

func (r *auditRepository) ListByWorkspace(ctx context.Context, workspaceID types.WorkspaceID, limit int) ([]*model.AuditEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.events[workspaceID]
	events := make([]*model.AuditEvent, 0, len(stored))
	for _, ev := range stored {
		events = append(events, copyAuditEvent(ev))
	}

	// Newest first. Insertion order breaks ties so same-timestamp events
	// stay in a stable order.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})

	if limit > 0 && limit < len(events) {
		events = events[:limit]
	}
	return events, nil
}
