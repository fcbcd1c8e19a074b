package audit

import (
	"context"
	"log/slog"

	"github.com/crivello-lab/crivello/pkg/domain/interfaces"
	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/crivello-lab/crivello/pkg/utils/logging"
)

const (
	// DefaultListLimit applies when a list request gives no limit
	DefaultListLimit = 50
	// MaxListLimit caps a single audit page
	MaxListLimit = 200

	redactedValue = "[redacted]"
)

// sensitiveKeys are payload fields that may carry user text or document
// content. Their values are replaced before the event is persisted, so raw
// content never reaches the audit log.
var sensitiveKeys = map[string]struct{}{
	"question":     {},
	"prompt":       {},
	"content":      {},
	"text":         {},
	"source_title": {},
	"source_url":   {},
	"excerpt":      {},
}

// Recorder writes audit events. Recording is best effort: a storage failure
// is logged but never fails the operation being audited.
type Recorder struct {
	repo interfaces.AuditRepository
}

func NewRecorder(repo interfaces.AuditRepository) *Recorder {
	return &Recorder{repo: repo}
}

// RedactPayload returns a copy of the payload with sensitive values masked.
// Redaction is applied to top-level keys and to keys inside list-of-map
// values such as result sets.
func RedactPayload(payload model.AuditPayload) model.AuditPayload {
	if payload == nil {
		return nil
	}

	redacted := make(model.AuditPayload, len(payload))
	for key, value := range payload {
		if _, sensitive := sensitiveKeys[key]; sensitive {
			redacted[key] = redactedValue
			continue
		}

		switch v := value.(type) {
		case model.AuditPayload:
			redacted[key] = RedactPayload(v)
		case map[string]any:
			redacted[key] = map[string]any(RedactPayload(model.AuditPayload(v)))
		case []map[string]any:
			items := make([]map[string]any, len(v))
			for i, item := range v {
				items[i] = map[string]any(RedactPayload(model.AuditPayload(item)))
			}
			redacted[key] = items
		default:
			redacted[key] = value
		}
	}
	return redacted
}

// Record persists an audit event with a redacted payload. A payload without
// an outcome is recorded as success.
func (r *Recorder) Record(ctx context.Context, workspaceID types.WorkspaceID, userID types.UserID, action types.AuditAction, payload model.AuditPayload) {
	redacted := RedactPayload(payload)
	if redacted == nil {
		redacted = model.AuditPayload{}
	}
	if _, ok := redacted["outcome"]; !ok {
		redacted["outcome"] = "success"
	}

	event := &model.AuditEvent{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Action:      action,
		Payload:     redacted,
	}

	if _, err := r.repo.Create(ctx, event); err != nil {
		logging.From(ctx).Error("failed to record audit event",
			slog.Any("error", err),
			slog.String("workspace_id", workspaceID.String()),
			slog.String("action", string(action)),
		)
	}
}

// List returns the workspace's newest audit events. The limit is clamped to
// [1, MaxListLimit]; zero or negative means DefaultListLimit.
func (r *Recorder) List(ctx context.Context, workspaceID types.WorkspaceID, limit int) ([]*model.AuditEvent, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return r.repo.ListByWorkspace(ctx, workspaceID, limit)
}
