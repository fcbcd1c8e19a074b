package audit_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/crivello-lab/crivello/pkg/repository/memory"
	"github.com/crivello-lab/crivello/pkg/service/audit"
)

func TestRedactPayload(t *testing.T) {
	payload := model.AuditPayload{
		"question":     "come si cuoce la pasta?",
		"top_k":        5,
		"source_title": "Guida",
		"nested": map[string]any{
			"excerpt": "contenuto sensibile",
			"score":   0.9,
		},
		"results_list": []map[string]any{
			{"content": "testo", "document_id": "abc"},
		},
	}

	redacted := audit.RedactPayload(payload)

	gt.Value(t, redacted["question"]).Equal("[redacted]")
	gt.Value(t, redacted["source_title"]).Equal("[redacted]")
	gt.Value(t, redacted["top_k"]).Equal(5)

	nested := redacted["nested"].(map[string]any)
	gt.Value(t, nested["excerpt"]).Equal("[redacted]")
	gt.Value(t, nested["score"]).Equal(0.9)

	list := redacted["results_list"].([]map[string]any)
	gt.Value(t, list[0]["content"]).Equal("[redacted]")
	gt.Value(t, list[0]["document_id"]).Equal("abc")

	// Original payload untouched.
	gt.Value(t, payload["question"]).Equal("come si cuoce la pasta?")
}

func TestRecorderDefaultsOutcome(t *testing.T) {
	repo := memory.New()
	recorder := audit.NewRecorder(repo.Audit())
	ctx := context.Background()
	wsID := types.NewWorkspaceID()

	recorder.Record(ctx, wsID, types.NewUserID(), types.ActionQuery, model.AuditPayload{
		"top_k": 3,
	})

	events, err := recorder.List(ctx, wsID, 10)
	gt.NoError(t, err).Required()
	gt.Array(t, events).Length(1)
	gt.Value(t, events[0].Payload["outcome"]).Equal("success")
	gt.Value(t, events[0].Action).Equal(types.ActionQuery)
}

func TestRecorderKeepsExplicitOutcome(t *testing.T) {
	repo := memory.New()
	recorder := audit.NewRecorder(repo.Audit())
	ctx := context.Background()
	wsID := types.NewWorkspaceID()

	recorder.Record(ctx, wsID, types.NewUserID(), types.ActionDocumentClassificationUpdate, model.AuditPayload{
		"outcome": "failure",
		"reason":  "document_not_found",
	})

	events, err := recorder.List(ctx, wsID, 10)
	gt.NoError(t, err).Required()
	gt.Array(t, events).Length(1)
	gt.Value(t, events[0].Payload["outcome"]).Equal("failure")
}

func TestRecorderListClampsLimit(t *testing.T) {
	repo := memory.New()
	recorder := audit.NewRecorder(repo.Audit())
	ctx := context.Background()
	wsID := types.NewWorkspaceID()

	for i := 0; i < 60; i++ {
		recorder.Record(ctx, wsID, types.NewUserID(), types.ActionQuery, nil)
	}

	// Zero limit falls back to the default page size.
	events, err := recorder.List(ctx, wsID, 0)
	gt.NoError(t, err).Required()
	gt.Array(t, events).Length(audit.DefaultListLimit)

	// Oversized limits are capped.
	events, err = recorder.List(ctx, wsID, 10000)
	gt.NoError(t, err).Required()
	gt.Array(t, events).Length(60)
}
