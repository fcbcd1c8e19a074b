package http

import (
	"net/http"
	"time"

	"github.com/crivello-lab/crivello/pkg/usecase"
)

type queryRequest struct {
	Question string `json:"question"`
	TopK     *int   `json:"top_k"` // absent means the server default
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := requestUser(r)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	workspaceID, err := workspaceIDParam(r)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	var req queryRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	topK := usecase.DefaultTopK
	if req.TopK != nil {
		topK = *req.TopK
	}

	result, err := s.uc.Query.Query(ctx, caller, workspaceID, req.Question, topK)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, result)
}

func (s *Server) handleIngestDemo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := requestUser(r)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	workspaceID, err := workspaceIDParam(r)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	summary, err := s.uc.Ingest.IngestDemo(ctx, caller, workspaceID, s.dataDir)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, summary)
}

type auditEventResponse struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Action    string         `json:"action"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

func (s *Server) handleListAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := requestUser(r)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	workspaceID, err := workspaceIDParam(r)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	limit := queryInt(r, "limit", 0)

	events, err := s.uc.Audit.List(ctx, caller, workspaceID, limit)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	resp := make([]auditEventResponse, 0, len(events))
	for _, ev := range events {
		resp = append(resp, auditEventResponse{
			ID:        string(ev.ID),
			UserID:    string(ev.UserID),
			Action:    string(ev.Action),
			Payload:   map[string]any(ev.Payload),
			CreatedAt: ev.CreatedAt,
		})
	}
	writeJSON(ctx, w, http.StatusOK, map[string]any{"events": resp})
}
