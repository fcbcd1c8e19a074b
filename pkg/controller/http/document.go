package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
)

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	return fallback
}

type documentResponse struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	SourceURL           string     `json:"source_url,omitempty"`
	License             string     `json:"license,omitempty"`
	AccessedAt          *time.Time `json:"accessed_at,omitempty"`
	ClassificationLabel string     `json:"classification_label"`
}

func documentToResponse(meta *model.DocumentMetadata) documentResponse {
	return documentResponse{
		ID:                  string(meta.ID),
		Title:               meta.Title,
		SourceURL:           meta.SourceURL,
		License:             meta.License,
		AccessedAt:          meta.AccessedAt,
		ClassificationLabel: string(meta.ClassificationLabel),
	}
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
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
	offset := queryInt(r, "offset", 0)

	metas, err := s.uc.Document.ListDocuments(ctx, caller, workspaceID, limit, offset)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	resp := make([]documentResponse, 0, len(metas))
	for _, meta := range metas {
		resp = append(resp, documentToResponse(meta))
	}
	writeJSON(ctx, w, http.StatusOK, map[string]any{"documents": resp})
}

type updateClassificationRequest struct {
	ClassificationLabel string `json:"classification_label"`
}

func (s *Server) handleUpdateClassification(w http.ResponseWriter, r *http.Request) {
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
	documentID := types.DocumentID(chi.URLParam(r, "documentID"))
	if err := documentID.Validate(); err != nil {
		handleError(ctx, w, err)
		return
	}

	var req updateClassificationRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	meta, err := s.uc.Document.UpdateClassification(ctx, caller, workspaceID, documentID, types.ClassificationLabel(req.ClassificationLabel))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, documentToResponse(meta))
}

type chunkResponse struct {
	ID          string `json:"id"`
	DocumentID  string `json:"document_id"`
	ChunkIndex  int    `json:"chunk_index"`
	StartChar   int    `json:"start_char"`
	EndChar     int    `json:"end_char"`
	SourceTitle string `json:"source_title"`
	Excerpt     string `json:"excerpt"`
}

func (s *Server) handleListChunks(w http.ResponseWriter, r *http.Request) {
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

	limit := queryInt(r, "limit", 50)

	chunks, err := s.uc.Document.ListChunks(ctx, caller, workspaceID, limit)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	resp := make([]chunkResponse, 0, len(chunks))
	for _, chunk := range chunks {
		resp = append(resp, chunkResponse{
			ID:          string(chunk.ID),
			DocumentID:  string(chunk.DocumentID),
			ChunkIndex:  chunk.ChunkIndex,
			StartChar:   chunk.StartChar,
			EndChar:     chunk.EndChar,
			SourceTitle: chunk.SourceTitle,
			Excerpt:     model.Excerpt(chunk.Content),
		})
	}
	writeJSON(ctx, w, http.StatusOK, map[string]any{"chunks": resp})
}
