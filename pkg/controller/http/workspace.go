package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/crivello-lab/crivello/pkg/domain/types"
)

func workspaceIDParam(r *http.Request) (types.WorkspaceID, error) {
	id := types.WorkspaceID(chi.URLParam(r, "workspaceID"))
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

type workspaceResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Role      string    `json:"role,omitempty"`
}

type createWorkspaceRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateWorkspace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := requestUser(r)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	var req createWorkspaceRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	workspace, err := s.uc.Workspace.Create(ctx, caller, req.Name)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, workspaceResponse{
		ID:        string(workspace.ID),
		Name:      workspace.Name,
		CreatedAt: workspace.CreatedAt,
	})
}

func (s *Server) handleListWorkspaces(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := requestUser(r)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	workspaces, err := s.uc.Workspace.List(ctx, caller)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	resp := make([]workspaceResponse, 0, len(workspaces))
	for _, ws := range workspaces {
		resp = append(resp, workspaceResponse{
			ID:        string(ws.Workspace.ID),
			Name:      ws.Workspace.Name,
			CreatedAt: ws.Workspace.CreatedAt,
			Role:      string(ws.Role),
		})
	}
	writeJSON(ctx, w, http.StatusOK, map[string]any{"workspaces": resp})
}

type memberResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
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

	members, err := s.uc.Workspace.ListMembers(ctx, caller, workspaceID)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	resp := make([]memberResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, memberResponse{
			UserID:    string(m.UserID),
			Email:     m.Email,
			Role:      string(m.Role),
			CreatedAt: m.CreatedAt,
		})
	}
	writeJSON(ctx, w, http.StatusOK, map[string]any{"members": resp})
}

type addMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
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

	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	member, err := s.uc.Workspace.AddMember(ctx, caller, workspaceID, req.Email, types.WorkspaceRole(req.Role))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, memberResponse{
		UserID:    string(member.UserID),
		Email:     member.Email,
		Role:      string(member.Role),
		CreatedAt: member.CreatedAt,
	})
}

type updateMemberRoleRequest struct {
	Role string `json:"role"`
}

func (s *Server) handleUpdateMemberRole(w http.ResponseWriter, r *http.Request) {
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
	userID := types.UserID(chi.URLParam(r, "userID"))
	if err := userID.Validate(); err != nil {
		handleError(ctx, w, err)
		return
	}

	var req updateMemberRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	member, err := s.uc.Workspace.UpdateMemberRole(ctx, caller, workspaceID, userID, types.WorkspaceRole(req.Role))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, memberResponse{
		UserID:    string(member.UserID),
		Email:     member.Email,
		Role:      string(member.Role),
		CreatedAt: member.CreatedAt,
	})
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
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
	userID := types.UserID(chi.URLParam(r, "userID"))
	if err := userID.Validate(); err != nil {
		handleError(ctx, w, err)
		return
	}

	if err := s.uc.Workspace.RemoveMember(ctx, caller, workspaceID, userID); err != nil {
		handleError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
