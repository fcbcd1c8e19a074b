package http

import (
	"net/http"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type registerResponse struct {
	Token     string            `json:"token"`
	User      userResponse      `json:"user"`
	Workspace workspaceResponse `json:"workspace"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	result, err := s.uc.Auth.Register(ctx, req.Email, req.Password)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, registerResponse{
		Token: result.Token,
		User: userResponse{
			ID:    string(result.User.ID),
			Email: result.User.Email,
		},
		Workspace: workspaceResponse{
			ID:        string(result.Workspace.ID),
			Name:      result.Workspace.Name,
			CreatedAt: result.Workspace.CreatedAt,
		},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	token, user, err := s.uc.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, loginResponse{
		Token: token,
		User: userResponse{
			ID:    string(user.ID),
			Email: user.Email,
		},
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, err := requestUser(r)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	user, err := s.uc.Auth.CurrentUser(ctx, caller)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, userResponse{
		ID:    string(user.ID),
		Email: user.Email,
	})
}
