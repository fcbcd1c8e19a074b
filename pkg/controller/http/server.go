package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/crivello-lab/crivello/pkg/usecase"
	"github.com/crivello-lab/crivello/pkg/utils/logging"
)

// Server is the REST controller. It translates HTTP to use case calls and
// holds no business logic of its own.
type Server struct {
	router  *chi.Mux
	uc      *usecase.UseCases
	dataDir string
}

type Options func(*Server)

// WithDataDir sets the corpus directory used by the demo ingestion endpoint
func WithDataDir(dir string) Options {
	return func(s *Server) {
		s.dataDir = dir
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(uc.Auth, uc.AuthDisabled()))

			r.Get("/auth/me", s.handleMe)

			r.Route("/workspaces", func(r chi.Router) {
				r.Post("/", s.handleCreateWorkspace)
				r.Get("/", s.handleListWorkspaces)

				r.Route("/{workspaceID}", func(r chi.Router) {
					r.Get("/members", s.handleListMembers)
					r.Post("/members", s.handleAddMember)
					r.Patch("/members/{userID}", s.handleUpdateMemberRole)
					r.Delete("/members/{userID}", s.handleRemoveMember)

					r.Post("/ingest/demo", s.handleIngestDemo)

					r.Get("/documents", s.handleListDocuments)
					r.Patch("/documents/{documentID}/classification", s.handleUpdateClassification)
					r.Get("/chunks", s.handleListChunks)

					r.Post("/query", s.handleQuery)
					r.Get("/audit", s.handleListAudit)
				})
			})
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
