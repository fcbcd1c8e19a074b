package http

import (
	"net/http"
	"strings"

	"github.com/crivello-lab/crivello/pkg/domain/model/auth"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/crivello-lab/crivello/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
)

// authMiddleware validates the bearer token and stores the caller identity
// in the request context. In no-auth mode a missing token is accepted and
// the anonymous identity is used.
func authMiddleware(authUC *usecase.AuthUseCase, authDisabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			header := r.Header.Get("Authorization")
			if header == "" {
				if authDisabled {
					next.ServeHTTP(w, r.WithContext(auth.ContextWithUser(ctx, auth.NewAnonymousUser())))
					return
				}
				handleError(ctx, w, goerr.New("missing authorization header", goerr.T(types.TagUnauthorized)))
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header {
				handleError(ctx, w, goerr.New("authorization header must use bearer scheme", goerr.T(types.TagUnauthorized)))
				return
			}

			user, err := authUC.ValidateToken(ctx, token)
			if err != nil {
				handleError(ctx, w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithUser(ctx, user)))
		})
	}
}

// requestUser pulls the authenticated caller from the request context
func requestUser(r *http.Request) (*auth.UserContext, error) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		return nil, goerr.New("not authenticated", goerr.T(types.TagUnauthorized))
	}
	return user, nil
}
