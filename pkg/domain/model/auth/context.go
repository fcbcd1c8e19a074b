package auth

import (
	"context"

	"github.com/crivello-lab/crivello/pkg/domain/types"
)

// UserContext identifies the authenticated caller of a request
type UserContext struct {
	ID    types.UserID
	Email string
}

// AnonymousUserID is the fixed identity used in no-auth development mode
const AnonymousUserID types.UserID = "00000000-0000-0000-0000-000000000000"

// NewAnonymousUser returns the fixed development-mode identity
func NewAnonymousUser() *UserContext {
	return &UserContext{
		ID:    AnonymousUserID,
		Email: "demo@local",
	}
}

type ctxKey struct{}

// ContextWithUser stores the caller identity in the context
func ContextWithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFromContext retrieves the caller identity, or nil when unauthenticated
func UserFromContext(ctx context.Context) *UserContext {
	user, _ := ctx.Value(ctxKey{}).(*UserContext)
	return user
}
