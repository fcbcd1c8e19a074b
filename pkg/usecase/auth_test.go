package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/crivello-lab/crivello/pkg/domain/model/auth"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/crivello-lab/crivello/pkg/usecase"
)

func TestAuthRegisterLoginRoundtrip(t *testing.T) {
	_, uc := newTestUseCases(t)
	ctx := context.Background()

	user, err := uc.Auth.Register(ctx, "Alice@Example.com", "password123")
	gt.NoError(t, err).Required()
	gt.Value(t, user.Email).Equal("alice@example.com")
	gt.String(t, user.HashedPassword).NotEqual("")
	gt.String(t, user.HashedPassword).NotEqual("password123")
	gt.String(t, user.Token).NotEqual("")
	gt.Value(t, user.Workspace.Name).Equal("personal")

	token, logged, err := uc.Auth.Login(ctx, "alice@example.com", "password123")
	gt.NoError(t, err).Required()
	gt.String(t, token).NotEqual("")
	gt.Value(t, logged.ID).Equal(user.ID)

	caller, err := uc.Auth.ValidateToken(ctx, token)
	gt.NoError(t, err).Required()
	gt.Value(t, caller.ID).Equal(user.ID)
	gt.Value(t, caller.Email).Equal("alice@example.com")
}

func TestAuthLoginFailuresAreIndistinguishable(t *testing.T) {
	_, uc := newTestUseCases(t)
	ctx := context.Background()

	_, err := uc.Auth.Register(ctx, "bob@example.com", "password123")
	gt.NoError(t, err).Required()

	_, _, wrongPassword := uc.Auth.Login(ctx, "bob@example.com", "wrong-password")
	gt.Value(t, wrongPassword).NotNil()
	gt.Bool(t, goerr.HasTag(wrongPassword, types.TagUnauthorized)).True()

	_, _, unknownEmail := uc.Auth.Login(ctx, "nobody@example.com", "password123")
	gt.Value(t, unknownEmail).NotNil()
	gt.Bool(t, goerr.HasTag(unknownEmail, types.TagUnauthorized)).True()

	// Same message for both, so login cannot probe for registered addresses.
	gt.Value(t, wrongPassword.Error()).Equal(unknownEmail.Error())
}

func TestAuthRegisterValidation(t *testing.T) {
	_, uc := newTestUseCases(t)
	ctx := context.Background()

	t.Run("short password", func(t *testing.T) {
		_, err := uc.Auth.Register(ctx, "carol@example.com", "short")
		gt.Value(t, err).NotNil()
		gt.Bool(t, goerr.HasTag(err, types.TagValidation)).True()
	})

	t.Run("malformed email", func(t *testing.T) {
		_, err := uc.Auth.Register(ctx, "not-an-email", "password123")
		gt.Value(t, err).NotNil()
		gt.Bool(t, goerr.HasTag(err, types.TagValidation)).True()
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := uc.Auth.Register(ctx, "dave@example.com", "password123")
		gt.NoError(t, err).Required()
		_, err = uc.Auth.Register(ctx, "DAVE@example.com", "password456")
		gt.Value(t, err).NotNil()
	})
}

func TestAuthInvalidToken(t *testing.T) {
	_, uc := newTestUseCases(t)

	_, err := uc.Auth.ValidateToken(context.Background(), "not.a.token")
	gt.Value(t, err).NotNil()
	gt.Bool(t, goerr.HasTag(err, types.TagUnauthorized)).True()
}

func TestAuthDisabledAnonymousIdentity(t *testing.T) {
	_, uc := newTestUseCases(t, usecase.WithAuthDisabled(true))
	ctx := context.Background()

	caller, err := uc.Auth.ValidateToken(ctx, "")
	gt.NoError(t, err).Required()
	gt.Value(t, caller.ID).Equal(auth.AnonymousUserID)
	gt.Value(t, caller.Email).Equal("demo@local")

	// The anonymous identity has no stored account but still resolves.
	current, err := uc.Auth.CurrentUser(ctx, caller)
	gt.NoError(t, err).Required()
	gt.Value(t, current.ID).Equal(auth.AnonymousUserID)
}
