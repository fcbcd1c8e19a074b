package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/model/auth"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// AuthUseCase covers registration, login and token validation.
type AuthUseCase struct {
	uc *UseCases
}

// prehashPassword folds arbitrary-length passwords into a fixed-size input,
// since bcrypt silently truncates past 72 bytes.
func prehashPassword(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(hex.EncodeToString(sum[:]))
}

// HashPassword derives the stored password hash
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(prehashPassword(password), bcrypt.DefaultCost)
	if err != nil {
		return "", goerr.Wrap(err, "failed to hash password")
	}
	return string(hashed), nil
}

func verifyPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), prehashPassword(password)) == nil
}

// RegisterResult is what a successful registration produces: the account, its
// personal workspace, and a ready-to-use token.
type RegisterResult struct {
	*model.User
	Workspace *model.Workspace
	Token     string
}

// Register creates a new user account with a personal workspace the user
// administers, and signs them in.
func (a *AuthUseCase) Register(ctx context.Context, email, password string) (*RegisterResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if len(email) < 3 || !strings.Contains(email, "@") {
		return nil, goerr.New("invalid email address",
			goerr.V("email", email),
			goerr.T(types.TagValidation))
	}
	if len(password) < minPasswordLength {
		return nil, goerr.New("password too short",
			goerr.V("min_length", minPasswordLength),
			goerr.T(types.TagValidation))
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := a.uc.repo.User().Create(ctx, &model.User{
		Email:          email,
		HashedPassword: hashed,
	})
	if err != nil {
		return nil, err
	}

	workspace, err := a.uc.Workspace.Create(ctx, &auth.UserContext{ID: user.ID, Email: user.Email}, "personal")
	if err != nil {
		return nil, err
	}

	token, err := a.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &RegisterResult{
		User:      user,
		Workspace: workspace,
		Token:     token,
	}, nil
}

// Login verifies credentials and issues a signed token. Invalid email and
// invalid password produce the same error so login cannot be used to probe
// for registered addresses.
func (a *AuthUseCase) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	invalidCredentials := func() error {
		return goerr.New("invalid email or password", goerr.T(types.TagUnauthorized))
	}

	user, err := a.uc.repo.User().GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if isNotFound(err) {
			return "", nil, invalidCredentials()
		}
		return "", nil, err
	}
	if !verifyPassword(user.HashedPassword, password) {
		return "", nil, invalidCredentials()
	}

	token, err := a.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (a *AuthUseCase) issueToken(user *model.User) (string, error) {
	now := time.Now().UTC()
	token, err := jwt.NewBuilder().
		Subject(string(user.ID)).
		Claim("email", user.Email).
		IssuedAt(now).
		Expiration(now.Add(a.uc.tokenExpiry)).
		Build()
	if err != nil {
		return "", goerr.Wrap(err, "failed to build token")
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, a.uc.jwtSecret))
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign token")
	}
	return string(signed), nil
}

// ValidateToken parses and verifies a bearer token and returns the caller
// identity. In no-auth mode the token is ignored and the fixed anonymous
// identity is returned.
func (a *AuthUseCase) ValidateToken(ctx context.Context, tokenString string) (*auth.UserContext, error) {
	if a.uc.authDisabled {
		return auth.NewAnonymousUser(), nil
	}

	token, err := jwt.Parse([]byte(tokenString),
		jwt.WithKey(jwa.HS256, a.uc.jwtSecret),
		jwt.WithValidate(true),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid token", goerr.T(types.TagUnauthorized))
	}

	userID := types.UserID(token.Subject())
	email, _ := token.Get("email")
	emailStr, _ := email.(string)

	if userID == "" {
		return nil, goerr.New("token missing subject", goerr.T(types.TagUnauthorized))
	}

	return &auth.UserContext{
		ID:    userID,
		Email: emailStr,
	}, nil
}

// CurrentUser resolves the caller's account. The anonymous development
// identity has no stored account and is returned as-is.
func (a *AuthUseCase) CurrentUser(ctx context.Context, user *auth.UserContext) (*model.User, error) {
	if a.uc.authDisabled && user.ID == auth.AnonymousUserID {
		return &model.User{ID: user.ID, Email: user.Email}, nil
	}

	stored, err := a.uc.repo.User().Get(ctx, user.ID)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.New("unknown user", goerr.T(types.TagUnauthorized))
		}
		return nil, err
	}
	return stored, nil
}
