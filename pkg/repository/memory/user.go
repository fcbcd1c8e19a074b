package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type userRepository struct {
	mu      sync.RWMutex
	users   map[types.UserID]*model.User
	byEmail map[string]types.UserID
}

func newUserRepository() *userRepository {
	return &userRepository{
		users:   make(map[types.UserID]*model.User),
		byEmail: make(map[string]types.UserID),
	}
}

func copyUser(u *model.User) *model.User {
	copied := *u
	return &copied
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, exists := r.byEmail[email]; exists {
		return nil, goerr.New("email already registered",
			goerr.V("email", email),
			goerr.T(types.TagValidation))
	}

	created := copyUser(user)
	if created.ID == "" {
		created.ID = types.NewUserID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	created.Email = email

	r.users[created.ID] = created
	r.byEmail[email] = created.ID
	return copyUser(created), nil
}

func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, exists := r.users[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("user_id", id))
	}
	return copyUser(u), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byEmail[strings.ToLower(email)]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("email", email))
	}
	return copyUser(r.users[id]), nil
}
