package interfaces

import (
	"context"

	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
)

// UserRepository persists user accounts
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	Get(ctx context.Context, id types.UserID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
