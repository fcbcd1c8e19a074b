package firestore

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type userDocument struct {
	ID             string    `firestore:"id"`
	Email          string    `firestore:"email"`
	HashedPassword string    `firestore:"hashed_password"`
	CreatedAt      time.Time `firestore:"created_at"`
}

type userRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newUserRepository(client *firestore.Client) *userRepository {
	return &userRepository{client: client}
}

func (r *userRepository) usersCollection() string {
	return collectionName(r.collectionPrefix, "users")
}

func userToDocument(u *model.User) *userDocument {
	return &userDocument{
		ID:             string(u.ID),
		Email:          u.Email,
		HashedPassword: u.HashedPassword,
		CreatedAt:      u.CreatedAt,
	}
}

func userToModel(doc *userDocument) *model.User {
	return &model.User{
		ID:             types.UserID(doc.ID),
		Email:          doc.Email,
		HashedPassword: doc.HashedPassword,
		CreatedAt:      doc.CreatedAt,
	}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	created := *user
	created.Email = strings.ToLower(user.Email)
	if created.ID == "" {
		created.ID = types.NewUserID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	if _, err := r.GetByEmail(ctx, created.Email); err == nil {
		return nil, goerr.New("email already registered",
			goerr.V("email", created.Email),
			goerr.T(types.TagValidation))
	}

	doc := userToDocument(&created)
	docRef := r.client.Collection(r.usersCollection()).Doc(doc.ID)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create user")
	}

	return userToModel(doc), nil
}

func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	docRef := r.client.Collection(r.usersCollection()).Doc(string(id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("user_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("user_id", id))
	}

	var userDoc userDocument
	if err := doc.DataTo(&userDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V("user_id", id))
	}

	return userToModel(&userDoc), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	iter := r.client.Collection(r.usersCollection()).
		Where("email", "==", strings.ToLower(email)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("email", email))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query user by email", goerr.V("email", email))
	}

	var userDoc userDocument
	if err := doc.DataTo(&userDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user")
	}

	return userToModel(&userDoc), nil
}
