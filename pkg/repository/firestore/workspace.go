package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type workspaceDocument struct {
	ID        string    `firestore:"id"`
	Name      string    `firestore:"name"`
	CreatedAt time.Time `firestore:"created_at"`
}

type memberDocument struct {
	WorkspaceID string    `firestore:"workspace_id"`
	UserID      string    `firestore:"user_id"`
	Role        string    `firestore:"role"`
	CreatedAt   time.Time `firestore:"created_at"`
}

type workspaceRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newWorkspaceRepository(client *firestore.Client) *workspaceRepository {
	return &workspaceRepository{client: client}
}

func (r *workspaceRepository) workspacesCollection() string {
	return collectionName(r.collectionPrefix, "workspaces")
}

func (r *workspaceRepository) membersCollection() string {
	return collectionName(r.collectionPrefix, "workspace_members")
}

// memberDocID keys a membership by the (workspace, user) pair so PutMember
// is an idempotent upsert.
func memberDocID(workspaceID types.WorkspaceID, userID types.UserID) string {
	return string(workspaceID) + "_" + string(userID)
}

func memberToModel(doc *memberDocument) *model.WorkspaceMember {
	return &model.WorkspaceMember{
		WorkspaceID: types.WorkspaceID(doc.WorkspaceID),
		UserID:      types.UserID(doc.UserID),
		Role:        types.WorkspaceRole(doc.Role),
		CreatedAt:   doc.CreatedAt,
	}
}

func (r *workspaceRepository) Create(ctx context.Context, workspace *model.Workspace) (*model.Workspace, error) {
	created := *workspace
	if created.ID == "" {
		created.ID = types.NewWorkspaceID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	doc := &workspaceDocument{
		ID:        string(created.ID),
		Name:      created.Name,
		CreatedAt: created.CreatedAt,
	}
	docRef := r.client.Collection(r.workspacesCollection()).Doc(doc.ID)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create workspace")
	}

	return &created, nil
}

func (r *workspaceRepository) Get(ctx context.Context, id types.WorkspaceID) (*model.Workspace, error) {
	docRef := r.client.Collection(r.workspacesCollection()).Doc(string(id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "workspace not found", goerr.V("workspace_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get workspace", goerr.V("workspace_id", id))
	}

	var wsDoc workspaceDocument
	if err := doc.DataTo(&wsDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal workspace", goerr.V("workspace_id", id))
	}

	return &model.Workspace{
		ID:        types.WorkspaceID(wsDoc.ID),
		Name:      wsDoc.Name,
		CreatedAt: wsDoc.CreatedAt,
	}, nil
}

func (r *workspaceRepository) ListByUser(ctx context.Context, userID types.UserID) ([]*model.WorkspaceWithRole, error) {
	iter := r.client.Collection(r.membersCollection()).
		Where("user_id", "==", string(userID)).
		Documents(ctx)
	defer iter.Stop()

	var results []*model.WorkspaceWithRole
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate memberships", goerr.V("user_id", userID))
		}

		var mDoc memberDocument
		if err := doc.DataTo(&mDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal membership")
		}

		ws, err := r.Get(ctx, types.WorkspaceID(mDoc.WorkspaceID))
		if err != nil {
			// Dangling membership for a deleted workspace. Skip it.
			continue
		}
		results = append(results, &model.WorkspaceWithRole{
			Workspace: *ws,
			Role:      types.WorkspaceRole(mDoc.Role),
		})
	}

	return results, nil
}

func (r *workspaceRepository) PutMember(ctx context.Context, member *model.WorkspaceMember) (*model.WorkspaceMember, error) {
	if _, err := r.Get(ctx, member.WorkspaceID); err != nil {
		return nil, err
	}

	stored := *member
	docRef := r.client.Collection(r.membersCollection()).Doc(memberDocID(member.WorkspaceID, member.UserID))

	existing, err := docRef.Get(ctx)
	switch {
	case err == nil:
		var mDoc memberDocument
		if err := existing.DataTo(&mDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal membership")
		}
		stored.CreatedAt = mDoc.CreatedAt
	case status.Code(err) == codes.NotFound:
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = time.Now().UTC()
		}
	default:
		return nil, goerr.Wrap(err, "failed to get membership")
	}

	doc := &memberDocument{
		WorkspaceID: string(stored.WorkspaceID),
		UserID:      string(stored.UserID),
		Role:        string(stored.Role),
		CreatedAt:   stored.CreatedAt,
	}
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to put membership")
	}

	return &stored, nil
}

func (r *workspaceRepository) GetMember(ctx context.Context, workspaceID types.WorkspaceID, userID types.UserID) (*model.WorkspaceMember, error) {
	docRef := r.client.Collection(r.membersCollection()).Doc(memberDocID(workspaceID, userID))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "membership not found",
				goerr.V("workspace_id", workspaceID),
				goerr.V("user_id", userID))
		}
		return nil, goerr.Wrap(err, "failed to get membership")
	}

	var mDoc memberDocument
	if err := doc.DataTo(&mDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal membership")
	}

	return memberToModel(&mDoc), nil
}

func (r *workspaceRepository) ListMembers(ctx context.Context, workspaceID types.WorkspaceID) ([]*model.WorkspaceMember, error) {
	iter := r.client.Collection(r.membersCollection()).
		Where("workspace_id", "==", string(workspaceID)).
		Documents(ctx)
	defer iter.Stop()

	var members []*model.WorkspaceMember
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate members", goerr.V("workspace_id", workspaceID))
		}

		var mDoc memberDocument
		if err := doc.DataTo(&mDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal membership")
		}
		members = append(members, memberToModel(&mDoc))
	}

	return members, nil
}

func (r *workspaceRepository) CountMembersByRole(ctx context.Context, workspaceID types.WorkspaceID, role types.WorkspaceRole) (int, error) {
	iter := r.client.Collection(r.membersCollection()).
		Where("workspace_id", "==", string(workspaceID)).
		Where("role", "==", string(role)).
		Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to count members", goerr.V("workspace_id", workspaceID))
		}
		count++
	}
	return count, nil
}

func (r *workspaceRepository) DeleteMember(ctx context.Context, workspaceID types.WorkspaceID, userID types.UserID) error {
	docRef := r.client.Collection(r.membersCollection()).Doc(memberDocID(workspaceID, userID))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "membership not found",
				goerr.V("workspace_id", workspaceID),
				goerr.V("user_id", userID))
		}
		return goerr.Wrap(err, "failed to get membership")
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete membership")
	}
	return nil
}
