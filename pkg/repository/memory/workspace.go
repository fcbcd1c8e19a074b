package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type memberKey struct {
	workspaceID types.WorkspaceID
	userID      types.UserID
}

type workspaceRepository struct {
	mu         sync.RWMutex
	workspaces map[types.WorkspaceID]*model.Workspace
	members    map[memberKey]*model.WorkspaceMember
}

func newWorkspaceRepository() *workspaceRepository {
	return &workspaceRepository{
		workspaces: make(map[types.WorkspaceID]*model.Workspace),
		members:    make(map[memberKey]*model.WorkspaceMember),
	}
}

func copyWorkspace(ws *model.Workspace) *model.Workspace {
	copied := *ws
	return &copied
}

func copyMember(m *model.WorkspaceMember) *model.WorkspaceMember {
	copied := *m
	return &copied
}

func (r *workspaceRepository) Create(ctx context.Context, workspace *model.Workspace) (*model.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyWorkspace(workspace)
	if created.ID == "" {
		created.ID = types.NewWorkspaceID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.workspaces[created.ID] = created
	return copyWorkspace(created), nil
}

func (r *workspaceRepository) Get(ctx context.Context, id types.WorkspaceID) (*model.Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ws, exists := r.workspaces[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "workspace not found", goerr.V("workspace_id", id))
	}
	return copyWorkspace(ws), nil
}

func (r *workspaceRepository) ListByUser(ctx context.Context, userID types.UserID) ([]*model.WorkspaceWithRole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []*model.WorkspaceWithRole
	for key, member := range r.members {
		if key.userID != userID {
			continue
		}
		ws, exists := r.workspaces[key.workspaceID]
		if !exists {
			continue
		}
		results = append(results, &model.WorkspaceWithRole{
			Workspace: *copyWorkspace(ws),
			Role:      member.Role,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Workspace.CreatedAt.Before(results[j].Workspace.CreatedAt)
	})
	return results, nil
}

func (r *workspaceRepository) PutMember(ctx context.Context, member *model.WorkspaceMember) (*model.WorkspaceMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.workspaces[member.WorkspaceID]; !exists {
		return nil, goerr.Wrap(ErrNotFound, "workspace not found", goerr.V("workspace_id", member.WorkspaceID))
	}

	stored := copyMember(member)
	key := memberKey{workspaceID: member.WorkspaceID, userID: member.UserID}
	if existing, exists := r.members[key]; exists {
		stored.CreatedAt = existing.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	r.members[key] = stored
	return copyMember(stored), nil
}

func (r *workspaceRepository) GetMember(ctx context.Context, workspaceID types.WorkspaceID, userID types.UserID) (*model.WorkspaceMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	member, exists := r.members[memberKey{workspaceID: workspaceID, userID: userID}]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "membership not found",
			goerr.V("workspace_id", workspaceID),
			goerr.V("user_id", userID))
	}
	return copyMember(member), nil
}

func (r *workspaceRepository) ListMembers(ctx context.Context, workspaceID types.WorkspaceID) ([]*model.WorkspaceMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var members []*model.WorkspaceMember
	for key, member := range r.members {
		if key.workspaceID == workspaceID {
			members = append(members, copyMember(member))
		}
	}

	sort.Slice(members, func(i, j int) bool {
		return members[i].CreatedAt.Before(members[j].CreatedAt)
	})
	return members, nil
}

func (r *workspaceRepository) CountMembersByRole(ctx context.Context, workspaceID types.WorkspaceID, role types.WorkspaceRole) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for key, member := range r.members {
		if key.workspaceID == workspaceID && member.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *workspaceRepository) DeleteMember(ctx context.Context, workspaceID types.WorkspaceID, userID types.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := memberKey{workspaceID: workspaceID, userID: userID}
	if _, exists := r.members[key]; !exists {
		return goerr.Wrap(ErrNotFound, "membership not found",
			goerr.V("workspace_id", workspaceID),
			goerr.V("user_id", userID))
	}
	delete(r.members, key)
	return nil
}
