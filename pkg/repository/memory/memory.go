package memory

import (
	"github.com/crivello-lab/crivello/pkg/domain/interfaces"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned when a requested entity does not exist. A document
// that lives in a different workspace is indistinguishable from a missing one.
var ErrNotFound = goerr.New("not found", goerr.T(types.TagNotFound))

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is the in-memory backend, used for local development and tests.
// All data is lost on process exit.
type Memory struct {
	user      *userRepository
	workspace *workspaceRepository
	chunk     *chunkRepository
	audit     *auditRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		user:      newUserRepository(),
		workspace: newWorkspaceRepository(),
		chunk:     newChunkRepository(),
		audit:     newAuditRepository(),
	}
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

func (m *Memory) Workspace() interfaces.WorkspaceRepository {
	return m.workspace
}

func (m *Memory) Chunk() interfaces.ChunkRepository {
	return m.chunk
}

func (m *Memory) Audit() interfaces.AuditRepository {
	return m.audit
}

func (m *Memory) Close() error {
	return nil
}
