package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/crivello-lab/crivello/pkg/domain/interfaces"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = goerr.New("not found", goerr.T(types.TagNotFound))

// Firestore is the persistent backend. Collections hold users, workspaces,
// memberships, documents, chunks and audit events; every row carries its
// workspace ID so queries stay tenant-scoped.
type Firestore struct {
	client    *firestore.Client
	user      *userRepository
	workspace *workspaceRepository
	chunk     *chunkRepository
	audit     *auditRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.user.collectionPrefix = prefix
		f.workspace.collectionPrefix = prefix
		f.chunk.collectionPrefix = prefix
		f.audit.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID string, opts ...Option) (*Firestore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f := &Firestore{
		client:    client,
		user:      newUserRepository(client),
		workspace: newWorkspaceRepository(client),
		chunk:     newChunkRepository(client),
		audit:     newAuditRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) User() interfaces.UserRepository {
	return f.user
}

func (f *Firestore) Workspace() interfaces.WorkspaceRepository {
	return f.workspace
}

func (f *Firestore) Chunk() interfaces.ChunkRepository {
	return f.chunk
}

func (f *Firestore) Audit() interfaces.AuditRepository {
	return f.audit
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func collectionName(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}
