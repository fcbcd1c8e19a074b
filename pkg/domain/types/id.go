package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// UserID is a UUID-based identifier for a user
type UserID string

// NewUserID generates a new UUID v4 UserID
func NewUserID() UserID {
	return UserID(uuid.New().String())
}

func (id UserID) String() string { return string(id) }

// Validate checks that the ID is a well-formed UUID
func (id UserID) Validate() error {
	if _, err := uuid.Parse(string(id)); err != nil {
		return goerr.Wrap(err, "invalid user ID", goerr.V("id", id), goerr.T(TagValidation))
	}
	return nil
}

// WorkspaceID is a UUID-based identifier for a workspace
type WorkspaceID string

// NewWorkspaceID generates a new UUID v4 WorkspaceID
func NewWorkspaceID() WorkspaceID {
	return WorkspaceID(uuid.New().String())
}

func (id WorkspaceID) String() string { return string(id) }

// Validate checks that the ID is a well-formed UUID
func (id WorkspaceID) Validate() error {
	if _, err := uuid.Parse(string(id)); err != nil {
		return goerr.Wrap(err, "invalid workspace ID", goerr.V("id", id), goerr.T(TagValidation))
	}
	return nil
}

// DocumentID is a UUID-based identifier for a document
type DocumentID string

// NewDocumentID generates a new UUID v4 DocumentID
func NewDocumentID() DocumentID {
	return DocumentID(uuid.New().String())
}

func (id DocumentID) String() string { return string(id) }

// Validate checks that the ID is a well-formed UUID
func (id DocumentID) Validate() error {
	if _, err := uuid.Parse(string(id)); err != nil {
		return goerr.Wrap(err, "invalid document ID", goerr.V("id", id), goerr.T(TagValidation))
	}
	return nil
}

// ChunkID is a UUID-based identifier for a chunk
type ChunkID string

// NewChunkID generates a new UUID v4 ChunkID
func NewChunkID() ChunkID {
	return ChunkID(uuid.New().String())
}

func (id ChunkID) String() string { return string(id) }

// AuditEventID is a UUID-based identifier for an audit event
type AuditEventID string

// NewAuditEventID generates a new UUID v4 AuditEventID
func NewAuditEventID() AuditEventID {
	return AuditEventID(uuid.New().String())
}

func (id AuditEventID) String() string { return string(id) }
