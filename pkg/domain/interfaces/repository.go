package interfaces

// Repository defines the interface for data persistence. Two backends share
// this contract: the in-memory repository for development and tests, and the
// Firestore repository for deployments. Selection happens at startup via
// configuration, never at runtime inside the core logic.
type Repository interface {
	User() UserRepository
	Workspace() WorkspaceRepository
	Chunk() ChunkRepository
	Audit() AuditRepository

	Close() error
}
