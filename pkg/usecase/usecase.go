package usecase

import (
	"time"

	"github.com/crivello-lab/crivello/pkg/domain/interfaces"
	"github.com/crivello-lab/crivello/pkg/service/audit"
	"github.com/crivello-lab/crivello/pkg/service/ingest"
)

// UseCases bundles the application operations. Auth, workspace, ingestion,
// query and audit logic all live here; the controller only translates HTTP.
type UseCases struct {
	repo        interfaces.Repository
	embedder    interfaces.EmbeddingClient
	synthesizer interfaces.AnswerSynthesizer
	recorder    *audit.Recorder

	jwtSecret    []byte
	tokenExpiry  time.Duration
	authDisabled bool

	chunkSize    int
	chunkOverlap int

	Auth      *AuthUseCase
	Workspace *WorkspaceUseCase
	Document  *DocumentUseCase
	Ingest    *IngestUseCase
	Query     *QueryUseCase
	Audit     *AuditUseCase
}

type Option func(*UseCases)

func WithEmbeddingClient(client interfaces.EmbeddingClient) Option {
	return func(uc *UseCases) {
		uc.embedder = client
	}
}

func WithSynthesizer(synth interfaces.AnswerSynthesizer) Option {
	return func(uc *UseCases) {
		uc.synthesizer = synth
	}
}

func WithJWTSecret(secret []byte) Option {
	return func(uc *UseCases) {
		uc.jwtSecret = secret
	}
}

func WithTokenExpiry(expiry time.Duration) Option {
	return func(uc *UseCases) {
		uc.tokenExpiry = expiry
	}
}

// WithAuthDisabled switches on no-auth development mode: every request runs
// as a fixed anonymous identity with the admin role.
func WithAuthDisabled(disabled bool) Option {
	return func(uc *UseCases) {
		uc.authDisabled = disabled
	}
}

func WithChunking(size, overlap int) Option {
	return func(uc *UseCases) {
		uc.chunkSize = size
		uc.chunkOverlap = overlap
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:         repo,
		tokenExpiry:  24 * time.Hour,
		chunkSize:    ingest.DefaultChunkSize,
		chunkOverlap: ingest.DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.recorder = audit.NewRecorder(repo.Audit())

	uc.Auth = &AuthUseCase{uc: uc}
	uc.Workspace = &WorkspaceUseCase{uc: uc}
	uc.Document = &DocumentUseCase{uc: uc}
	uc.Ingest = &IngestUseCase{uc: uc}
	uc.Query = &QueryUseCase{uc: uc}
	uc.Audit = &AuditUseCase{uc: uc}

	return uc
}

// AuthDisabled reports whether no-auth development mode is active
func (uc *UseCases) AuthDisabled() bool {
	return uc.authDisabled
}
