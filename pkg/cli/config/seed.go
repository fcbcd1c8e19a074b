package config

import (
	"context"
	"os"

	"github.com/crivello-lab/crivello/pkg/domain/interfaces"
	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/crivello-lab/crivello/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// SeedConfig declares workspaces to create at startup, loaded from a TOML
// file. Useful with the memory backend, which starts empty on every run.
type SeedConfig struct {
	Workspaces []WorkspaceSeed `toml:"workspace"`
}

// WorkspaceSeed is one workspace declaration
type WorkspaceSeed struct {
	Name    string       `toml:"name"`
	Members []MemberSeed `toml:"member"`
}

// MemberSeed binds an already registered user to the seeded workspace
type MemberSeed struct {
	Email string `toml:"email"`
	Role  string `toml:"role"`
}

// Validate checks if the WorkspaceSeed is valid
func (w *WorkspaceSeed) Validate() error {
	if w.Name == "" {
		return goerr.New("workspace name is required")
	}
	for _, m := range w.Members {
		if m.Email == "" {
			return goerr.New("member email is required", goerr.V("workspace", w.Name))
		}
		if !types.WorkspaceRole(m.Role).IsValid() {
			return goerr.New("invalid member role",
				goerr.V("workspace", w.Name),
				goerr.V("role", m.Role))
		}
	}
	return nil
}

// Validate checks if the SeedConfig is valid
func (s *SeedConfig) Validate() error {
	names := make(map[string]bool)
	for _, ws := range s.Workspaces {
		if err := ws.Validate(); err != nil {
			return goerr.Wrap(err, "invalid workspace seed")
		}
		if names[ws.Name] {
			return goerr.New("duplicate workspace name", goerr.V("name", ws.Name))
		}
		names[ws.Name] = true
	}
	return nil
}

// Seed holds the CLI flag for the seed file
type Seed struct {
	path string
}

// Flags returns CLI flags for seed configuration
func (s *Seed) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "seed-config",
			Usage:       "TOML file declaring workspaces to create at startup",
			Sources:     cli.EnvVars("CRIVELLO_SEED_CONFIG"),
			Destination: &s.path,
		},
	}
}

// Load reads and validates the seed file. Returns nil when no file is
// configured.
func (s *Seed) Load() (*SeedConfig, error) {
	if s.path == "" {
		return nil, nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read seed file", goerr.V("path", s.path))
	}

	var cfg SeedConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML seed file", goerr.V("path", s.path))
	}
	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "seed validation failed", goerr.V("path", s.path))
	}
	return &cfg, nil
}

// Apply creates the seeded workspaces and memberships. Members whose email
// has no registered account are skipped with a warning.
func (s *SeedConfig) Apply(ctx context.Context, repo interfaces.Repository) error {
	logger := logging.From(ctx)

	for _, seed := range s.Workspaces {
		workspace, err := repo.Workspace().Create(ctx, &model.Workspace{Name: seed.Name})
		if err != nil {
			return goerr.Wrap(err, "failed to seed workspace", goerr.V("name", seed.Name))
		}

		for _, member := range seed.Members {
			user, err := repo.User().GetByEmail(ctx, member.Email)
			if err != nil {
				logger.Warn("seed member has no registered account, skipping",
					"workspace", seed.Name,
					"email", member.Email)
				continue
			}
			if _, err := repo.Workspace().PutMember(ctx, &model.WorkspaceMember{
				WorkspaceID: workspace.ID,
				UserID:      user.ID,
				Role:        types.WorkspaceRole(member.Role),
			}); err != nil {
				return goerr.Wrap(err, "failed to seed membership",
					goerr.V("workspace", seed.Name),
					goerr.V("email", member.Email))
			}
		}

		logger.Info("seeded workspace", "name", seed.Name, "id", workspace.ID)
	}
	return nil
}
