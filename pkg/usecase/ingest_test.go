package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/crivello-lab/crivello/pkg/domain/types"
)

func writeCorpusFile(t *testing.T, dir, name, content string) {
	t.Helper()
	gt.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)).Required()
}

func TestIngestDemo(t *testing.T) {
	repo, uc := newTestUseCases(t)
	ctx := context.Background()

	admin, err := uc.Auth.Register(ctx, "admin@example.com", "password123")
	gt.NoError(t, err).Required()
	caller := userContext(admin.ID, admin.Email)
	ws, err := uc.Workspace.Create(ctx, caller, "corpus")
	gt.NoError(t, err).Required()

	dir := t.TempDir()
	writeCorpusFile(t, dir, "pasta.txt", strings.Join([]string{
		"Titolo: Cottura della pasta",
		"Fonte: https://example.com/pasta",
		"Licenza: CC-BY",
		"Accesso: 2026-01-15",
		"",
		"La pasta si cuoce in abbondante acqua bollente salata.",
	}, "\n"))
	writeCorpusFile(t, dir, "riso.txt", "Il riso va tostato prima di aggiungere il brodo.")

	summary, err := uc.Ingest.IngestDemo(ctx, caller, ws.ID, dir)
	gt.NoError(t, err).Required()
	gt.Value(t, summary.Documents).Equal(2)
	gt.Bool(t, summary.Chunks >= 2).True()

	metas, err := uc.Document.ListDocuments(ctx, caller, ws.ID, 50, 0)
	gt.NoError(t, err).Required()
	gt.Array(t, metas).Length(2)
	for _, meta := range metas {
		gt.Value(t, meta.ClassificationLabel).Equal(types.DefaultClassification)
	}

	result, err := uc.Query.Query(ctx, caller, ws.ID, "acqua bollente salata", 3)
	gt.NoError(t, err).Required()
	gt.Bool(t, result.Policy.ReturnedResults >= 1).True()

	ev := findAuditEvent(t, repo, ws.ID, types.ActionIngestDemo)
	gt.Value(t, ev).NotNil()
	gt.Value(t, ev.Payload["documents"]).Equal(2)

	t.Run("re-ingest resets the workspace", func(t *testing.T) {
		extra := t.TempDir()
		writeCorpusFile(t, extra, "solo.txt", "Un solo documento rimpiazza il corpus precedente.")

		summary, err := uc.Ingest.IngestDemo(ctx, caller, ws.ID, extra)
		gt.NoError(t, err).Required()
		gt.Value(t, summary.Documents).Equal(1)

		metas, err := uc.Document.ListDocuments(ctx, caller, ws.ID, 50, 0)
		gt.NoError(t, err).Required()
		gt.Array(t, metas).Length(1)
	})
}

func TestIngestDemoRequiresAdmin(t *testing.T) {
	repo, uc := newTestUseCases(t)
	ctx := context.Background()

	admin, err := uc.Auth.Register(ctx, "admin@example.com", "password123")
	gt.NoError(t, err).Required()
	ws, err := uc.Workspace.Create(ctx, userContext(admin.ID, admin.Email), "protetto")
	gt.NoError(t, err).Required()
	member := registerMember(t, repo, uc, ws.ID, "member@example.com", types.RoleMember)

	dir := t.TempDir()
	writeCorpusFile(t, dir, "doc.txt", "contenuto qualsiasi")

	_, err = uc.Ingest.IngestDemo(ctx, member, ws.ID, dir)
	gt.Value(t, err).NotNil()
	gt.Bool(t, goerr.HasTag(err, types.TagForbidden)).True()
}

func TestIngestDemoEmptyDirectory(t *testing.T) {
	_, uc := newTestUseCases(t)
	ctx := context.Background()

	admin, err := uc.Auth.Register(ctx, "admin@example.com", "password123")
	gt.NoError(t, err).Required()
	caller := userContext(admin.ID, admin.Email)
	ws, err := uc.Workspace.Create(ctx, caller, "vuoto")
	gt.NoError(t, err).Required()

	_, err = uc.Ingest.IngestDemo(ctx, caller, ws.ID, t.TempDir())
	gt.Value(t, err).NotNil()
	gt.Bool(t, goerr.HasTag(err, types.TagValidation)).True()
}
