package ingest

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Header keys recognized at the top of a corpus file. The header block is a
// run of "Chiave: valore" lines before the first blank line.
var headerKeys = map[string]string{
	"titolo":  "title",
	"fonte":   "source_url",
	"licenza": "license",
	"accesso": "accessed_at",
}

const accessedAtLayout = "2006-01-02"

// ParseDocumentFile reads a corpus text file into a Document. The leading
// header lines map to metadata; everything after the first blank line is the
// body. A missing Titolo falls back to the file name without extension, and
// an empty body is an error.
func ParseDocumentFile(path string) (*model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open corpus file", goerr.V("path", path))
	}
	defer f.Close()

	doc := &model.Document{
		ID:                  types.NewDocumentID(),
		ClassificationLabel: types.DefaultClassification,
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	inHeader := true
	var body strings.Builder
	for scanner.Scan() {
		line := scanner.Text()

		if inHeader {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				inHeader = false
				continue
			}
			key, value, ok := splitHeaderLine(trimmed)
			if !ok {
				// Not a header line after all. Treat it and the rest
				// as body.
				inHeader = false
				body.WriteString(line)
				body.WriteString("\n")
				continue
			}
			applyHeader(doc, key, value)
			continue
		}

		body.WriteString(line)
		body.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read corpus file", goerr.V("path", path))
	}

	doc.Text = strings.TrimSpace(body.String())
	if doc.Text == "" {
		return nil, goerr.New("corpus file has no body text",
			goerr.V("path", path),
			goerr.T(types.TagValidation))
	}

	if doc.Title == "" {
		base := filepath.Base(path)
		doc.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return doc, nil
}

func splitHeaderLine(line string) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	key = strings.ToLower(strings.TrimSpace(line[:idx]))
	if _, known := headerKeys[key]; !known {
		return "", "", false
	}
	return key, strings.TrimSpace(line[idx+1:]), true
}

func applyHeader(doc *model.Document, key, value string) {
	switch key {
	case "titolo":
		doc.Title = value
	case "fonte":
		doc.SourceURL = value
	case "licenza":
		doc.License = value
	case "accesso":
		if t, err := time.Parse(accessedAtLayout, value); err == nil {
			doc.AccessedAt = &t
		}
	}
}

// LoadDocumentsFromDir parses every .txt file in dir, in lexical order.
func LoadDocumentsFromDir(dir string) ([]*model.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read corpus directory", goerr.V("dir", dir))
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, goerr.New("no corpus files found",
			goerr.V("dir", dir),
			goerr.T(types.TagValidation))
	}

	documents := make([]*model.Document, 0, len(paths))
	for _, path := range paths {
		doc, err := ParseDocumentFile(path)
		if err != nil {
			return nil, err
		}
		documents = append(documents, doc)
	}
	return documents, nil
}
