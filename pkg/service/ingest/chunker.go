package ingest

import (
	"strings"

	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// DefaultChunkSize is the window length in characters
	DefaultChunkSize = 600
	// DefaultChunkOverlap is how many characters consecutive windows share
	DefaultChunkOverlap = 120

	// minSplitOffset keeps word-boundary snapping from producing tiny
	// fragments: a window only snaps back to a space that is at least this
	// far past its start.
	minSplitOffset = 50
)

// Chunker slices normalized document text into overlapping windows.
type Chunker struct {
	chunkSize int
	overlap   int
}

func NewChunker(chunkSize, overlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, goerr.New("chunk size must be positive",
			goerr.V("chunk_size", chunkSize),
			goerr.T(types.TagValidation))
	}
	if overlap < 0 {
		return nil, goerr.New("chunk overlap must not be negative",
			goerr.V("overlap", overlap),
			goerr.T(types.TagValidation))
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}, nil
}

// NormalizeText collapses all whitespace runs to single spaces and trims the
// ends, so character offsets are stable against formatting differences.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// ChunkDocument splits the document body into chunks carrying source metadata
// snapshots. Offsets refer to the normalized text. Windows prefer to end at a
// word boundary, and the overlap advance always makes progress even when the
// overlap is as large as the window.
func (c *Chunker) ChunkDocument(doc *model.Document) []*model.Chunk {
	text := NormalizeText(doc.Text)
	if text == "" {
		return nil
	}

	var chunks []*model.Chunk
	start := 0
	for start < len(text) {
		end := start + c.chunkSize
		if end > len(text) {
			end = len(text)
		}

		if end < len(text) {
			if splitAt := strings.LastIndex(text[start:end], " "); splitAt >= 0 && splitAt > minSplitOffset {
				end = start + splitAt
			}
		}

		content := strings.TrimSpace(text[start:end])
		if content != "" {
			chunks = append(chunks, &model.Chunk{
				ID:          types.NewChunkID(),
				DocumentID:  doc.ID,
				WorkspaceID: doc.WorkspaceID,
				Content:     content,
				StartChar:   start,
				EndChar:     end,
				ChunkIndex:  len(chunks),
				SourceTitle: doc.Title,
				SourceURL:   doc.SourceURL,
			})
		}

		next := end - c.overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}
