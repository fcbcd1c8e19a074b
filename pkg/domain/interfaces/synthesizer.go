package interfaces

import (
	"context"

	"github.com/crivello-lab/crivello/pkg/domain/model"
)

// AnswerSynthesizer generates an answer from a question and ordered context
// chunks. It is optional: when not configured the query pipeline falls back
// to the top chunk's content. Once configured, a synthesis failure is a hard
// error, never a silent fallback.
type AnswerSynthesizer interface {
	Generate(ctx context.Context, question string, chunks []model.Chunk) (string, error)
}
