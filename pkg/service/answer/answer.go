package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/crivello-lab/crivello/pkg/domain/interfaces"
	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

const systemPrompt = `Sei un assistente che risponde a domande usando esclusivamente gli estratti forniti. ` +
	`Se gli estratti non contengono la risposta, dillo chiaramente. ` +
	`Cita il titolo della fonte quando possibile e non inventare informazioni.`

// Synthesizer generates grounded answers through a gollem LLM session.
type Synthesizer struct {
	client gollem.LLMClient
}

var _ interfaces.AnswerSynthesizer = &Synthesizer{}

func New(client gollem.LLMClient) *Synthesizer {
	return &Synthesizer{client: client}
}

// Generate builds a prompt from the question and the retrieved chunks in rank
// order and returns the model's answer. Any session or generation failure is
// surfaced as a dependency error; the caller decides whether a fallback is
// acceptable.
func (s *Synthesizer) Generate(ctx context.Context, question string, chunks []model.Chunk) (string, error) {
	session, err := s.client.NewSession(ctx,
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session", goerr.T(types.TagUnavailable))
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buildPrompt(question, chunks)))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate answer", goerr.T(types.TagUnavailable))
	}
	if resp == nil || len(resp.Texts) == 0 || strings.TrimSpace(resp.Texts[0]) == "" {
		return "", goerr.New("LLM returned empty answer", goerr.T(types.TagUnavailable))
	}

	return strings.TrimSpace(resp.Texts[0]), nil
}

func buildPrompt(question string, chunks []model.Chunk) string {
	var sb strings.Builder
	sb.WriteString("Estratti:\n")
	for i, chunk := range chunks {
		fmt.Fprintf(&sb, "[%d] %s\n%s\n\n", i+1, chunk.SourceTitle, chunk.Content)
	}
	fmt.Fprintf(&sb, "Domanda: %s\n", question)
	return sb.String()
}
