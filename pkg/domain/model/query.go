package model

import (
	"unicode/utf8"

	"github.com/crivello-lab/crivello/pkg/domain/types"
)

// NoResultAnswer is returned when retrieval yields nothing the caller is
// allowed to see.
const NoResultAnswer = "Nessun risultato."

// ExcerptLength caps how much chunk content a query response exposes
const ExcerptLength = 200

// Citation is one retrieved chunk in a query response. Excerpt is a
// truncated view of the chunk content.
type Citation struct {
	DocumentID  types.DocumentID `json:"document_id"`
	ChunkID     types.ChunkID    `json:"chunk_id"`
	SourceTitle string           `json:"source_title"`
	SourceURL   string           `json:"source_url"`
	Score       float64          `json:"score"`
	Excerpt     string           `json:"excerpt"`
}

// QueryPolicy is the policy accounting block of a query response. Callers
// can see how many candidates the classification filter removed without
// seeing the candidates themselves.
type QueryPolicy struct {
	Enforced                    bool                        `json:"policy_enforced"`
	FilteringMode               string                      `json:"policy_filtering_mode"`
	AccessRole                  types.WorkspaceRole         `json:"access_role"`
	AllowedClassificationLabels []types.ClassificationLabel `json:"allowed_classification_labels"`
	CandidateResults            int                         `json:"candidate_results"`
	ReturnedResults             int                         `json:"returned_results"`
	FilteredByPolicy            int                         `json:"filtered_by_policy"`
	FilteredMissingMetadata     int                         `json:"filtered_missing_metadata"`
}

// QueryResult is the full query response: the answer, its citations, and a
// nested policy object.
type QueryResult struct {
	Question  string      `json:"question"`
	Answer    string      `json:"answer"`
	Citations []Citation  `json:"citations"`
	TopK      int         `json:"top_k"`
	LLMUsed   bool        `json:"llm_used"`
	Policy    QueryPolicy `json:"policy"`
}

// Excerpt truncates chunk content for inclusion in query responses. The cut
// lands on a rune boundary so multi-byte characters are never split.
func Excerpt(content string) string {
	if len(content) <= ExcerptLength {
		return content
	}
	cut := ExcerptLength
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut]
}
