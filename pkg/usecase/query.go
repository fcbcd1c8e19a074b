package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/crivello-lab/crivello/pkg/domain/model"
	"github.com/crivello-lab/crivello/pkg/domain/model/auth"
	"github.com/crivello-lab/crivello/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// DefaultTopK applies when the request does not set top_k
	DefaultTopK = 3
	// MaxTopK caps top_k for a single query
	MaxTopK = 10

	// minCandidateFetch is the retrieval overfetch floor. Fetching more
	// candidates than top_k leaves room for the policy filter to discard
	// some and still fill the response.
	minCandidateFetch = 10

	// policyFilteringMode names how classification filtering is applied:
	// candidates are retrieved unfiltered and screened afterwards, which is
	// what makes the accounting counters exact.
	policyFilteringMode = "post_retrieval"
)

// QueryUseCase runs the retrieval pipeline: embed the question, search the
// workspace, screen candidates against the caller's classification policy,
// then synthesize or fall back to an extractive answer.
type QueryUseCase struct {
	uc *UseCases
}

// Query answers a question against the workspace corpus.
func (q *QueryUseCase) Query(ctx context.Context, user *auth.UserContext, workspaceID types.WorkspaceID, question string, topK int) (*model.QueryResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, goerr.New("question must not be empty", goerr.T(types.TagValidation))
	}
	if topK < 1 || topK > MaxTopK {
		return nil, goerr.New("top_k out of range",
			goerr.V("top_k", topK),
			goerr.V("max", MaxTopK),
			goerr.T(types.TagValidation))
	}

	role, err := q.uc.resolveRole(ctx, workspaceID, user)
	if err != nil {
		return nil, err
	}

	allowedLabels, known := model.AllowedLabelsForRole(role)
	if !known {
		q.uc.recorder.Record(ctx, workspaceID, user.ID, types.ActionQueryPolicyUnknownRole, model.AuditPayload{
			"access_role": string(role),
		})
	}
	allowed := model.LabelSet(allowedLabels)

	// Past this point the caller is authorized, so every failure leaves a
	// query event with a failure outcome in the audit trail.
	fail := func(reason string, err error) (*model.QueryResult, error) {
		q.uc.recorder.Record(ctx, workspaceID, user.ID, types.ActionQuery, model.AuditPayload{
			"question":              question,
			"top_k":                 topK,
			"access_role":           string(role),
			"policy_filtering_mode": policyFilteringMode,
			"outcome":               "failure",
			"reason":                reason,
		})
		return nil, err
	}

	hasData, err := q.uc.repo.Chunk().HasData(ctx, workspaceID)
	if err != nil {
		return fail("chunk_store_failed", err)
	}
	if !hasData {
		return fail("no_data_ingested", goerr.New("no data ingested for workspace",
			goerr.V("workspace_id", workspaceID),
			goerr.T(types.TagNoData)))
	}

	if q.uc.embedder == nil {
		return fail("embedding_unavailable",
			goerr.New("embedding client not configured", goerr.T(types.TagUnavailable)))
	}
	queryVector, err := q.uc.embedder.Embed(ctx, question)
	if err != nil {
		return fail("embedding_failed", err)
	}

	fetchK := topK
	if fetchK < minCandidateFetch {
		fetchK = minCandidateFetch
	}
	candidates, err := q.uc.repo.Chunk().Search(ctx, workspaceID, queryVector, fetchK)
	if err != nil {
		return fail("retrieval_failed", err)
	}

	kept, filteredByPolicy, missingMetadata, err := q.screenCandidates(ctx, workspaceID, candidates, allowed, topK)
	if err != nil {
		return fail("classification_lookup_failed", err)
	}

	answer, llmUsed, err := q.buildAnswer(ctx, question, kept)
	if err != nil {
		return fail("answer_synthesis_failed", err)
	}

	sortedLabels := make([]types.ClassificationLabel, len(allowedLabels))
	copy(sortedLabels, allowedLabels)
	sort.Slice(sortedLabels, func(i, j int) bool { return sortedLabels[i] < sortedLabels[j] })

	result := &model.QueryResult{
		Question:  question,
		Answer:    answer,
		Citations: make([]model.Citation, 0, len(kept)),
		TopK:      topK,
		LLMUsed:   llmUsed,
		Policy: model.QueryPolicy{
			Enforced:                    true,
			FilteringMode:               policyFilteringMode,
			AccessRole:                  role,
			AllowedClassificationLabels: sortedLabels,
			CandidateResults:            len(candidates),
			ReturnedResults:             len(kept),
			FilteredByPolicy:            filteredByPolicy,
			FilteredMissingMetadata:     missingMetadata,
		},
	}
	for _, res := range kept {
		result.Citations = append(result.Citations, model.Citation{
			DocumentID:  res.Chunk.DocumentID,
			ChunkID:     res.Chunk.ID,
			SourceTitle: res.Chunk.SourceTitle,
			SourceURL:   res.Chunk.SourceURL,
			Score:       res.Score,
			Excerpt:     model.Excerpt(res.Chunk.Content),
		})
	}

	labelStrings := make([]string, len(sortedLabels))
	for i, label := range sortedLabels {
		labelStrings[i] = string(label)
	}
	q.uc.recorder.Record(ctx, workspaceID, user.ID, types.ActionQuery, model.AuditPayload{
		"question":                      question,
		"top_k":                         topK,
		"results":                       len(kept),
		"candidate_results":             len(candidates),
		"filtered_by_policy":            filteredByPolicy,
		"filtered_missing_metadata":     missingMetadata,
		"access_role":                   string(role),
		"allowed_classification_labels": labelStrings,
		"policy_filtering_mode":         policyFilteringMode,
		"llm_used":                      llmUsed,
	})

	return result, nil
}

// screenCandidates applies the classification policy to the retrieved
// candidates. Every candidate is screened even after topK results are kept
// so the filter counters cover the whole candidate set. A candidate whose
// document lacks classification metadata is dropped and counted separately.
func (q *QueryUseCase) screenCandidates(ctx context.Context, workspaceID types.WorkspaceID, candidates []*model.RetrievalResult, allowed map[types.ClassificationLabel]bool, topK int) (kept []*model.RetrievalResult, filteredByPolicy, missingMetadata int, err error) {
	if len(candidates) == 0 {
		return nil, 0, 0, nil
	}

	docIDs := make([]types.DocumentID, 0, len(candidates))
	seen := make(map[types.DocumentID]bool, len(candidates))
	for _, cand := range candidates {
		if !seen[cand.Chunk.DocumentID] {
			seen[cand.Chunk.DocumentID] = true
			docIDs = append(docIDs, cand.Chunk.DocumentID)
		}
	}

	labels, err := q.uc.repo.Chunk().GetClassificationMap(ctx, workspaceID, docIDs)
	if err != nil {
		return nil, 0, 0, err
	}

	for _, cand := range candidates {
		label, ok := labels[cand.Chunk.DocumentID]
		if !ok {
			missingMetadata++
			continue
		}
		if !allowed[label] {
			filteredByPolicy++
			continue
		}
		if len(kept) < topK {
			kept = append(kept, cand)
		}
	}
	return kept, filteredByPolicy, missingMetadata, nil
}

// buildAnswer produces the response text. With no visible results the
// sentinel answer is returned; with a synthesizer configured its failure is
// a hard error, otherwise the top chunk is returned verbatim.
func (q *QueryUseCase) buildAnswer(ctx context.Context, question string, kept []*model.RetrievalResult) (string, bool, error) {
	if len(kept) == 0 {
		return model.NoResultAnswer, false, nil
	}

	if q.uc.synthesizer == nil {
		return kept[0].Chunk.Content, false, nil
	}

	chunks := make([]model.Chunk, len(kept))
	for i, res := range kept {
		chunks[i] = res.Chunk
	}
	answer, err := q.uc.synthesizer.Generate(ctx, question, chunks)
	if err != nil {
		return "", false, err
	}
	return answer, true, nil
}
