package model

import (
	"math"
	"sort"
)

// RetrievalResult pairs a chunk with its similarity score. It is ephemeral
// and never persisted.
type RetrievalResult struct {
	Chunk Chunk
	Score float64
}

// cosineEpsilon guards the denominator so a zero vector scores 0 instead of NaN
const cosineEpsilon = 1e-12

// CosineSimilarity computes the cosine similarity of two vectors.
// Mismatched lengths are scored over the shorter prefix; zero-norm vectors
// yield 0.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		denom = cosineEpsilon
	}
	return dot / denom
}

// RankTopK scores each candidate chunk against the query vector and returns
// the topK highest-scoring results in descending score order. Ties keep the
// original candidate order (stable sort) so repeated calls on identical input
// produce identical output. topK is clamped to [1, len(chunks)].
func RankTopK(chunks []Chunk, embeddings [][]float32, queryEmbedding []float32, topK int) []RetrievalResult {
	if len(chunks) == 0 || len(embeddings) == 0 {
		return nil
	}

	n := len(chunks)
	if len(embeddings) < n {
		n = len(embeddings)
	}

	results := make([]RetrievalResult, 0, n)
	for i := 0; i < n; i++ {
		results = append(results, RetrievalResult{
			Chunk: chunks[i],
			Score: CosineSimilarity(embeddings[i], queryEmbedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK < 1 {
		topK = 1
	}
	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK]
}
