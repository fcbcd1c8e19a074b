package model_test

import (
	"math"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/crivello-lab/crivello/pkg/domain/model"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical vectors score 1", func(t *testing.T) {
		score := model.CosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3})
		gt.Bool(t, math.Abs(score-1.0) < 1e-9).True()
	})

	t.Run("orthogonal vectors score 0", func(t *testing.T) {
		score := model.CosineSimilarity([]float32{1, 0}, []float32{0, 1})
		gt.Bool(t, math.Abs(score) < 1e-9).True()
	})

	t.Run("zero vector scores 0 without NaN", func(t *testing.T) {
		score := model.CosineSimilarity([]float32{0, 0}, []float32{1, 1})
		gt.Bool(t, math.IsNaN(score)).False()
		gt.Bool(t, math.Abs(score) < 1e-9).True()
	})

	t.Run("mismatched lengths use shorter prefix", func(t *testing.T) {
		a := model.CosineSimilarity([]float32{1, 0, 5}, []float32{1, 0})
		b := model.CosineSimilarity([]float32{1, 0}, []float32{1, 0, 5})
		gt.Value(t, a).Equal(b)
	})
}

func rankChunks(n int) []model.Chunk {
	chunks := make([]model.Chunk, n)
	for i := range chunks {
		chunks[i] = model.Chunk{Content: string(rune('a' + i))}
	}
	return chunks
}

func TestRankTopK(t *testing.T) {
	t.Run("ranks by similarity descending", func(t *testing.T) {
		chunks := rankChunks(2)
		embeddings := [][]float32{
			{1, 0},
			{0, 1},
		}
		query := []float32{0.9, 0.1}

		results := model.RankTopK(chunks, embeddings, query, 2)
		gt.Array(t, results).Length(2)
		gt.Value(t, results[0].Chunk.Content).Equal("a")
		gt.Value(t, results[1].Chunk.Content).Equal("b")
		gt.Bool(t, results[0].Score > results[1].Score).True()
	})

	t.Run("ties keep candidate order", func(t *testing.T) {
		chunks := rankChunks(3)
		embeddings := [][]float32{
			{1, 0},
			{1, 0},
			{1, 0},
		}

		results := model.RankTopK(chunks, embeddings, []float32{1, 0}, 3)
		gt.Array(t, results).Length(3)
		gt.Value(t, results[0].Chunk.Content).Equal("a")
		gt.Value(t, results[1].Chunk.Content).Equal("b")
		gt.Value(t, results[2].Chunk.Content).Equal("c")
	})

	t.Run("topK clamped to candidate count", func(t *testing.T) {
		chunks := rankChunks(2)
		embeddings := [][]float32{{1, 0}, {0, 1}}

		results := model.RankTopK(chunks, embeddings, []float32{1, 0}, 100)
		gt.Array(t, results).Length(2)
	})

	t.Run("topK below one clamped to one", func(t *testing.T) {
		chunks := rankChunks(3)
		embeddings := [][]float32{{1, 0}, {0, 1}, {1, 1}}

		results := model.RankTopK(chunks, embeddings, []float32{1, 0}, 0)
		gt.Array(t, results).Length(1)
	})

	t.Run("empty input yields nil", func(t *testing.T) {
		gt.Array(t, model.RankTopK(nil, nil, []float32{1}, 5)).Length(0)
	})
}
