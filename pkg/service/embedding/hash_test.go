package embedding_test

import (
	"context"
	"math"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/crivello-lab/crivello/pkg/service/embedding"
)

func TestHashClientDeterministic(t *testing.T) {
	client := embedding.NewHashClient(64)
	ctx := context.Background()

	a, err := client.Embed(ctx, "la pasta va cotta al dente")
	gt.NoError(t, err).Required()
	b, err := client.Embed(ctx, "la pasta va cotta al dente")
	gt.NoError(t, err).Required()

	gt.Array(t, a).Length(64)
	gt.Value(t, a).Equal(b)
}

func TestHashClientUnitNorm(t *testing.T) {
	client := embedding.NewHashClient(128)

	vec, err := client.Embed(context.Background(), "some tokens to hash into buckets")
	gt.NoError(t, err).Required()

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	gt.Bool(t, math.Abs(math.Sqrt(norm)-1.0) < 1e-6).True()
}

func TestHashClientEmptyText(t *testing.T) {
	client := embedding.NewHashClient(32)

	vec, err := client.Embed(context.Background(), "   ")
	gt.NoError(t, err).Required()
	gt.Array(t, vec).Length(32)
	for _, v := range vec {
		gt.Value(t, v).Equal(float32(0))
	}
}

func TestHashClientSharedTokensScoreCloser(t *testing.T) {
	client := embedding.NewHashClient(256)
	ctx := context.Background()

	base, err := client.Embed(ctx, "cuocere la pasta in acqua salata")
	gt.NoError(t, err).Required()
	similar, err := client.Embed(ctx, "cuocere la pasta al dente")
	gt.NoError(t, err).Required()
	unrelated, err := client.Embed(ctx, "configurare il firewall aziendale")
	gt.NoError(t, err).Required()

	dot := func(a, b []float32) float64 {
		var sum float64
		for i := range a {
			sum += float64(a[i]) * float64(b[i])
		}
		return sum
	}
	gt.Bool(t, dot(base, similar) > dot(base, unrelated)).True()
}

func TestHashClientEmbedBatch(t *testing.T) {
	client := embedding.NewHashClient(16)

	vectors, err := client.EmbedBatch(context.Background(), []string{"uno", "due", "tre"})
	gt.NoError(t, err).Required()
	gt.Array(t, vectors).Length(3)

	single, err := client.Embed(context.Background(), "due")
	gt.NoError(t, err).Required()
	gt.Value(t, vectors[1]).Equal(single)
}
