package history

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/siftlabs/sift/pkg/models"
)

// fakeEmbedder maps known strings to fixed vectors.
type fakeEmbedder struct {
	vectors map[string][]float32
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	v, ok := f.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no vector for %q", text)
	}
	return v, nil
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 0}, b: []float32{1, 0}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "length mismatch", a: []float32{1}, b: []float32{1, 0}, want: 0},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 0}, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := cosineSimilarity(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("cosineSimilarity() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSimilarQueries_RanksByEmbedding(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	executions := []*Execution{
		{Query: "quantum cryptography", Tasks: []models.Task{researchTask("a")}, Success: true, Embedding: []float32{1, 0, 0}},
		{Query: "fusion energy", Tasks: []models.Task{researchTask("b")}, Success: true, Embedding: []float32{0, 1, 0}},
		{Query: "quantum computing", Tasks: []models.Task{researchTask("c")}, Success: true, Embedding: []float32{0.9, 0.1, 0}},
	}
	for _, ex := range executions {
		if err := store.Add(ex); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"quantum stuff": {1, 0, 0},
	}}

	similar := store.SimilarQueries(context.Background(), embedder, "quantum stuff", 2)
	if len(similar) != 2 {
		t.Fatalf("SimilarQueries() returned %d, want 2", len(similar))
	}
	if similar[0].Execution.Query != "quantum cryptography" {
		t.Errorf("top match = %q, want quantum cryptography", similar[0].Execution.Query)
	}
	if similar[1].Execution.Query != "quantum computing" {
		t.Errorf("second match = %q, want quantum computing", similar[1].Execution.Query)
	}
	if similar[0].Score < similar[1].Score {
		t.Errorf("scores not descending: %v then %v", similar[0].Score, similar[1].Score)
	}
}

func TestSimilarQueries_NoEmbedderFallsBackToRecency(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	for _, q := range []string{"one", "two"} {
		if err := store.Add(&Execution{Query: q, Tasks: []models.Task{researchTask(q)}, Success: true}); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	similar := store.SimilarQueries(context.Background(), nil, "anything", 5)
	if len(similar) != 2 {
		t.Fatalf("SimilarQueries() returned %d, want 2", len(similar))
	}
	for _, s := range similar {
		if s.Score != 0 {
			t.Errorf("fallback score = %v, want 0", s.Score)
		}
	}
}

func TestSimilarQueries_EmbedFailureFallsBack(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	if err := store.Add(&Execution{Query: "one", Tasks: []models.Task{researchTask("one")}, Success: true}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	embedder := &fakeEmbedder{vectors: map[string][]float32{}}
	similar := store.SimilarQueries(context.Background(), embedder, "unknown", 5)
	if len(similar) != 1 {
		t.Fatalf("SimilarQueries() returned %d, want 1 (recency fallback)", len(similar))
	}
}
