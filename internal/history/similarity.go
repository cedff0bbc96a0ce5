package history

import (
	"context"
	"log"
	"math"
	"sort"
)

// Embedder turns text into an embedding vector. The openai client in
// internal/llm satisfies this.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// SimilarQuery is one past execution ranked against a new query.
type SimilarQuery struct {
	Execution *Execution
	// Score is the cosine similarity to the new query, or 0 when ranking
	// fell back to recency.
	Score float64
}

// SimilarQueries returns past executions ranked by embedding similarity to
// query. When no embedder is configured, or embedding fails, it falls back
// to the most recent executions. The result is best-effort: retrieval
// failures degrade to an empty list rather than failing the caller.
func (s *Store) SimilarQueries(ctx context.Context, embedder Embedder, query string, limit int) []SimilarQuery {
	if limit <= 0 {
		limit = 5
	}

	if embedder == nil {
		return s.recentAsSimilar(limit)
	}

	target, err := embedder.Embed(ctx, query)
	if err != nil {
		log.Printf("[history] embedding failed, falling back to recency: %v", err)
		return s.recentAsSimilar(limit)
	}

	// Rank in-process; the history of one installation is small enough that
	// a linear scan beats maintaining an index.
	executions, err := s.Recent(1000)
	if err != nil {
		log.Printf("[history] similar-query lookup failed: %v", err)
		return nil
	}

	var ranked []SimilarQuery
	for _, ex := range executions {
		if len(ex.Embedding) == 0 {
			continue
		}
		score := cosineSimilarity(target, ex.Embedding)
		if score <= 0 {
			continue
		}
		ranked = append(ranked, SimilarQuery{Execution: ex, Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func (s *Store) recentAsSimilar(limit int) []SimilarQuery {
	executions, err := s.Recent(limit)
	if err != nil {
		log.Printf("[history] recent-query lookup failed: %v", err)
		return nil
	}
	similar := make([]SimilarQuery, 0, len(executions))
	for _, ex := range executions {
		similar = append(similar, SimilarQuery{Execution: ex})
	}
	return similar
}

// cosineSimilarity returns the cosine of the angle between a and b, or 0
// when the vectors differ in length or either is zero.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
