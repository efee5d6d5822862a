package services

import (
	"fmt"
	"math"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
)

// CosineSimilarity computes the standard cosine similarity between two
// vectors: dot product over the product of magnitudes, in [-1, 1].
//
// Unequal lengths are ErrDimensionMismatch. The embedding engine's
// dimensionality invariant makes that impossible in a correct run, so a
// mismatch here is an upstream contract violation, surfaced with both
// lengths and never coerced by padding.
func CosineSimilarity(a, b domain.Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d components", domain.ErrDimensionMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("%w: zero-length vectors", domain.ErrDimensionMismatch)
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// ScorePages produces one similarity score per (page, query) pair from each
// page's mean vector, plus one role-vs-role score for every page pair.
// Pages reaching this stage always have a defined mean; degenerate pages
// are rejected during embedding.
func ScorePages(pages []domain.PageEmbedding, anchors []domain.QueryAnchor) ([]domain.SimilarityScore, error) {
	var scores []domain.SimilarityScore

	for _, page := range pages {
		for _, anchor := range anchors {
			value, err := CosineSimilarity(page.Mean, anchor.Vector)
			if err != nil {
				return nil, fmt.Errorf("score %s vs %q: %w", page.Role, anchor.Query, err)
			}
			scores = append(scores, domain.SimilarityScore{
				Subject: page.Role,
				Query:   anchor.Query,
				Value:   value,
			})
		}
	}

	for i := 0; i < len(pages); i++ {
		for j := i + 1; j < len(pages); j++ {
			value, err := CosineSimilarity(pages[i].Mean, pages[j].Mean)
			if err != nil {
				return nil, fmt.Errorf("score %s vs %s: %w", pages[i].Role, pages[j].Role, err)
			}
			scores = append(scores, domain.SimilarityScore{
				Subject:   pages[i].Role,
				OtherRole: pages[j].Role,
				Value:     value,
			})
		}
	}

	return scores, nil
}
