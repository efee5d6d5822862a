package services

import (
	"context"
	"fmt"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
	"github.com/meridian-labs/pagelens-cli/internal/core/ports/driven"
	"github.com/meridian-labs/pagelens-cli/internal/logger"
)

// EmbeddingEngine converts passages and queries into comparable vectors.
//
// Every vector produced within one run shares the same dimensionality: when
// a reduced dimensionality is configured, passage vectors, page means and
// query anchors are all truncated with the same prefix rule, because cosine
// comparison depends on equal-length vectors.
type EmbeddingEngine struct {
	svc       driven.EmbeddingService
	reduced   int // 0 = native dimensionality
	batchSize int
}

// NewEmbeddingEngine wraps an embedding service. A reduced dimensionality
// larger than the model's native size is unusable; it falls back to native
// and the substitution is returned as a correction so the caller reports it.
func NewEmbeddingEngine(svc driven.EmbeddingService, reducedDims, batchSize int) (*EmbeddingEngine, *domain.Correction) {
	var corr *domain.Correction
	if reducedDims > svc.Dimensions() {
		corr = &domain.Correction{
			Field: "embedding.reduced_dimensions",
			Old:   reducedDims,
			New:   fmt.Sprintf("native (%d)", svc.Dimensions()),
		}
		reducedDims = 0
	}
	if batchSize <= 0 {
		batchSize = domain.DefaultBatchSize
	}
	return &EmbeddingEngine{svc: svc, reduced: reducedDims, batchSize: batchSize}, corr
}

// Dimensions returns the effective vector length for this run.
func (e *EmbeddingEngine) Dimensions() int {
	if e.reduced > 0 {
		return e.reduced
	}
	return e.svc.Dimensions()
}

// ModelName returns the underlying model identifier.
func (e *EmbeddingEngine) ModelName() string {
	return e.svc.ModelName()
}

// Ping verifies the embedding capability is usable. A failure here is fatal
// for the whole run: there is no partial-embedding recovery path.
func (e *EmbeddingEngine) Ping(ctx context.Context) error {
	if err := e.svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
	return nil
}

// EmbedPassages embeds the given passages in batches. The output aligns
// positionally with the input: vectors[i] embeds passages[i]. Passages with
// empty text must be filtered out by the caller before embedding; an empty
// input set is ErrEmptyContent.
func (e *EmbeddingEngine) EmbedPassages(ctx context.Context, passages []domain.Passage) ([]domain.Vector, error) {
	if len(passages) == 0 {
		return nil, domain.ErrEmptyContent
	}

	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}

	vectors := make([]domain.Vector, 0, len(texts))
	for start := 0; start < len(texts); start += e.batchSize {
		end := start + e.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := e.svc.EmbedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embed batch %d-%d: %w", start, end, err)
		}
		if len(batch) != end-start {
			return nil, fmt.Errorf("embed batch %d-%d: provider returned %d vectors for %d texts",
				start, end, len(batch), end-start)
		}
		for _, v := range batch {
			vectors = append(vectors, domain.Vector(v).Truncate(e.reduced))
		}
	}

	logger.Debug("Embedded %d passages at %d dimensions", len(vectors), e.Dimensions())
	return vectors, nil
}

// EmbedQuery embeds one query string with the same truncation rule as
// passage vectors.
func (e *EmbeddingEngine) EmbedQuery(ctx context.Context, text string) (domain.Vector, error) {
	v, err := e.svc.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query %q: %w", text, err)
	}
	return domain.Vector(v).Truncate(e.reduced), nil
}

// MeanOf computes the page mean for a set of passage vectors. Zero vectors
// is ErrEmptyContent: a page with nothing embeddable has no defined mean,
// and a silent zero vector would corrupt similarity scores downstream.
func (e *EmbeddingEngine) MeanOf(vectors []domain.Vector) (domain.Vector, error) {
	return domain.MeanVector(vectors)
}
