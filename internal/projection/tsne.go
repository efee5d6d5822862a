package projection

import (
	"fmt"
	"math/rand"

	"github.com/danaugrs/go-tsne/tsne"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
	"github.com/meridian-labs/pagelens-cli/internal/logger"
)

// t-SNE tuning. The learning rate and iteration count follow the library's
// recommended settings; sample sets here are small (tens to a few hundred
// passages) so convergence is quick.
const (
	learningRate = 100
	maxIter      = 300
)

// TSNE reduces vectors with the iterative neighbourhood-probability
// technique. It is stochastic: without a fixed seed two runs on identical
// input may produce different but topologically similar layouts, which is
// expected behaviour rather than a bug.
type TSNE struct {
	perplexity int
	seed       int64
}

// Ensure TSNE implements the interface.
var _ Projector = (*TSNE)(nil)

// NewTSNE creates an iterative projector. The perplexity must already be
// shrunk to at most n-1 by the caller; each point needs that many distinct
// neighbours to estimate local density. A zero seed leaves the random
// source unseeded.
func NewTSNE(perplexity int, seed int64) *TSNE {
	return &TSNE{perplexity: perplexity, seed: seed}
}

// Method identifies the reduction technique.
func (t *TSNE) Method() domain.ProjectionMethod {
	return domain.ProjectionTSNE
}

// Perplexity returns the neighbourhood parameter in use.
func (t *TSNE) Perplexity() int {
	return t.perplexity
}

// Project reduces vectors to 3D in one shared embedding space. All vectors
// of a run (passages, means, query anchors) must be projected together;
// projecting subsets independently would make their positions
// non-comparable.
func (t *TSNE) Project(vectors []domain.Vector) ([]domain.Point3, error) {
	n := len(vectors)
	if n < domain.MinTSNESamples {
		return nil, fmt.Errorf("%w: %d samples below t-SNE minimum %d",
			domain.ErrInvalidInput, n, domain.MinTSNESamples)
	}
	if t.perplexity > n-1 {
		return nil, fmt.Errorf("%w: perplexity %d exceeds n-1=%d",
			domain.ErrInvalidInput, t.perplexity, n-1)
	}

	// The library draws its initial embedding from the global source;
	// seeding it is what makes test runs reproducible.
	if t.seed != 0 {
		rand.Seed(t.seed)
	}

	logger.Debug("t-SNE projecting %d vectors (perplexity %d)", n, t.perplexity)
	embedder := tsne.NewTSNE(3, float64(t.perplexity), learningRate, maxIter, false)
	y := embedder.EmbedData(toMatrix(vectors), nil)

	return toPoints(y), nil
}
