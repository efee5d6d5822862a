package projection

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
	"github.com/meridian-labs/pagelens-cli/internal/logger"
)

// PCA projects vectors onto their first three principal components.
// Deterministic, and stable at any sample count, which is why it is the
// fallback when the sample set is too small for the iterative technique.
type PCA struct{}

// Ensure PCA implements the interface.
var _ Projector = (*PCA)(nil)

// NewPCA creates a linear projector.
func NewPCA() *PCA {
	return &PCA{}
}

// Method identifies the reduction technique.
func (p *PCA) Method() domain.ProjectionMethod {
	return domain.ProjectionPCA
}

// Project reduces vectors to 3D. With fewer samples than components the
// missing axes are zero: one point lands at the origin, two points span a
// line, three a plane.
func (p *PCA) Project(vectors []domain.Vector) ([]domain.Point3, error) {
	n := len(vectors)
	if n == 0 {
		return nil, fmt.Errorf("%w: no vectors to project", domain.ErrInvalidInput)
	}

	// A single sample has no principal components.
	if n == 1 {
		return []domain.Point3{{}}, nil
	}

	x := toMatrix(vectors)
	_, d := x.Dims()

	var pc stat.PC
	if ok := pc.PrincipalComponents(x, nil); !ok {
		return nil, fmt.Errorf("principal components failed for %d samples", n)
	}

	var vecs mat.Dense
	pc.VectorsTo(&vecs)

	// At most min(n, d) components exist; take up to three.
	k := 3
	if n < k {
		k = n
	}
	if d < k {
		k = d
	}

	var proj mat.Dense
	proj.Mul(x, vecs.Slice(0, d, 0, k))

	logger.Debug("PCA projected %d vectors onto %d components", n, k)
	return toPoints(&proj), nil
}
