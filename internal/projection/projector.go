package projection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
)

// Projector reduces a set of equal-length vectors to 3D coordinates,
// preserving input ordering positionally.
type Projector interface {
	// Project returns one point per input vector, in input order.
	Project(vectors []domain.Vector) ([]domain.Point3, error)

	// Method identifies the reduction technique for run metadata.
	Method() domain.ProjectionMethod
}

// For selects the projector for n samples. The choice is a pure function of
// n: below the t-SNE stability threshold the linear principal-component
// path is used, otherwise t-SNE with a neighbourhood parameter shrunk to
// fit the sample count.
func For(n int, seed int64) Projector {
	if domain.ChooseProjection(n) == domain.ProjectionPCA {
		return NewPCA()
	}
	return NewTSNE(domain.PerplexityFor(n), seed)
}

// toMatrix packs vectors into a dense n×d matrix.
func toMatrix(vectors []domain.Vector) *mat.Dense {
	n := len(vectors)
	d := len(vectors[0])
	data := make([]float64, 0, n*d)
	for _, v := range vectors {
		for _, x := range v {
			data = append(data, float64(x))
		}
	}
	return mat.NewDense(n, d, data)
}

// toPoints unpacks the first three columns of an n×k matrix into points,
// padding missing columns with zero.
func toPoints(m mat.Matrix) []domain.Point3 {
	rows, cols := m.Dims()
	points := make([]domain.Point3, rows)
	for i := 0; i < rows; i++ {
		var p domain.Point3
		if cols > 0 {
			p.X = m.At(i, 0)
		}
		if cols > 1 {
			p.Y = m.At(i, 1)
		}
		if cols > 2 {
			p.Z = m.At(i, 2)
		}
		points[i] = p
	}
	return points
}
