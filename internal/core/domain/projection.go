package domain

// Point3 is one projected coordinate in the shared 3D space.
type Point3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ProjectionMethod identifies the dimensionality reduction technique used
// for a run. The method is recorded in run metadata and shown in the
// visualization; it is never selected by runtime type inspection.
type ProjectionMethod string

// Available projection methods.
const (
	// ProjectionPCA is the linear principal-component projection.
	ProjectionPCA ProjectionMethod = "pca"

	// ProjectionTSNE is the iterative neighbourhood-probability reduction.
	ProjectionTSNE ProjectionMethod = "t-sne"
)

// String returns the string representation.
func (m ProjectionMethod) String() string {
	return string(m)
}

// MinTSNESamples is the smallest sample count where t-SNE is numerically
// stable; below it the gradient estimates collapse and the linear projection
// is used instead.
const MinTSNESamples = 4

// DefaultPerplexity is the t-SNE neighbourhood parameter used when the
// sample count allows it. It requires at least DefaultPerplexity+1 samples.
const DefaultPerplexity = 30

// ChooseProjection is the pure decision function selecting the reduction
// technique for n samples.
func ChooseProjection(n int) ProjectionMethod {
	if n < MinTSNESamples {
		return ProjectionPCA
	}
	return ProjectionTSNE
}

// PerplexityFor returns the t-SNE neighbourhood parameter for n samples.
// Each point needs that many distinct neighbours to estimate local density,
// so the parameter can never exceed n-1.
func PerplexityFor(n int) int {
	if n-1 < DefaultPerplexity {
		return n - 1
	}
	return DefaultPerplexity
}
