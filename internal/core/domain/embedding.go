package domain

// Vector is a fixed-length embedding. All vectors produced within one run
// share the same dimensionality; reduced dimensionality is applied by taking
// a prefix (Matryoshka truncation) uniformly across passages, means and
// queries, since comparability depends on equal-length vectors.
type Vector []float32

// Truncate returns the vector cut to at most n components. A non-positive n
// or an n beyond the vector's length returns the vector unchanged.
func (v Vector) Truncate(n int) Vector {
	if n <= 0 || n >= len(v) {
		return v
	}
	return v[:n]
}

// PageEmbedding holds everything the pipeline derives from one page.
// Vectors align positionally with Passages: Vectors[i] embeds Passages[i].
type PageEmbedding struct {
	Role     Role
	Slug     string
	Label    string
	Passages []Passage
	Vectors  []Vector
	Mean     Vector
}

// QueryAnchor is a target search query and its embedding. Anchors are
// computed once per run and reused across all role comparisons.
type QueryAnchor struct {
	Query  string
	Vector Vector
}

// MeanVector computes the component-wise arithmetic mean of the given
// vectors. Returns ErrEmptyContent for an empty set and ErrDimensionMismatch
// if the vectors disagree on length.
func MeanVector(vectors []Vector) (Vector, error) {
	if len(vectors) == 0 {
		return nil, ErrEmptyContent
	}
	dim := len(vectors[0])
	sum := make([]float64, dim)
	for _, v := range vectors {
		if len(v) != dim {
			return nil, ErrDimensionMismatch
		}
		for i, x := range v {
			sum[i] += float64(x)
		}
	}
	mean := make(Vector, dim)
	n := float64(len(vectors))
	for i, s := range sum {
		mean[i] = float32(s / n)
	}
	return mean, nil
}
