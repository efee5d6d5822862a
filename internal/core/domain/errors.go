package domain

import "errors"

// Domain errors represent pipeline failures.
// These are distinct from infrastructure errors.
var (
	// ErrFetch indicates a page could not be downloaded.
	// Fatal for that page; aborts the run for required roles.
	ErrFetch = errors.New("page fetch failed")

	// ErrExtraction indicates input markup was nil or empty.
	// Malformed-but-parseable markup never raises this; extraction
	// degrades to partial results instead.
	ErrExtraction = errors.New("content extraction failed")

	// ErrNaming indicates a slug could not be derived from the page's
	// title or URL. Fatal for that page's artifact writes.
	ErrNaming = errors.New("artifact name underivable")

	// ErrEmptyContent indicates a page produced zero embeddable passages.
	// A mean of nothing is undefined; returning a zero vector would
	// silently corrupt similarity scores.
	ErrEmptyContent = errors.New("no embeddable content")

	// ErrModelUnavailable indicates the embedding provider failed to
	// initialise or respond. Fatal for the entire run.
	ErrModelUnavailable = errors.New("embedding model unavailable")

	// ErrDimensionMismatch indicates vectors of unequal length reached
	// comparison. This is an invariant breach upstream, not a user error,
	// and is never coerced by padding or truncation at the comparison site.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrRender indicates the visualization could not be produced.
	// Recovered locally: the run continues without that artifact.
	ErrRender = errors.New("visualization render failed")

	// ErrInvalidConfig indicates a configuration value was out of range.
	// Validation substitutes a documented default and reports the
	// correction; it never substitutes silently.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
