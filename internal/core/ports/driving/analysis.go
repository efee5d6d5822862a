package driving

import (
	"context"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
)

// AnalysisService runs the full comparison pipeline: fetch, extract, embed,
// compare, reduce, render.
type AnalysisService interface {
	// Analyze runs one comparison and returns everything it produced.
	// A fatal error for a required role aborts the run; optional role
	// failures and render failures are reported in the result instead.
	Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error)
}
