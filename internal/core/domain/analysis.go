package domain

// AnalysisRequest describes one comparison run.
type AnalysisRequest struct {
	// ClientURL is required; the run fails without it.
	ClientURL string

	// CompetitorURL and ComparisonURL are optional. Their failures are
	// isolated: they never block client-only results.
	CompetitorURL string
	ComparisonURL string

	// Queries are the target search queries. Validated against the
	// documented limits before the run starts.
	Queries []string

	// Seed fixes the random state of the iterative reduction so repeated
	// runs produce identical layouts. Zero leaves it unseeded; two such
	// runs may produce different but topologically similar layouts.
	Seed int64
}

// RoleFailure records a non-fatal per-role error so the run report can show
// which optional pages were skipped.
type RoleFailure struct {
	Role Role
	Err  error
}

// ScoreDelta is the change of one (role, query) score since the previous
// recorded run.
type ScoreDelta struct {
	Subject Role
	Query   string
	Old     float64
	New     float64
}

// Change returns the signed score difference.
func (d ScoreDelta) Change() float64 {
	return d.New - d.Old
}

// AnalysisResult is everything one run produced.
type AnalysisResult struct {
	Pages   []PageEmbedding
	Anchors []QueryAnchor
	Scores  []SimilarityScore

	// Method is the reduction technique the run selected, with the
	// neighbourhood parameter actually used (zero for the linear path).
	Method     ProjectionMethod
	Perplexity int

	// Artifacts lists every file written, in write order.
	Artifacts []VersionedArtifact

	// VisualizationPath is empty when rendering failed; rendering is
	// best-effort and its failure does not abort the run.
	VisualizationPath string

	// Failures lists optional roles that were skipped and why.
	Failures []RoleFailure

	// Deltas compares this run's query scores against the previous
	// recorded run of the same pages. Empty on first runs.
	Deltas []ScoreDelta
}

// ScoresForRole returns the per-query scores of one role.
func (r *AnalysisResult) ScoresForRole(role Role) []SimilarityScore {
	var out []SimilarityScore
	for _, s := range r.Scores {
		if s.Subject == role && s.Query != "" {
			out = append(out, s)
		}
	}
	return out
}
