package driven

import (
	"context"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
)

// PointKind distinguishes marker groups in the visualization.
type PointKind string

// Available point kinds.
const (
	PointPassage PointKind = "passage"
	PointMean    PointKind = "mean"
	PointQuery   PointKind = "query"
)

// RenderPoint is one projected marker.
type RenderPoint struct {
	// Role is empty for query anchors.
	Role  domain.Role
	Kind  PointKind
	Label string
	// Type and Text describe the underlying passage or query for hover text.
	Type  string
	Text  string
	Point domain.Point3
}

// MeanMovement is a directional indicator from a role's previous projected
// mean position to its current one, across two versions of the same slug.
type MeanMovement struct {
	Role domain.Role
	Slug string
	From domain.Point3
	To   domain.Point3
}

// RenderInput carries everything the visualization needs. The renderer maps
// roles to display strings and colors at this boundary; core comparison and
// reduction logic never branches on display strings.
type RenderInput struct {
	Title      string
	Method     domain.ProjectionMethod
	Perplexity int
	Points     []RenderPoint
	Movements  []MeanMovement
	Scores     []domain.SimilarityScore
	Pages      []domain.PageEmbedding
	Queries    []string
	Labels     map[domain.Role]string
	Colors     map[domain.Role]string
	QueryColor string
}

// Renderer produces the self-contained visualization artifact.
// Rendering is best-effort: a failure is logged and the run continues
// without the artifact.
type Renderer interface {
	Render(ctx context.Context, input *RenderInput) ([]byte, error)
}
