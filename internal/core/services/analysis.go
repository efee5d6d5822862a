package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
	"github.com/meridian-labs/pagelens-cli/internal/core/ports/driven"
	"github.com/meridian-labs/pagelens-cli/internal/core/ports/driving"
	"github.com/meridian-labs/pagelens-cli/internal/logger"
)

// Ensure AnalysisService implements the driving port.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// Role-less artifact slugs.
const (
	// VisualizationSlug names the comparison visualization artifact.
	VisualizationSlug = "embedding_comparison"

	// ExportSlug names the consolidated passage export artifact.
	ExportSlug = "extracted_html_data"
)

// movementEpsilon is the fraction of the projected bounding-box diagonal
// below which a mean's movement across versions is treated as noise and
// not drawn.
const movementEpsilon = 0.001

// PassageExtractor turns raw page markup into typed passages in document
// order.
type PassageExtractor interface {
	Extract(markup []byte) ([]domain.Passage, error)
}

// Projector reduces equal-length vectors to 3D points, preserving input
// order.
type Projector interface {
	Project(vectors []domain.Vector) ([]domain.Point3, error)
	Method() domain.ProjectionMethod
}

// ProjectorFor selects a projector for n samples. Kept as a function so the
// core never imports a reduction implementation.
type ProjectorFor func(n int, seed int64) Projector

// AnalysisDeps collects the collaborators of the analysis pipeline.
// Renderer may be nil; everything else is required.
type AnalysisDeps struct {
	Fetcher   driven.PageFetcher
	Extractor PassageExtractor
	Engine    *EmbeddingEngine
	Versions  *VersionManager
	Store     driven.ArtifactStore
	Renderer  driven.Renderer
	Projector ProjectorFor
	Viz       domain.VisualizationConfig
}

// AnalysisService orchestrates one comparison run: fetch and extract each
// page, embed passages and queries, score similarity, project everything
// into one shared 3D space and persist the versioned artifacts.
type AnalysisService struct {
	deps AnalysisDeps
}

// NewAnalysisService creates the pipeline service.
func NewAnalysisService(deps AnalysisDeps) *AnalysisService {
	return &AnalysisService{deps: deps}
}

// roleResult carries one page's pipeline output across the parallel stage.
type roleResult struct {
	role      domain.Role
	url       string
	page      domain.PageEmbedding
	extracted []domain.Passage
	artifacts []domain.VersionedArtifact
	err       error
}

// Analyze runs the full pipeline for one request. The client page is
// required and its failure aborts the run; competitor and comparison
// failures are isolated into the result's Failures list. Rendering is
// best-effort and never aborts a run that produced scores.
func (s *AnalysisService) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	if req.ClientURL == "" {
		return nil, fmt.Errorf("%w: client URL is required", domain.ErrInvalidInput)
	}
	queries, err := domain.ValidateQueries(req.Queries)
	if err != nil {
		return nil, err
	}
	if err := s.deps.Engine.Ping(ctx); err != nil {
		return nil, err
	}

	targets := s.targets(req)
	results := make([]roleResult, len(targets))

	logger.Section(fmt.Sprintf("Processing %d page(s)", len(targets)))
	var wg sync.WaitGroup
	for i, t := range targets {
		wg.Add(1)
		go func(i int, role domain.Role, url string) {
			defer wg.Done()
			results[i] = s.processRole(ctx, role, url)
		}(i, t.role, t.url)
	}
	wg.Wait()

	result := &domain.AnalysisResult{}
	var pages []domain.PageEmbedding
	var exports []pageExport
	for _, r := range results {
		if r.err != nil {
			if r.role.Required() {
				return nil, fmt.Errorf("%s page failed: %w", r.role, r.err)
			}
			logger.Warn("Skipping %s page: %v", r.role, r.err)
			result.Failures = append(result.Failures, domain.RoleFailure{Role: r.role, Err: r.err})
			continue
		}
		pages = append(pages, r.page)
		exports = append(exports, pageExport{
			Role:     r.role,
			URL:      r.url,
			Slug:     r.page.Slug,
			Label:    r.page.Label,
			Passages: r.extracted,
		})
		result.Artifacts = append(result.Artifacts, r.artifacts...)
	}
	result.Pages = pages

	logger.Section(fmt.Sprintf("Embedding %d queries", len(queries)))
	anchors, err := s.embedQueries(ctx, queries)
	if err != nil {
		return nil, err
	}
	result.Anchors = anchors

	scores, err := ScorePages(pages, anchors)
	if err != nil {
		return nil, err
	}
	result.Scores = scores

	exportArtifact, err := s.writeExport(exports, queries, scores)
	if err != nil {
		return nil, err
	}
	result.Artifacts = append(result.Artifacts, exportArtifact)

	points, method, perplexity, err := s.project(pages, anchors, req.Seed)
	if err != nil {
		return nil, err
	}
	result.Method = method
	result.Perplexity = perplexity

	prior, havePrior := s.readPriorMeta()
	if havePrior {
		result.Deltas = scoreDeltas(prior, scores)
	}

	s.render(ctx, req, result, points, queries, prior, havePrior)
	return result, nil
}

type target struct {
	role domain.Role
	url  string
}

func (s *AnalysisService) targets(req domain.AnalysisRequest) []target {
	targets := []target{{domain.RoleClient, req.ClientURL}}
	if req.CompetitorURL != "" {
		targets = append(targets, target{domain.RoleCompetitor, req.CompetitorURL})
	}
	if req.ComparisonURL != "" {
		targets = append(targets, target{domain.RoleComparison, req.ComparisonURL})
	}
	return targets
}

// processRole runs fetch, extract, persist and embed for one page.
func (s *AnalysisService) processRole(ctx context.Context, role domain.Role, url string) roleResult {
	res := roleResult{role: role, url: url}

	markup, err := s.deps.Fetcher.Fetch(ctx, url)
	if err != nil {
		res.err = err
		return res
	}

	extracted, err := s.deps.Extractor.Extract(markup)
	if err != nil {
		res.err = err
		return res
	}
	res.extracted = extracted

	slug, err := SlugFromPage(url, titleOf(extracted))
	if err != nil {
		res.err = err
		return res
	}

	markupArtifact, err := s.writeArtifact(role, slug, domain.ArtifactMarkup, markup)
	if err != nil {
		res.err = err
		return res
	}
	res.artifacts = append(res.artifacts, markupArtifact)

	// The per-page dump is the bare passage array in document order; the
	// page's role and URL already live in the filename and the
	// consolidated export.
	data, err := json.MarshalIndent(extracted, "", "  ")
	if err != nil {
		res.err = err
		return res
	}
	jsonArtifact, err := s.writeArtifact(role, slug, domain.ArtifactJSON, data)
	if err != nil {
		res.err = err
		return res
	}
	res.artifacts = append(res.artifacts, jsonArtifact)

	// Placeholder passages for absent elements are exported but carry no
	// text to embed.
	var embeddable []domain.Passage
	for _, p := range extracted {
		if !p.IsEmpty() {
			embeddable = append(embeddable, p)
		}
	}
	if len(embeddable) == 0 {
		res.err = fmt.Errorf("%w: %s has no embeddable passages", domain.ErrEmptyContent, url)
		return res
	}

	vectors, err := s.deps.Engine.EmbedPassages(ctx, embeddable)
	if err != nil {
		res.err = err
		return res
	}
	mean, err := s.deps.Engine.MeanOf(vectors)
	if err != nil {
		res.err = err
		return res
	}

	res.page = domain.PageEmbedding{
		Role:     role,
		Slug:     slug,
		Label:    DomainLabel(url),
		Passages: embeddable,
		Vectors:  vectors,
		Mean:     mean,
	}
	logger.Info("%s: %d passages embedded from %s", role, len(embeddable), url)
	return res
}

func (s *AnalysisService) embedQueries(ctx context.Context, queries []string) ([]domain.QueryAnchor, error) {
	anchors := make([]domain.QueryAnchor, 0, len(queries))
	for _, q := range queries {
		v, err := s.deps.Engine.EmbedQuery(ctx, q)
		if err != nil {
			return nil, err
		}
		anchors = append(anchors, domain.QueryAnchor{Query: q, Vector: v})
	}
	return anchors, nil
}

// writeArtifact reserves the next version for the key and persists the file.
func (s *AnalysisService) writeArtifact(role domain.Role, slug string, kind domain.ArtifactKind, data []byte) (domain.VersionedArtifact, error) {
	version, err := s.deps.Versions.NextVersion(role, slug, kind)
	if err != nil {
		return domain.VersionedArtifact{}, err
	}
	artifact := domain.VersionedArtifact{Role: role, Slug: slug, Kind: kind, Version: version}
	path, err := s.deps.Store.Write(artifact.Filename(), data)
	if err != nil {
		return domain.VersionedArtifact{}, err
	}
	artifact.Path = path
	return artifact, nil
}

// pageExport is one page's entry in the consolidated export. Deliberately
// free of timestamps so identical inputs produce byte-identical dumps.
type pageExport struct {
	Role     domain.Role      `json:"role"`
	URL      string           `json:"url"`
	Slug     string           `json:"slug"`
	Label    string           `json:"label"`
	Passages []domain.Passage `json:"passages"`
}

type scoreExport struct {
	Subject   domain.Role `json:"subject"`
	Query     string      `json:"query,omitempty"`
	OtherRole domain.Role `json:"other_role,omitempty"`
	Value     float64     `json:"value"`
	Band      string      `json:"band"`
}

type consolidatedExport struct {
	Model      string        `json:"model"`
	Dimensions int           `json:"dimensions"`
	Queries    []string      `json:"queries"`
	Pages      []pageExport  `json:"pages"`
	Scores     []scoreExport `json:"scores"`
}

// writeExport persists the consolidated run export combining every page's
// passages with the similarity scores.
func (s *AnalysisService) writeExport(pages []pageExport, queries []string, scores []domain.SimilarityScore) (domain.VersionedArtifact, error) {
	export := consolidatedExport{
		Model:      s.deps.Engine.ModelName(),
		Dimensions: s.deps.Engine.Dimensions(),
		Queries:    queries,
		Pages:      pages,
	}
	for _, sc := range scores {
		export.Scores = append(export.Scores, scoreExport{
			Subject:   sc.Subject,
			Query:     sc.Query,
			OtherRole: sc.OtherRole,
			Value:     sc.Value,
			Band:      sc.Band(),
		})
	}
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return domain.VersionedArtifact{}, err
	}
	return s.writeArtifact("", ExportSlug, domain.ArtifactJSON, data)
}

// project reduces every vector of the run in one shared space: passage
// vectors, page means, query anchors and the query-set mean. Projecting
// subsets independently would make positions non-comparable.
func (s *AnalysisService) project(pages []domain.PageEmbedding, anchors []domain.QueryAnchor, seed int64) ([]driven.RenderPoint, domain.ProjectionMethod, int, error) {
	var vectors []domain.Vector
	var points []driven.RenderPoint

	for _, page := range pages {
		for i, v := range page.Vectors {
			vectors = append(vectors, v)
			points = append(points, driven.RenderPoint{
				Role:  page.Role,
				Kind:  driven.PointPassage,
				Label: page.Label,
				Type:  page.Passages[i].Type.String(),
				Text:  page.Passages[i].Text,
			})
		}
		vectors = append(vectors, page.Mean)
		points = append(points, driven.RenderPoint{
			Role:  page.Role,
			Kind:  driven.PointMean,
			Label: page.Label,
			Type:  "mean",
			Text:  page.Label,
		})
	}

	anchorVectors := make([]domain.Vector, 0, len(anchors))
	for _, a := range anchors {
		anchorVectors = append(anchorVectors, a.Vector)
		vectors = append(vectors, a.Vector)
		points = append(points, driven.RenderPoint{
			Kind: driven.PointQuery,
			Type: "query",
			Text: a.Query,
		})
	}
	queryMean, err := domain.MeanVector(anchorVectors)
	if err != nil {
		return nil, "", 0, err
	}
	vectors = append(vectors, queryMean)
	points = append(points, driven.RenderPoint{
		Kind: driven.PointMean,
		Type: "mean",
		Text: "queries",
	})

	projector := s.deps.Projector(len(vectors), seed)
	coords, err := projector.Project(vectors)
	if err != nil {
		return nil, "", 0, err
	}
	for i := range points {
		points[i].Point = coords[i]
	}

	perplexity := 0
	if projector.Method() == domain.ProjectionTSNE {
		perplexity = domain.PerplexityFor(len(vectors))
	}
	logger.Info("Projected %d vectors via %s", len(vectors), projector.Method())
	return points, projector.Method(), perplexity, nil
}

// vizMeta is the sidecar persisted next to each visualization version. It
// records how the run was projected, where each role's mean landed and the
// query scores, so the next run can draw movement and report score changes.
type vizMeta struct {
	Version    int                         `json:"version"`
	Method     domain.ProjectionMethod     `json:"method"`
	Perplexity int                         `json:"perplexity,omitempty"`
	Seed       int64                       `json:"seed,omitempty"`
	Means      map[domain.Role]vizMetaMean `json:"means"`
	Scores     []vizMetaScore              `json:"scores,omitempty"`
}

type vizMetaMean struct {
	Slug string  `json:"slug"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

type vizMetaScore struct {
	Subject domain.Role `json:"subject"`
	Query   string      `json:"query"`
	Value   float64     `json:"value"`
}

func metaName(version int) string {
	return fmt.Sprintf("%s-v%d.meta.json", VisualizationSlug, version)
}

// render produces the visualization artifact and its movement sidecar.
// Failures here are logged, not returned: the scores and exports of a run
// are valid without the picture.
func (s *AnalysisService) render(ctx context.Context, req domain.AnalysisRequest, result *domain.AnalysisResult, points []driven.RenderPoint, queries []string, prior vizMeta, havePrior bool) {
	if s.deps.Renderer == nil {
		return
	}

	var movements []driven.MeanMovement
	if havePrior {
		movements = s.movements(prior, result.Pages, points)
	}

	labels := make(map[domain.Role]string, len(result.Pages))
	for _, p := range result.Pages {
		labels[p.Role] = p.Label
	}
	for role, label := range s.deps.Viz.LabelOverrides {
		if r := domain.Role(role); r.IsValid() && label != "" {
			labels[r] = label
		}
	}

	input := &driven.RenderInput{
		Title:      "Semantic comparison: " + DomainLabel(req.ClientURL),
		Method:     result.Method,
		Perplexity: result.Perplexity,
		Points:     points,
		Movements:  movements,
		Scores:     result.Scores,
		Pages:      result.Pages,
		Queries:    queries,
		Labels:     labels,
		Colors: map[domain.Role]string{
			domain.RoleClient:     s.deps.Viz.ClientColor,
			domain.RoleCompetitor: s.deps.Viz.CompetitorColor,
			domain.RoleComparison: s.deps.Viz.ComparisonColor,
		},
		QueryColor: s.deps.Viz.QueryColor,
	}

	html, err := s.deps.Renderer.Render(ctx, input)
	if err != nil {
		logger.Error("Visualization failed: %v", err)
		return
	}

	artifact, err := s.writeArtifact("", VisualizationSlug, domain.ArtifactVisualization, html)
	if err != nil {
		logger.Error("Visualization write failed: %v", err)
		return
	}
	result.Artifacts = append(result.Artifacts, artifact)
	result.VisualizationPath = artifact.Path

	s.writeMeta(artifact.Version, req.Seed, result, points)
}

// movements compares each role's current projected mean against the one
// recorded by the previous visualization of the same page. Displacements
// below a fraction of the current bounding-box diagonal are noise from the
// stochastic reduction and are dropped.
func (s *AnalysisService) movements(prior vizMeta, pages []domain.PageEmbedding, points []driven.RenderPoint) []driven.MeanMovement {
	eps := movementEpsilon * bboxDiagonal(points)
	var movements []driven.MeanMovement
	for _, page := range pages {
		old, ok := prior.Means[page.Role]
		if !ok || old.Slug != page.Slug {
			continue
		}
		now, ok := meanPoint(points, page.Role)
		if !ok {
			continue
		}
		from := domain.Point3{X: old.X, Y: old.Y, Z: old.Z}
		if distance(from, now) <= eps {
			continue
		}
		movements = append(movements, driven.MeanMovement{
			Role: page.Role,
			Slug: page.Slug,
			From: from,
			To:   now,
		})
	}
	return movements
}

func (s *AnalysisService) readPriorMeta() (vizMeta, bool) {
	version, ok, err := s.deps.Versions.LatestVersion("", VisualizationSlug, domain.ArtifactVisualization)
	if err != nil || !ok {
		return vizMeta{}, false
	}
	data, err := s.deps.Store.Read(metaName(version))
	if err != nil {
		// Runs before movement tracking have no sidecar.
		return vizMeta{}, false
	}
	var meta vizMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		logger.Warn("Ignoring unreadable movement sidecar %s: %v", metaName(version), err)
		return vizMeta{}, false
	}
	return meta, true
}

func (s *AnalysisService) writeMeta(version int, seed int64, result *domain.AnalysisResult, points []driven.RenderPoint) {
	meta := vizMeta{
		Version:    version,
		Method:     result.Method,
		Perplexity: result.Perplexity,
		Seed:       seed,
		Means:      make(map[domain.Role]vizMetaMean, len(result.Pages)),
	}
	for _, page := range result.Pages {
		if p, ok := meanPoint(points, page.Role); ok {
			meta.Means[page.Role] = vizMetaMean{Slug: page.Slug, X: p.X, Y: p.Y, Z: p.Z}
		}
	}
	for _, sc := range result.Scores {
		if sc.Query == "" {
			continue
		}
		meta.Scores = append(meta.Scores, vizMetaScore{Subject: sc.Subject, Query: sc.Query, Value: sc.Value})
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		logger.Error("Movement sidecar failed: %v", err)
		return
	}
	if _, err := s.deps.Store.Write(metaName(version), data); err != nil {
		logger.Error("Movement sidecar write failed: %v", err)
	}
}

// scoreDeltas pairs this run's query scores with the previous run's by
// (subject, query). Scores without a prior counterpart are skipped.
func scoreDeltas(prior vizMeta, scores []domain.SimilarityScore) []domain.ScoreDelta {
	if len(prior.Scores) == 0 {
		return nil
	}
	old := make(map[string]float64, len(prior.Scores))
	for _, sc := range prior.Scores {
		old[string(sc.Subject)+"\x00"+sc.Query] = sc.Value
	}
	var deltas []domain.ScoreDelta
	for _, sc := range scores {
		if sc.Query == "" {
			continue
		}
		prev, ok := old[string(sc.Subject)+"\x00"+sc.Query]
		if !ok {
			continue
		}
		deltas = append(deltas, domain.ScoreDelta{Subject: sc.Subject, Query: sc.Query, Old: prev, New: sc.Value})
	}
	return deltas
}

func meanPoint(points []driven.RenderPoint, role domain.Role) (domain.Point3, bool) {
	for _, p := range points {
		if p.Kind == driven.PointMean && p.Role == role {
			return p.Point, true
		}
	}
	return domain.Point3{}, false
}

func titleOf(passages []domain.Passage) string {
	for _, p := range passages {
		if p.Type == domain.PassageTitle {
			return p.Text
		}
	}
	return ""
}

func distance(a, b domain.Point3) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// bboxDiagonal returns the diagonal length of the axis-aligned bounding box
// of the projected points.
func bboxDiagonal(points []driven.RenderPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	min := points[0].Point
	max := points[0].Point
	for _, p := range points[1:] {
		min.X = math.Min(min.X, p.Point.X)
		min.Y = math.Min(min.Y, p.Point.Y)
		min.Z = math.Min(min.Z, p.Point.Z)
		max.X = math.Max(max.X, p.Point.X)
		max.Y = math.Max(max.Y, p.Point.Y)
		max.Z = math.Max(max.Z, p.Point.Z)
	}
	return distance(min, max)
}
