package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
	"github.com/meridian-labs/pagelens-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// memStore implements driven.ArtifactStore in memory.
type memStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	listErr error
}

func newMemStore(names ...string) *memStore {
	files := make(map[string][]byte)
	for _, n := range names {
		files[n] = []byte("seed")
	}
	return &memStore{files: files}
}

func (s *memStore) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	names := make([]string, 0, len(s.files))
	for n := range s.files {
		names = append(names, n)
	}
	return names, nil
}

func (s *memStore) Write(name string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.files[name]; exists {
		return "", fmt.Errorf("artifact %s already exists", name)
	}
	s.files[name] = data
	return "/out/" + name, nil
}

func (s *memStore) Read(name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("artifact %s not found", name)
	}
	return data, nil
}

func (s *memStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, name)
	return nil
}

func (s *memStore) Dir() string { return "/out" }

// mockEmbeddingService implements driven.EmbeddingService with
// deterministic vectors: component i of a text's vector is
// float32(len(text)+i).
type mockEmbeddingService struct {
	dims     int
	embedErr error
	pingErr  error
	batches  int

	// dropLast simulates a provider omitting one result per batch.
	dropLast bool
}

func (m *mockEmbeddingService) vector(text string) []float32 {
	v := make([]float32, m.dims)
	for i := range v {
		v[i] = float32(len(text) + i)
	}
	return v
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vector(text), nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	m.batches++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = m.vector(t)
	}
	if m.dropLast && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int   { return m.dims }
func (m *mockEmbeddingService) ModelName() string { return "mock-embed" }
func (m *mockEmbeddingService) Ping(_ context.Context) error {
	return m.pingErr
}
func (m *mockEmbeddingService) Close() error { return nil }

// mockFetcher implements driven.PageFetcher from a URL-to-markup map.
type mockFetcher struct {
	pages map[string][]byte
	errs  map[string]error
}

func (f *mockFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	body, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("%w: no page for %s", domain.ErrFetch, url)
	}
	return body, nil
}

// mockExtractor implements PassageExtractor by returning canned passages
// regardless of markup.
type mockExtractor struct {
	passages []domain.Passage
	err      error
}

func (e *mockExtractor) Extract(_ []byte) ([]domain.Passage, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.passages, nil
}

// stubProjector implements Projector by spreading points along the x axis.
type stubProjector struct{ offset float64 }

func (p *stubProjector) Project(vectors []domain.Vector) ([]domain.Point3, error) {
	points := make([]domain.Point3, len(vectors))
	for i := range vectors {
		points[i] = domain.Point3{X: float64(i) + p.offset, Y: 0, Z: 0}
	}
	return points, nil
}

func (p *stubProjector) Method() domain.ProjectionMethod { return domain.ProjectionPCA }

// mockRenderer implements driven.Renderer, recording the last input.
type mockRenderer struct {
	last *driven.RenderInput
	err  error
}

func (r *mockRenderer) Render(_ context.Context, input *driven.RenderInput) ([]byte, error) {
	r.last = input
	if r.err != nil {
		return nil, r.err
	}
	return []byte("<html>viz</html>"), nil
}
