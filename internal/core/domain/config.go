package domain

import (
	"fmt"
	"strings"
	"time"
)

// EmbeddingProvider identifies an embedding service provider.
type EmbeddingProvider string

// Available embedding providers.
const (
	// EmbeddingProviderOpenAI is the OpenAI cloud API.
	EmbeddingProviderOpenAI EmbeddingProvider = "openai"

	// EmbeddingProviderOllama is a local Ollama instance.
	EmbeddingProviderOllama EmbeddingProvider = "ollama"
)

// IsValid returns true if the provider is recognised.
func (p EmbeddingProvider) IsValid() bool {
	switch p {
	case EmbeddingProviderOpenAI, EmbeddingProviderOllama:
		return true
	default:
		return false
	}
}

// Configuration defaults.
const (
	DefaultOutputDir     = "outputs"
	DefaultTestOutputDir = "outputs/test_runs"
	DefaultFetchTimeout  = 30 * time.Second
	DefaultFetchRetries  = 3
	DefaultRetryDelay    = time.Second
	DefaultFetchRate     = 1.0 // requests per second
	DefaultBatchSize     = 32
	MaxQueries           = 50
	MinQueryLength       = 2
	MaxQueryLength       = 200
)

// FetchConfig controls page downloading.
type FetchConfig struct {
	UserAgents []string      `toml:"user_agents"`
	Timeout    time.Duration `toml:"timeout"`
	Retries    int           `toml:"retries"`
	RetryDelay time.Duration `toml:"retry_delay"`
	// RatePerSec throttles outgoing requests for politeness.
	RatePerSec float64 `toml:"rate_per_sec"`
}

// EmbeddingConfig controls embedding generation.
type EmbeddingConfig struct {
	Provider EmbeddingProvider `toml:"provider"`
	// Model is a provider model name or a preset alias resolved by the
	// embedding factory.
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	// ReducedDimensions truncates every vector in the run to this prefix
	// length. Zero keeps the model's native dimensionality.
	ReducedDimensions int `toml:"reduced_dimensions"`
	BatchSize         int `toml:"batch_size"`
}

// ExtractConfig controls which optional passage types are extracted beyond
// the default set.
type ExtractConfig struct {
	Paragraphs      bool `toml:"paragraphs"`
	Images          bool `toml:"images"`
	DefinitionLists bool `toml:"definition_lists"`
	Articles        bool `toml:"articles"`
}

// VisualizationConfig controls the rendered artifact.
type VisualizationConfig struct {
	ClientColor     string `toml:"client_color"`
	CompetitorColor string `toml:"competitor_color"`
	ComparisonColor string `toml:"comparison_color"`
	QueryColor      string `toml:"query_color"`
	// LabelOverrides maps a role to a display label replacing the
	// default role/domain identity.
	LabelOverrides map[string]string `toml:"label_overrides"`
}

// Config is the full tool configuration.
type Config struct {
	OutputDir     string              `toml:"output_dir"`
	TestOutputDir string              `toml:"test_output_dir"`
	KeepTestDays  int                 `toml:"keep_test_days"`
	Fetch         FetchConfig         `toml:"fetch"`
	Embedding     EmbeddingConfig     `toml:"embedding"`
	Extract       ExtractConfig       `toml:"extract"`
	Visualization VisualizationConfig `toml:"visualization"`
}

// DefaultConfig returns the documented default configuration.
func DefaultConfig() Config {
	return Config{
		OutputDir:     DefaultOutputDir,
		TestOutputDir: DefaultTestOutputDir,
		KeepTestDays:  7,
		Fetch: FetchConfig{
			UserAgents: []string{
				"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
				"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36",
			},
			Timeout:    DefaultFetchTimeout,
			Retries:    DefaultFetchRetries,
			RetryDelay: DefaultRetryDelay,
			RatePerSec: DefaultFetchRate,
		},
		Embedding: EmbeddingConfig{
			Provider:  EmbeddingProviderOllama,
			Model:     "nomic-embed-text",
			BatchSize: DefaultBatchSize,
		},
		Visualization: VisualizationConfig{
			ClientColor:     "#1f77b4",
			CompetitorColor: "#ff7f0e",
			ComparisonColor: "#9467bd",
			QueryColor:      "#2ca02c",
		},
	}
}

// Correction records one validation substitution: Field was out of range,
// Old was replaced by New. Corrections are always reported to the user;
// substitution is never silent.
type Correction struct {
	Field string
	Old   any
	New   any
}

func (c Correction) String() string {
	return fmt.Sprintf("%s: %v is invalid, using %v", c.Field, c.Old, c.New)
}

// ValidateConfig checks cfg and returns a corrected copy along with the list
// of applied corrections. Recoverable values (non-positive timeouts, counts,
// rates) fall back to documented defaults; an unknown embedding provider is
// unrecoverable and returns ErrInvalidConfig.
func ValidateConfig(cfg Config) (Config, []Correction, error) {
	var corrections []Correction
	def := DefaultConfig()

	fix := func(field string, old, def any, apply func()) {
		corrections = append(corrections, Correction{Field: field, Old: old, New: def})
		apply()
	}

	if cfg.OutputDir == "" {
		fix("output_dir", cfg.OutputDir, def.OutputDir, func() { cfg.OutputDir = def.OutputDir })
	}
	if cfg.TestOutputDir == "" {
		fix("test_output_dir", cfg.TestOutputDir, def.TestOutputDir, func() { cfg.TestOutputDir = def.TestOutputDir })
	}
	if cfg.KeepTestDays < 0 {
		fix("keep_test_days", cfg.KeepTestDays, def.KeepTestDays, func() { cfg.KeepTestDays = def.KeepTestDays })
	}
	if cfg.Fetch.Timeout <= 0 {
		fix("fetch.timeout", cfg.Fetch.Timeout, def.Fetch.Timeout, func() { cfg.Fetch.Timeout = def.Fetch.Timeout })
	}
	if cfg.Fetch.Retries < 0 {
		fix("fetch.retries", cfg.Fetch.Retries, def.Fetch.Retries, func() { cfg.Fetch.Retries = def.Fetch.Retries })
	}
	if cfg.Fetch.RetryDelay < 0 {
		fix("fetch.retry_delay", cfg.Fetch.RetryDelay, def.Fetch.RetryDelay, func() { cfg.Fetch.RetryDelay = def.Fetch.RetryDelay })
	}
	if cfg.Fetch.RatePerSec <= 0 {
		fix("fetch.rate_per_sec", cfg.Fetch.RatePerSec, def.Fetch.RatePerSec, func() { cfg.Fetch.RatePerSec = def.Fetch.RatePerSec })
	}
	if len(cfg.Fetch.UserAgents) == 0 {
		fix("fetch.user_agents", "empty", "built-in list", func() { cfg.Fetch.UserAgents = def.Fetch.UserAgents })
	}
	if cfg.Embedding.Provider == "" {
		fix("embedding.provider", "", def.Embedding.Provider, func() { cfg.Embedding.Provider = def.Embedding.Provider })
	}
	if !cfg.Embedding.Provider.IsValid() {
		return cfg, corrections, fmt.Errorf("%w: unknown embedding provider %q", ErrInvalidConfig, cfg.Embedding.Provider)
	}
	if cfg.Embedding.BatchSize <= 0 {
		fix("embedding.batch_size", cfg.Embedding.BatchSize, def.Embedding.BatchSize, func() { cfg.Embedding.BatchSize = def.Embedding.BatchSize })
	}
	if cfg.Embedding.ReducedDimensions < 0 {
		fix("embedding.reduced_dimensions", cfg.Embedding.ReducedDimensions, 0, func() { cfg.Embedding.ReducedDimensions = 0 })
	}

	return cfg, corrections, nil
}

// ValidateQueries checks and normalises the target query list against the
// documented limits.
func ValidateQueries(queries []string) ([]string, error) {
	cleaned := make([]string, 0, len(queries))
	for _, q := range queries {
		if q = strings.TrimSpace(q); q != "" {
			cleaned = append(cleaned, q)
		}
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: no queries provided", ErrInvalidInput)
	}
	if len(cleaned) > MaxQueries {
		return nil, fmt.Errorf("%w: too many queries (%d, maximum %d)", ErrInvalidInput, len(cleaned), MaxQueries)
	}
	for i, q := range cleaned {
		if len(q) < MinQueryLength {
			return nil, fmt.Errorf("%w: query %d too short: %q", ErrInvalidInput, i+1, q)
		}
		if len(q) > MaxQueryLength {
			return nil, fmt.Errorf("%w: query %d too long (%d chars)", ErrInvalidInput, i+1, len(q))
		}
	}
	return cleaned, nil
}
