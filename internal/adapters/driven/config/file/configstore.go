package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
)

// DefaultPath returns the default config file location,
// ~/.pagelens/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pagelens", "config.toml"), nil
}

// fileConfig is the on-disk TOML shape. Durations are stored as seconds so
// the file reads like `timeout = 30`, matching what users expect from a
// scraping tool config.
type fileConfig struct {
	OutputDir     string `toml:"output_dir"`
	TestOutputDir string `toml:"test_output_dir"`
	KeepTestDays  int    `toml:"keep_test_days"`

	Fetch struct {
		UserAgents []string `toml:"user_agents"`
		Timeout    int      `toml:"timeout"`
		Retries    int      `toml:"retries"`
		RetryDelay float64  `toml:"retry_delay"`
		RatePerSec float64  `toml:"rate_per_sec"`
	} `toml:"fetch"`

	Embedding struct {
		Provider          string `toml:"provider"`
		Model             string `toml:"model"`
		BaseURL           string `toml:"base_url"`
		APIKey            string `toml:"api_key"`
		ReducedDimensions int    `toml:"reduced_dimensions"`
		BatchSize         int    `toml:"batch_size"`
	} `toml:"embedding"`

	Extract struct {
		Paragraphs      bool `toml:"paragraphs"`
		Images          bool `toml:"images"`
		DefinitionLists bool `toml:"definition_lists"`
		Articles        bool `toml:"articles"`
	} `toml:"extract"`

	Visualization struct {
		ClientColor     string            `toml:"client_color"`
		CompetitorColor string            `toml:"competitor_color"`
		ComparisonColor string            `toml:"comparison_color"`
		QueryColor      string            `toml:"query_color"`
		LabelOverrides  map[string]string `toml:"label_overrides"`
	} `toml:"visualization"`
}

// Load reads the TOML config at path and merges it over the documented
// defaults. A missing file is not an error: the defaults are returned
// unchanged. A file that fails to parse is ErrInvalidConfig.
func Load(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("%w: parse %s: %v", domain.ErrInvalidConfig, path, err)
	}

	merge(&cfg, fc)
	return cfg, nil
}

// Save writes cfg to path in TOML form, creating parent directories.
// Used by `pagelens config init`.
func Save(path string, cfg domain.Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	var fc fileConfig
	fc.OutputDir = cfg.OutputDir
	fc.TestOutputDir = cfg.TestOutputDir
	fc.KeepTestDays = cfg.KeepTestDays
	fc.Fetch.UserAgents = cfg.Fetch.UserAgents
	fc.Fetch.Timeout = int(cfg.Fetch.Timeout / time.Second)
	fc.Fetch.Retries = cfg.Fetch.Retries
	fc.Fetch.RetryDelay = cfg.Fetch.RetryDelay.Seconds()
	fc.Fetch.RatePerSec = cfg.Fetch.RatePerSec
	fc.Embedding.Provider = string(cfg.Embedding.Provider)
	fc.Embedding.Model = cfg.Embedding.Model
	fc.Embedding.BaseURL = cfg.Embedding.BaseURL
	fc.Embedding.APIKey = cfg.Embedding.APIKey
	fc.Embedding.ReducedDimensions = cfg.Embedding.ReducedDimensions
	fc.Embedding.BatchSize = cfg.Embedding.BatchSize
	fc.Extract.Paragraphs = cfg.Extract.Paragraphs
	fc.Extract.Images = cfg.Extract.Images
	fc.Extract.DefinitionLists = cfg.Extract.DefinitionLists
	fc.Extract.Articles = cfg.Extract.Articles
	fc.Visualization.ClientColor = cfg.Visualization.ClientColor
	fc.Visualization.CompetitorColor = cfg.Visualization.CompetitorColor
	fc.Visualization.ComparisonColor = cfg.Visualization.ComparisonColor
	fc.Visualization.QueryColor = cfg.Visualization.QueryColor
	fc.Visualization.LabelOverrides = cfg.Visualization.LabelOverrides

	data, err := toml.Marshal(fc)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// Restricted permissions: the file may hold an API key.
	return os.WriteFile(path, data, 0o600)
}

// merge copies non-zero file values over the defaults. Zero values keep
// their defaults; out-of-range values are the validator's concern.
func merge(cfg *domain.Config, fc fileConfig) {
	if fc.OutputDir != "" {
		cfg.OutputDir = fc.OutputDir
	}
	if fc.TestOutputDir != "" {
		cfg.TestOutputDir = fc.TestOutputDir
	}
	if fc.KeepTestDays != 0 {
		cfg.KeepTestDays = fc.KeepTestDays
	}
	if len(fc.Fetch.UserAgents) > 0 {
		cfg.Fetch.UserAgents = fc.Fetch.UserAgents
	}
	if fc.Fetch.Timeout != 0 {
		cfg.Fetch.Timeout = time.Duration(fc.Fetch.Timeout) * time.Second
	}
	if fc.Fetch.Retries != 0 {
		cfg.Fetch.Retries = fc.Fetch.Retries
	}
	if fc.Fetch.RetryDelay != 0 {
		cfg.Fetch.RetryDelay = time.Duration(fc.Fetch.RetryDelay * float64(time.Second))
	}
	if fc.Fetch.RatePerSec != 0 {
		cfg.Fetch.RatePerSec = fc.Fetch.RatePerSec
	}
	if fc.Embedding.Provider != "" {
		cfg.Embedding.Provider = domain.EmbeddingProvider(fc.Embedding.Provider)
	}
	if fc.Embedding.Model != "" {
		cfg.Embedding.Model = fc.Embedding.Model
	}
	if fc.Embedding.BaseURL != "" {
		cfg.Embedding.BaseURL = fc.Embedding.BaseURL
	}
	if fc.Embedding.APIKey != "" {
		cfg.Embedding.APIKey = fc.Embedding.APIKey
	}
	if fc.Embedding.ReducedDimensions != 0 {
		cfg.Embedding.ReducedDimensions = fc.Embedding.ReducedDimensions
	}
	if fc.Embedding.BatchSize != 0 {
		cfg.Embedding.BatchSize = fc.Embedding.BatchSize
	}
	cfg.Extract = domain.ExtractConfig{
		Paragraphs:      fc.Extract.Paragraphs,
		Images:          fc.Extract.Images,
		DefinitionLists: fc.Extract.DefinitionLists,
		Articles:        fc.Extract.Articles,
	}
	if fc.Visualization.ClientColor != "" {
		cfg.Visualization.ClientColor = fc.Visualization.ClientColor
	}
	if fc.Visualization.CompetitorColor != "" {
		cfg.Visualization.CompetitorColor = fc.Visualization.CompetitorColor
	}
	if fc.Visualization.ComparisonColor != "" {
		cfg.Visualization.ComparisonColor = fc.Visualization.ComparisonColor
	}
	if fc.Visualization.QueryColor != "" {
		cfg.Visualization.QueryColor = fc.Visualization.QueryColor
	}
	if fc.Visualization.LabelOverrides != nil {
		cfg.Visualization.LabelOverrides = fc.Visualization.LabelOverrides
	}
}
