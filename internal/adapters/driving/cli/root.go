// Package cli wires the command-line interface to the core services.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/pagelens-cli/internal/adapters/driven/ai"
	configfile "github.com/meridian-labs/pagelens-cli/internal/adapters/driven/config/file"
	"github.com/meridian-labs/pagelens-cli/internal/adapters/driven/fetch"
	"github.com/meridian-labs/pagelens-cli/internal/adapters/driven/render/plotly"
	"github.com/meridian-labs/pagelens-cli/internal/adapters/driven/storage/fs"
	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
	"github.com/meridian-labs/pagelens-cli/internal/core/services"
	"github.com/meridian-labs/pagelens-cli/internal/extract"
	"github.com/meridian-labs/pagelens-cli/internal/logger"
	"github.com/meridian-labs/pagelens-cli/internal/projection"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagVerbose    bool
	flagConfigPath string
	flagOutputDir  string
)

var rootCmd = &cobra.Command{
	Use:   "pagelens",
	Short: "Compare webpages semantically against target search queries",
	Long: `pagelens fetches webpages, extracts their passages, embeds them and
measures how closely each page matches a set of target search queries.

Results are written as versioned artifacts: the raw markup, the extracted
passages as JSON, and an interactive 3D visualization of the shared
embedding space.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "config file path (default ~/.pagelens/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&flagOutputDir, "output-dir", "o", "", "output directory override")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configPath resolves the configuration file location.
func configPath() (string, error) {
	if flagConfigPath != "" {
		return flagConfigPath, nil
	}
	return configfile.DefaultPath()
}

// loadConfig loads, validates and reports corrections for the tool
// configuration.
func loadConfig() (domain.Config, error) {
	path, err := configPath()
	if err != nil {
		return domain.Config{}, err
	}
	cfg, err := configfile.Load(path)
	if err != nil {
		return domain.Config{}, err
	}
	cfg, corrections, err := domain.ValidateConfig(cfg)
	for _, c := range corrections {
		logger.Warn("config %s", c)
	}
	if err != nil {
		return domain.Config{}, err
	}
	if flagOutputDir != "" {
		cfg.OutputDir = flagOutputDir
	}
	return cfg, nil
}

// buildAnalysis assembles the full pipeline over the given output directory.
func buildAnalysis(cfg domain.Config, outputDir string) (*services.AnalysisService, error) {
	svc, err := ai.CreateAndValidateEmbeddingService(cfg.Embedding)
	if err != nil {
		return nil, err
	}
	engine, correction := services.NewEmbeddingEngine(svc, cfg.Embedding.ReducedDimensions, cfg.Embedding.BatchSize)
	if correction != nil {
		logger.Warn("config %s", correction)
	}

	store, err := fs.New(outputDir)
	if err != nil {
		return nil, err
	}

	renderer, err := plotly.New()
	if err != nil {
		return nil, err
	}

	return services.NewAnalysisService(services.AnalysisDeps{
		Fetcher:   fetch.New(cfg.Fetch),
		Extractor: extract.New(extract.OptionsFromConfig(cfg.Extract)),
		Engine:    engine,
		Versions:  services.NewVersionManager(store),
		Store:     store,
		Renderer:  renderer,
		Projector: func(n int, seed int64) services.Projector {
			return projection.For(n, seed)
		},
		Viz: cfg.Visualization,
	}), nil
}
