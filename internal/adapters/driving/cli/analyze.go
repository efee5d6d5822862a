package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
)

var (
	analyzeClientURL     string
	analyzeCompetitorURL string
	analyzeComparisonURL string
	analyzeQueries       []string
	analyzeQueryFile     string
	analyzeSeed          int64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a semantic comparison against the main output directory",
	Long: `Fetch the client page (and optionally a competitor and a comparison
page), embed their passages and score each page against the target queries.

Artifacts are versioned: repeating a run for the same pages never
overwrites earlier results.`,
	Example: `  pagelens analyze --client https://example.com/pricing \
      --query "project management software" \
      --query "team collaboration tool"

  pagelens analyze --client https://example.com/pricing \
      --competitor https://rival.io/pricing --query-file queries.txt`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeClientURL, "client", "", "client page URL (required)")
	analyzeCmd.Flags().StringVar(&analyzeCompetitorURL, "competitor", "", "competitor page URL")
	analyzeCmd.Flags().StringVar(&analyzeComparisonURL, "comparison", "", "comparison page URL")
	analyzeCmd.Flags().StringArrayVarP(&analyzeQueries, "query", "q", nil, "target search query (repeatable)")
	analyzeCmd.Flags().StringVar(&analyzeQueryFile, "query-file", "", "file with one query per line")
	analyzeCmd.Flags().Int64Var(&analyzeSeed, "seed", 0, "random seed for reproducible layouts (0 = unseeded)")
	_ = analyzeCmd.MarkFlagRequired("client")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	queries, err := gatherQueries(analyzeQueries, analyzeQueryFile)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	service, err := buildAnalysis(cfg, cfg.OutputDir)
	if err != nil {
		return err
	}

	result, err := service.Analyze(cmd.Context(), domain.AnalysisRequest{
		ClientURL:     analyzeClientURL,
		CompetitorURL: analyzeCompetitorURL,
		ComparisonURL: analyzeComparisonURL,
		Queries:       queries,
		Seed:          analyzeSeed,
	})
	if err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), result)
	return nil
}

// gatherQueries combines repeated --query flags with the lines of an
// optional query file. Blank lines and # comments in the file are skipped;
// full validation happens in the pipeline.
func gatherQueries(flags []string, file string) ([]string, error) {
	queries := append([]string(nil), flags...)
	if file == "" {
		return queries, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read query file: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		queries = append(queries, line)
	}
	return queries, nil
}
