package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
	"github.com/meridian-labs/pagelens-cli/internal/logger"
)

// testSeed fixes the reduction's random state for test runs so repeated
// runs over identical input produce identical layouts.
const testSeed = 42

var (
	testClientURL     string
	testCompetitorURL string
	testComparisonURL string
	testQueries       []string
	testQueryFile     string
	testRunName       string
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run a comparison into an isolated test-run directory",
	Long: `Run the same pipeline as analyze, but write artifacts into a fresh
subdirectory of the test output directory and seed the projection for
reproducible layouts. Test runs never touch the main output directory and
are pruned by the clean command.`,
	RunE: runTest,
}

func init() {
	testCmd.Flags().StringVar(&testClientURL, "client", "", "client page URL (required)")
	testCmd.Flags().StringVar(&testCompetitorURL, "competitor", "", "competitor page URL")
	testCmd.Flags().StringVar(&testComparisonURL, "comparison", "", "comparison page URL")
	testCmd.Flags().StringArrayVarP(&testQueries, "query", "q", nil, "target search query (repeatable)")
	testCmd.Flags().StringVar(&testQueryFile, "query-file", "", "file with one query per line")
	testCmd.Flags().StringVar(&testRunName, "run-name", "", "test run name prefix (default: timestamp)")
	_ = testCmd.MarkFlagRequired("client")
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, _ []string) error {
	queries, err := gatherQueries(testQueries, testQueryFile)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	name := testRunName
	if name == "" {
		name = time.Now().Format("20060102-150405")
	}
	// A unique suffix keeps concurrent test runs from sharing a directory.
	runDir := filepath.Join(cfg.TestOutputDir,
		fmt.Sprintf("%s-%s", name, uuid.NewString()[:8]))
	logger.Info("Test run directory: %s", runDir)

	service, err := buildAnalysis(cfg, runDir)
	if err != nil {
		return err
	}

	result, err := service.Analyze(cmd.Context(), domain.AnalysisRequest{
		ClientURL:     testClientURL,
		CompetitorURL: testCompetitorURL,
		ComparisonURL: testComparisonURL,
		Queries:       queries,
		Seed:          testSeed,
	})
	if err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), result)
	return nil
}
