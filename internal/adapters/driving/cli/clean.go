package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/pagelens-cli/internal/adapters/driven/storage/fs"
	"github.com/meridian-labs/pagelens-cli/internal/logger"
)

var (
	cleanKeepVersions int
	cleanDryRun       bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Prune stale test runs and old artifact versions",
	Long: `Remove test-run directories older than the configured retention and,
when --keep is given, trim each artifact family in the main output
directory down to its newest N versions.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().IntVar(&cleanKeepVersions, "keep", 0, "keep only the newest N versions per artifact (0 = no version pruning)")
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "report what would be removed without removing it")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := cleanTestRuns(cfg.TestOutputDir, cfg.KeepTestDays); err != nil {
		return err
	}
	if cleanKeepVersions > 0 {
		if err := cleanVersions(cfg.OutputDir, cleanKeepVersions); err != nil {
			return err
		}
	}
	return nil
}

// cleanTestRuns removes test-run directories whose last modification is
// older than keepDays.
func cleanTestRuns(dir string, keepDays int) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read test run directory: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -keepDays)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if cleanDryRun {
			logger.Info("Would remove test run %s", path)
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("remove test run %s: %w", path, err)
		}
		logger.Info("Removed test run %s", path)
	}
	return nil
}

// versionedName splits "{base}-v{n}{ext}" into its family key and version.
var versionedName = regexp.MustCompile(`^(.+)-v(\d+)(\.[a-z.]+)$`)

// cleanVersions trims every artifact family in the output directory to its
// newest keep versions.
func cleanVersions(dir string, keep int) error {
	store, err := fs.New(dir)
	if err != nil {
		return err
	}
	names, err := store.List()
	if err != nil {
		return err
	}

	type member struct {
		name    string
		version int
	}
	families := map[string][]member{}
	for _, name := range names {
		m := versionedName.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		v, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		key := m[1] + m[3]
		families[key] = append(families[key], member{name: name, version: v})
	}

	for key, members := range families {
		if len(members) <= keep {
			continue
		}
		sort.Slice(members, func(i, j int) bool { return members[i].version > members[j].version })
		for _, m := range members[keep:] {
			if cleanDryRun {
				logger.Info("Would remove %s", m.name)
				continue
			}
			if err := store.Remove(m.name); err != nil {
				return err
			}
			logger.Info("Removed %s", m.name)
		}
		logger.Debug("Family %s trimmed to %d version(s)", key, keep)
	}
	return nil
}
