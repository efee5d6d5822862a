package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/meridian-labs/pagelens-cli/internal/core/domain"
)

// Report styling. Colors mirror the visualization's score bands.
var (
	reportTitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	reportRoleStyle  = lipgloss.NewStyle().Bold(true)
	reportDimStyle   = lipgloss.NewStyle().Faint(true)
	bandGoodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	bandMediumStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	bandPoorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

const reportBarWidth = 30

// printReport writes the run summary: per-role query scores as bars,
// role-vs-role scores, skipped pages, and the artifact list.
func printReport(w io.Writer, result *domain.AnalysisResult) {
	width := terminalWidth()

	fmt.Fprintln(w, reportTitleStyle.Render("Similarity"))
	for _, page := range result.Pages {
		fmt.Fprintf(w, "\n%s (%s)\n", reportRoleStyle.Render(string(page.Role)), page.Label)
		for _, s := range result.ScoresForRole(page.Role) {
			fmt.Fprintf(w, "  %s %.3f  %s\n",
				scoreBar(s.Value), s.Value, truncate(s.Query, width-reportBarWidth-12))
		}
	}

	var pairs []domain.SimilarityScore
	for _, s := range result.Scores {
		if s.Query == "" {
			pairs = append(pairs, s)
		}
	}
	if len(pairs) > 0 {
		fmt.Fprintln(w, "\n"+reportTitleStyle.Render("Page vs page"))
		for _, s := range pairs {
			fmt.Fprintf(w, "  %s vs %s: %.3f\n", s.Subject, s.OtherRole, s.Value)
		}
	}

	if len(result.Deltas) > 0 {
		fmt.Fprintln(w, "\n"+reportTitleStyle.Render("Change since last run"))
		for _, d := range result.Deltas {
			fmt.Fprintf(w, "  %s · %s: %s\n",
				d.Subject, truncate(d.Query, width-reportBarWidth-12), deltaLabel(d.Change()))
		}
	}

	for _, f := range result.Failures {
		fmt.Fprintf(w, "\n%s\n", bandPoorStyle.Render(fmt.Sprintf("Skipped %s page: %v", f.Role, f.Err)))
	}

	fmt.Fprintln(w, "\n"+reportTitleStyle.Render("Artifacts"))
	for _, a := range result.Artifacts {
		fmt.Fprintf(w, "  %s\n", a.Path)
	}
	if result.VisualizationPath != "" {
		fmt.Fprintf(w, "\nOpen %s in a browser to explore the embedding space.\n", result.VisualizationPath)
	}
	method := strings.ToUpper(result.Method.String())
	if result.Perplexity > 0 {
		fmt.Fprintln(w, reportDimStyle.Render(fmt.Sprintf("Projection: %s (perplexity %d)", method, result.Perplexity)))
	} else {
		fmt.Fprintln(w, reportDimStyle.Render("Projection: "+method))
	}
}

// scoreBar renders a fixed-width bar colored by the score's band.
func scoreBar(value float64) string {
	if value < 0 {
		value = 0
	}
	filled := int(value * reportBarWidth)
	if filled > reportBarWidth {
		filled = reportBarWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", reportBarWidth-filled)

	switch {
	case value >= domain.ScoreGoodThreshold:
		return bandGoodStyle.Render(bar)
	case value >= domain.ScoreMediumThreshold:
		return bandMediumStyle.Render(bar)
	default:
		return bandPoorStyle.Render(bar)
	}
}

// deltaLabel colors a score change: green when the score improved, red when
// it dropped, faint when it is effectively unchanged.
func deltaLabel(change float64) string {
	switch {
	case change > 0.0005:
		return bandGoodStyle.Render(fmt.Sprintf("+%.3f", change))
	case change < -0.0005:
		return bandPoorStyle.Render(fmt.Sprintf("%.3f", change))
	default:
		return reportDimStyle.Render("±0.000")
	}
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 40 {
		return w
	}
	return 80
}

// truncate cuts at a rune boundary so multibyte queries survive shortening.
func truncate(s string, max int) string {
	if max < 8 {
		max = 8
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
