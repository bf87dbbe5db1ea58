// Package output prints streak reports for the command line.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/naka-gawa/github-streak-stats/internal/config"
	"github.com/naka-gawa/github-streak-stats/internal/domain"
)

// Write prints report to w in the given format.
func Write(w io.Writer, report *domain.StreakReport, format string) error {
	switch format {
	case config.FormatJSON:
		return writeJSON(w, report)
	case config.FormatText:
		_, err := fmt.Fprintln(w, renderText(report))
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeJSON(w io.Writer, report *domain.StreakReport) error {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}

func renderText(report *domain.StreakReport) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle(title(report))
	tbl.AppendHeader(table.Row{"Metric", "Value", "Period"})

	s := report.Streaks
	tbl.AppendRow(table.Row{"Total contributions", humanize.Comma(int64(s.TotalContributions)), report.ContributionRange})
	tbl.AppendRow(table.Row{"Current streak", days(s.CurrentStreak), report.CurrentStreakRange})
	tbl.AppendRow(table.Row{"Longest streak", days(s.LongestStreak), report.LongestStreakRange})
	tbl.AppendSeparator()

	sum := report.Summary
	tbl.AppendRow(table.Row{"Active days", humanize.Comma(int64(sum.ActiveDays)), ""})
	tbl.AppendRow(table.Row{"Mean per active day", strconv.FormatFloat(sum.MeanPerActiveDay, 'f', 2, 64), ""})
	tbl.AppendRow(table.Row{"Median per active day", strconv.FormatFloat(sum.MedianPerActiveDay, 'f', 1, 64), ""})
	if sum.BusiestDay != "" {
		tbl.AppendRow(table.Row{"Busiest day", humanize.Comma(int64(sum.BusiestDayCount)), sum.BusiestDay})
	}

	if len(report.SkippedYears) > 0 {
		skipped := make([]string, 0, len(report.SkippedYears))
		for _, y := range report.SkippedYears {
			skipped = append(skipped, strconv.Itoa(y))
		}
		tbl.AppendFooter(table.Row{"Skipped years", strings.Join(skipped, ", "), ""})
	}

	return tbl.Render()
}

func title(report *domain.StreakReport) string {
	if report.Name != "" {
		return fmt.Sprintf("%s (%s) as of %s", report.Name, report.User, report.Today)
	}
	return fmt.Sprintf("%s as of %s", report.User, report.Today)
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return humanize.Comma(int64(n)) + " days"
}
