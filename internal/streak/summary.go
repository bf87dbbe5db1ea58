package streak

import (
	"fmt"
	"slices"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-streak-stats/internal/domain"
)

// Summarize describes the distribution of contributions over active days.
// Records are validated and merged the same way as in Compute.
func Summarize(records []domain.ContributionRecord) (domain.ActivitySummary, error) {
	counts, _, err := index(records)
	if err != nil {
		return domain.ActivitySummary{}, err
	}
	if len(counts) == 0 {
		return domain.ActivitySummary{}, nil
	}

	days := make([]day, 0, len(counts))
	for d := range counts {
		days = append(days, d)
	}
	slices.Sort(days)

	data := make(stats.Float64Data, 0, len(days))
	busiest := days[0]
	for _, d := range days {
		data = append(data, float64(counts[d]))
		if counts[d] > counts[busiest] {
			busiest = d
		}
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return domain.ActivitySummary{}, fmt.Errorf("failed to compute mean: %w", err)
	}
	median, err := stats.Median(data)
	if err != nil {
		return domain.ActivitySummary{}, fmt.Errorf("failed to compute median: %w", err)
	}

	return domain.ActivitySummary{
		ActiveDays:         len(days),
		FirstContribution:  days[0].String(),
		BusiestDay:         busiest.String(),
		BusiestDayCount:    counts[busiest],
		MeanPerActiveDay:   mean,
		MedianPerActiveDay: median,
	}, nil
}
