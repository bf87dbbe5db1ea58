// Package streak derives contribution streak statistics from a daily contribution history.
//
// All functions are pure: they read no clock, keep no state, and never modify the
// records they are given, so they are safe to call concurrently.
package streak

import (
	"fmt"
	"slices"
	"time"

	"github.com/naka-gawa/github-streak-stats/internal/domain"
)

// Compute returns the current and longest streaks of records relative to today.
//
// Only the UTC calendar date of today is used. Records with a zero count are
// treated like missing days, and records sharing a date are summed. A record
// with a malformed date or a negative count yields an error wrapping
// domain.ErrInvalidRecord.
func Compute(records []domain.ContributionRecord, today time.Time) (*domain.StreakResult, error) {
	counts, total, err := index(records)
	if err != nil {
		return nil, err
	}

	result := &domain.StreakResult{TotalContributions: total}
	currentStreak(counts, dayOf(today), result)
	longestStreak(counts, result)
	return result, nil
}

// index validates records and folds them into a per-day count map, skipping empty days.
func index(records []domain.ContributionRecord) (map[day]int, int, error) {
	counts := make(map[day]int, len(records))
	total := 0
	for i, r := range records {
		if r.Count < 0 {
			return nil, 0, fmt.Errorf("%w: record %d (%s): negative count %d", domain.ErrInvalidRecord, i, r.Date, r.Count)
		}
		d, err := parseDay(r.Date)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: record %d: malformed date %q: %v", domain.ErrInvalidRecord, i, r.Date, err)
		}
		if r.Count == 0 {
			continue
		}
		counts[d] += r.Count
		total += r.Count
	}
	return counts, total, nil
}

// currentStreak walks backward from today, or from yesterday when today has
// no contribution yet.
func currentStreak(counts map[day]int, today day, result *domain.StreakResult) {
	anchor := today
	if _, ok := counts[anchor]; !ok {
		anchor = today - 1
		if _, ok := counts[anchor]; !ok {
			return
		}
	}

	start := anchor
	length := 0
	for d := anchor; ; d-- {
		if _, ok := counts[d]; !ok {
			break
		}
		length++
		start = d
	}

	result.CurrentStreak = length
	result.CurrentStreakStart = start.String()
	result.CurrentStreakEnd = anchor.String()
}

// longestStreak scans the contribution days in ascending order. A run only
// replaces the best one when strictly longer, so the earliest run wins ties.
func longestStreak(counts map[day]int, result *domain.StreakResult) {
	if len(counts) == 0 {
		return
	}

	days := make([]day, 0, len(counts))
	for d := range counts {
		days = append(days, d)
	}
	slices.Sort(days)

	best, bestStart, bestEnd := 0, day(0), day(0)
	runStart, runLength := days[0], 1
	closeRun := func(end day) {
		if runLength > best {
			best, bestStart, bestEnd = runLength, runStart, end
		}
	}

	for i := 1; i < len(days); i++ {
		if consecutive(days[i-1], days[i]) {
			runLength++
			continue
		}
		closeRun(days[i-1])
		runStart, runLength = days[i], 1
	}
	closeRun(days[len(days)-1])

	result.LongestStreak = best
	result.LongestStreakStart = bestStart.String()
	result.LongestStreakEnd = bestEnd.String()
}
