// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-streak-stats/internal/config"
	"github.com/naka-gawa/github-streak-stats/internal/domain"
	"github.com/naka-gawa/github-streak-stats/internal/gateway"
	"github.com/naka-gawa/github-streak-stats/internal/streak"
)

const (
	noCurrentStreak = "No current streak"
	noLongestStreak = "No streak yet"
)

// Aggregator is the use case for building a user's streak report.
// It orchestrates fetching the yearly contribution windows and combining them.
type Aggregator struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
	years   int
}

// NewAggregator creates a new Aggregator instance.
// A non-positive years falls back to config.DefaultYears.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger, years int) *Aggregator {
	if years <= 0 {
		years = config.DefaultYears
	}
	return &Aggregator{
		fetcher: fetcher,
		logger:  logger,
		years:   years,
	}
}

// window is one calendar year of contribution history.
type window struct {
	year     int
	from, to time.Time
}

// Aggregate fetches the user's contribution history and computes the streak report relative to today.
// Yearly windows are fetched concurrently; a window that fails is skipped and reported
// in SkippedYears unless every window fails.
func (a *Aggregator) Aggregate(ctx context.Context, user string, today time.Time) (*domain.StreakReport, error) {
	a.logger.Println("Usecase: Starting streak aggregation...")
	today = today.UTC()

	profile, err := a.fetcher.FetchUser(ctx, user)
	if err != nil {
		return nil, err
	}

	windows := yearlyWindows(today, a.years, profile.CreatedAt)
	calendars := make([]*gateway.ContributionCalendar, len(windows))
	errs := make([]error, len(windows))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, w := range windows {
		i, w := i, w
		eg.Go(func() error {
			calendar, err := a.fetcher.FetchContributionCalendar(egCtx, user, w.from, w.to)
			if err != nil {
				// Cancellation aborts everything; any other failure only drops this year.
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				a.logger.Printf("Could not fetch contributions for year %d: %v\n", w.year, err)
				errs[i] = fmt.Errorf("year %d: %w", w.year, err)
				return nil
			}
			calendars[i] = calendar
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var records []domain.ContributionRecord
	var skipped []int
	calendarTotal := 0
	for i, w := range windows {
		if errs[i] != nil {
			skipped = append(skipped, w.year)
			continue
		}
		calendarTotal += calendars[i].TotalContributions
		for _, d := range calendars[i].Days {
			if d.Count > 0 {
				records = append(records, d)
			}
		}
	}
	if len(skipped) == len(windows) {
		return nil, fmt.Errorf("failed to fetch contributions for %s: %w", user, errors.Join(errs...))
	}
	a.logger.Printf("Usecase: Collected %d active days from %d yearly windows.\n", len(records), len(windows)-len(skipped))

	result, err := streak.Compute(records, today)
	if err != nil {
		return nil, fmt.Errorf("failed to compute streaks: %w", err)
	}
	// Reports use the day sum; the calendar total is only cross-checked.
	if calendarTotal != result.TotalContributions {
		a.logger.Printf("Warning: calendar total %d differs from the sum of daily contributions %d.\n", calendarTotal, result.TotalContributions)
	}
	summary, err := streak.Summarize(records)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize contributions: %w", err)
	}

	report := &domain.StreakReport{
		User:               profile.Login,
		Name:               profile.Name,
		Today:              today.Format(time.DateOnly),
		Streaks:            *result,
		CurrentStreakRange: orDefault(streak.FormatDateRange(result.CurrentStreakStart, result.CurrentStreakEnd), noCurrentStreak),
		LongestStreakRange: orDefault(streak.FormatDateRange(result.LongestStreakStart, result.LongestStreakEnd), noLongestStreak),
		ContributionRange:  streak.ContributionRange(summary.FirstContribution),
		Summary:            summary,
		SkippedYears:       skipped,
	}
	if report.User == "" {
		report.User = user
	}

	a.logger.Println("Usecase: Aggregation complete.")
	return report, nil
}

// yearlyWindows returns one window per calendar year, newest first, going back
// years years but never before the year the account was created. The current
// year's window ends with today.
func yearlyWindows(today time.Time, years int, createdAt time.Time) []window {
	current := today.Year()
	oldest := current - years + 1
	if !createdAt.IsZero() && createdAt.UTC().Year() > oldest {
		oldest = min(createdAt.UTC().Year(), current)
	}

	endOfToday := time.Date(current, today.Month(), today.Day(), 23, 59, 59, 0, time.UTC)
	windows := make([]window, 0, current-oldest+1)
	for year := current; year >= oldest; year-- {
		w := window{
			year: year,
			from: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			to:   time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC),
		}
		if w.to.After(endOfToday) {
			w.to = endOfToday
		}
		windows = append(windows, w)
	}
	return windows
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
