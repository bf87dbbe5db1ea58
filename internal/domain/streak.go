// Package domain contains the core data structures and domain logic for the application.
package domain

import "errors"

// ErrInvalidRecord is returned when a contribution record violates the input contract,
// e.g. a malformed date or a negative count.
var ErrInvalidRecord = errors.New("invalid contribution record")

// ContributionRecord is the number of contributions made on a single UTC calendar date.
// Date is formatted as YYYY-MM-DD.
type ContributionRecord struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// StreakResult holds the streak statistics derived from a contribution history.
// Empty date fields mean the corresponding range is absent.
type StreakResult struct {
	CurrentStreak      int    `json:"current_streak"`
	CurrentStreakStart string `json:"current_streak_start,omitempty"`
	CurrentStreakEnd   string `json:"current_streak_end,omitempty"`
	LongestStreak      int    `json:"longest_streak"`
	LongestStreakStart string `json:"longest_streak_start,omitempty"`
	LongestStreakEnd   string `json:"longest_streak_end,omitempty"`
	TotalContributions int    `json:"total_contributions"`
}

// ActivitySummary describes how contributions are distributed over active days.
type ActivitySummary struct {
	ActiveDays         int     `json:"active_days"`
	FirstContribution  string  `json:"first_contribution,omitempty"`
	BusiestDay         string  `json:"busiest_day,omitempty"`
	BusiestDayCount    int     `json:"busiest_day_count"`
	MeanPerActiveDay   float64 `json:"mean_per_active_day"`
	MedianPerActiveDay float64 `json:"median_per_active_day"`
}

// StreakReport is the presentation-ready result for a single user.
type StreakReport struct {
	User               string          `json:"user"`
	Name               string          `json:"name,omitempty"`
	Today              string          `json:"today"`
	Streaks            StreakResult    `json:"streaks"`
	CurrentStreakRange string          `json:"current_streak_range"`
	LongestStreakRange string          `json:"longest_streak_range"`
	ContributionRange  string          `json:"contribution_range"`
	Summary            ActivitySummary `json:"summary"`
	SkippedYears       []int           `json:"skipped_years,omitempty"`
}
