package streak

const (
	rangeDayLayout  = "Jan 2"
	sinceDayLayout  = "Jan 2, 2006"
	noContributions = "No contributions"
	openRangeSuffix = " - Present"
	rangeSeparator  = " - "
)

// FormatDateRange renders start and end as "Mon D" when they are the same day
// and "Mon D - Mon D" otherwise. It returns an empty string when either date
// is absent or malformed.
func FormatDateRange(start, end string) string {
	if start == "" || end == "" {
		return ""
	}
	s, err := parseDay(start)
	if err != nil {
		return ""
	}
	e, err := parseDay(end)
	if err != nil {
		return ""
	}
	if s == e {
		return s.Time().Format(rangeDayLayout)
	}
	return s.Time().Format(rangeDayLayout) + rangeSeparator + e.Time().Format(rangeDayLayout)
}

// ContributionRange renders the open-ended period since the first contribution,
// e.g. "Mar 5, 2023 - Present".
func ContributionRange(first string) string {
	if first == "" {
		return noContributions
	}
	d, err := parseDay(first)
	if err != nil {
		return noContributions
	}
	return d.Time().Format(sinceDayLayout) + openRangeSuffix
}
