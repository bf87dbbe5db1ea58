package streak

import "time"

const (
	dateLayout    = "2006-01-02"
	secondsPerDay = 24 * 60 * 60
)

// day is a UTC calendar date expressed as whole days since the Unix epoch.
// Consecutiveness is integer arithmetic on this index, so DST and
// fractional-day offsets cannot leak in.
type day int64

func parseDay(s string) (day, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return 0, err
	}
	return dayOf(t), nil
}

// dayOf returns the UTC calendar date of t.
func dayOf(t time.Time) day {
	y, m, d := t.UTC().Date()
	return day(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay)
}

func (d day) Time() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

func (d day) String() string {
	return d.Time().Format(dateLayout)
}

// consecutive reports whether next is exactly one calendar day after prev.
func consecutive(prev, next day) bool {
	return next-prev == 1
}
