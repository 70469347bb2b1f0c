package domain

import "time"

const dayLayout = "2006-01-02"

// legacyDayLayout is the Date.toDateString form written by the first
// release of the app.
const legacyDayLayout = "Mon Jan 02 2006"

// Day is a calendar date with no time-of-day or zone, formatted YYYY-MM-DD.
// The zero value means "never".
type Day string

func DayOf(t time.Time) Day {
	return Day(t.Format(dayLayout))
}

// ParseDay accepts YYYY-MM-DD and the legacy toDateString form.
func ParseDay(raw string) (Day, bool) {
	for _, layout := range []string{dayLayout, legacyDayLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			return DayOf(t), true
		}
	}
	return "", false
}

func (d Day) IsZero() bool { return d == "" }

func (d Day) String() string { return string(d) }

// Next returns the following calendar day. The zero Day has no successor.
func (d Day) Next() Day {
	t, err := time.Parse(dayLayout, string(d))
	if err != nil {
		return ""
	}
	return DayOf(t.AddDate(0, 0, 1))
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool {
	return string(d) < string(other)
}
