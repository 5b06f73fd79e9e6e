package availability

import (
	"regexp"
	"time"

	"github.com/TejashHub/FoodDelivery-sub001/internal/domain"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

var weekdays = map[string]bool{
	"Monday":    true,
	"Tuesday":   true,
	"Wednesday": true,
	"Thursday":  true,
	"Friday":    true,
	"Saturday":  true,
	"Sunday":    true,
}

// ValidClock reports whether s is a 24-hour HH:MM time.
func ValidClock(s string) bool {
	return clockPattern.MatchString(s)
}

// ValidDay reports whether s is a canonical English weekday name.
func ValidDay(s string) bool {
	return weekdays[s]
}

// ValidateOpeningHours checks a whole replacement table. The first bad entry
// rejects the batch.
func ValidateOpeningHours(hours []domain.OpeningHours) error {
	seen := make(map[string]bool, len(hours))

	for _, h := range hours {
		if !ValidDay(h.Day) {
			return domain.Invalid("invalid day %q: must be one of Monday..Sunday", h.Day)
		}
		if seen[h.Day] {
			return domain.Invalid("day %q listed more than once", h.Day)
		}
		seen[h.Day] = true

		if !ValidClock(h.Open) {
			return domain.Invalid("invalid open time %q for %s: expected HH:MM (24-hour)", h.Open, h.Day)
		}
		if !ValidClock(h.Close) {
			return domain.Invalid("invalid close time %q for %s: expected HH:MM (24-hour)", h.Close, h.Day)
		}
	}

	return nil
}

// ParseHolidays parses every value as a date (2006-01-02) or an RFC 3339
// timestamp and normalizes it to UTC midnight of its calendar date.
func ParseHolidays(values []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(values))

	for _, v := range values {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			ts, tsErr := time.Parse(time.RFC3339, v)
			if tsErr != nil {
				return nil, domain.Invalid("invalid holiday date %q", v)
			}
			t = ts
		}
		y, m, d := t.Date()
		out = append(out, time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	}

	return out, nil
}
