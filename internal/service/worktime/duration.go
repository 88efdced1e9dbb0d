package worktime

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// All work-hours arithmetic happens in whole minutes. Hours as floats drift
// across repeated rounding, so minutes are the only internal representation;
// formatting happens once, at the output boundary.

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

var sixty = decimal.NewFromInt(minutesPerHour)

// clamp0 floors a minute count at zero.
func clamp0(minutes int) int {
	if minutes < 0 {
		return 0
	}
	return minutes
}

// MinuteOfDay converts a timestamp to minutes since midnight, discarding the
// calendar date.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*minutesPerHour + t.Minute()
}

// FormatHM renders non-negative minutes as "H:MM" (hours unbounded, minutes
// two digits).
func FormatHM(minutes int) string {
	minutes = clamp0(minutes)
	return fmt.Sprintf("%d:%02d", minutes/minutesPerHour, minutes%minutesPerHour)
}

// ParseHM parses "H:MM" back into minutes, reversing FormatHM.
func ParseHM(s string) (int, error) {
	var hours, mins int
	if _, err := fmt.Sscanf(s, "%d:%d", &hours, &mins); err != nil {
		return 0, fmt.Errorf("parsing %q as H:MM: %w", s, err)
	}
	if hours < 0 || mins < 0 || mins >= minutesPerHour {
		return 0, fmt.Errorf("parsing %q as H:MM: out of range", s)
	}
	return hours*minutesPerHour + mins, nil
}

// FormatHours renders minutes as decimal hours with two places, e.g. 450
// becomes "7.50".
func FormatHours(minutes int) string {
	return decimal.NewFromInt(int64(clamp0(minutes))).Div(sixty).StringFixed(2)
}
