package variant

import (
	"fmt"
	"time"
)

// RecencyMode selects how "released in the last month" is measured.
type RecencyMode string

const (
	// ModeRolling is a fixed window of N days ending at now.
	ModeRolling RecencyMode = "rolling"
	// ModeCalendarMonth goes back one calendar month from now using
	// time.AddDate, so Mar 31 looks back to Mar 2 in a leap year.
	ModeCalendarMonth RecencyMode = "calendar-month"
)

// DefaultWindowDays is the length of the rolling window.
const DefaultWindowDays = 30

// RecencyRule decides whether a release date counts as new at a given time.
// Both endpoints are inclusive and dates after now are never recent.
type RecencyRule interface {
	IsRecent(releaseDate, now time.Time) bool
	// WindowStart is the earliest release date still recent at now.
	WindowStart(now time.Time) time.Time
	String() string
}

// RollingWindow is the [now - Days*24h, now] rule.
type RollingWindow struct {
	Days int
}

// IsRecent reports whether releaseDate falls inside the window ending at now.
func (w RollingWindow) IsRecent(releaseDate, now time.Time) bool {
	return inWindow(releaseDate, w.WindowStart(now), now)
}

// WindowStart returns now minus Days whole 24h periods.
func (w RollingWindow) WindowStart(now time.Time) time.Time {
	return now.Add(-time.Duration(w.Days) * 24 * time.Hour)
}

// String returns e.g. "rolling:30d".
func (w RollingWindow) String() string {
	return fmt.Sprintf("%s:%dd", ModeRolling, w.Days)
}

// CalendarMonth is the [now - 1 month, now] rule.
type CalendarMonth struct{}

// IsRecent reports whether releaseDate is within one calendar month before now.
func (m CalendarMonth) IsRecent(releaseDate, now time.Time) bool {
	return inWindow(releaseDate, m.WindowStart(now), now)
}

// WindowStart returns the same clock time one month earlier, normalized by AddDate.
func (CalendarMonth) WindowStart(now time.Time) time.Time {
	return now.AddDate(0, -1, 0)
}

// String returns "calendar-month".
func (CalendarMonth) String() string {
	return string(ModeCalendarMonth)
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// NewRecencyRule builds the rule for a configured mode. windowDays is only
// used by the rolling mode.
func NewRecencyRule(mode string, windowDays int) (RecencyRule, error) {
	switch RecencyMode(mode) {
	case ModeRolling, "":
		if windowDays <= 0 {
			return nil, fmt.Errorf("rolling window must be positive, got %d days", windowDays)
		}
		return RollingWindow{Days: windowDays}, nil
	case ModeCalendarMonth:
		return CalendarMonth{}, nil
	default:
		return nil, fmt.Errorf("unknown recency mode %q", mode)
	}
}
