// Package timeutil provides utility functions and types for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

const minutesInAnHour = 60

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

var timeOfDayLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04PM",
	"3:04 PM",
	"3PM",
	"3 PM",
}

// ParseTimeOfDay parses a time of day such as "09:00", "5:30 pm" or "9am".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TimeOfDay{}, fmt.Errorf("empty time of day")
	}

	for _, layout := range timeOfDayLayouts {
		t, err := time.Parse(layout, strings.ToUpper(s))
		if err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
		}
	}

	dt, err := dps.Parse(nil, s)
	if err != nil || dt.Time.IsZero() {
		return TimeOfDay{}, fmt.Errorf("invalid time of day: %q", s)
	}

	return TimeOfDay{Hour: dt.Time.Hour(), Minute: dt.Time.Minute()}, nil
}

// ParseDate parses an absolute or relative date such as "2026-03-01",
// "yesterday" or "3 days ago".
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	dt, err := dps.Parse(nil, s)
	if err != nil || dt.Time.IsZero() {
		return time.Time{}, fmt.Errorf("invalid date: %q", s)
	}

	return dt.Time, nil
}

// On returns the instant of the time of day on the date of t, in t's location.
func (tod TimeOfDay) On(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		tod.Hour,
		tod.Minute,
		0,
		0,
		t.Location(),
	)
}

func (tod TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", tod.Hour, tod.Minute)
}

// MinsToHoursAndMins expresses a minutes value in hours and mins.
func MinsToHoursAndMins(val int) (hrs, mins int) {
	hrs = int(math.Floor(float64(val) / float64(minutesInAnHour)))
	mins = val % minutesInAnHour

	return
}

// FormatMinutes renders a minutes value as "1h 05m" or "45m".
func FormatMinutes(val int) string {
	hrs, mins := MinsToHoursAndMins(val)
	if hrs == 0 {
		return fmt.Sprintf("%dm", mins)
	}

	return fmt.Sprintf("%dh %02dm", hrs, mins)
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// DayFormat returns the calendar day of t as an integer (YYYYMMDD).
func DayFormat(t time.Time) int {
	d := fmt.Sprintf("%d%02d%02d", t.Year(), t.Month(), t.Day())

	i, _ := strconv.Atoi(d)

	return i
}

// ToKey converts a time value to a database key for Bolt.
func ToKey(t time.Time) []byte {
	return []byte(t.Format(time.RFC3339Nano))
}
