// Package hours implements the time arithmetic behind the hour bank:
// daily targets, worked hours from clock events, progress and the
// conversions between decimal hours and "HH:MM" strings.
//
// All functions are pure. Clock events are same-day "HH:MM" strings
// where even positions are entries and odd positions are exits.
package hours

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/meuponto/internal/common"
)

const (
	// MaxDailyEvents is the clock-in cap for a single day.
	MaxDailyEvents = 8

	// StandardTarget and ShortDayTarget are the expected hours of work.
	StandardTarget = 9.0
	ShortDayTarget = 8.0

	// ShortDay is the weekday with the reduced target.
	ShortDay = time.Friday

	// DayLayout is the calendar-day key format ("YYYY-MM-DD").
	DayLayout = "2006-01-02"

	// ClockLayout is the time-of-day format of clock events.
	ClockLayout = "15:04"
)

var (
	hhmmPattern    = regexp.MustCompile(`^\d+:\d{2}$`)
	balancePattern = regexp.MustCompile(`^[+-]?\d+:\d{2}$`)
)

// DailyTarget returns the expected hours for the weekday of date.
func DailyTarget(date time.Time) float64 {
	if date.Weekday() == ShortDay {
		return ShortDayTarget
	}
	return StandardTarget
}

// DailyTargetForDay is DailyTarget for a "YYYY-MM-DD" day key interpreted in
// local time. A key that cannot be parsed gets the standard target.
func DailyTargetForDay(day string) float64 {
	d, err := time.ParseInLocation(DayLayout, day, time.Local)
	if err != nil {
		return StandardTarget
	}
	return DailyTarget(d)
}

// WorkedHours sums exit-minus-entry over the complete (entry, exit) pairs of
// events. An unpaired trailing entry contributes nothing. A pair whose exit
// precedes its entry contributes a negative amount; overnight spans are not
// supported.
//
// The total is computed in whole minutes and rounded half away from zero to
// two decimal places.
func WorkedHours(events []string) (float64, error) {
	minutes := 0
	for i := 0; i+1 < len(events); i += 2 {
		in, err := parseMinutes(events[i])
		if err != nil {
			return 0, err
		}
		out, err := parseMinutes(events[i+1])
		if err != nil {
			return 0, err
		}
		minutes += out - in
	}
	return round2(float64(minutes) / 60), nil
}

// ProgressPercent returns the share of target already worked, capped at 100.
// Negative progress is returned as is. target must be positive.
func ProgressPercent(events []string, target float64) (float64, error) {
	worked, err := WorkedHours(events)
	if err != nil {
		return 0, err
	}
	return math.Min(worked/target*100, 100), nil
}

// CanClockIn reports whether another event fits into the day.
func CanClockIn(events []string) bool {
	return len(events) < MaxDailyEvents
}

// ToHHMM renders decimal hours as "HH:MM", rounding to the nearest minute.
// Hours are not wrapped at 24, and negative values get a leading '-'.
func ToHHMM(hours float64) string {
	total := int(math.Round(hours * 60))
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	return fmt.Sprintf("%s%02d:%02d", sign, total/60, total%60)
}

// ParseHHMM converts "H+:MM" into decimal hours (H + M/60).
func ParseHHMM(s string) (float64, error) {
	if !hhmmPattern.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", common.ErrFormat, s)
	}
	h, m, err := splitHHMM(s)
	if err != nil {
		return 0, err
	}
	return float64(h) + float64(m)/60, nil
}

// ParseBalance is ParseHHMM with an optional leading sign, for signed
// balances such as "-01:30".
func ParseBalance(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !balancePattern.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", common.ErrFormat, s)
	}
	sign := 1.0
	switch s[0] {
	case '-':
		sign = -1
		s = s[1:]
	case '+':
		s = s[1:]
	}
	v, err := ParseHHMM(s)
	if err != nil {
		return 0, err
	}
	return sign * v, nil
}

// FormatDuration renders hours for humans: "00:00", "45min", "8h" or
// "8h 30min".
func FormatDuration(hours float64) string {
	if hours == 0 {
		return "00:00"
	}
	total := int(math.Round(hours * 60))
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	h, m := total/60, total%60
	switch {
	case h == 0:
		return fmt.Sprintf("%s%02dmin", sign, m)
	case m == 0:
		return fmt.Sprintf("%s%dh", sign, h)
	default:
		return fmt.Sprintf("%s%dh %02dmin", sign, h, m)
	}
}

// FormatClock returns the local time of day of t as a clock event.
func FormatClock(t time.Time) string {
	return t.Local().Format(ClockLayout)
}

// DayOf returns the local calendar-day key of t.
func DayOf(t time.Time) string {
	return t.Local().Format(DayLayout)
}

func parseMinutes(s string) (int, error) {
	if !hhmmPattern.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", common.ErrFormat, s)
	}
	h, m, err := splitHHMM(s)
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

func splitHHMM(s string) (int, int, error) {
	hs, ms, _ := strings.Cut(s, ":")
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", common.ErrFormat, s)
	}
	m, err := strconv.Atoi(ms)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", common.ErrFormat, s)
	}
	return h, m, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
