package normalize

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical calendar-date layout used in reports and exports.
const DateLayout = "2006-01-02"

// Common date formats found in visit exports.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate attempts to parse a date string in multiple common formats.
// Values without an explicit offset are read in loc.
// Returns nil if the input is empty or unparseable.
func ParseDate(s string, loc *time.Location) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateFormats {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t
		}
	}
	return nil
}

// IsoDateOnly renders t as a YYYY-MM-DD calendar date in loc.
func IsoDateOnly(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// ParseDay parses a YYYY-MM-DD calendar date as midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// DayBounds returns the half-open [start, end) instants of the calendar day
// containing t, as observed in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// RangeBounds returns the half-open window covering the calendar days from
// through to inclusive, in loc.
func RangeBounds(from, to time.Time, loc *time.Location) (time.Time, time.Time, error) {
	start, _ := DayBounds(from, loc)
	_, end := DayBounds(to, loc)
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("date range %s..%s is empty",
			IsoDateOnly(from, loc), IsoDateOnly(to, loc))
	}
	return start, end, nil
}

// Days lists the calendar dates (YYYY-MM-DD in loc) in the window [start, end).
func Days(start, end time.Time, loc *time.Location) []string {
	var days []string
	for d, _ := DayBounds(start, loc); d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DateLayout))
	}
	return days
}
