package core

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical date format used across sheet tabs.
const DateLayout = "2006-01-02"

// Sheet exports are not consistent about date formats; these are the
// shapes observed in the workbook history.
var dateLayouts = []string{
	DateLayout,
	"1/2/2006",
	"01/02/2006",
	"2006-01-02 15:04:05",
	"2-Jan-2006",
}

var ErrEmptyDate = errors.New("empty date")

// ParseDate parses a sheet cell into a UTC midnight date. An empty cell
// returns ErrEmptyDate so callers can treat it as "unset".
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmptyDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Midnight(t), nil
		}
	}
	return time.Time{}, errors.New("unparseable date: " + s)
}

// ParseDayMonth parses a year-agnostic "DD-Mon" anchor such as "31-Dec".
func ParseDayMonth(s string) (day int, month time.Month, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, errors.New("empty day-month anchor")
	}
	t, err := time.Parse("2-Jan", s)
	if err != nil {
		return 0, 0, errors.New("unparseable day-month anchor: " + s)
	}
	return t.Day(), t.Month(), nil
}

// ParseDayOfMonth parses an integer day-of-month anchor.
func ParseDayOfMonth(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty day of month")
	}
	day, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("unparseable day of month: " + s)
	}
	return day, nil
}

// Midnight truncates t to its UTC calendar date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Date builds a UTC midnight date; the test files lean on it heavily.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole days from 'from' to 'to'; negative when
// 'to' precedes 'from'. Both arguments are expected at midnight.
func DaysBetween(from, to time.Time) int {
	return int(Midnight(to).Sub(Midnight(from)).Hours() / 24)
}
