package gantt

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

// DateLayout is the serialized form of every normalized date.
const DateLayout = "2006-01-02"

var partialDatePattern = regexp.MustCompile(`^(\d{4})-(\d\d?)(?:-(\d\d?))?`)

var (
	errMonthRange = errors.New("month out of range")
	errDayRange   = errors.New("day out of range for month")
	errYearRange  = errors.New("year out of range")
)

// ResolveDate expands a YYYY-M[-D] string into a calendar date in UTC.
// Without a day, a range start resolves to the first of the month and a
// range end to the last day of the month.
func ResolveDate(s string, end bool) (time.Time, error) {
	m := partialDatePattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, &DateError{Date: s}
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if year < 1 {
		return time.Time{}, &DateError{Date: s, Err: errYearRange}
	}
	if month < 1 || month > 12 {
		return time.Time{}, &DateError{Date: s, Err: errMonthRange}
	}

	if m[3] != "" {
		day, _ := strconv.Atoi(m[3])
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		// time.Date normalizes overflow, so a changed month or day means the
		// input was not a real calendar day.
		if day < 1 || t.Month() != time.Month(month) || t.Day() != day {
			return time.Time{}, &DateError{Date: s, Err: errDayRange}
		}
		return t, nil
	}

	if !end {
		return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), nil
	}

	// Day 28 plus four days always lands in the next month; stepping back by
	// that day-of-month gives the last day of the original month.
	next := time.Date(year, time.Month(month), 28, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 4)
	return next.AddDate(0, 0, -next.Day()), nil
}

// NormalizeDate is ResolveDate formatted as YYYY-MM-DD.
func NormalizeDate(s string, end bool) (string, error) {
	t, err := ResolveDate(s, end)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}
