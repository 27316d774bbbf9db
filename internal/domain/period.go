package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var periodKeyPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])-(\d{4})$`)

// ValidPeriodKey reports whether key is a well-formed MM-YYYY period key.
func ValidPeriodKey(key string) bool {
	return periodKeyPattern.MatchString(key)
}

// PeriodKeyFor derives the MM-YYYY period key for a date.
func PeriodKeyFor(t time.Time) string {
	return fmt.Sprintf("%02d-%04d", int(t.Month()), t.Year())
}

// PeriodStart returns the first day of the period, or an error for a
// malformed key.
func PeriodStart(key string) (time.Time, error) {
	m := periodKeyPattern.FindStringSubmatch(key)
	if m == nil {
		return time.Time{}, ErrInvalidPeriodKey
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), nil
}

// FinancialYearFor returns the Indian financial year label (April-March)
// containing the date, e.g. "2024-25" for 2024-06-15.
func FinancialYearFor(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%04d-%02d", start, (start+1)%100)
}

// FinancialYearEnd returns March 31 following the financial year that
// contains the date. The statutory claim window is measured from this day.
func FinancialYearEnd(t time.Time) time.Time {
	end := t.Year()
	if t.Month() >= time.April {
		end++
	}
	return time.Date(end, time.March, 31, 0, 0, 0, 0, time.UTC)
}
