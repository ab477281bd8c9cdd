package dateutil

import (
	"time"
)

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// StartOfDay truncates a time to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ClampedDate builds the date for a day-of-month, clamped to the last valid
// day of that month (day 31 in April becomes April 30th). Month values
// outside 1..12 roll into the neighbouring year before clamping.
func ClampedDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := DaysInMonth(first.Year(), first.Month())
	if day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, loc)
}

// NextOccurrence returns the next date on or after ref that falls on dayOfMonth.
// When the day has already passed this month, the same day in the following
// month is returned; both candidates are clamped to month end.
func NextOccurrence(dayOfMonth int, ref time.Time) time.Time {
	today := StartOfDay(ref)
	candidate := ClampedDate(today.Year(), today.Month(), dayOfMonth, today.Location())
	if !candidate.Before(today) {
		return candidate
	}
	return ClampedDate(today.Year(), today.Month()+1, dayOfMonth, today.Location())
}

// ResolveCycle resolves a card's next statement date relative to ref and the
// due date that follows it. A due date that would land on or before the
// statement date belongs to the following month.
func ResolveCycle(statementDay, dueDay int, ref time.Time) (statement, due time.Time) {
	statement = NextOccurrence(statementDay, ref)
	due = NextOccurrence(dueDay, statement)
	if !due.After(statement) {
		due = ClampedDate(due.Year(), due.Month()+1, dueDay, due.Location())
	}
	return statement, due
}

// DaysUntil counts whole calendar days from one date to another (negative if to is earlier)
func DaysUntil(from, to time.Time) int {
	a := StartOfDay(from)
	b := StartOfDay(to)
	// Noon avoids DST shifts turning 23h days into zero.
	a = time.Date(a.Year(), a.Month(), a.Day(), 12, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 12, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// AddDays returns the start of the day n days after t
func AddDays(t time.Time, n int) time.Time {
	d := StartOfDay(t)
	return time.Date(d.Year(), d.Month(), d.Day()+n, 0, 0, 0, 0, d.Location())
}
