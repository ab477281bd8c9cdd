package calculation

import "time"

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// SetNowFunc overrides the time provider (use only in tests).
func SetNowFunc(f func() time.Time) { nowFunc = f }

// referenceOrNow substitutes the current time for an unset reference date.
func referenceOrNow(ref time.Time) time.Time {
	if ref.IsZero() {
		return nowFunc()
	}
	return ref
}
