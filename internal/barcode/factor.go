package barcode

import "time"

var (
	// factorBase is the day before factor 0001 of the first cycle
	factorBase = time.Date(1997, time.October, 7, 0, 0, 0, 0, time.UTC)

	// rolloverBase is the day of factor 1000 once 9999 was exhausted
	rolloverBase = time.Date(2025, time.February, 22, 0, 0, 0, 0, time.UTC)
)

const (
	minRolloverFactor = 1000
	maxFactor         = 9999
)

// DueDate converts a due factor to a date. Factor 0 means no due date.
// Factors from 1000 exist in two cycles; the one closest to ref wins.
func DueDate(factor int, ref time.Time) (time.Time, bool) {
	if factor <= 0 || factor > maxFactor {
		return time.Time{}, false
	}

	first := factorBase.AddDate(0, 0, factor)
	if factor < minRolloverFactor {
		return first, true
	}

	second := rolloverBase.AddDate(0, 0, factor-minRolloverFactor)
	if distance(second, ref) < distance(first, ref) {
		return second, true
	}
	return first, true
}

// Factor converts a date back to the factor printed on the slip
func Factor(due time.Time) int {
	due = time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	if due.Before(rolloverBase) {
		return int(due.Sub(factorBase).Hours() / 24)
	}
	return minRolloverFactor + int(due.Sub(rolloverBase).Hours()/24)%(maxFactor-minRolloverFactor+1)
}

func distance(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		return -d
	}
	return d
}
