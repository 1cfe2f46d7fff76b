package domain

import "time"

// All interval rules in the engine are date-only and inclusive on
// both ends. Timestamps are truncated to UTC midnight before compare.

func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// RangesOverlap reports whether [aStart, aEnd] and [bStart, bEnd]
// share at least one day.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	aStart, aEnd = DateOnly(aStart), DateOnly(aEnd)
	bStart, bEnd = DateOnly(bStart), DateOnly(bEnd)
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// RangeContains reports whether [outerStart, outerEnd] fully covers
// [innerStart, innerEnd].
func RangeContains(outerStart, outerEnd, innerStart, innerEnd time.Time) bool {
	outerStart, outerEnd = DateOnly(outerStart), DateOnly(outerEnd)
	innerStart, innerEnd = DateOnly(innerStart), DateOnly(innerEnd)
	return !outerStart.After(innerStart) && !outerEnd.Before(innerEnd)
}

// WeekdaysInclusive counts Monday-to-Friday days in [start, end].
// Weekend days never consume balance.
func WeekdaysInclusive(start, end time.Time) int {
	start, end = DateOnly(start), DateOnly(end)
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

// DaysInclusive counts the days in [start, end], both ends included.
func DaysInclusive(start, end time.Time) int {
	start, end = DateOnly(start), DateOnly(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
