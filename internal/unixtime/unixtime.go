// Package unixtime converts civil date/time tuples to Unix timestamps for
// the tzdata compiler pipeline (internal/tzexpand, internal/tzir), without
// depending on time.Location the way time.Date does -- depending on a
// Location feels backwards for a low-level utility that exists to build
// the data a Location is eventually constructed from.
package unixtime

import "github.com/ngrash/go-cctz/internal/civil"

// FromDateTime converts a given date and time to a Unix timestamp, i.e.
// the number of seconds since 1970-01-01 00:00:00 UTC. It ignores leap
// seconds but respects leap years, assuming the proleptic Gregorian
// calendar. Uses internal/civil's day-ordinal arithmetic, the same
// algorithm the cctz/tzfif instant-conversion path uses, so the compiler
// and the runtime agree on what a given civil date means in Unix time.
func FromDateTime(year int, month int, day int, hour int, minute int, second int) int64 {
	days := civil.DayOrdinal(int64(year), month, day)
	return days*secondsPerDay + int64(hour)*secondsPerHour + int64(minute)*secondsPerMinute + int64(second)
}

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)
