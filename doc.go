// Package cctz converts between absolute time instants and civil
// (wall-clock) time as interpreted by named time zones, and formats and
// parses such times using strftime(3)-like directive strings.
//
// A [Zone] is a small, value-typed handle naming a geo-political region
// within which a particular set of rules maps between absolute and civil
// time, such as "America/Los_Angeles". The zero Zone is equivalent to UTC.
//
// Example:
//
//	var lax cctz.Zone
//	if !cctz.Load("America/Los_Angeles", &lax) {
//		// lax is now the UTC zone.
//	}
//	t := lax.MakeTime(2015, 1, 2, 3, 4, 5).Pre
//	bd := lax.Break(t)
//	// bd.Year == 2015 ...
//	s := cctz.Format("%Y-%m-%d %H:%M:%S %Ez", t, lax)
//	// s == "2015-01-02 03:04:05 -08:00"
//
// This package itself only ships a backend for UTC and the host's local
// time (package tzfif supplies a full IANA TZif-backed
// backend with daylight-saving-time disambiguation).
package cctz
