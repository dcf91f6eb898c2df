package cctz

// Backend is the contract a zone implementation must satisfy. An
// implementer supplies, for a single named zone, civil<->instant
// conversion. Implementations must never fail to construct -- on an
// internal failure they should behave as UTC -- and must be safe for
// concurrent use, since Zone values wrapping them may be shared freely
// across goroutines.
//
// This package ships FixedBackend, which covers UTC (with a zero offset) and
// the host's local time. Package tzfif supplies a full IANA TZif-backed
// Backend with correct Skipped/Repeated disambiguation across DST
// transitions.
type Backend interface {
	// BreakTime produces the calendar fields consistent with the zone's
	// rules at t. The returned Weekday is always 1=Monday ... 7=Sunday.
	BreakTime(t Instant) Breakdown

	// MakeTimeInfo produces the civil-to-instant mapping for the given
	// fields, normalizing them first (see internal/civil), and classifying
	// the result as Unique, Skipped, or Repeated where the backend is able
	// to detect the distinction.
	MakeTimeInfo(year int64, month, day, hour, minute, second int) TimeInfo
}
