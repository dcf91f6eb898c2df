package cctz

// Breakdown is the calendar and wall-clock ("civil time") representation of
// an Instant in a particular Zone. It is not itself an instant in time --
// pass an Instant and a Zone to functions, not a Breakdown.
type Breakdown struct {
	Year      int64    // year, e.g. 2013
	Month     int      // month of year [1:12]
	Day       int      // day of month [1:31]
	Hour      int      // hour of day [0:23]
	Minute    int      // minute of hour [0:59]
	Second    int      // second of minute [0:59]
	Subsecond Duration // [0s:1s)
	Weekday   int      // 1=Monday ... 7=Sunday
	Yearday   int      // day of year [1:366]
	Offset    int32    // seconds east of UTC
	IsDST     bool     // is the offset in effect a DST offset?
	Abbr      string   // zone abbreviation, e.g. "PST"
}
