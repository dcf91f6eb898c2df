package cctz

import (
	"time"

	"github.com/ngrash/go-cctz/internal/civil"
)

// FixedBackend is the Backend this package ships directly: it covers
// "localtime", which routes through the host's local-time facilities, and
// a fixed offset from UTC (currently always zero -- there is room here for
// a future "UTC+05:00"-style name, but only the zero offset is implemented
// today). It is grounded on cctz's TimeZoneLibC, which plays the same role
// backed by gmtime_r/localtime_r/mktime.
type FixedBackend struct {
	local  bool
	offset int32
	abbr   string
}

// NewFixedBackend constructs a FixedBackend for name. Construction never
// fails: an unrecognized name behaves as UTC, matching the Backend
// construction contract.
func NewFixedBackend(name string) *FixedBackend {
	if name == "localtime" {
		return &FixedBackend{local: true}
	}
	return &FixedBackend{local: false, offset: 0, abbr: "UTC"}
}

func (b *FixedBackend) BreakTime(t Instant) Breakdown {
	var tm time.Time
	var abbr string
	var offset int32
	var isDST bool

	if b.local {
		tm = time.Unix(t.sec, 0).In(time.Local)
		var offsetSec int
		abbr, offsetSec = tm.Zone()
		offset = int32(offsetSec)
		isDST = b.isLocalDST(tm)
	} else {
		tm = time.Unix(t.sec, 0).UTC()
		offset = b.offset
		abbr = b.abbr
	}

	wd := int(tm.Weekday())
	if wd == 0 {
		wd = 7
	}

	return Breakdown{
		Year:      int64(tm.Year()),
		Month:     int(tm.Month()),
		Day:       tm.Day(),
		Hour:      tm.Hour(),
		Minute:    tm.Minute(),
		Second:    tm.Second(),
		Subsecond: Nanoseconds(int64(t.nsec)),
		Weekday:   wd,
		Yearday:   tm.YearDay(),
		Offset:    offset,
		IsDST:     isDST,
		Abbr:      abbr,
	}
}

// isLocalDST reports whether tm's offset differs from the offset in effect
// at the start of the same year. Go's time package does not expose a
// libc-style tm_isdst flag, so this approximates it; it is wrong for zones
// that observe DST across the turn of the year, a limitation shared with
// any heuristic that cannot consult the zone's actual transition table
// (that is what package tzfif is for).
func (b *FixedBackend) isLocalDST(tm time.Time) bool {
	_, offset := tm.Zone()
	jan := time.Date(tm.Year(), time.January, 1, 0, 0, 0, 0, time.Local)
	_, janOffset := jan.Zone()
	return offset != janOffset
}

func (b *FixedBackend) MakeTimeInfo(year int64, month, day, hour, minute, second int) TimeInfo {
	if b.local {
		return b.makeTimeInfoLocal(year, month, day, hour, minute, second)
	}
	return b.makeTimeInfoUTC(year, month, day, hour, minute, second)
}

func (b *FixedBackend) makeTimeInfoLocal(year int64, month, day, hour, minute, second int) TimeInfo {
	// Does not handle Skipped/Repeated or years outside the platform's int
	// range; mirrors TimeZoneLibC::MakeTimeInfo's local branch, which
	// likewise defers entirely to mktime(3) and cannot diagnose those
	// cases either.
	y := int(year)
	tm := time.Date(y, time.Month(month), day, hour, minute, second, 0, time.Local)
	normalized := tm.Year() != y || int(tm.Month()) != month || tm.Day() != day ||
		tm.Hour() != hour || tm.Minute() != minute || tm.Second() != second

	inst := UnixInstant(tm.Unix())
	return TimeInfo{Kind: Unique, Pre: inst, Trans: inst, Post: inst, Normalized: normalized}
}

func (b *FixedBackend) makeTimeInfoUTC(year int64, month, day, hour, minute, second int) TimeInfo {
	out, normalized := civil.Normalize(civil.Fields{
		Year: year, Month: month, Day: day,
		Hour: hour, Minute: minute, Second: second,
	})
	sec := ((civil.DayOrdinal(out.Year, out.Month, out.Day)*24+int64(out.Hour))*60+int64(out.Minute))*60 + int64(out.Second)
	inst := UnixInstant(sec)
	return TimeInfo{Kind: Unique, Pre: inst, Trans: inst, Post: inst, Normalized: normalized}
}
