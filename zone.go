package cctz

import "sync"

// Zone represents a time zone: a rule for converting between Instant and
// Breakdown. The zero Zone is UTC, so it is always ready to use.
type Zone struct {
	backend Backend
	name    string
}

// Name returns the name the Zone was loaded with, or "UTC" for the zero
// Zone.
func (z Zone) Name() string {
	if z.name == "" {
		return "UTC"
	}
	return z.name
}

func (z Zone) resolved() Backend {
	if z.backend == nil {
		return utcBackend
	}
	return z.backend
}

// Break converts t to a Breakdown of calendar fields in z.
func (z Zone) Break(t Instant) Breakdown {
	return z.resolved().BreakTime(t)
}

// MakeTime converts civil fields in z to a TimeInfo describing the
// resulting Instant(s).
func (z Zone) MakeTime(year int64, month, day, hour, minute, second int) TimeInfo {
	return z.resolved().MakeTimeInfo(year, month, day, hour, minute, second)
}

// NewZone builds a Zone directly from a Backend, for callers that already
// have one in hand (e.g. tzinspect, which decodes an arbitrary TZif file
// path rather than looking a name up through Load).
func NewZone(b Backend, name string) Zone {
	return Zone{backend: b, name: name}
}

var utcBackend = NewFixedBackend("UTC")
var localBackend = NewFixedBackend("localtime")

// UTC returns the UTC Zone.
func UTC() Zone {
	return Zone{backend: utcBackend, name: "UTC"}
}

// Local returns a Zone backed by the host's local time as configured by the
// operating system (on most platforms, the TZ environment variable or
// /etc/localtime). If the host's local zone cannot be determined, Local
// behaves as UTC, consistent with the rule that a Backend never fails to
// construct.
func Local() Zone {
	return Zone{backend: localBackend, name: "localtime"}
}

// loader is a named IANA-zone lookup registered by an extension package
// such as tzfif. It mirrors the database/sql driver registry: the root
// package ships only built-in zones, and a full TZif-backed implementation
// registers itself at init time without this package importing it, which
// would otherwise be an import cycle.
type loader func(name string) (Backend, bool)

var (
	loaderMu sync.RWMutex
	loaders  []loader
)

// RegisterLoader adds a zone loader consulted by Load for names not
// recognized as a built-in. Intended to be called from an extension
// package's init function, e.g. tzfif.
func RegisterLoader(l func(name string) (Backend, bool)) {
	loaderMu.Lock()
	defer loaderMu.Unlock()
	loaders = append(loaders, l)
}

// Load sets *out to the Zone named name and reports whether name was
// recognized. On failure, *out is set to UTC, so callers that ignore the
// bool still get a usable, if incorrect, Zone.
//
//	var lax cctz.Zone
//	if !cctz.Load("America/Los_Angeles", &lax) {
//		// lax is UTC; name was not recognized.
//	}
func Load(name string, out *Zone) bool {
	switch name {
	case "", "UTC", "Etc/UTC":
		*out = UTC()
		return true
	case "localtime", "Local":
		*out = Local()
		return true
	}

	loaderMu.RLock()
	ls := loaders
	loaderMu.RUnlock()
	for _, l := range ls {
		if b, ok := l(name); ok {
			*out = Zone{backend: b, name: name}
			return true
		}
	}

	*out = UTC()
	return false
}
