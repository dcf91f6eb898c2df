// Package tzfif adapts a decoded TZif file (package tzif) into a cctz.Backend,
// giving the library a full IANA time zone implementation with correct
// Skipped/Repeated disambiguation across daylight-saving transitions. It
// registers itself with cctz's loader registry so that cctz.Load can resolve
// ordinary IANA zone names once this package is imported for its side
// effects, the same pattern database/sql uses for drivers.
package tzfif

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ngrash/go-cctz"
	"github.com/ngrash/go-cctz/internal/civil"
	"github.com/ngrash/go-cctz/tzif"
)

type localType struct {
	utoff int32
	isDST bool
	abbr  string
}

type transition struct {
	at      int64
	typeIdx int
}

// Backend is a cctz.Backend backed by a decoded TZif file's transition
// table.
type Backend struct {
	trans []transition
	types []localType
}

// NewBackend builds a Backend from decoded TZif data, relying on
// tzif.Data's own preference for its 64-bit V2+ data block over the
// 32-bit V1 block when both are present.
func NewBackend(d tzif.Data) (*Backend, error) {
	types, err := decodeTypes(d.Types(), d.Designations())
	if err != nil {
		return nil, err
	}
	tzTrans := d.Transitions()
	trans := make([]transition, len(tzTrans))
	for i, t := range tzTrans {
		trans[i] = transition{at: t.At, typeIdx: t.TypeIdx}
	}
	return &Backend{trans: trans, types: types}, nil
}

func decodeTypes(records []tzif.LocalTimeTypeRecord, designations []byte) ([]localType, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("tzfif: file has no local time type records")
	}
	types := make([]localType, len(records))
	for i, r := range records {
		abbr, err := r.Designation(designations)
		if err != nil {
			return nil, fmt.Errorf("tzfif: %w", err)
		}
		types[i] = localType{utoff: r.Utoff, isDST: r.Dst, abbr: abbr}
	}
	return types, nil
}

// searchTransition returns the index of the rightmost transition at or
// before sec, or -1 if sec precedes every transition.
func (b *Backend) searchTransition(sec int64) int {
	lo, hi := 0, len(b.trans)-1
	ans := -1
	for lo <= hi {
		mid := (lo + hi) / 2
		if b.trans[mid].at <= sec {
			ans = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return ans
}

// typeAt returns the local type in effect for segment i, where i is an
// index into b.trans, or -1/len(b.trans) for the segments before the first
// and after the last transition respectively.
func (b *Backend) typeAt(i int) localType {
	switch {
	case len(b.types) == 0:
		return localType{abbr: "UTC"}
	case i < 0:
		return b.types[0]
	case i >= len(b.trans):
		return b.types[b.trans[len(b.trans)-1].typeIdx]
	default:
		return b.types[b.trans[i].typeIdx]
	}
}

func (b *Backend) BreakTime(t cctz.Instant) cctz.Breakdown {
	sec := t.UnixSeconds()
	i := b.searchTransition(sec)
	typ := b.typeAt(i)

	local := sec + int64(typ.utoff)
	days := floorDiv(local, 86400)
	secOfDay := local - days*86400
	year, month, day := civil.CivilFromDays(days)

	return cctz.Breakdown{
		Year:      year,
		Month:     month,
		Day:       day,
		Hour:      int(secOfDay / 3600),
		Minute:    int((secOfDay % 3600) / 60),
		Second:    int(secOfDay % 60),
		Subsecond: cctz.Nanoseconds(int64(t.Nanoseconds())),
		Weekday:   civil.Weekday(days),
		Yearday:   civil.YearDay(year, month, day),
		Offset:    typ.utoff,
		IsDST:     typ.isDST,
		Abbr:      typ.abbr,
	}
}

func (b *Backend) MakeTimeInfo(year int64, month, day, hour, minute, second int) cctz.TimeInfo {
	out, normalized := civil.Normalize(civil.Fields{
		Year: year, Month: month, Day: day,
		Hour: hour, Minute: minute, Second: second,
	})
	naive := ((civil.DayOrdinal(out.Year, out.Month, out.Day)*24+int64(out.Hour))*60+int64(out.Minute))*60 + int64(out.Second)

	ti := b.classify(naive)
	ti.Normalized = normalized
	return ti
}

// classify implements the standard local-time disambiguation technique:
// locate the transition boundary nearest the naive (as-if-UTC) seconds
// value, and check whether it falls in the gap or overlap that boundary's
// offset change creates.
func (b *Backend) classify(naive int64) cctz.TimeInfo {
	i := b.searchTransition(naive)
	if ti, ok := b.checkBoundary(i, naive); ok {
		return ti
	}
	if ti, ok := b.checkBoundary(i+1, naive); ok {
		return ti
	}
	typ := b.typeAt(i)
	inst := cctz.UnixInstant(naive - int64(typ.utoff))
	return cctz.TimeInfo{Kind: cctz.Unique, Pre: inst, Trans: inst, Post: inst}
}

// checkBoundary tests whether naive falls in the ambiguous window created
// by the transition at b.trans[i], which separates typeAt(i-1) from
// typeAt(i).
func (b *Backend) checkBoundary(i int, naive int64) (cctz.TimeInfo, bool) {
	if i <= 0 || i >= len(b.trans) {
		return cctz.TimeInfo{}, false
	}
	prev := b.typeAt(i - 1)
	cur := b.typeAt(i)
	tr := b.trans[i].at
	begin := tr + int64(prev.utoff)
	end := tr + int64(cur.utoff)
	trans := cctz.UnixInstant(tr)

	switch {
	case cur.utoff > prev.utoff && naive >= begin && naive < end:
		return cctz.TimeInfo{
			Kind:  cctz.Skipped,
			Pre:   cctz.UnixInstant(naive - int64(prev.utoff)),
			Trans: trans,
			Post:  cctz.UnixInstant(naive - int64(cur.utoff)),
		}, true
	case cur.utoff < prev.utoff && naive >= end && naive < begin:
		return cctz.TimeInfo{
			Kind:  cctz.Repeated,
			Pre:   cctz.UnixInstant(naive - int64(prev.utoff)),
			Trans: trans,
			Post:  cctz.UnixInstant(naive - int64(cur.utoff)),
		}, true
	default:
		return cctz.TimeInfo{}, false
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// SearchPaths lists directories consulted for compiled TZif files, in
// order, when resolving a zone name. It defaults to the conventional
// system zoneinfo locations; cmd/cctzpull's output directory is a common
// addition.
var SearchPaths = []string{"/usr/share/zoneinfo", "/usr/share/lib/zoneinfo", "/etc/zoneinfo"}

var (
	cacheMu sync.Mutex
	cache   = map[string]*Backend{}
)

func load(name string) (cctz.Backend, bool) {
	if name == "" {
		return nil, false
	}

	cacheMu.Lock()
	if b, ok := cache[name]; ok {
		cacheMu.Unlock()
		return b, true
	}
	cacheMu.Unlock()

	for _, dir := range SearchPaths {
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		data, err := tzif.DecodeData(f)
		f.Close()
		if err != nil {
			continue
		}
		b, err := NewBackend(data)
		if err != nil {
			continue
		}
		cacheMu.Lock()
		cache[name] = b
		cacheMu.Unlock()
		return b, true
	}
	return nil, false
}

func init() {
	cctz.RegisterLoader(load)
}
