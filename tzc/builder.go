package tzc

import (
	"github.com/ngrash/go-cctz/internal/tzir"
	"github.com/ngrash/go-cctz/tzif"
)

// builder accumulates a zone's transitions and local time types into a
// tzif.Data, deduplicating local time types by (offset, dst, abbr) and
// building the designation string table as it goes.
type builder struct {
	version Version
	trans   []tzir.Transition
	types   []tzif.LocalTimeTypeRecord
	typeIdx map[localTypeKey]int
	names   []byte
	footer  string
}

// Version mirrors tzif.Version to keep this package's public surface free
// of a direct tzif import requirement in callers that only need Compile.
type Version = tzif.Version

type localTypeKey struct {
	utoff int32
	dst   bool
	abbr  string
}

// minimalV1Compliance resets the builder to an empty state, ready to have
// an initial type and transitions added. The name refers to RFC 8536's
// requirement that typecnt and charcnt never be zero; callers satisfy that
// by interning at least one type (normally the zone's initial type) before
// calling Data.
func (b *builder) minimalV1Compliance() {
	*b = builder{version: tzif.V2, typeIdx: map[localTypeKey]int{}}
}

// setInitial interns the local time type in effect before the zone's first
// transition. It must be called before any addTransition so that type
// ends up at index 0, the type TZif readers fall back to for timestamps
// preceding the earliest transition.
func (b *builder) setInitial(t tzir.Transition) {
	b.internType(t.Utoff, t.IsDST, t.Abbr)
}

// internType returns the index of the local time type matching the given
// offset, DST flag, and abbreviation, adding a new record if none matches.
func (b *builder) internType(utoff int32, dst bool, abbr string) int {
	key := localTypeKey{utoff, dst, abbr}
	if idx, ok := b.typeIdx[key]; ok {
		return idx
	}
	idx := len(b.types)
	b.types = append(b.types, tzif.LocalTimeTypeRecord{
		Utoff: utoff,
		Dst:   dst,
		Idx:   uint8(len(b.names)),
	})
	b.names = append(b.names, append([]byte(abbr), 0)...)
	b.typeIdx[key] = idx
	return idx
}

// addTransition records a single compiled transition.
func (b *builder) addTransition(t tzir.Transition) {
	b.internType(t.Utoff, t.IsDST, t.Abbr)
	b.trans = append(b.trans, t)
}

// setFooter sets the POSIX TZ string describing time beyond the last
// transition. An empty string means that information is unavailable.
func (b *builder) setFooter(tz string) {
	b.footer = tz
}

// deriveV2HeaderFromData is a placeholder kept for symmetry with
// Data, which does the actual header derivation; it exists so callers can
// read the build as the same four-step recipe zic itself follows:
// seed types, add transitions, set the footer, derive the header.
func (b *builder) deriveV2HeaderFromData() {}

// Data assembles the accumulated types and transitions into a tzif.Data.
// The V1 block carries only transitions that fit in a 32-bit time value,
// per RFC 8536's guidance that V1 exists purely for backward compatibility
// with readers that don't understand the V2+ 64-bit block; V2 always
// carries the complete set.
func (b *builder) Data() tzif.Data {
	v1 := b.v1Block()
	v2 := b.v2Block()

	v1h := tzif.Header{
		Version: b.version,
		Timecnt: uint32(len(v1.TransitionTimes)),
		Typecnt: uint32(len(b.types)),
		Charcnt: uint32(len(b.names)),
	}
	v2h := tzif.Header{
		Version: b.version,
		Timecnt: uint32(len(v2.TransitionTimes)),
		Typecnt: uint32(len(b.types)),
		Charcnt: uint32(len(b.names)),
	}

	return tzif.Data{
		Version:  b.version,
		V1Header: v1h,
		V1Data:   v1,
		V2Header: v2h,
		V2Data:   v2,
		V2Footer: tzif.Footer{TZString: []byte(b.footer)},
	}
}

func (b *builder) v1Block() tzif.V1DataBlock {
	var d tzif.V1DataBlock
	d.LocalTimeTypeRecord = b.types
	d.TimeZoneDesignation = b.names
	for _, t := range b.trans {
		if t.At < minInt32 || t.At > maxInt32 {
			continue
		}
		d.TransitionTimes = append(d.TransitionTimes, int32(t.At))
		d.TransitionTypes = append(d.TransitionTypes, uint8(b.typeIdx[localTypeKey{t.Utoff, t.IsDST, t.Abbr}]))
	}
	return d
}

func (b *builder) v2Block() tzif.V2DataBlock {
	var d tzif.V2DataBlock
	d.LocalTimeTypeRecord = b.types
	d.TimeZoneDesignation = b.names
	for _, t := range b.trans {
		d.TransitionTimes = append(d.TransitionTimes, t.At)
		d.TransitionTypes = append(d.TransitionTypes, uint8(b.typeIdx[localTypeKey{t.Utoff, t.IsDST, t.Abbr}]))
	}
	return d
}

const (
	minInt32 = -1 << 31
	maxInt32 = 1<<31 - 1
)
