package tzfif

import (
	"testing"

	cctz "github.com/ngrash/go-cctz"
	"github.com/ngrash/go-cctz/tzif"
)

// syntheticData builds a tiny two-type, three-transition TZif V2 data block:
// standard time (UTC+0) from the start, a spring-forward to UTC+1 at
// t=3600, and a fall-back to UTC+0 at t=90000, deliberately chosen to
// exercise both the Skipped and Repeated disambiguation paths.
func syntheticData() tzif.Data {
	types := []tzif.LocalTimeTypeRecord{
		{Utoff: 0, Dst: false, Idx: 0},
		{Utoff: 3600, Dst: true, Idx: 4},
	}
	designations := append([]byte("STD\x00"), []byte("DST\x00")...)
	return tzif.Data{
		Version: tzif.V2,
		V2Data: tzif.V2DataBlock{
			LocalTimeTypeRecord: types,
			TimeZoneDesignation: designations,
			TransitionTimes:     []int64{-1000000, 3600, 90000},
			TransitionTypes:     []uint8{0, 1, 0},
		},
	}
}

func TestBackendBreakTimeBeforeAnyTransition(t *testing.T) {
	b, err := NewBackend(syntheticData())
	if err != nil {
		t.Fatalf("NewBackend() error: %v", err)
	}
	bd := b.BreakTime(cctz.UnixInstant(-2000000))
	if bd.Abbr != "STD" || bd.Offset != 0 || bd.IsDST {
		t.Errorf("pre-history Breakdown = %+v, want STD/0/false", bd)
	}
}

func TestBackendBreakTimeAfterDST(t *testing.T) {
	b, err := NewBackend(syntheticData())
	if err != nil {
		t.Fatalf("NewBackend() error: %v", err)
	}
	bd := b.BreakTime(cctz.UnixInstant(5000))
	if bd.Abbr != "DST" || bd.Offset != 3600 || !bd.IsDST {
		t.Errorf("post-spring-forward Breakdown = %+v, want DST/3600/true", bd)
	}
}

func TestBackendMakeTimeInfoSkipped(t *testing.T) {
	b, err := NewBackend(syntheticData())
	if err != nil {
		t.Fatalf("NewBackend() error: %v", err)
	}
	// 1970-01-01 01:30:00 falls in the forward gap created by the 3600s
	// transition at t=3600 (offset jumps from 0 to 3600).
	ti := b.MakeTimeInfo(1970, 1, 1, 1, 30, 0)
	if ti.Kind != cctz.Skipped {
		t.Fatalf("Kind = %v, want Skipped", ti.Kind)
	}
	if ti.Trans.UnixSeconds() != 3600 {
		t.Errorf("Trans = %d, want 3600", ti.Trans.UnixSeconds())
	}
	// In a gap, extending the smaller pre-transition offset overshoots past
	// the transition, and extending the larger post-transition offset falls
	// short of it, so Post < Trans < Pre.
	if ti.Pre.UnixSeconds() != 5400 || ti.Post.UnixSeconds() != 1800 {
		t.Errorf("Pre=%d Post=%d, want Pre=5400 Post=1800", ti.Pre.UnixSeconds(), ti.Post.UnixSeconds())
	}
}

func TestBackendMakeTimeInfoRepeated(t *testing.T) {
	b, err := NewBackend(syntheticData())
	if err != nil {
		t.Fatalf("NewBackend() error: %v", err)
	}
	// naive second 91000 (1970-01-02T01:16:40) falls in [90000, 93600), the
	// overlap created by the fall-back transition at t=90000 (offset drops
	// from 3600 to 0).
	ti := b.MakeTimeInfo(1970, 1, 2, 1, 16, 40)
	if ti.Kind != cctz.Repeated {
		t.Fatalf("Kind = %v, want Repeated", ti.Kind)
	}
	if ti.Trans.UnixSeconds() != 90000 {
		t.Errorf("Trans = %d, want 90000", ti.Trans.UnixSeconds())
	}
	// In an overlap, extending the larger pre-transition offset falls short
	// of the transition and extending the smaller post-transition offset
	// overshoots past it, so Pre < Trans < Post.
	if ti.Pre.UnixSeconds() != 87400 || ti.Post.UnixSeconds() != 91000 {
		t.Errorf("Pre=%d Post=%d, want Pre=87400 Post=91000", ti.Pre.UnixSeconds(), ti.Post.UnixSeconds())
	}
}

func TestNewBackendRejectsEmptyTypes(t *testing.T) {
	_, err := NewBackend(tzif.Data{Version: tzif.V2})
	if err == nil {
		t.Fatal("NewBackend() with no local time types succeeded, want error")
	}
}
