package tzir

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ngrash/go-cctz/tzdata"
)

const zurichSource = `
# Rule  NAME  FROM  TO    -  IN   ON       AT    SAVE  LETTER/S
Rule    Swiss 1941  1942  -  May  Mon>=1   1:00  1:00  S
Rule    Swiss 1941  1942  -  Oct  Mon>=1   2:00  0     -
Rule    EU    1977  1980  -  Apr  Sun>=1   1:00u 1:00  S
Rule    EU    1977  only  -  Sep  lastSun  1:00u 0     -
Rule    EU    1978  only  -  Oct   1       1:00u 0     -
Rule    EU    1979  1995  -  Sep  lastSun  1:00u 0     -
Rule    EU    1981  max   -  Mar  lastSun  1:00u 1:00  S
Rule    EU    1996  max   -  Oct  lastSun  1:00u 0     -

# Zone  NAME             STDOFF  RULES  FORMAT  [UNTIL]
Zone    Europe/Zurich    0:34:08 -      LMT     1894 Jun
                         1:00    Swiss  CE%sT   1981
                         1:00    EU     CE%sT
`

func parseZurich(t *testing.T) (tzdata.File, []tzdata.ZoneLine) {
	t.Helper()
	f, err := tzdata.Parse(bytes.NewReader([]byte(strings.TrimSpace(zurichSource))))
	if err != nil {
		t.Fatalf("tzdata.Parse() error: %v", err)
	}
	return f, f.ZoneLines
}

func TestProcessInitialIsLMT(t *testing.T) {
	f, lines := parseZurich(t)
	z, err := Process(f, "Europe/Zurich", lines)
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if z.Initial.Utoff != 34*60+8 {
		t.Errorf("Initial.Utoff = %d, want %d (LMT 0:34:08)", z.Initial.Utoff, 34*60+8)
	}
	if z.Initial.Abbr != "LMT" {
		t.Errorf("Initial.Abbr = %q, want LMT", z.Initial.Abbr)
	}
}

func TestProcessTransitionsAreSortedAndDistinct(t *testing.T) {
	f, lines := parseZurich(t)
	z, err := Process(f, "Europe/Zurich", lines)
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if len(z.Transitions) == 0 {
		t.Fatal("expected at least one transition once named rules are in play")
	}
	for i := 1; i < len(z.Transitions); i++ {
		if z.Transitions[i-1].At >= z.Transitions[i].At {
			t.Fatalf("transitions not strictly ascending at index %d: %+v", i, z.Transitions[i-1:i+1])
		}
	}
}

func TestProcessIncludesBothStandardAndDSTOffsets(t *testing.T) {
	f, lines := parseZurich(t)
	z, err := Process(f, "Europe/Zurich", lines)
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	var sawStandard, sawDST bool
	for _, tr := range z.Transitions {
		if tr.Utoff == 3600 && !tr.IsDST {
			sawStandard = true
		}
		if tr.Utoff == 7200 && tr.IsDST {
			sawDST = true
		}
	}
	if !sawStandard {
		t.Error("expected a CET (UTC+1, non-DST) transition")
	}
	if !sawDST {
		t.Error("expected a CEST (UTC+2, DST) transition")
	}
}

func TestProcessUnknownRuleSetErrors(t *testing.T) {
	src := "Zone Bogus/Zone 1:00 NoSuchRuleSet FOO\n"
	f, err := tzdata.Parse(bytes.NewReader([]byte(src)))
	if err != nil {
		t.Fatalf("tzdata.Parse() error: %v", err)
	}
	if _, err := Process(f, "Bogus/Zone", f.ZoneLines); err == nil {
		t.Fatal("expected an error for a zone referencing an undefined rule set")
	}
}
