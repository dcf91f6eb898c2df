// Package tzir turns the zone and rule lines parsed by package tzdata into a
// flat, chronologically ordered list of UTC transitions for a single zone,
// the intermediate representation that package tzc turns into a TZif file.
package tzir

import (
	"fmt"
	"sort"
	"time"

	"github.com/ngrash/go-cctz/internal/tzexpand"
	"github.com/ngrash/go-cctz/internal/unixtime"
	"github.com/ngrash/go-cctz/tzdata"
)

// Transition is a single point in UTC time at which a zone's offset,
// DST status, or designation changes.
type Transition struct {
	At    int64 // unix seconds
	Utoff int32
	IsDST bool
	Abbr  string
}

// Zone is the flattened transition history of a single named zone, spanning
// every one of its continuation lines. Initial is the local time type in
// effect before the zone's first real transition; it carries no meaningful
// At and is never itself emitted as a transition record, matching how a
// TZif reader falls back to local time type 0 for timestamps preceding the
// earliest transition.
type Zone struct {
	Name        string
	Initial     Transition
	Transitions []Transition // sorted ascending by At
}

// Process compiles the continuation lines of a single zone into its
// transition history. The horizon for indefinite ("forever") rules is
// bounded by tzexpand.EpochMin/EpochMax, the same 32-bit-safe window zic
// itself favors when it has no later continuation line to stop at.
//
// Boundary transitions between continuation lines are converted to UTC
// using the outgoing line's own standard offset, ignoring whatever DST
// save its rules might still have applied at that exact instant. Real
// zic tables occasionally fall at a moment a save was active, which this
// approximation would misplace by the save's amount; exact replication
// of zic's continuation-boundary algorithm is out of scope here.
func Process(f tzdata.File, name string, lines []tzdata.ZoneLine) (Zone, error) {
	z := Zone{Name: name}
	for i, line := range lines {
		windowStart := tzexpand.EpochMin.Year
		if i > 0 {
			windowStart = startYear(lines[i-1])
		}
		windowEnd := tzexpand.EpochMax.Year
		if line.Until.Defined {
			windowEnd = line.Until.Year
		}

		initial, rest, err := continuationTransitions(f, line, windowStart, windowEnd)
		if err != nil {
			return Zone{}, fmt.Errorf("zone %s: %w", name, err)
		}

		if i == 0 {
			z.Initial = initial
		} else {
			boundary := int64(tzexpand.Earliest(lines[i-1].Until)) - int64(lines[i-1].Offset.Seconds())
			z.Transitions = append(z.Transitions, Transition{
				At:    boundary,
				Utoff: initial.Utoff,
				IsDST: initial.IsDST,
				Abbr:  initial.Abbr,
			})
		}
		z.Transitions = append(z.Transitions, rest...)
	}
	sort.Slice(z.Transitions, func(i, j int) bool { return z.Transitions[i].At < z.Transitions[j].At })
	return z, nil
}

// startYear reports the first year a continuation line can possibly apply,
// used as the lower bound for expanding the next line's rules.
func startYear(line tzdata.ZoneLine) int {
	if line.Until.Defined {
		return line.Until.Year
	}
	return tzexpand.EpochMin.Year
}

// continuationTransitions returns the local time type in effect at the
// start of line (initial, used either to seed the file's default type or
// as the target of a continuation boundary transition) and any further
// rule-driven transitions line's own rule set produces within
// [minYear, maxYear].
func continuationTransitions(f tzdata.File, line tzdata.ZoneLine, minYear, maxYear int) (Transition, []Transition, error) {
	switch line.Rules.Form {
	case tzdata.ZoneRulesStandard:
		return Transition{
			Utoff: int32(line.Offset.Seconds()),
			Abbr:  formatAbbr(line.Format, ""),
		}, nil, nil
	case tzdata.ZoneRulesTime:
		save := line.Rules.Time.TimeOfDay
		return Transition{
			Utoff: int32(line.Offset.Seconds() + save.Seconds()),
			IsDST: save != 0,
			Abbr:  formatAbbr(line.Format, ""),
		}, nil, nil
	case tzdata.ZoneRulesName:
		rules, err := findRules(f.RuleLines, line.Rules.Name)
		if err != nil {
			return Transition{}, nil, err
		}
		min := tzexpand.Moment{Year: minYear, Month: time.January, Day: 1}
		max := tzexpand.Moment{Year: maxYear, Month: time.December, Day: 31}
		expanded := tzexpand.ExpandRules(min, max, rules)

		// A zone line with a named rule set starts in standard time by
		// default: any timestamp preceding the line's first rule uses
		// the rule set's standard (non-saving) offset.
		initial := Transition{
			Utoff: int32(line.Offset.Seconds()),
			Abbr:  formatAbbr(line.Format, ""),
		}

		var (
			out        []Transition
			activeSave time.Duration
		)
		for _, r := range expanded {
			utc := ruleOccurrenceUTC(r, line.Offset, activeSave)
			out = append(out, Transition{
				At:    utc,
				Utoff: int32(line.Offset.Seconds() + r.Save.TimeOfDay.Seconds()),
				IsDST: r.Save.TimeOfDay != 0,
				Abbr:  formatAbbr(line.Format, r.Letter),
			})
			activeSave = r.Save.TimeOfDay
		}
		return initial, out, nil
	default:
		return Transition{}, nil, fmt.Errorf("unsupported zone rules form %v", line.Rules.Form)
	}
}

// ruleOccurrenceUTC converts a rule's civil AT field to a UTC unix
// timestamp. WallClock and StandardTime are both relative to the zone's
// standard offset; WallClock additionally accounts for whatever save was in
// effect immediately before this rule fires, mirroring the "the rule in
// effect before a transition governs the transition's own wall-clock time"
// behavior zic implements.
func ruleOccurrenceUTC(r tzdata.RuleLine, zoneOffset time.Duration, activeSave time.Duration) int64 {
	h, m, s := splitTime(r.At.TimeOfDay)
	wall := unixtime.FromDateTime(int(r.From), int(r.In), r.On.Num, h, m, s)
	switch r.At.Form {
	case tzdata.UniversalTime:
		return wall
	case tzdata.StandardTime:
		return wall - int64(zoneOffset.Seconds())
	default: // WallClock
		return wall - int64(zoneOffset.Seconds()) - int64(activeSave.Seconds())
	}
}

// formatAbbr renders a zone's FORMAT column given the LETTER in effect.
// FORMAT is either a %s template (the common case) or a slash-separated
// "STD/DST" pair.
func formatAbbr(format, letter string) string {
	if i := indexByte(format, '/'); i >= 0 {
		if letter == "" {
			return format[:i]
		}
		return format[i+1:]
	}
	if i := indexStr(format, "%s"); i >= 0 {
		if letter == "-" {
			letter = ""
		}
		return format[:i] + letter + format[i+2:]
	}
	return format
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

func indexStr(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

func splitTime(d time.Duration) (hours, minutes, seconds int) {
	total := int(d / time.Second)
	hours = total / 3600
	minutes = (total % 3600) / 60
	seconds = total % 60
	return
}

func findRules(l []tzdata.RuleLine, name string) ([]tzdata.RuleLine, error) {
	var rules []tzdata.RuleLine
	for _, r := range l {
		if r.Name == name {
			rules = append(rules, r)
		}
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("no rules found for name %s", name)
	}
	return rules, nil
}
