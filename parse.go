package cctz

import (
	"math"
	"strings"
	"time"

	"github.com/ngrash/go-cctz/internal/civil"
)

const sentinelOffset = math.MinInt32

// parseInt consumes up to width decimal digits (0 means unlimited) from s
// starting at i, allowing a leading '-', and accumulates negative so that
// the most-negative representable value stays reachable. Returns the new
// index and false if no valid integer in [min,max] could be read.
func parseInt(s []byte, i, width int, min, max int64) (int64, int, bool) {
	if i >= len(s) {
		return 0, i, false
	}
	neg := false
	start := i
	w := width
	if s[i] == '-' {
		neg = true
		if w > 0 {
			w--
		}
		if w == 0 && width > 0 {
			// width was exactly 1: no room left for any digit.
			return 0, start, false
		}
		i++
	}
	bp := i
	var value int64
	read := false
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		d := int64(s[i] - '0')
		if value < (math.MinInt64)/10 {
			return 0, start, false
		}
		value *= 10
		if value < math.MinInt64+d {
			return 0, start, false
		}
		value -= d
		i++
		read = true
		if width > 0 {
			w--
			if w == 0 {
				break
			}
		}
	}
	if i == bp || !read {
		return 0, start, false
	}
	if neg && value == 0 {
		return 0, start, false
	}
	if !neg && value == math.MinInt64 {
		// Negating this would overflow back to math.MinInt64 via Go's
		// two's-complement wraparound; the unsigned numeral one past
		// int64's positive range has no valid representation.
		return 0, start, false
	}
	if !neg {
		value = -value
	}
	if value < min || value > max {
		return 0, start, false
	}
	return value, i, true
}

func parseOffsetAt(s []byte, i int, sep byte) (int, int, bool) {
	if i >= len(s) {
		return 0, i, false
	}
	sign := s[i]
	if sign != '+' && sign != '-' {
		return 0, i, false
	}
	i++
	hours, ni, ok := parseInt(s, i, 2, 0, 23)
	if !ok || ni-i != 2 {
		return 0, i, false
	}
	i = ni
	if sep != 0 && i < len(s) && s[i] == sep {
		i++
	}
	minutes, ni, ok := parseInt(s, i, 2, 0, 59)
	if ok && ni-i == 2 {
		i = ni
	} else {
		minutes = 0
	}
	total := int(hours*60 + minutes) * 60
	if sign == '-' {
		total = -total
	}
	return total, i, true
}

func parseZoneAt(s []byte, i int) (string, int) {
	start := i
	for i < len(s) && s[i] != ' ' && s[i] != '\t' && s[i] != '\n' && s[i] != '\r' {
		i++
	}
	return string(s[start:i]), i
}

func parseSubSecondsAt(s []byte, i int) (int64, int, bool) {
	if i >= len(s) || s[i] != '.' {
		return 0, i, true
	}
	i++
	start := i
	var v int64
	exp := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		if exp < 9 {
			exp++
			v = v*10 + int64(s[i]-'0')
		}
		i++
	}
	if i == start {
		return 0, i, false
	}
	v *= exp10[9-exp]
	return v, i, true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// parseState mirrors the std::tm fields cctz_fmt.cc::Parse accumulates
// before reconciling them into an Instant.
type parseState struct {
	year                 int64
	month, day           int
	hour, minute, second int
	subseconds           int64
	offset               int
	zone                 string
	twelveHour           bool
	afternoon            bool
	sawPercentS          bool
	percentSTime         int64
	yday                 int
	sawYday              bool
}

// Parse attempts to interpret input according to format, in the context of
// zone z, and reports whether it succeeded. On success *out holds the
// parsed Instant; on failure *out is left unmodified.
func Parse(format, input string, z Zone, out *Instant) bool {
	data := []byte(input)
	di := 0
	for di < len(data) && isSpace(data[di]) {
		di++
	}

	st := parseState{
		year: 1970, month: 1, day: 1,
		offset: sentinelOffset,
		zone:   "UTC",
	}

	f := []byte(format)
	fi := 0
	ok := true

	for ok && fi < len(f) {
		if isSpace(f[fi]) {
			for di < len(data) && isSpace(data[di]) {
				di++
			}
			for fi < len(f) && isSpace(f[fi]) {
				fi++
			}
			continue
		}

		if f[fi] != '%' {
			if di < len(data) && data[di] == f[fi] {
				di++
				fi++
			} else {
				ok = false
			}
			continue
		}

		percent := fi
		fi++
		if fi >= len(f) {
			ok = false
			continue
		}

		spec := f[fi]
		fi++
		var consumed bool // true if handled without delegating to the generic parser

		switch spec {
		case 'Y':
			v, ni, good := parseInt(data, di, 0, math.MinInt64+1900, math.MaxInt64)
			if !good {
				ok = false
				continue
			}
			di = ni
			st.year = v
			consumed = true
		case 'm':
			v, ni, good := parseInt(data, di, 2, 1, 12)
			if !good {
				ok = false
				continue
			}
			di = ni
			st.month = int(v)
			consumed = true
		case 'd':
			v, ni, good := parseInt(data, di, 2, 1, 31)
			if !good {
				ok = false
				continue
			}
			di = ni
			st.day = int(v)
			consumed = true
		case 'H':
			v, ni, good := parseInt(data, di, 2, 0, 23)
			if !good {
				ok = false
				continue
			}
			di = ni
			st.hour = int(v)
			st.twelveHour = false
			consumed = true
		case 'M':
			v, ni, good := parseInt(data, di, 2, 0, 59)
			if !good {
				ok = false
				continue
			}
			di = ni
			st.minute = int(v)
			consumed = true
		case 'S':
			v, ni, good := parseInt(data, di, 2, 0, 60)
			if !good {
				ok = false
				continue
			}
			di = ni
			st.second = int(v)
			consumed = true
		case 'I', 'r':
			st.twelveHour = true
		case 'R', 'T', 'c', 'X':
			st.twelveHour = false
		case 'z':
			off, ni, good := parseOffsetAt(data, di, 0)
			if !good {
				ok = false
				continue
			}
			di = ni
			st.offset = off
			consumed = true
		case 'Z':
			zone, ni := parseZoneAt(data, di)
			if zone == "" {
				ok = false
				continue
			}
			di = ni
			st.zone = zone
			consumed = true
		case 's':
			v, ni, good := parseInt(data, di, 0, math.MinInt64, math.MaxInt64)
			if !good {
				ok = false
				continue
			}
			di = ni
			st.percentSTime = v
			st.sawPercentS = true
			consumed = true
		case 'E':
			if fi < len(f) && f[fi] == 'z' {
				fi++
				if di < len(data) && data[di] == 'Z' {
					st.offset = 0
					di++
				} else {
					off, ni, good := parseOffsetAt(data, di, ':')
					if !good {
						ok = false
						continue
					}
					di = ni
					st.offset = off
				}
				consumed = true
				continue
			}
			if fi+1 < len(f) && f[fi] == '*' && f[fi+1] == 'S' {
				fi += 2
				v, ni, good := parseInt(data, di, 2, 0, 60)
				if !good {
					ok = false
					continue
				}
				di = ni
				st.second = int(v)
				sub, ni2, good2 := parseSubSecondsAt(data, di)
				if !good2 {
					ok = false
					continue
				}
				di = ni2
				st.subseconds = sub
				consumed = true
				continue
			}
			if fi+1 < len(f) && f[fi] == '4' && f[fi+1] == 'Y' {
				fi += 2
				bp := di
				v, ni, good := parseInt(data, di, 4, -999, 9999)
				if !good || ni-bp != 4 {
					ok = false
					continue
				}
				di = ni
				st.year = v
				consumed = true
				continue
			}
			if f[fi] >= '0' && f[fi] <= '9' {
				n, np, good := parseDigitsFixed(f, fi, 0, 1024)
				if good && np < len(f) && f[np] == 'S' {
					fi = np + 1
					v, ni, good2 := parseInt(data, di, 2, 0, 60)
					if !good2 {
						ok = false
						continue
					}
					di = ni
					st.second = int(v)
					if n > 0 {
						sub, ni2, good3 := parseSubSecondsAt(data, di)
						if !good3 {
							ok = false
							continue
						}
						di = ni2
						st.subseconds = sub
					}
					consumed = true
					continue
				}
			}
			if fi < len(f) && f[fi] == 'c' {
				st.twelveHour = false
			}
			if fi < len(f) && f[fi] == 'X' {
				st.twelveHour = false
			}
			if fi < len(f) {
				fi++
			}
		case 'O':
			if fi < len(f) && f[fi] == 'H' {
				st.twelveHour = false
			}
			if fi < len(f) && f[fi] == 'I' {
				st.twelveHour = true
			}
			if fi < len(f) {
				fi++
			}
		}

		if consumed {
			continue
		}

		// Delegate the directive to the generic directive parser, the
		// counterpart to format.go's formatGeneric. Stands in for
		// strptime(3), which the original calls for anything it does not
		// special-case. Unlike the original, which cannot see AM/PM
		// directly and must reparse "1"+text against "%I%p" to find out,
		// our %p case below recognizes the matched text itself.
		spanFmt := string(f[percent:fi])
		ndi, good := parseGeneric(spanFmt, data, di, &st)
		if !good {
			ok = false
			continue
		}
		di = ndi
	}

	if st.twelveHour && st.afternoon && st.hour < 12 {
		st.hour += 12
	}

	if !ok {
		return false
	}

	for di < len(data) && isSpace(data[di]) {
		di++
	}
	if di != len(data) {
		return false
	}

	if st.sawPercentS {
		*out = UnixInstant(st.percentSTime)
		return true
	}

	var target Zone
	offset := st.offset
	if offset != sentinelOffset {
		target = UTC()
	} else {
		target = z
		offset = 0
	}

	if st.second == 60 {
		st.second = 59
		offset--
		st.subseconds = 0
	}

	year := st.year
	if st.sawYday {
		if st.yday < 1 || st.yday > civil.DaysPerYear(year) {
			return false
		}
		days := civil.DayOrdinal(year, 1, 1) + int64(st.yday-1)
		_, st.month, st.day = civil.CivilFromDays(days)
	}
	if st.month == 0 {
		st.month = 1
	}
	if st.day == 0 {
		st.day = 1
	}

	ti := target.MakeTime(year, st.month, st.day, st.hour, st.minute, st.second)
	if ti.Normalized {
		return false
	}

	result := ti.Pre.Add(Seconds(-int64(offset)))
	result = result.Add(Nanoseconds(st.subseconds))
	*out = result
	return true
}

func parseGeneric(spec string, data []byte, di int, st *parseState) (int, bool) {
	switch spec {
	case "%p", "%P":
		for _, cand := range []struct {
			text      string
			afternoon bool
		}{{"AM", false}, {"PM", true}, {"am", false}, {"pm", true}} {
			if di+len(cand.text) <= len(data) && string(data[di:di+len(cand.text)]) == cand.text {
				st.afternoon = cand.afternoon
				return di + len(cand.text), true
			}
		}
		return di, false
	case "%a", "%A":
		for di < len(data) && isAlpha(data[di]) {
			di++
		}
		return di, true
	case "%b", "%B", "%h":
		start := di
		for di < len(data) && isAlpha(data[di]) {
			di++
		}
		name := string(data[start:di])
		if m, ok := monthByName(name); ok {
			st.month = m
			return di, true
		}
		return di, false
	case "%I":
		v, ni, good := parseInt(data, di, 2, 1, 12)
		if !good {
			return di, false
		}
		st.hour = int(v) % 12
		st.twelveHour = true
		return ni, true
	case "%y":
		v, ni, good := parseInt(data, di, 2, 0, 99)
		if !good {
			return di, false
		}
		if v < 69 {
			st.year = 2000 + v
		} else {
			st.year = 1900 + v
		}
		return ni, true
	case "%n", "%t":
		for di < len(data) && isSpace(data[di]) {
			di++
		}
		return di, true
	case "%j":
		v, ni, good := parseInt(data, di, 3, 1, 366)
		if !good {
			return di, false
		}
		st.yday = int(v)
		st.sawYday = true
		return ni, true
	case "%U", "%W":
		// Week-of-year numbers are accepted and range-checked like
		// strptime(3) does, but play no part in reconciling the date:
		// cctz_fmt.cc's ParseTM discards them too once year/month/day or
		// %j are available.
		_, ni, good := parseInt(data, di, 2, 0, 53)
		if !good {
			return di, false
		}
		return ni, true
	case "%w":
		_, ni, good := parseInt(data, di, 1, 0, 6)
		if !good {
			return di, false
		}
		return ni, true
	case "%%":
		if di < len(data) && data[di] == '%' {
			return di + 1, true
		}
		return di, false
	default:
		// Fall back to a Go-native layout translation via time.Parse for
		// anything else we don't special-case (%R %T %c %X and similar
		// compound directives).
		return parseWithStdlib(spec, data, di, st)
	}
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

var monthNames = []string{"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December"}

func monthByName(s string) (int, bool) {
	for i, name := range monthNames {
		if strings.EqualFold(name, s) || strings.EqualFold(name[:3], s) {
			return i + 1, true
		}
	}
	return 0, false
}

// stdlibLayouts maps the handful of compound directives cctz delegates to
// strptime(3) onto Go time layouts, covering common "%R %T %c %X" usage.
var stdlibLayouts = map[string]string{
	"%R": "15:04",
	"%T": "15:04:05",
	"%c": "Mon Jan  2 15:04:05 2006",
	"%X": "15:04:05",
	"%D": "01/02/06",
	"%F": "2006-01-02",
	"%r": "03:04:05 PM",
}

func parseWithStdlib(spec string, data []byte, di int, st *parseState) (int, bool) {
	layout, ok := stdlibLayouts[spec]
	if !ok {
		return di, false
	}
	rest := string(data[di:])
	t, err := time.Parse(layout, rest)
	if err != nil {
		// time.Parse requires the whole remaining string to match the
		// layout's width; try parsing just the layout-sized prefix.
		n := len(layout)
		if n > len(rest) {
			return di, false
		}
		t, err = time.Parse(layout, rest[:n])
		if err != nil {
			return di, false
		}
		di += n
	} else {
		di = len(data)
	}
	if !t.IsZero() {
		if t.Year() > 1 {
			st.year = int64(t.Year())
		}
		if t.Month() != 0 {
			st.month = int(t.Month())
		}
		if t.Day() != 0 {
			st.day = t.Day()
		}
		st.hour = t.Hour()
		st.minute = t.Minute()
		st.second = t.Second()
	}
	return di, true
}
