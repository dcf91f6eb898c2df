package cctz

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const digitChars = "0123456789"

// digits10Int64 is the number of base-10 digits representable by an int64.
const digits10Int64 = 18

var exp10 = [digits10Int64 + 1]int64{
	1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000,
	1000000000, 10000000000, 100000000000, 1000000000000,
	10000000000000, 100000000000000, 1000000000000000,
	10000000000000000, 100000000000000000, 1000000000000000000,
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// format64 renders v in a field at least width characters wide, zero-padded
// after the leading '-' of a negative value; the '-' counts toward width,
// so format64(4, -1) is "-001". width == 0 means "as many digits as needed".
func format64(width int, v int64) string {
	buf := make([]byte, 0, 24)
	neg := false
	if v < 0 {
		width--
		neg = true
		if v == math.MinInt64 {
			last := -(v % 10)
			v /= 10
			if last < 0 {
				v++
				last += 10
			}
			width--
			buf = append(buf, digitChars[last])
		}
		v = -v
	}
	for {
		width--
		buf = append(buf, digitChars[v%10])
		v /= 10
		if v == 0 {
			break
		}
	}
	for width > 0 {
		buf = append(buf, '0')
		width--
	}
	if neg {
		buf = append(buf, '-')
	}
	reverseBytes(buf)
	return string(buf)
}

// format02d renders v mod 100 as exactly two digits.
func format02d(v int) string {
	v = v % 100
	if v < 0 {
		v += 100
	}
	return string([]byte{digitChars[(v/10)%10], digitChars[v%10]})
}

// formatOffset renders a UTC offset given in minutes as +HHMM, or +HH:MM
// when sep is nonzero.
func formatOffset(minutes int, sep byte) string {
	sign := byte('+')
	if minutes < 0 {
		minutes = -minutes
		sign = '-'
	}
	var b []byte
	b = append(b, sign)
	b = append(b, format02d(minutes/60)...)
	if sep != 0 {
		b = append(b, sep)
	}
	b = append(b, format02d(minutes%60)...)
	return string(b)
}

// Format renders t, broken down in z, according to format. format is a
// superset of POSIX strftime(3): %Y %m %d %e %H %M %S %z %Z %s are handled
// internally for speed and portability, %Ez %E*S %E<n>S %E4Y are cctz
// extensions, and everything else is delegated to the host's general
// time-formatting helper (Go's time.Time.Format, translated from strftime
// spelling).
func Format(format string, t Instant, z Zone) string {
	bd := z.Break(t)
	var result strings.Builder

	f := []byte(format)
	end := len(f)
	pending := 0
	cur := 0

	flush := func(upto int) {
		if upto != pending {
			result.WriteString(formatGeneric(string(f[pending:upto]), bd))
		}
	}

	for cur != end {
		start := cur
		for cur != end && f[cur] != '%' {
			cur++
		}
		if cur != start && pending == start {
			result.Write(f[pending:cur])
			pending = cur
			start = cur
		}

		percent := cur
		for cur != end && f[cur] == '%' {
			cur++
		}
		if cur != start && pending == start {
			escaped := (cur - pending) / 2
			result.Write(f[pending : pending+escaped])
			pending += escaped * 2
			if pending != cur && cur == end {
				result.WriteByte(f[pending])
				pending++
			}
		}

		if cur == end || (cur-percent)%2 == 0 {
			continue
		}

		if strings.IndexByte("YmdeHMSzZs", f[cur]) >= 0 {
			flush(cur - 1)
			switch f[cur] {
			case 'Y':
				result.WriteString(format64(0, bd.Year))
			case 'm':
				result.WriteString(format02d(bd.Month))
			case 'd':
				result.WriteString(format02d(bd.Day))
			case 'e':
				s := format02d(bd.Day)
				if s[0] == '0' {
					s = " " + s[1:]
				}
				result.WriteString(s)
			case 'H':
				result.WriteString(format02d(bd.Hour))
			case 'M':
				result.WriteString(format02d(bd.Minute))
			case 'S':
				result.WriteString(format02d(bd.Second))
			case 'z':
				result.WriteString(formatOffset(int(bd.Offset)/60, 0))
			case 'Z':
				result.WriteString(bd.Abbr)
			case 's':
				result.WriteString(format64(0, t.UnixSeconds()))
			}
			pending = cur + 1
			cur++
			continue
		}

		if f[cur] != 'E' || cur+1 == end {
			continue
		}
		cur++

		switch {
		case f[cur] == 'z':
			flush(cur - 2)
			result.WriteString(formatOffset(int(bd.Offset)/60, ':'))
			pending = cur + 1
			cur++
		case f[cur] == '*' && cur+1 < end && f[cur+1] == 'S':
			flush(cur - 2)
			result.WriteString(formatFracSeconds(bd, -1))
			pending = cur + 2
			cur += 2
		case f[cur] == '4' && cur+1 < end && f[cur+1] == 'Y':
			flush(cur - 2)
			result.WriteString(format64(4, bd.Year))
			pending = cur + 2
			cur += 2
		case f[cur] >= '0' && f[cur] <= '9':
			n, np, ok := parseDigitsFixed(f, cur, 0, 1024)
			if ok && np < end && f[np] == 'S' {
				flush(cur - 2)
				result.WriteString(formatFracSeconds(bd, n))
				pending = np + 1
				cur = np + 1
			}
		}
	}

	flush(end)
	return result.String()
}

// formatFracSeconds renders "SS" or "SS.fff...", trimming trailing zeros
// when n < 0 (the %E*S case) and clamping n to digits10Int64 otherwise.
func formatFracSeconds(bd Breakdown, n int) string {
	nanos := bd.Subsecond.Nanos()
	if n < 0 {
		s := format64(9, nanos)
		s = strings.TrimRight(s, "0")
		if s == "" {
			return format02d(bd.Second)
		}
		return format02d(bd.Second) + "." + s
	}
	if n == 0 {
		return format02d(bd.Second)
	}
	if n > digits10Int64 {
		n = digits10Int64
	}
	var v int64
	if n > 9 {
		v = nanos * exp10[n-9]
	} else {
		v = nanos / exp10[9-n]
	}
	return format02d(bd.Second) + "." + format64(n, v)
}

// parseDigitsFixed parses an unsigned decimal run at f[at:] with no width
// limit, matching cctz_fmt.cc's use of ParseInt(cur, 0, 0, 1024, &n) to
// probe for "%E<digits>S".
func parseDigitsFixed(f []byte, at int, min, max int) (int, int, bool) {
	i := at
	for i < len(f) && f[i] >= '0' && f[i] <= '9' {
		i++
	}
	if i == at {
		return 0, at, false
	}
	n, err := strconv.Atoi(string(f[at:i]))
	if err != nil || n < min || n > max {
		return 0, at, false
	}
	return n, i, true
}

// formatGeneric renders span, a run of ordinary strftime directives and
// literal text, against bd's civil fields. It plays the role of the
// host's strftime(3) in cctz_fmt.cc's FormatTM, since Go has no such call;
// in exchange it never needs to worry about ${TZ} or locale state.
func formatGeneric(span string, bd Breakdown) string {
	t := genericTime(bd)
	var out strings.Builder
	for i := 0; i < len(span); {
		if span[i] != '%' || i+1 >= len(span) {
			out.WriteByte(span[i])
			i++
			continue
		}
		c := span[i+1]
		i += 2
		switch c {
		case 'a':
			out.WriteString(t.Format("Mon"))
		case 'A':
			out.WriteString(t.Format("Monday"))
		case 'b', 'h':
			out.WriteString(t.Format("Jan"))
		case 'B':
			out.WriteString(t.Month().String())
		case 'C':
			out.WriteString(strconv.Itoa(int(bd.Year / 100)))
		case 'c':
			out.WriteString(t.Format("Mon Jan  2 15:04:05 2006"))
		case 'D':
			out.WriteString(t.Format("01/02/06"))
		case 'F':
			out.WriteString(format64(4, bd.Year) + "-" + format02d(bd.Month) + "-" + format02d(bd.Day))
		case 'I':
			h := bd.Hour % 12
			if h == 0 {
				h = 12
			}
			out.WriteString(format02d(h))
		case 'j':
			out.WriteString(strconv.Itoa(bd.Yearday))
		case 'n':
			out.WriteByte('\n')
		case 'p':
			out.WriteString(t.Format("PM"))
		case 'P':
			out.WriteString(t.Format("pm"))
		case 'r':
			out.WriteString(t.Format("03:04:05 PM"))
		case 'R':
			out.WriteString(t.Format("15:04"))
		case 't':
			out.WriteByte('\t')
		case 'T', 'X':
			out.WriteString(t.Format("15:04:05"))
		case 'u':
			out.WriteString(strconv.Itoa(bd.Weekday))
		case 'w':
			out.WriteString(strconv.Itoa(bd.Weekday % 7))
		case 'x':
			out.WriteString(t.Format("01/02/06"))
		case 'y':
			y := bd.Year % 100
			if y < 0 {
				y += 100
			}
			out.WriteString(format02d(int(y)))
		case '%':
			out.WriteByte('%')
		default:
			out.WriteByte('%')
			out.WriteByte(c)
		}
	}
	return out.String()
}

// genericTime approximates bd as a time.Time so the stdlib formatter can
// render name-based specifiers (%a, %b, and so on). Years outside int
// range are clamped, matching cctz_fmt.cc's ToTM saturating tm_year.
func genericTime(bd Breakdown) time.Time {
	y := bd.Year
	if y > math.MaxInt32 {
		y = math.MaxInt32
	} else if y < math.MinInt32 {
		y = math.MinInt32
	}
	return time.Date(int(y), time.Month(bd.Month), bd.Day, bd.Hour, bd.Minute, bd.Second, int(bd.Subsecond.Nanos()), time.UTC)
}
