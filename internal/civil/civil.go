// Package civil implements proleptic-Gregorian civil calendar arithmetic:
// normalizing out-of-range year/month/day/hour/minute/second tuples and
// mapping them to a day ordinal relative to 1970-01-01.
package civil

import "math"

// daysPerMonth holds month lengths for non-leap and leap years, indexed
// [isLeap][month] with month 1-based; index 0 is unused.
var daysPerMonth = [2][13]int{
	{-1, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31},
	{-1, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31},
}

// IsLeap reports whether year is a leap year in the proleptic Gregorian
// calendar.
func IsLeap(year int64) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysPerYear returns 365 or 366 depending on whether year is a leap year.
func DaysPerYear(year int64) int {
	if IsLeap(year) {
		return 366
	}
	return 365
}

// NormalizeField computes carry = floor(*val / base), reduces *val to the
// non-negative residue class [0, base), and reports whether a carry
// occurred.
func NormalizeField(base int, val *int) (carry int) {
	carry = *val / base
	*val %= base
	if *val < 0 {
		carry -= 1
		*val += base
	}
	return carry
}

// addYearSaturating adds delta to y, saturating at the int64 extremes
// instead of overflowing.
func addYearSaturating(y int64, delta int64) int64 {
	if delta > 0 && y > math.MaxInt64-delta {
		return math.MaxInt64
	}
	if delta < 0 && y < math.MinInt64-delta {
		return math.MinInt64
	}
	return y + delta
}

// Fields is a normalized or to-be-normalized civil time tuple.
type Fields struct {
	Year   int64
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// Normalize carries every field into its canonical range following the
// order: seconds into minutes, minutes into hours, hours into days, months
// into years, then day-of-month into years, then day-of-year into months.
// This order matters: it is the same order cctz's TimeZoneLibC::MakeTimeInfo
// uses, and later steps depend on earlier ones having already run.
//
// Normalized reports whether any field was out of its natural range and
// had to be carried.
func Normalize(f Fields) (out Fields, normalized bool) {
	sec, min, hour, day, mon, year := f.Second, f.Minute, f.Hour, f.Day, f.Month, f.Year

	if c := NormalizeField(60, &sec); c != 0 {
		min += c
		normalized = true
	}
	if c := NormalizeField(60, &min); c != 0 {
		hour += c
		normalized = true
	}
	if c := NormalizeField(24, &hour); c != 0 {
		day += c
		normalized = true
	}

	mon -= 1 // 0-based for normalization
	if c := NormalizeField(12, &mon); c != 0 {
		year = addYearSaturating(year, int64(c))
		normalized = true
	}
	mon += 1 // restore [1:12]

	// Day-of-month normalization: walk whole years while day overflows or
	// underflows the current year's length. The year is shifted by one
	// while month > 2 for the duration of this loop and shifted back
	// afterwards; this mirrors cctz's TimeZoneLibC::MakeTimeInfo exactly.
	if mon > 2 {
		year = addYearSaturating(year, 1)
	}
	yearLen := DaysPerYear(year)
	for day > yearLen {
		day -= yearLen
		year = addYearSaturating(year, 1)
		yearLen = DaysPerYear(year)
		normalized = true
	}
	for day <= 0 {
		year = addYearSaturating(year, -1)
		day += DaysPerYear(year)
		normalized = true
	}
	if mon > 2 {
		year = addYearSaturating(year, -1)
	}

	// Month-of-year normalization within the final year.
	leap := boolToIdx(IsLeap(year))
	for day > daysPerMonth[leap][mon] {
		day -= daysPerMonth[leap][mon]
		mon++
		if mon > 12 {
			mon = 1
			year = addYearSaturating(year, 1)
			leap = boolToIdx(IsLeap(year))
		}
		normalized = true
	}

	return Fields{Year: year, Month: mon, Day: day, Hour: hour, Minute: min, Second: sec}, normalized
}

func boolToIdx(b bool) int {
	if b {
		return 1
	}
	return 0
}

// DayOrdinal maps a normalized (year, month, day) to the number of days
// before or after 1970-01-01. Uses Howard Hinnant's days_from_civil
// algorithm: http://howardhinnant.github.io/date_algorithms.html#days_from_civil
func DayOrdinal(year int64, month, day int) int64 {
	y := year
	if month <= 2 {
		y--
	}
	var era int64
	if y >= 0 {
		era = y / 400
	} else {
		era = (y - 399) / 400
	}
	yoe := y - era*400 // [0, 399]
	mp := month + 9
	if month > 2 {
		mp = month - 3
	}
	doy := (153*mp+2)/5 + day - 1 // [0, 365]
	doe := yoe*365 + yoe/4 - yoe/100 + int64(doy)
	return era*146097 + doe - 719468
}

// CivilFromDays is the inverse of DayOrdinal: given a day ordinal relative
// to 1970-01-01, returns the corresponding (year, month, day). Uses Howard
// Hinnant's civil_from_days algorithm, the documented companion to the
// days_from_civil algorithm DayOrdinal implements.
func CivilFromDays(z int64) (year int64, month, day int) {
	z += 719468
	var era int64
	if z >= 0 {
		era = z / 146097
	} else {
		era = (z - 146096) / 146097
	}
	doe := z - era*146097 // [0, 146096]
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	var m int64
	if mp < 10 {
		m = mp + 3
	} else {
		m = mp - 9
	}
	if m <= 2 {
		y++
	}
	return y, int(m), int(d)
}

// Weekday returns the ISO weekday (1=Monday ... 7=Sunday) of the day with
// the given ordinal relative to 1970-01-01, which was a Thursday.
func Weekday(days int64) int {
	// 1970-01-01 is ordinal 0 and was a Thursday (ISO weekday 4).
	w := (days+3)%7 + 1
	if w <= 0 {
		w += 7
	}
	return int(w)
}

// YearDay returns the 1-based day-of-year for a normalized (year, month, day).
func YearDay(year int64, month, day int) int {
	return int(DayOrdinal(year, month, day) - DayOrdinal(year, 1, 1) + 1)
}
