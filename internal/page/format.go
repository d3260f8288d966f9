package page

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// FormatFloat renders v rounded to one decimal place, half away from zero.
// Whole-number results are rendered without the decimal point, so 2.0
// becomes "2" and 2.85 becomes "2.9".
func FormatFloat(v float64) string {
	neg := math.Signbit(v)

	// Round on the shortest decimal representation rather than the binary
	// value, so 2.85 goes up to 2.9 instead of down to 2.8.
	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	whole, frac, found := strings.Cut(s, ".")
	if found {
		d := frac[0]
		if len(frac) > 1 && frac[1] >= '5' {
			d++
		}
		if d > '9' {
			d = '0'
			n, _ := strconv.Atoi(whole)
			whole = strconv.Itoa(n + 1)
		}
		if d == '0' {
			s = whole
		} else {
			s = whole + "." + string(d)
		}
	}

	if neg && s != "0" {
		s = "-" + s
	}
	return s
}

// ReformatDate turns an Exif-style "YYYY:MM:DD hh:mm:ss" timestamp into
// "YYYY-MM-DD hh:mm:ss". Only the two date separators change; any time
// portion is left untouched.
func ReformatDate(date string) string {
	return strings.Replace(date, ":", "-", 2)
}

// capitalize upper-cases the first rune and lower-cases the rest, the way
// Commons camera categories expect the maker name ("NIKON" -> "Nikon").
func capitalize(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
