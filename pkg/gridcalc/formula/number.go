package formula

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`^[+-]?(?:Infinity|(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?)`)

// ParseLenient parses the longest numeric prefix of s after leading whitespace,
// so "12abc" yields 12 and "abc" fails. Aggregates and selection stats use it.
func ParseLenient(s string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimLeft(s, " \t\r\n"))
	if m == "" {
		return 0, false
	}
	switch strings.TrimLeft(m, "+-") {
	case "Infinity":
		if strings.HasPrefix(m, "-") {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// Out-of-range exponents still parse to ±Inf with a range error.
		if errors.Is(err, strconv.ErrRange) {
			return n, true
		}
		return 0, false
	}
	return n, true
}

// numeric returns the number carried by a resolved cell value for aggregation.
func numeric(v Value) (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindText:
		return ParseLenient(v.Text)
	default:
		return 0, false
	}
}
