package records

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	ponyerrors "mercator-hq/ponyini/pkg/ponyini/errors"
	"mercator-hq/ponyini/pkg/ponyini/parser"
)

var (
	// decimalPrefix is the longest numeric prefix parseFloat-style parsing accepts.
	decimalPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

	// decimalFull is a whole decimal literal as accepted by Number-style parsing.
	decimalFull = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)$`)

	// radixFull is a 0x/0o/0b integer literal as accepted by Number-style parsing.
	radixFull = regexp.MustCompile(`^0([xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)

	// pointPart is one coordinate of a point.
	pointPart = regexp.MustCompile(`^\s*-?\d+\s*$`)

	// integerPrefix is the longest integer prefix parseInt-style parsing accepts.
	integerPrefix = regexp.MustCompile(`^[+-]?\d+`)
)

// ParseStrictBoolean accepts exactly "true" or "false", ignoring case and
// surrounding white space. Anything else is an InvalidBooleanError.
func ParseStrictBoolean(value string) (bool, error) {
	switch strings.ToLower(parser.TrimSpace(value)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, &ponyerrors.InvalidBooleanError{Raw: value}
	}
}

// ParsePoint reads a 2D integer point from "x,y".
func ParsePoint(value string) (Point, error) {
	return ParsePointParts(strings.Split(value, ","))
}

// ParsePointParts reads a 2D integer point from exactly two coordinates.
// Each coordinate may carry surrounding white space and a leading minus.
func ParsePointParts(parts []string) (Point, error) {
	invalid := &ponyerrors.InvalidPointError{Raw: strings.Join(parts, ",")}
	if len(parts) != 2 || !pointPart.MatchString(parts[0]) || !pointPart.MatchString(parts[1]) {
		return Point{}, invalid
	}

	x, errX := strconv.Atoi(strings.TrimSpace(parts[0]))
	y, errY := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errX != nil || errY != nil {
		return Point{}, invalid
	}
	return Point{X: x, Y: y}, nil
}

// ParseFloatPrefix parses the longest decimal prefix of value after leading
// white space ("2.5s" is 2.5, "Infinity" is +Inf). Without a numeric prefix the
// result is NaN.
func ParseFloatPrefix(value string) Number {
	m := decimalPrefix.FindString(strings.TrimLeftFunc(value, parser.IsSpace))
	if m == "" {
		return NaN()
	}
	return Number(parseDecimal(m))
}

// ParseNumber parses value as a whole numeric literal after trimming white
// space. An empty string is zero; 0x, 0o and 0b integers are accepted; anything
// else is NaN.
func ParseNumber(value string) Number {
	s := parser.TrimSpace(value)
	switch {
	case s == "":
		return 0
	case decimalFull.MatchString(s):
		return Number(parseDecimal(s))
	case radixFull.MatchString(s):
		base := 16
		switch s[1] {
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		n, err := strconv.ParseUint(s[2:], base, 64)
		if err != nil {
			return Number(math.Inf(1))
		}
		return Number(n)
	default:
		return NaN()
	}
}

// ParseIntPrefix parses the leading base-10 integer of value after leading
// white space ("12px" is 12, "1.5" is 1). ok is false when there are no
// digits or the value does not fit an int.
func ParseIntPrefix(value string) (n int, ok bool) {
	m := integerPrefix.FindString(strings.TrimLeftFunc(value, parser.IsSpace))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseDecimal converts a literal already matched by decimalPrefix. Overflow
// saturates to infinity.
func parseDecimal(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

// EncodeURIComponent percent-encodes every byte outside
// A-Z a-z 0-9 - _ . ! ~ * ' ( ). Unlike url.QueryEscape it keeps spaces as
// %20 and leaves the sub-delimiters above untouched, which is what browsers
// expect for file names embedded in URLs.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
