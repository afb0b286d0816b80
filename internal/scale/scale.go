package scale

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrInvalidNotation   = errors.New(ErrMsgInvalidNotation)
	ErrInvalidMultiplier = errors.New(ErrMsgInvalidMultiplier)
	ErrFactorNotFound    = errors.New(ErrMsgFactorNotFound)
)

// Factors maps a magnitude letter to its power of ten (a = 1e3 ... z = 1e78)
var Factors = func() map[string]int {
	f := make(map[string]int, 26)
	for i, r := range "abcdefghijklmnopqrstuvwxyz" {
		f[string(r)] = 3 * (i + 1)
	}
	return f
}()

// letters ordered by ascending factor
var letters = strings.Split("abcdefghijklmnopqrstuvwxyz", "")

// Notation is a value paired with an optional magnitude letter, e.g. 23.81g
type Notation struct {
	Value float64 `json:"value"`
	Scale string  `json:"scale,omitempty"`
}

// ToNumber expands a notation into a plain number.
// A missing or unknown scale letter returns the raw value.
func ToNumber(n Notation) float64 {
	if n.Scale == "" {
		return n.Value
	}
	factor, ok := Factors[n.Scale]
	if !ok {
		return n.Value
	}
	return n.Value * math.Pow10(factor)
}

// FromNumber picks the largest factor not above floor(log10(v)) and rounds
// the scaled value to two decimals. Values under 1000 come back unscaled.
func FromNumber(v float64) (Notation, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Notation{}, fmt.Errorf("%w [%v]", ErrFactorNotFound, v)
	}

	// value smaller than the smallest factor (a), return it as-is
	if v < 1000 {
		return Notation{Value: v}, nil
	}

	// equivalent to floor(log10(v)) >= factor without log rounding error
	letter := ""
	for _, l := range letters {
		if v < math.Pow10(Factors[l]) {
			break
		}
		letter = l
	}
	if letter == "" {
		return Notation{}, fmt.Errorf("%w [%v]", ErrFactorNotFound, v)
	}

	scaled := round2(v / math.Pow10(Factors[letter]))
	return Notation{Value: scaled, Scale: letter}, nil
}

// String renders the notation with two decimals and its letter, e.g. "23.81g"
func (n Notation) String() string {
	return strconv.FormatFloat(n.Value, 'f', formatDecimals, 64) + n.Scale
}

// Format converts a plain number straight to its short string.
// Values no factor can cover fall back to scientific notation.
func Format(v float64) string {
	n, err := FromNumber(v)
	if err != nil {
		return strconv.FormatFloat(v, 'e', formatDecimals, 64)
	}
	return n.String()
}

var (
	shortRegex      = regexp.MustCompile(`^(\d+(\.\d+)?)\s*([a-z])?$`)
	multiplierRegex = regexp.MustCompile(`^(\d+)\s*%?$`)
)

// ParseShort validates player input such as "23.81g" or "42"
func ParseShort(s string) (Notation, error) {
	s = strings.TrimSpace(s)
	match := shortRegex.FindStringSubmatch(s)
	if match == nil {
		return Notation{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return Notation{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	return Notation{Value: value, Scale: match[3]}, nil
}

// ParseNumber is ParseShort followed by ToNumber
func ParseNumber(s string) (float64, error) {
	n, err := ParseShort(s)
	if err != nil {
		return 0, err
	}
	return ToNumber(n), nil
}

// ParseMultiplier reads a percentage such as "300%" and returns it as a ratio (3.0).
// Anything under 100% is rejected.
func ParseMultiplier(s string) (float64, error) {
	s = strings.TrimSpace(s)
	match := multiplierRegex.FindStringSubmatch(s)
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMultiplier, s)
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil || value < MinMultiplierPercent {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMultiplier, s)
	}

	return value / 100, nil
}

// FormatMultiplier renders a ratio as a whole percentage, e.g. 3 -> "300%"
func FormatMultiplier(m float64) string {
	return strconv.FormatFloat(math.Round(m*100), 'f', 0, 64) + "%"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
