// Package siunit parses real numbers written with engineering notation, such
// as "1p", "2.2 nF", "250k" or "1e-12".
package siunit

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Farad and Hertz are the unit symbols accepted for capacitance and bandwidth.
const (
	Farad = "F"
	Hertz = "Hz"
)

// aliases rewrites spellings go-humanize does not know into ones it does.
var aliases = []struct{ from, to string }{
	{"meg", "M"},
	{"u", "µ"},
	{"μ", "µ"}, // Greek mu to micro sign.
}

// Parse converts s into a float64. Plain numbers in any form accepted by
// strconv.ParseFloat are returned as-is. Otherwise s may carry an SI prefix
// and, optionally, the unit symbol; any other trailing text is rejected.
func Parse(s, unit string) (float64, error) {
	in := strings.TrimSpace(s)
	if in == "" {
		return 0, fmt.Errorf("empty value")
	}

	if v, err := strconv.ParseFloat(in, 64); err == nil {
		return v, nil
	}

	normalized := in
	if unit != "" {
		normalized = strings.TrimSpace(strings.TrimSuffix(normalized, unit))
		if v, err := strconv.ParseFloat(normalized, 64); err == nil {
			return v, nil
		}
	}
	for _, a := range aliases {
		if strings.HasSuffix(normalized, a.from) {
			normalized = strings.TrimSuffix(normalized, a.from) + a.to
			break
		}
	}

	v, rest, err := humanize.ParseSI(normalized)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	if rest != "" {
		return 0, fmt.Errorf("invalid number %q: unexpected suffix %q", s, rest)
	}
	return v, nil
}

// ParsePositive is like Parse but also requires a finite value greater than zero.
func ParsePositive(s, unit string) (float64, error) {
	v, err := Parse(s, unit)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, fmt.Errorf("value %q must be a finite number greater than zero", s)
	}
	return v, nil
}

// Format renders v with an SI prefix and unit, keeping the given number of
// significant digits after the decimal point, e.g. "10 kΩ".
func Format(v float64, digits int, unit string) string {
	return humanize.SIWithDigits(v, digits, unit)
}
