// Package adjust applies an additive or percentage delta to an amount and
// formats the result as a grouped two-decimal string.
package adjust

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Adjustment is either an absolute delta or a percentage delta. It applies
// uniformly to every amount found in one Adjust invocation.
type Adjustment struct {
	Delta   float64
	Percent bool
}

// Parse reads an adjustment argument: a signed number ("-2.46") for an
// additive delta, or a signed number with a "%" suffix ("-14%") for a
// percentage delta.
func Parse(s string) (Adjustment, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Adjustment{}, fmt.Errorf("parse adjustment: empty value")
	}
	percent := strings.HasSuffix(s, "%")
	num := strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Adjustment{}, fmt.Errorf("parse adjustment %q: %w", s, err)
	}
	return Adjustment{Delta: v, Percent: percent}, nil
}

// Apply adjusts value by the delta and rounds half-up to two decimal
// places. Both the additive and percentage paths round identically.
func (a Adjustment) Apply(value float64) float64 {
	result := value + a.Delta
	if a.Percent {
		result = value + value*a.Delta/100
	}
	return round2(result)
}

func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// Format renders a two-decimal amount with the integer portion grouped
// into clusters of three digits: 1234.5 becomes "1,234.50".
func Format(value float64) string {
	cents := int64(math.Floor(value*100 + 0.5))
	whole := cents / 100
	frac := cents % 100
	if frac < 0 {
		frac = -frac
	}
	return group(strconv.FormatInt(whole, 10)) + fmt.Sprintf(".%02d", frac)
}

// group inserts a comma every three digits from the right.
func group(digits string) string {
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 && !(neg && b.Len() == 1) {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
