// Package hours implements fixed-point hour arithmetic for hours-of-service
// accounting. Values carry exactly two fractional digits, stored as an integer
// count of hundredths of an hour, so summing durations across many duty
// intervals never accumulates binary floating point drift.
package hours

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidInterval is returned when an interval does not end after it starts
var ErrInvalidInterval = errors.New("invalid interval: end not after start")

// Hours is an amount of hours with two fixed fractional digits.
// The same representation is used for the engine's percentage quantities
// (compliance score, cycle efficiency), which share the two-digit precision.
type Hours int64

const (
	// Centi is one hundredth of an hour (36 seconds)
	Centi Hours = 1
	// One is exactly one hour
	One Hours = 100
)

const centiDuration = 36 * time.Second

// Between returns the elapsed hours between start and end.
// All duty interval math in the engine must go through this function.
func Between(start, end time.Time) (Hours, error) {
	if !end.After(start) {
		return 0, fmt.Errorf("Between: %w", ErrInvalidInterval)
	}
	return FromDuration(end.Sub(start)), nil
}

// FromDuration converts a duration to Hours, rounding half up
// at the hundredth of an hour
func FromDuration(d time.Duration) Hours {
	if d < 0 {
		return -FromDuration(-d)
	}
	return Hours((d + centiDuration/2) / centiDuration)
}

// FromFloat converts an amount of hours expressed as a float (such as a rule
// parameter) to Hours, rounding half away from zero
func FromFloat(f float64) Hours {
	return Hours(math.Round(f * 100))
}

// FromRatio returns num/den with two fixed fractional digits, rounding half
// away from zero. Returns 0 when den is not positive.
func FromRatio(num, den int64) Hours {
	if den <= 0 {
		return 0
	}
	return Hours(roundDiv(num*100, den))
}

// Duration converts h to a time.Duration
func (h Hours) Duration() time.Duration {
	return time.Duration(h) * centiDuration
}

// Float64 returns h as a binary float. Meant for display and telemetry only,
// never for further accumulation.
func (h Hours) Float64() float64 {
	return float64(h) / 100
}

// PercentOf returns the percentage h represents of total, with two fixed
// fractional digits. Returns 0 when total is not positive.
func (h Hours) PercentOf(total Hours) Hours {
	if total <= 0 {
		return 0
	}
	return Hours(roundDiv(int64(h)*100*100, int64(total)))
}

// DivInt divides h by n, rounding half up. Returns 0 when n is not positive.
func (h Hours) DivInt(n int) Hours {
	if n <= 0 {
		return 0
	}
	return Hours(roundDiv(int64(h), int64(n)))
}

// Scale returns h scaled by percent/100, rounding half up.
// Scale(90) is ninety percent of h.
func (h Hours) Scale(percent int64) Hours {
	return Hours(roundDiv(int64(h)*percent, 100))
}

func (h Hours) String() string {
	n := int64(h)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return fmt.Sprintf("%s%d.%02d", sign, n/100, n%100)
}

// roundDiv divides a by b rounding half away from zero. b must be positive.
func roundDiv(a, b int64) int64 {
	if a < 0 {
		return -roundDiv(-a, b)
	}
	return (a + b/2) / b
}
