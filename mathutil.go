package pencil

import "math"

// epsilon is the tolerance used by Equals and Position.Equals.
const epsilon = 1e-9

// Clamp restricts value to [lo, hi]. The bounds may be given in any order.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Max(lo, math.Min(value, hi))
}

// Lerp linearly interpolates between from and to. ratio 0 returns from,
// 1 returns to; values outside [0, 1] extrapolate.
func Lerp(from, to, ratio float64) float64 {
	return from + (to-from)*ratio
}

// Average returns the arithmetic mean of values, or 0 when empty.
func Average(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Modulo returns value mod m, always in [0, |m|) unlike math.Mod.
func Modulo(value, m float64) float64 {
	if m == 0 {
		return 0
	}
	m = math.Abs(m)
	r := math.Mod(value, m)
	if r < 0 {
		r += m
	}
	return r
}

// Equals reports whether a and b differ by less than epsilon.
func Equals(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// Truncate drops the fractional part of value toward zero.
func Truncate(value float64) float64 {
	return math.Trunc(value)
}

// isFinite reports whether v is neither NaN nor infinite.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// turnsToRadians converts a rotation expressed in turns (1 = full circle).
func turnsToRadians(turns float64) float64 {
	return turns * 2 * math.Pi
}
