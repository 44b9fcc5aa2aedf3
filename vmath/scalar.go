package vmath

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between a and b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Map remaps v from [inLo, inHi] into [outLo, outHi] without clamping
// A zero-width input range maps everything to outLo
func Map(v, inLo, inHi, outLo, outHi float64) float64 {
	span := inHi - inLo
	if span == 0 {
		return outLo
	}
	return outLo + (v-inLo)/span*(outHi-outLo)
}
