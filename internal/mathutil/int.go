package mathutil

// IntMin returns the smaller of two ints.
func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IntMax returns the larger of two ints.
func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// IntAbs returns the absolute value of an int.
func IntAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi int) int {
	return IntMax(lo, IntMin(x, hi))
}

// ClampF limits a float to [lo, hi].
func ClampF(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// WrapDegrees folds any integer angle into [0, 359].
func WrapDegrees(a int) int {
	a %= 360
	if a < 0 {
		a += 360
	}
	return a
}
