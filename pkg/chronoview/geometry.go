package chronoview

import "math"

// clamp bounds v to [lo, hi]. If lo > hi, lo wins.
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// clampIndex bounds i to a valid index for a sequence of length n.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// normalizeAngle maps degrees onto [0, 360).
func normalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// rotatedSize returns the bounding box of a w x h image rotated by a quarter-turn multiple.
func rotatedSize(w, h, deg float64) (float64, float64) {
	a := normalizeAngle(deg)
	if a == 90 || a == 270 {
		return h, w
	}
	return w, h
}

// fitScale returns the scale at which a w x h image rotated by deg fits inside vw x vh.
// ok is false when any dimension is not positive.
func fitScale(vw, vh, w, h, deg float64) (scale float64, ok bool) {
	if vw <= 0 || vh <= 0 || w <= 0 || h <= 0 {
		return 0, false
	}
	ew, eh := rotatedSize(w, h, deg)
	return math.Min(vw/ew, vh/eh), true
}
