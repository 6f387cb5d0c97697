package radar

import "math"

// LinearMap re-maps v from [inMin, inMax] to [outMin, outMax]. The result is
// not clamped. A degenerate input range maps everything to outMin.
func LinearMap(v, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return outMin + (v-inMin)*(outMax-outMin)/(inMax-inMin)
}

// Angle is the screen angle in radians (y grows downwards) of spoke i out
// of n. Spoke 0 points up and the spokes advance clockwise.
func Angle(i, n int) float64 {
	return float64(i)*2*math.Pi/float64(n) - math.Pi/2
}

// Bearing is the direction of spoke i out of n in degrees, clockwise from
// up, in [0, 360).
func Bearing(i, n int) float64 {
	return math.Mod(float64(i)*360/float64(n), 360)
}

// Polar returns the point at distance r from c in direction angle.
func Polar(c Point, r, angle float64) Point {
	return Point{X: c.X + r*math.Cos(angle), Y: c.Y + r*math.Sin(angle)}
}

// AnchorFor picks the text anchor for a label placed at bearing degrees so
// the text grows away from the chart. Quadrant bounds are 45, 135, 225 and 315.
func AnchorFor(bearing float64) Anchor {
	b := math.Mod(bearing, 360)
	if b < 0 {
		b += 360
	}
	switch {
	case b >= 45 && b < 135:
		return Anchor{H: AlignLeft, V: AlignMiddle}
	case b >= 135 && b < 225:
		return Anchor{H: AlignCenter, V: AlignTop}
	case b >= 225 && b < 315:
		return Anchor{H: AlignRight, V: AlignMiddle}
	default:
		return Anchor{H: AlignCenter, V: AlignBottom}
	}
}

// MathToBearing converts a counter-clockwise angle in degrees with y up
// (0 = right, 90 = up) into a bearing.
func MathToBearing(deg float64) float64 {
	b := math.Mod(90-deg, 360)
	if b < 0 {
		b += 360
	}
	return b
}

func dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
