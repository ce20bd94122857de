package geo

import (
	"math"

	"github.com/golang/geo/r2"
)

// Planar helpers for indoor floor-plan coordinates. Everything here ignores
// the floor index; cross-floor distance carries no physical meaning.

func Distance(a, b r2.Point) float64 {
	return b.Sub(a).Norm()
}

// Orientation returns the angle of the vector from -> to, in radians.
func Orientation(from, to r2.Point) float64 {
	d := to.Sub(from)
	return math.Atan2(d.Y, d.X)
}

// Direction returns the unit vector from -> to. Coincident points yield the
// zero vector, callers must treat that as a degenerate segment.
func Direction(from, to r2.Point) r2.Point {
	d := to.Sub(from)
	n := d.Norm()
	if n == 0 {
		return r2.Point{}
	}
	return d.Mul(1 / n)
}

// NormalizeDelta wraps an angle difference into (-pi, pi].
func NormalizeDelta(delta float64) float64 {
	for delta > math.Pi {
		delta -= 2 * math.Pi
	}
	for delta <= -math.Pi {
		delta += 2 * math.Pi
	}
	return delta
}

// OrientationDelta is the signed heading change from inAngle to outAngle,
// normalized into (-pi, pi].
func OrientationDelta(inAngle, outAngle float64) float64 {
	return NormalizeDelta(outAngle - inAngle)
}

// ProjectPointToSegment returns the point on segment (a, b) closest to p.
func ProjectPointToSegment(a, b, p r2.Point) r2.Point {
	ab := b.Sub(a)
	den := ab.Dot(ab)
	if den == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / den
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Mul(t))
}
