package geo_test

import (
	"math"
	"testing"

	"github.com/JOSU10xD/MapMyCampus/pkg/geo"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
)

func TestDistanceAndDirection(t *testing.T) {
	t.Run("distance is euclidean", func(t *testing.T) {
		d := geo.Distance(r2.Point{X: 0, Y: 0}, r2.Point{X: 3, Y: 4})
		assert.InDelta(t, 5.0, d, 1e-12)
	})

	t.Run("direction is a unit vector", func(t *testing.T) {
		dir := geo.Direction(r2.Point{X: 1, Y: 1}, r2.Point{X: 1, Y: 11})
		assert.InDelta(t, 0.0, dir.X, 1e-12)
		assert.InDelta(t, 1.0, dir.Y, 1e-12)
	})

	t.Run("coincident points give the zero vector", func(t *testing.T) {
		dir := geo.Direction(r2.Point{X: 2, Y: 3}, r2.Point{X: 2, Y: 3})
		assert.Equal(t, r2.Point{}, dir)
	})
}

func TestNormalizeDelta(t *testing.T) {
	t.Run("wraps into the half open interval", func(t *testing.T) {
		assert.InDelta(t, math.Pi, geo.NormalizeDelta(3*math.Pi), 1e-12)
		assert.InDelta(t, math.Pi, geo.NormalizeDelta(-math.Pi), 1e-12)
		assert.InDelta(t, -math.Pi/2, geo.NormalizeDelta(3*math.Pi/2), 1e-12)
	})

	t.Run("delta across the pi boundary stays small", func(t *testing.T) {
		// headings 3 rad and -3 rad are only ~0.28 rad apart
		delta := geo.OrientationDelta(3, -3)
		assert.InDelta(t, 2*math.Pi-6, delta, 1e-12)
	})
}

func TestProjectPointToSegment(t *testing.T) {
	a := r2.Point{X: 0, Y: 0}
	b := r2.Point{X: 10, Y: 0}

	t.Run("interior projection", func(t *testing.T) {
		p := geo.ProjectPointToSegment(a, b, r2.Point{X: 4, Y: 7})
		assert.InDelta(t, 4.0, p.X, 1e-12)
		assert.InDelta(t, 0.0, p.Y, 1e-12)
	})

	t.Run("clamps at both ends", func(t *testing.T) {
		p := geo.ProjectPointToSegment(a, b, r2.Point{X: -5, Y: 2})
		assert.Equal(t, a, p)
		p = geo.ProjectPointToSegment(a, b, r2.Point{X: 15, Y: 2})
		assert.Equal(t, b, p)
	})

	t.Run("degenerate segment projects onto its point", func(t *testing.T) {
		p := geo.ProjectPointToSegment(a, a, r2.Point{X: 3, Y: 3})
		assert.Equal(t, a, p)
	})
}
