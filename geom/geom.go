// Package geom provides the 2d vector and cubic curve primitives that
// corridor geometry is built from. Coordinates are metres unless a
// caller says otherwise.
package geom

import "math"

// Vec2 is a 2-dimensional vector.
type Vec2 [2]float64

// X and Y name the vector components.
func (v Vec2) X() float64 { return v[0] }
func (v Vec2) Y() float64 { return v[1] }

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{v[0] + w[0], v[1] + w[1]}
}

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{v[0] - w[0], v[1] - w[1]}
}

// Scale returns v scaled by k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{v[0] * k, v[1] * k}
}

// Dot returns the dot product of v and w.
func (v Vec2) Dot(w Vec2) float64 {
	return v[0]*w[0] + v[1]*w[1]
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v[0], v[1])
}

// Dist returns the Euclidean distance between v and w.
func (v Vec2) Dist(w Vec2) float64 {
	return v.Sub(w).Len()
}

// Lerp returns the linear blend v*(1-s) + w*s.
func (v Vec2) Lerp(w Vec2, s float64) Vec2 {
	return Vec2{v[0]*(1-s) + w[0]*s, v[1]*(1-s) + w[1]*s}
}

// Unit returns v normalized to length 1, or the zero vector if v has
// no direction.
func (v Vec2) Unit() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v[0] / l, v[1] / l}
}

// Normal returns the unit normal to d, d rotated a quarter turn
// counter-clockwise. With travel along +x in a y-up frame the normal
// points along +y, so a positive lateral offset is left of the
// direction of travel. All chainage code shares this convention.
// A zero input yields a zero normal, which callers must treat as
// "undefined direction".
func Normal(d Vec2) Vec2 {
	return Vec2{-d[1], d[0]}.Unit()
}

// linedist returns the distance from v to the infinite line through s
// and e, or to the nearer endpoint when the perpendicular foot falls
// outside the segment.
func linedist(v, s, e Vec2) float64 {
	ds := v.Dist(s)
	de := v.Dist(e)
	n := Vec2{e[1] - s[1], s[0] - e[0]}.Unit()
	dp := math.Abs(v.Sub(s).Dot(n))
	return math.Min(math.Min(dp, ds), de)
}
