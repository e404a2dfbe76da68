package corridor

import (
	"math"

	"github.com/trafficlab/corridor/geom"
)

// Side selects one of the two fixed sides of the centreline.
type Side int

const (
	// Left is the side of positive lateral offset (left of travel).
	Left Side = iota + 1
	Right
)

func (s Side) sign() float64 {
	if s == Right {
		return -1
	}
	return 1
}

// offsetStep is the base arc-length spacing (metres) of offset
// polyline samples. Sampling is denser when the centreline's own
// sample tables are denser than this.
const offsetStep = 2.0

// EdgeOffsets returns the left and right edge polylines of a
// carriageway of the given total width: each edge is the centreline
// offset by half the width along the local normal. Both results are
// nil when the centreline has zero length or the width is not
// positive, signaling "nothing to draw".
//
// No mitering is performed at segment joins; samples are dense
// relative to curvature, so straight interpolation across joins is
// within rendering tolerance.
func (c *Centreline) EdgeOffsets(width float64) (left, right []geom.Vec2) {
	if width <= 0 {
		return nil, nil
	}
	half := width / 2
	left = c.Offset(half)
	right = c.Offset(-half)
	return left, right
}

// Offset returns the polyline traced at a fixed signed lateral offset
// from the centreline (positive left of travel), or nil for a
// degenerate centreline.
func (c *Centreline) Offset(t float64) []geom.Vec2 {
	lc := c.ensure()
	if len(c.segs) == 0 || lc.total == 0 {
		return nil
	}
	n := int(math.Ceil(lc.total / offsetStep))
	if n < 1 {
		n = 1
	}
	pts := make([]geom.Vec2, 0, n+1)
	for i := 0; i <= n; i++ {
		s := lc.total * float64(i) / float64(n)
		p, _ := c.Locate(Coordinate{S: s, T: t})
		pts = append(pts, p)
	}
	return pts
}

// CycleLane returns the inner and outer edge polylines of a cycle
// lane of the given width, separated from the carriageway edge by
// gap, on the chosen side. halfWidth is half the carriageway width.
// All of width, gap and halfWidth must be positive (gap may be zero);
// otherwise both results are nil.
func (c *Centreline) CycleLane(halfWidth, gap, width float64, side Side) (inner, outer []geom.Vec2) {
	if halfWidth <= 0 || width <= 0 || gap < 0 {
		return nil, nil
	}
	sign := side.sign()
	inner = c.Offset(sign * (halfWidth + gap))
	outer = c.Offset(sign * (halfWidth + gap + width))
	return inner, outer
}
