package corridor

import (
	"math"

	"github.com/trafficlab/corridor/geom"
)

// refineIters is the number of golden-section steps used to tighten
// the best sample of a forward projection. 24 steps shrink the
// bracket by roughly 1e-5, far below the 1cm round-trip tolerance.
const refineIters = 24

const invphi = 0.6180339887498949

// Project maps an arbitrary Cartesian point to the nearest chainage
// position on the centreline. It scans every segment's sample table
// for the closest sample, then refines the parameter inside the
// bracketing interval. The result is deterministic for a given
// centreline revision.
//
// A degenerate centreline (no segments, zero length) projects
// everything to (0,0) rather than failing.
func (c *Centreline) Project(p geom.Vec2) Coordinate {
	lc := c.ensure()
	if len(c.segs) == 0 || lc.total == 0 {
		return Coordinate{}
	}

	bestSeg, bestIdx := 0, 0
	bestD := math.Inf(1)
	for i, st := range lc.tables {
		for j, sp := range st.P {
			if d := p.Dist(sp); d < bestD {
				bestD = d
				bestSeg, bestIdx = i, j
			}
		}
	}

	st := lc.tables[bestSeg]
	lo, hi := bracket(st.T, bestIdx)
	t := refine(c.segs[bestSeg], p, lo, hi)

	pt := geom.PointAt(c.segs[bestSeg], t)
	tan := geom.TangentAt(c.segs[bestSeg], t)
	n := geom.Normal(tan)
	if n == (geom.Vec2{}) {
		// Undefined direction at this parameter; fall back to the
		// nearest sample's chord direction.
		n = geom.Normal(chordAt(st, bestIdx))
	}
	return Coordinate{
		S: lc.cum[bestSeg] + st.LengthAt(t),
		T: p.Sub(pt).Dot(n),
	}
}

// bracket returns the parameter interval one sample either side of
// index i.
func bracket(t []float64, i int) (lo, hi float64) {
	lo, hi = t[0], t[len(t)-1]
	if i > 0 {
		lo = t[i-1]
	}
	if i < len(t)-1 {
		hi = t[i+1]
	}
	return lo, hi
}

// chordAt returns the direction of the sampled chord at index i.
func chordAt(st *geom.SampleTable, i int) geom.Vec2 {
	if i > 0 {
		return st.P[i].Sub(st.P[i-1])
	}
	if len(st.P) > 1 {
		return st.P[1].Sub(st.P[0])
	}
	return geom.Vec2{}
}

// refine runs a fixed-iteration golden-section search for the
// parameter in [lo, hi] minimizing the distance from p to the curve.
func refine(seg geom.CurveSegment, p geom.Vec2, lo, hi float64) float64 {
	a, b := lo, hi
	x1 := b - (b-a)*invphi
	x2 := a + (b-a)*invphi
	f1 := p.Dist(geom.PointAt(seg, x1))
	f2 := p.Dist(geom.PointAt(seg, x2))
	for i := 0; i < refineIters; i++ {
		if f1 <= f2 {
			b = x2
			x2, f2 = x1, f1
			x1 = b - (b-a)*invphi
			f1 = p.Dist(geom.PointAt(seg, x1))
		} else {
			a = x1
			x1, f1 = x2, f2
			x2 = a + (b-a)*invphi
			f2 = p.Dist(geom.PointAt(seg, x2))
		}
	}
	return (a + b) / 2
}

// Locate is the inverse of Project: it maps a chainage coordinate to
// the Cartesian point and the (non-normalized) centreline tangent
// there. S outside [0, Length] is clamped, so transient out-of-range
// values from interactive dragging degrade to the nearest endpoint
// with the end tangent held. A degenerate centreline locates
// everything at its first available point with a zero tangent.
func (c *Centreline) Locate(co Coordinate) (point, tangent geom.Vec2) {
	return c.locate(co, false)
}

// LocateExtrapolated is Locate, except that S outside [0, Length]
// extrapolates along the relevant end tangent instead of clamping.
func (c *Centreline) LocateExtrapolated(co Coordinate) (point, tangent geom.Vec2) {
	return c.locate(co, true)
}

func (c *Centreline) locate(co Coordinate, extrapolate bool) (geom.Vec2, geom.Vec2) {
	lc := c.ensure()
	if len(c.segs) == 0 || lc.total == 0 {
		return c.Start(), geom.Vec2{}
	}

	s := co.S
	var over float64 // signed overshoot beyond the clamped range
	if s < 0 {
		over, s = s, 0
	} else if s > lc.total {
		over, s = s-lc.total, lc.total
	}

	i := segmentAt(lc, s)
	st := lc.tables[i]
	t := st.Param(s - lc.cum[i])
	pt := geom.PointAt(c.segs[i], t)
	tan := geom.TangentAt(c.segs[i], t)
	if tan == (geom.Vec2{}) {
		tan = chordAt(st, 1)
	}
	if extrapolate && over != 0 {
		pt = pt.Add(tan.Unit().Scale(over))
	}
	return pt.Add(geom.Normal(tan).Scale(co.T)), tan
}

// segmentAt finds the segment whose chainage interval contains s
// (s already clamped to [0, total]).
func segmentAt(lc *lineCache, s float64) int {
	lo, hi := 0, len(lc.cum)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if lc.cum[mid] <= s {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
