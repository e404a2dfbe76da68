package geom

import (
	"fmt"
	"math"
)

// A CurveSegment is one cubic Bezier span of a centreline: a start
// point, two handles, and an end point. Segments are values; a
// centreline is reshaped by replacing its segments, never by writing
// through to a segment's points.
type CurveSegment struct {
	P0, P1, P2, P3 Vec2
}

// collapseTol is the span below which a segment counts as a single
// point (1mm).
const collapseTol = 1e-3

// NewCurveSegment builds a segment from its four control points. It
// fails if all four points coincide within a millimetre, since such a
// segment has no direction anywhere.
func NewCurveSegment(p0, p1, p2, p3 Vec2) (CurveSegment, error) {
	s := CurveSegment{p0, p1, p2, p3}
	if s.Collapsed() {
		return CurveSegment{}, fmt.Errorf("curve segment collapses to a point at %v", p0)
	}
	return s, nil
}

// Line builds a segment tracing the straight line from a to b, with
// handles placed at the third points.
func Line(a, b Vec2) (CurveSegment, error) {
	return NewCurveSegment(a, a.Lerp(b, 1.0/3.0), a.Lerp(b, 2.0/3.0), b)
}

// Collapsed reports whether every control point lies within a
// millimetre of the start point.
func (s CurveSegment) Collapsed() bool {
	return s.P0.Dist(s.P1) < collapseTol &&
		s.P0.Dist(s.P2) < collapseTol &&
		s.P0.Dist(s.P3) < collapseTol
}

// PointAt evaluates the curve at parameter t using the cubic Bernstein
// basis. t is not clamped; values outside [0,1] extrapolate.
func PointAt(s CurveSegment, t float64) Vec2 {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t
	return Vec2{
		b0*s.P0[0] + b1*s.P1[0] + b2*s.P2[0] + b3*s.P3[0],
		b0*s.P0[1] + b1*s.P1[1] + b2*s.P2[1] + b3*s.P3[1],
	}
}

// TangentAt evaluates the (non-normalized) derivative at t. For a
// fully collapsed segment the result is the zero vector; callers must
// treat that as "undefined direction" and fall back to a neighbouring
// sample.
func TangentAt(s CurveSegment, t float64) Vec2 {
	u := 1 - t
	d0 := s.P1.Sub(s.P0).Scale(3 * u * u)
	d1 := s.P2.Sub(s.P1).Scale(6 * u * t)
	d2 := s.P3.Sub(s.P2).Scale(3 * t * t)
	return d0.Add(d1).Add(d2)
}

// polyLen returns the control polygon length, an upper bound on the
// arc length of the segment.
func (s CurveSegment) polyLen() float64 {
	return s.P0.Dist(s.P1) + s.P1.Dist(s.P2) + s.P2.Dist(s.P3)
}

// sampleCount picks how many chords to sum when measuring a segment:
// one per metre of control polygon, so long shallow curves are never
// under-sampled, bounded to [20, 512].
func sampleCount(s CurveSegment) int {
	n := int(math.Ceil(s.polyLen()))
	if n < 20 {
		n = 20
	}
	if n > 512 {
		n = 512
	}
	return n
}

// Length returns the arc length of the segment by sampled chord
// summation. The sample count scales with the segment's size, keeping
// the result within 0.1% for segments up to a few hundred metres.
func Length(s CurveSegment) float64 {
	return NewSampleTable(s).Length()
}

// A SampleTable caches evenly-parameterized samples of one segment
// together with cumulative chord lengths, so that arc length and its
// (approximate) inverse can be answered without re-evaluating the
// curve. Both directions of the chainage transform share one table,
// which keeps them mutually consistent.
type SampleTable struct {
	T   []float64 // parameter at each sample, ascending, T[0]=0, T[n]=1
	P   []Vec2    // point at each sample
	Cum []float64 // cumulative chord length up to each sample
}

// NewSampleTable samples the segment at its natural resolution (see
// sampleCount).
func NewSampleTable(s CurveSegment) *SampleTable {
	n := sampleCount(s)
	st := &SampleTable{
		T:   make([]float64, n+1),
		P:   make([]Vec2, n+1),
		Cum: make([]float64, n+1),
	}
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		st.T[i] = t
		st.P[i] = PointAt(s, t)
		if i > 0 {
			st.Cum[i] = st.Cum[i-1] + st.P[i].Dist(st.P[i-1])
		}
	}
	return st
}

// Length returns the measured arc length of the sampled segment.
func (st *SampleTable) Length() float64 {
	return st.Cum[len(st.Cum)-1]
}

// Param inverts arc length: it returns the parameter at which the
// curve has covered dist metres, interpolating linearly inside the
// bracketing sample pair. dist is clamped to [0, Length].
func (st *SampleTable) Param(dist float64) float64 {
	if dist <= 0 || st.Length() == 0 {
		return 0
	}
	if dist >= st.Length() {
		return 1
	}
	lo, hi := 0, len(st.Cum)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if st.Cum[mid] <= dist {
			lo = mid
		} else {
			hi = mid
		}
	}
	span := st.Cum[hi] - st.Cum[lo]
	if span == 0 {
		return st.T[lo]
	}
	f := (dist - st.Cum[lo]) / span
	return st.T[lo] + f*(st.T[hi]-st.T[lo])
}

// LengthAt is the forward direction of Param: the arc length covered
// at parameter t, clamped to the sampled range.
func (st *SampleTable) LengthAt(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return st.Length()
	}
	n := len(st.T) - 1
	x := t * float64(n)
	i := int(x)
	if i >= n {
		return st.Length()
	}
	f := x - float64(i)
	return st.Cum[i] + f*(st.Cum[i+1]-st.Cum[i])
}
