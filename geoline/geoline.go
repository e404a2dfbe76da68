// Package geoline projects geographic points onto a corridor
// centreline stored as a lon/lat polyline, for the map rendering
// mode. It has the same chainage contract as package corridor's
// Project/Locate pair, but over an orb.LineString.
//
// Distances are metres: chainage accumulates haversine distance
// between vertices, and lateral work happens in a local metric frame
// (an equirectangular projection about the line's mean latitude), so
// sampling stays proportional to real distance rather than degrees.
package geoline

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"

	"github.com/trafficlab/corridor/corridor"
	"github.com/trafficlab/corridor/geom"
)

const earthRadius = 6378137.0

// A Line is a geographic centreline with its metric projection and
// cumulative chainage precomputed. Build a new Line whenever the
// underlying track changes; a Line itself is immutable.
type Line struct {
	ls     orb.LineString
	xy     []geom.Vec2 // vertices in the local metric frame
	cum    []float64   // chainage (haversine metres) at each vertex
	ref    orb.Point   // projection reference (first vertex)
	cosLat float64
}

// NewLine builds a snapper over the given track. Coincident
// consecutive vertices are filtered out. A track with fewer than two
// distinct vertices is legal but degenerate: Snap and Locate fall
// back to the first available point and chainage zero.
func NewLine(ls orb.LineString) *Line {
	kept := make(orb.LineString, 0, len(ls))
	for _, p := range ls {
		if len(kept) > 0 && kept[len(kept)-1] == p {
			continue
		}
		kept = append(kept, p)
	}
	l := &Line{ls: kept}
	if len(kept) == 0 {
		return l
	}
	l.ref = kept[0]
	meanLat := 0.0
	for _, p := range kept {
		meanLat += p.Lat()
	}
	meanLat /= float64(len(kept))
	l.cosLat = math.Cos(meanLat * math.Pi / 180)
	l.xy = make([]geom.Vec2, len(kept))
	l.cum = make([]float64, len(kept))
	for i, p := range kept {
		l.xy[i] = l.project(p)
		if i > 0 {
			l.cum[i] = l.cum[i-1] + orbgeo.Distance(kept[i-1], p)
		}
	}
	return l
}

// project maps lon/lat to the local metric frame: x east, y north.
func (l *Line) project(p orb.Point) geom.Vec2 {
	return geom.Vec2{
		(p.Lon() - l.ref.Lon()) * math.Pi / 180 * earthRadius * l.cosLat,
		(p.Lat() - l.ref.Lat()) * math.Pi / 180 * earthRadius,
	}
}

// unproject maps a local metric point back to lon/lat.
func (l *Line) unproject(v geom.Vec2) orb.Point {
	return orb.Point{
		l.ref.Lon() + v[0]/(earthRadius*l.cosLat)*180/math.Pi,
		l.ref.Lat() + v[1]/earthRadius*180/math.Pi,
	}
}

// Length returns the total chainage of the track in metres.
func (l *Line) Length() float64 {
	if len(l.cum) == 0 {
		return 0
	}
	return l.cum[len(l.cum)-1]
}

// Track returns a copy of the (filtered) track.
func (l *Line) Track() orb.LineString {
	return append(orb.LineString{}, l.ls...)
}

// Snap projects a geographic point onto the track, returning its
// chainage coordinate and the snapped point on the track. The lateral
// sign convention matches package corridor: positive is left of the
// direction of travel (north of an eastbound track). A degenerate
// track snaps everything to (0,0) at its first available point.
func (l *Line) Snap(p orb.Point) (corridor.Coordinate, orb.Point) {
	if len(l.ls) == 0 {
		return corridor.Coordinate{}, orb.Point{}
	}
	if len(l.ls) == 1 {
		return corridor.Coordinate{}, l.ls[0]
	}

	pv := l.project(p)
	bestSeg := 0
	bestU := 0.0
	bestD := math.Inf(1)
	for i := 0; i+1 < len(l.xy); i++ {
		u, d := segProject(pv, l.xy[i], l.xy[i+1])
		if d < bestD {
			bestD = d
			bestSeg, bestU = i, u
		}
	}

	a, b := l.xy[bestSeg], l.xy[bestSeg+1]
	foot := a.Lerp(b, bestU)
	n := geom.Normal(b.Sub(a))
	s := l.cum[bestSeg] + bestU*(l.cum[bestSeg+1]-l.cum[bestSeg])
	return corridor.Coordinate{S: s, T: pv.Sub(foot).Dot(n)}, l.unproject(foot)
}

// Locate is the inverse of Snap: chainage coordinate to geographic
// point. S is clamped to [0, Length]; beyond-the-end chainage holds
// the final segment's direction for the lateral offset.
func (l *Line) Locate(co corridor.Coordinate) orb.Point {
	if len(l.ls) == 0 {
		return orb.Point{}
	}
	if len(l.ls) == 1 {
		return l.ls[0]
	}

	s := math.Max(0, math.Min(co.S, l.Length()))
	i := 0
	for i+2 < len(l.cum) && l.cum[i+1] <= s {
		i++
	}
	span := l.cum[i+1] - l.cum[i]
	u := 0.0
	if span > 0 {
		u = (s - l.cum[i]) / span
	}
	a, b := l.xy[i], l.xy[i+1]
	foot := a.Lerp(b, u)
	n := geom.Normal(b.Sub(a))
	return l.unproject(foot.Add(n.Scale(co.T)))
}

// segProject returns the clamped parameter of the closest point to p
// on segment ab, and the distance to it.
func segProject(p, a, b geom.Vec2) (u, d float64) {
	ab := b.Sub(a)
	den := ab.Dot(ab)
	if den == 0 {
		return 0, p.Dist(a)
	}
	u = p.Sub(a).Dot(ab) / den
	u = math.Max(0, math.Min(1, u))
	return u, p.Dist(a.Lerp(b, u))
}
