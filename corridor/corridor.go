// Package corridor maps between two views of a road centreline: the
// absolute Cartesian plane and chainage space, where a position is a
// distance along the centreline plus a signed lateral offset.
//
// Positive lateral offsets are left of the direction of travel; see
// geom.Normal.
package corridor

import (
	"fmt"

	"github.com/trafficlab/corridor/geom"
)

// A Coordinate is a chainage position: S metres along the centreline
// from its start, T metres of signed lateral offset (positive left of
// travel). Coordinates are meaningful only against the centreline
// revision they were computed from.
type Coordinate struct {
	S float64 `json:"s"`
	T float64 `json:"t"`
}

// A Centreline is an ordered sequence of cubic curve segments sharing
// endpoints. It is the single source of truth for a corridor: the
// direction of increasing chainage is the segment order.
//
// The geometry is replaced wholesale via SetSegments, which bumps the
// revision counter; callers that cache derived geometry key their
// caches on Rev.
type Centreline struct {
	segs  []geom.CurveSegment
	rev   int
	cache *lineCache
}

// continuityTol is the largest endpoint gap (metres) tolerated between
// consecutive segments.
const continuityTol = 1e-3

// lineCache holds per-revision sampling of every segment plus the
// cumulative length at each segment start.
type lineCache struct {
	tables []*geom.SampleTable
	cum    []float64
	total  float64
}

// New builds a centreline from segments. Collapsed (point-like)
// segments are filtered out; a gap between the remaining consecutive
// segments' endpoints is an error.
func New(segs []geom.CurveSegment) (*Centreline, error) {
	c := &Centreline{}
	if err := c.SetSegments(segs); err != nil {
		return nil, err
	}
	return c, nil
}

// SetSegments replaces the centreline's geometry and bumps the
// revision. The same validation as New applies; on error the previous
// geometry is kept.
func (c *Centreline) SetSegments(segs []geom.CurveSegment) error {
	kept := make([]geom.CurveSegment, 0, len(segs))
	for _, s := range segs {
		if s.Collapsed() {
			continue
		}
		kept = append(kept, s)
	}
	for i := 1; i < len(kept); i++ {
		if d := kept[i-1].P3.Dist(kept[i].P0); d > continuityTol {
			return fmt.Errorf("segments %d and %d do not join: gap of %.3fm", i-1, i, d)
		}
	}
	c.segs = kept
	c.rev++
	c.cache = nil
	return nil
}

// Rev returns the revision counter, incremented on every geometry
// change.
func (c *Centreline) Rev() int { return c.rev }

// Segments returns a copy of the centreline's segments in chainage
// order.
func (c *Centreline) Segments() []geom.CurveSegment {
	return append([]geom.CurveSegment{}, c.segs...)
}

// Start returns the first point of the centreline, or the origin for
// an empty centreline.
func (c *Centreline) Start() geom.Vec2 {
	if len(c.segs) == 0 {
		return geom.Vec2{}
	}
	return c.segs[0].P0
}

// Length returns the total arc length in metres.
func (c *Centreline) Length() float64 {
	return c.ensure().total
}

func (c *Centreline) ensure() *lineCache {
	if c.cache != nil {
		return c.cache
	}
	lc := &lineCache{
		tables: make([]*geom.SampleTable, len(c.segs)),
		cum:    make([]float64, len(c.segs)),
	}
	for i, s := range c.segs {
		lc.tables[i] = geom.NewSampleTable(s)
		lc.cum[i] = lc.total
		lc.total += lc.tables[i].Length()
	}
	c.cache = lc
	return lc
}
