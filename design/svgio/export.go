package svgio

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/trafficlab/corridor/corridor"
	"github.com/trafficlab/corridor/geom"
)

// A Drawing collects the geometry of one corridor for export: the
// centreline itself, any offset edge polylines (carriageway, cycle
// lane), and marker points for placed elements.
type Drawing struct {
	Centreline *corridor.Centreline
	Edges      [][]geom.Vec2
	Markers    []geom.Vec2
}

const markerRadius = 0.6

var svgh = `<svg height="%d" width="%d" viewBox="%d %d %d %d" version="1.1" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`

// Write emits the drawing as an SVG file: the centreline as a cubic
// path, edges as polyline paths, markers as circles. The view box is
// tightened around the geometry with a small margin.
func Write(w io.Writer, d *Drawing) error {
	min, max, any := d.bounds()
	if !any {
		return fmt.Errorf("nothing to draw")
	}
	const margin = 5
	min = min.Sub(geom.Vec2{margin, margin})
	max = max.Add(geom.Vec2{margin, margin})

	var werr error
	bi := bufio.NewWriter(w)
	wr := func(f string, args ...interface{}) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(bi, f, args...)
	}
	wr(svgh, int(max[1]-min[1]), int(max[0]-min[0]), int(min[0]), int(min[1]), int(max[0]-min[0]), int(max[1]-min[1]))
	wr("\n")
	wr("<g fill=\"none\" stroke=\"black\" stroke-width=\"0.1\">\n")
	if d.Centreline != nil {
		segs := d.Centreline.Segments()
		if len(segs) > 0 {
			wr(`<path d="M %.2f, %.2f`, segs[0].P0[0], segs[0].P0[1])
			for _, s := range segs {
				wr(" C %.2f, %.2f %.2f, %.2f %.2f, %.2f",
					s.P1[0], s.P1[1], s.P2[0], s.P2[1], s.P3[0], s.P3[1])
			}
			wr("\"/>\n")
		}
	}
	for _, e := range d.Edges {
		if len(e) == 0 {
			continue
		}
		wr(`<path d="`)
		for i, v := range e {
			if i == 0 {
				wr("M %.2f, %.2f", v[0], v[1])
			} else {
				wr(" %.2f, %.2f", v[0], v[1])
			}
		}
		wr("\"/>\n")
	}
	for _, m := range d.Markers {
		wr("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\"/>\n", m[0], m[1], markerRadius)
	}
	wr("</g>")
	wr("</svg>")
	if werr == nil {
		werr = bi.Flush()
	}
	return werr
}

func (d *Drawing) bounds() (min, max geom.Vec2, any bool) {
	inf := math.Inf(1)
	min = geom.Vec2{inf, inf}
	max = geom.Vec2{-inf, -inf}
	grow := func(v geom.Vec2) {
		any = true
		min[0] = math.Min(min[0], v[0])
		min[1] = math.Min(min[1], v[1])
		max[0] = math.Max(max[0], v[0])
		max[1] = math.Max(max[1], v[1])
	}
	if d.Centreline != nil {
		for _, s := range d.Centreline.Segments() {
			grow(s.P0)
			grow(s.P1)
			grow(s.P2)
			grow(s.P3)
		}
	}
	for _, e := range d.Edges {
		for _, v := range e {
			grow(v)
		}
	}
	for _, m := range d.Markers {
		grow(m)
	}
	return min, max, any
}
