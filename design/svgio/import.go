// Package svgio reads corridor centrelines from SVG files and writes
// corridor drawings back out as SVG. A drawn centreline is a single
// open path: cubic "C" spans become curve segments directly, and
// straight "L" spans become straight segments.
package svgio

import (
	"bytes"
	"fmt"
	"io"

	rsvg "github.com/rustyoz/svg"

	"github.com/trafficlab/corridor/corridor"
	"github.com/trafficlab/corridor/geom"
)

// CentrelineFromSVG extracts a centreline from an SVG file. Path
// elements with curve commands are read through the drawing
// instruction parser; files containing only <line> elements or
// M/L-style paths fall back to the element-tree walk in lines.go.
// This provides only limited SVG support and will fail or produce
// incorrect results on files using features it doesn't understand.
func CentrelineFromSVG(r io.Reader) (*corridor.Centreline, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	segs, err := segmentsFromInstructions(raw)
	if err != nil || len(segs) == 0 {
		polySegs, perr := segmentsFromLines(raw)
		if perr == nil && len(polySegs) > 0 {
			return corridor.New(polySegs)
		}
		if err == nil {
			err = perr
		}
		if err == nil {
			err = fmt.Errorf("no centreline path found in svg")
		}
		return nil, err
	}
	return corridor.New(segs)
}

func segmentsFromInstructions(raw []byte) ([]geom.CurveSegment, error) {
	parsed, err := rsvg.ParseSvgFromReader(bytes.NewReader(raw), "corridor", 1)
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}
	ins, errs := parsed.ParseDrawingInstructions()

	var segs []geom.CurveSegment
	var cur geom.Vec2
	started := false
	// Drain both channels together so a parse error can't wedge the
	// instruction goroutine.
	for ins != nil || errs != nil {
		select {
		case di, ok := <-ins:
			if !ok {
				ins = nil
				continue
			}
			switch di.Kind {
			case rsvg.MoveInstruction:
				cur = tupleVec(di.M)
				started = true
			case rsvg.LineInstruction:
				if !started {
					continue
				}
				to := tupleVec(di.M)
				if seg, err := geom.Line(cur, to); err == nil {
					segs = append(segs, seg)
				}
				cur = to
			case rsvg.CurveInstruction:
				if !started || di.CurvePoints == nil {
					continue
				}
				c1 := tupleVec(di.CurvePoints.C1)
				c2 := tupleVec(di.CurvePoints.C2)
				to := tupleVec(di.CurvePoints.T)
				if seg, err := geom.NewCurveSegment(cur, c1, c2, to); err == nil {
					segs = append(segs, seg)
				}
				cur = to
			}
			// Close and paint instructions carry no centreline
			// geometry.
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("failed to parse svg path: %w", err)
			}
		}
	}
	return segs, nil
}

func tupleVec(t *rsvg.Tuple) geom.Vec2 {
	if t == nil {
		return geom.Vec2{}
	}
	return geom.Vec2{t[0], t[1]}
}
