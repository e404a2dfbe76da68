package svgio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trafficlab/corridor/corridor"
	"github.com/trafficlab/corridor/geom"
)

var curveSVG = `<svg width="200" height="100" viewBox="0 0 200 100" version="1.1" xmlns="http://www.w3.org/2000/svg">
<path d="M 0 0 C 33 0 67 0 100 0"/>
</svg>`

func TestCentrelineFromSVGCurves(t *testing.T) {
	cl, err := CentrelineFromSVG(strings.NewReader(curveSVG))
	require.NoError(t, err)
	segs := cl.Segments()
	require.Len(t, segs, 1)
	if segs[0].P0 != (geom.Vec2{0, 0}) || segs[0].P3 != (geom.Vec2{100, 0}) {
		t.Errorf("segment endpoints = %v, %v", segs[0].P0, segs[0].P3)
	}
	assert.InDelta(t, 100, cl.Length(), 0.2)
}

// A simple test svg in the line/path-only form, with transforms
// applied through groups.
var lineSVG = `
<svg width="2000" height="1000">
   <g transform="translate(200, 100) scale(2)" stroke="black" fill="none">
	   <path d="M100,50 300, 200"/>
   </g>
</svg>`

func TestSegmentsFromLines(t *testing.T) {
	segs, err := segmentsFromLines([]byte(lineSVG))
	require.NoError(t, err)
	require.Len(t, segs, 1)
	if segs[0].P0 != (geom.Vec2{400, 200}) || segs[0].P3 != (geom.Vec2{800, 500}) {
		t.Errorf("transformed endpoints = %v, %v", segs[0].P0, segs[0].P3)
	}
}

var lineElementSVG = `
<svg width="100" height="100">
   <line x1="0" y1="0" x2="50" y2="0"/>
</svg>`

func TestSegmentsFromLineElements(t *testing.T) {
	segs, err := segmentsFromLines([]byte(lineElementSVG))
	require.NoError(t, err)
	require.Len(t, segs, 1)
	if segs[0].P3 != (geom.Vec2{50, 0}) {
		t.Errorf("line end = %v, want (50,0)", segs[0].P3)
	}
}

func TestWrite(t *testing.T) {
	seg, err := geom.Line(geom.Vec2{0, 0}, geom.Vec2{100, 0})
	require.NoError(t, err)
	cl, err := corridor.New([]geom.CurveSegment{seg})
	require.NoError(t, err)
	left, right := cl.EdgeOffsets(6.5)
	d := &Drawing{
		Centreline: cl,
		Edges:      [][]geom.Vec2{left, right},
		Markers:    []geom.Vec2{{50, 0}},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d))
	out := buf.String()
	for _, want := range []string{"<svg ", "<path d=\"M 0.00, 0.00 C", "<circle cx=\"50.00\"", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg output missing %q", want)
		}
	}
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, &Drawing{}); err == nil {
		t.Errorf("empty drawing written without error")
	}
}
