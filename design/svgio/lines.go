package svgio

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/JoshVarga/svgparser"
	"golang.org/x/net/html/charset"

	"github.com/trafficlab/corridor/geom"
)

// segmentsFromLines extracts straight centreline segments from an SVG
// element tree: <line> elements and paths restricted to M/L commands,
// with translate/scale group transforms applied. It is the fallback
// for files whose path data the instruction parser yields nothing
// for.
func segmentsFromLines(raw []byte) ([]geom.CurveSegment, error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	decoder.CharsetReader = charset.NewReaderLabel
	elt, err := svgparser.DecodeFirst(decoder)
	if err != nil {
		return nil, err
	}
	if err := elt.Decode(decoder); err != nil && err != io.EOF {
		return nil, err
	}
	var pts []geom.Vec2
	if err := collectPoints(&pts, identity, elt); err != nil {
		return nil, err
	}
	segs := make([]geom.CurveSegment, 0, len(pts))
	for i := 1; i < len(pts); i++ {
		if seg, err := geom.Line(pts[i-1], pts[i]); err == nil {
			segs = append(segs, seg)
		}
	}
	return segs, nil
}

func collectPoints(pts *[]geom.Vec2, xf *xform, e *svgparser.Element) error {
	for _, c := range e.Children {
		switch c.Name {
		case "g":
			gxf, err := parseTransform(c.Attributes["transform"])
			if err != nil {
				return err
			}
			if err := collectPoints(pts, xf.compose(gxf), c); err != nil {
				return err
			}
		case "path":
			if err := collectPathPoints(pts, xf, c.Attributes["d"]); err != nil {
				return err
			}
		case "line":
			if err := collectLinePoints(pts, xf, c); err != nil {
				return err
			}
		case "defs":
			continue
		}
	}
	return nil
}

func collectLinePoints(pts *[]geom.Vec2, xf *xform, e *svgparser.Element) error {
	var ferr error
	pf := func(s string) float64 {
		if ferr != nil {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		ferr = err
		return f
	}
	x1 := pf(e.Attributes["x1"])
	y1 := pf(e.Attributes["y1"])
	x2 := pf(e.Attributes["x2"])
	y2 := pf(e.Attributes["y2"])
	if ferr != nil {
		return ferr
	}
	*pts = append(*pts, xf.apply(geom.Vec2{x1, y1}), xf.apply(geom.Vec2{x2, y2}))
	return nil
}

func collectPathPoints(pts *[]geom.Vec2, xf *xform, d string) error {
	parts := strings.Fields(d)
	var xy geom.Vec2
	xyp := 0
	for _, p := range parts {
		if p == "M" || p == "L" {
			if xyp != 0 {
				return fmt.Errorf("got odd number of components before %s", p)
			}
			continue
		}
		p = strings.TrimRight(p, ",")
		x, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return err
		}
		xy[xyp] = x
		xyp++
		if xyp == 2 {
			*pts = append(*pts, xf.apply(xy))
			xyp = 0
		}
	}
	if xyp != 0 {
		return fmt.Errorf("got stray component in path")
	}
	return nil
}

// xform is a 2d affine transform in homogeneous form.
type xform struct {
	m [3][3]float64
}

var identity = &xform{m: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}

func (xf *xform) compose(xf2 *xform) *xform {
	var a xform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				a.m[i][k] += xf.m[i][j] * xf2.m[j][k]
			}
		}
	}
	return &a
}

func (xf *xform) apply(v geom.Vec2) geom.Vec2 {
	x := [3]float64{v[0], v[1], 1}
	var r [3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i] += xf.m[i][j] * x[j]
		}
	}
	return geom.Vec2{r[0] / r[2], r[1] / r[2]}
}

func translate(x, y float64) *xform {
	return &xform{m: [3][3]float64{{1, 0, x}, {0, 1, y}, {0, 0, 1}}}
}

func scale(x, y float64) *xform {
	return &xform{m: [3][3]float64{{x, 0, 0}, {0, y, 0}, {0, 0, 1}}}
}

type xformScannerState int

const (
	xfsName xformScannerState = 1 + iota
	xfsBra
	xfsMaybeComma
	xfsArg
)

func parseFloats(a []string) ([]float64, error) {
	var r []float64
	for _, x := range a {
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return nil, err
		}
		r = append(r, f)
	}
	return r, nil
}

func parseSingleTransform(name string, args []string) (*xform, error) {
	switch name {
	case "translate":
		fa, err := parseFloats(args)
		if err != nil {
			return nil, err
		}
		if len(fa) != 1 && len(fa) != 2 {
			return nil, fmt.Errorf("translate should have one or two parameters: got %s", args)
		}
		if len(fa) == 1 {
			fa = append(fa, 0)
		}
		return translate(fa[0], fa[1]), nil
	case "scale":
		fa, err := parseFloats(args)
		if err != nil {
			return nil, err
		}
		if len(fa) != 1 && len(fa) != 2 {
			return nil, fmt.Errorf("scale should have one or two parameters: got %s", args)
		}
		if len(fa) == 1 {
			fa = append(fa, fa[0])
		}
		return scale(fa[0], fa[1]), nil
	default:
		return nil, fmt.Errorf("unknown transform function %q", name)
	}
}

func parseTransform(x string) (*xform, error) {
	var s scanner.Scanner
	xf := identity
	s.Init(strings.NewReader(x))
	state := xfsName
	fname := ""
	var args []string
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		switch state {
		case xfsName:
			if tok != scanner.Ident {
				return nil, fmt.Errorf("failed to parse transform: expected transform name, but got %q", s.TokenText())
			}
			fname = s.TokenText()
			state = xfsBra
		case xfsBra:
			if tok != '(' {
				return nil, fmt.Errorf("failed to parse transform: expected (, but got %q", s.TokenText())
			}
			state = xfsArg
		case xfsMaybeComma:
			if tok == ',' {
				continue
			}
			fallthrough
		case xfsArg:
			if tok == ')' {
				nx, err := parseSingleTransform(fname, args)
				if err != nil {
					return nil, err
				}
				xf = xf.compose(nx)
				state = xfsName
				args = nil
			} else if tok == scanner.Float || tok == scanner.Int {
				args = append(args, s.TokenText())
				state = xfsMaybeComma
			} else {
				return nil, fmt.Errorf("unexpected token %q parsing transform %q", s.TokenText(), x)
			}
		}
	}
	if state != xfsName {
		return nil, fmt.Errorf("failed to parse transform: %q", x)
	}
	return xf, nil
}
