// Package corridorplan provides the functionality for the
// corridorplan binary as a library.
package corridorplan

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/trafficlab/corridor/corridor"
	"github.com/trafficlab/corridor/design"
	"github.com/trafficlab/corridor/design/svgio"
	"github.com/trafficlab/corridor/geom"
)

type Config struct {
	In      string
	Out     string
	Catalog string

	Width      float64
	CycleWidth float64
	CycleGap   float64
	CycleSide  string

	Thin float64

	Table bool
	BoQ   bool
}

// Run loads the input design (a JSON document, or an SVG whose drawn
// path becomes a canvas-mode centreline), prints the requested
// tables to out, and writes the corridor SVG when an output file is
// configured.
func Run(cfg *Config, out io.Writer) error {
	if cfg.In == "" {
		return fmt.Errorf("input file must be specified")
	}
	doc, err := loadDocument(cfg.In)
	if err != nil {
		return err
	}
	width := cfg.Width
	if width == 0 {
		width = doc.Width
	}

	var cat design.Catalog
	if cfg.Catalog != "" {
		data, err := os.ReadFile(cfg.Catalog)
		if err != nil {
			return fmt.Errorf("failed to read catalog: %w", err)
		}
		if cat, err = design.CatalogFromJSON(data); err != nil {
			return err
		}
	}

	if cfg.Table {
		if err := chainageTable(doc, out); err != nil {
			return err
		}
	}
	if cfg.BoQ {
		if cat == nil {
			return fmt.Errorf("-boq requires -catalog")
		}
		lines, err := design.BillOfQuantities(doc, cat)
		if err != nil {
			return err
		}
		for _, l := range lines {
			fmt.Fprintf(out, "%-24s %4d  %8.2f %s\n", l.Name, l.Count, l.Quantity, l.Unit)
		}
	}

	if cfg.Out != "" {
		if err := writeSVG(cfg, doc, width); err != nil {
			return err
		}
	}
	return nil
}

func loadDocument(name string) (*design.Document, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if filepath.Ext(name) == ".svg" {
		cl, err := svgio.CentrelineFromSVG(f)
		if err != nil {
			return nil, err
		}
		doc := &design.Document{Mode: design.ModeCanvas}
		for _, s := range cl.Segments() {
			doc.Segments = append(doc.Segments, [4]geom.Vec2{s.P0, s.P1, s.P2, s.P3})
		}
		return doc, nil
	}
	return design.Load(f)
}

// chainageTable prints one row per placed element: its id, product,
// and chainage position. Absolute canvas positions are projected onto
// the centreline first.
func chainageTable(doc *design.Document, out io.Writer) error {
	switch doc.Mode {
	case design.ModeCanvas:
		cl, err := doc.Centreline()
		if err != nil {
			return err
		}
		for _, e := range doc.Elements {
			var co corridor.Coordinate
			switch {
			case e.Pos.Chainage != nil:
				co = *e.Pos.Chainage
			case e.Pos.Absolute != nil:
				co = cl.Project(*e.Pos.Absolute)
			default:
				return fmt.Errorf("element %q has no position", e.ID)
			}
			fmt.Fprintf(out, "%-12s %-16s s=%8.2f t=%+6.2f\n", e.ID, e.Product, co.S, co.T)
		}
	case design.ModeMap:
		for _, e := range doc.Elements {
			if e.Pos.Chainage == nil {
				fmt.Fprintf(os.Stderr, "skipping element %q: map mode table needs chainage positions\n", e.ID)
				continue
			}
			fmt.Fprintf(out, "%-12s %-16s s=%8.2f t=%+6.2f\n", e.ID, e.Product, e.Pos.Chainage.S, e.Pos.Chainage.T)
		}
	}
	return nil
}

func writeSVG(cfg *Config, doc *design.Document, width float64) error {
	if doc.Mode != design.ModeCanvas {
		return fmt.Errorf("svg export requires a canvas mode design")
	}
	cl, err := doc.Centreline()
	if err != nil {
		return err
	}
	d := &svgio.Drawing{Centreline: cl}
	left, right := cl.EdgeOffsets(width)
	d.Edges = append(d.Edges, left, right)
	if cfg.CycleWidth > 0 {
		side := corridor.Left
		if strings.EqualFold(cfg.CycleSide, "right") {
			side = corridor.Right
		}
		inner, outer := cl.CycleLane(width/2, cfg.CycleGap, cfg.CycleWidth, side)
		d.Edges = append(d.Edges, inner, outer)
	}
	if cfg.Thin > 0 {
		for i, e := range d.Edges {
			d.Edges[i] = geom.ThinPolyline(e, cfg.Thin)
		}
	}
	for _, e := range doc.Elements {
		if e.Pos.Valid() {
			d.Markers = append(d.Markers, e.Pos.Resolve(cl))
		}
	}

	f, err := os.Create(cfg.Out)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	if err := svgio.Write(f, d); err != nil {
		f.Close()
		return fmt.Errorf("failed to write svg file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write svg file: %w", err)
	}
	return nil
}
