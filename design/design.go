// Package design holds the persisted form of a traffic-calming
// scheme: the corridor centreline (drawn curve segments in canvas
// mode, or a geographic track in map mode), the placed products, and
// the derived bill of quantities.
//
// The serialized shape round-trips exactly: centrelines are stored as
// their control points or coordinate list, never resampled, and
// element positions are never rewritten on load or save.
package design

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/paulmach/orb"

	"github.com/trafficlab/corridor/corridor"
	"github.com/trafficlab/corridor/geoline"
	"github.com/trafficlab/corridor/geom"
)

// Mode says how a document's centreline is stored.
type Mode string

const (
	// ModeCanvas stores the centreline as cubic curve segments in a
	// free-form Cartesian plane.
	ModeCanvas Mode = "canvas"
	// ModeMap stores the centreline as a lon/lat polyline over a
	// real-world map.
	ModeMap Mode = "map"
)

// A Position fixes where a placed element sits: either road-relative
// (a chainage coordinate against the document's centreline) or an
// absolute Cartesian point. Positions are values; moving an element
// means replacing its position wholesale, consistent with the
// surrounding undo model.
type Position struct {
	Chainage *corridor.Coordinate `json:"chainage,omitempty"`
	Absolute *geom.Vec2           `json:"absolute,omitempty"`
}

// AtChainage returns a road-relative position.
func AtChainage(s, t float64) Position {
	return Position{Chainage: &corridor.Coordinate{S: s, T: t}}
}

// AtAbsolute returns an absolute position.
func AtAbsolute(p geom.Vec2) Position {
	return Position{Absolute: &p}
}

// Valid reports whether exactly one of the two variants is set.
func (p Position) Valid() bool {
	return (p.Chainage != nil) != (p.Absolute != nil)
}

// Resolve returns the Cartesian point of the position against the
// given centreline. Absolute positions ignore the centreline.
func (p Position) Resolve(c *corridor.Centreline) geom.Vec2 {
	if p.Absolute != nil {
		return *p.Absolute
	}
	if p.Chainage != nil {
		pt, _ := c.Locate(*p.Chainage)
		return pt
	}
	return geom.Vec2{}
}

// ProductID identifies a catalog product (speed cushion, island,
// sign, ...).
type ProductID string

// A Product is the catalog definition an element refers to.
type Product struct {
	ID         ProductID `json:"id"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit,omitempty"`        // "" counts each
	UnitLength float64   `json:"unit_length,omitempty"` // metres per unit, for linear products
}

// A Catalog resolves product IDs to their definitions. It is injected
// read-only reference data, not global state.
type Catalog interface {
	Product(id ProductID) (Product, bool)
}

// An Element is one placed product.
type Element struct {
	ID      string    `json:"id"`
	Product ProductID `json:"product"`
	Pos     Position  `json:"pos"`
}

// A Document is one scheme design as persisted.
type Document struct {
	Name     string         `json:"name,omitempty"`
	Mode     Mode           `json:"mode"`
	Segments [][4]geom.Vec2 `json:"segments,omitempty"` // canvas mode
	Track    orb.LineString `json:"track,omitempty"`    // map mode
	Width    float64        `json:"width"`              // carriageway width, metres
	Elements []Element      `json:"elements,omitempty"`
}

// Load reads a document from JSON.
func Load(r io.Reader) (*Document, error) {
	var d Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode design document: %w", err)
	}
	switch d.Mode {
	case ModeCanvas, ModeMap:
	default:
		return nil, fmt.Errorf("design document has unknown mode %q", d.Mode)
	}
	return &d, nil
}

// Save writes the document as indented JSON.
func (d *Document) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode design document: %w", err)
	}
	return nil
}

// Centreline builds the canvas-mode centreline from the stored
// control points.
func (d *Document) Centreline() (*corridor.Centreline, error) {
	if d.Mode != ModeCanvas {
		return nil, fmt.Errorf("document mode is %q, not %q", d.Mode, ModeCanvas)
	}
	segs := make([]geom.CurveSegment, 0, len(d.Segments))
	for _, cp := range d.Segments {
		segs = append(segs, geom.CurveSegment{P0: cp[0], P1: cp[1], P2: cp[2], P3: cp[3]})
	}
	return corridor.New(segs)
}

// Line builds the map-mode snapper from the stored track.
func (d *Document) Line() (*geoline.Line, error) {
	if d.Mode != ModeMap {
		return nil, fmt.Errorf("document mode is %q, not %q", d.Mode, ModeMap)
	}
	return geoline.NewLine(d.Track), nil
}
