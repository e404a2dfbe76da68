// Package iso converts between chainage coordinates and screen pixels
// for the isometric rendering mode. The transform is a fixed 2:1
// dimetric projection, independent of any centreline geometry, and
// has an exact closed-form inverse.
package iso

import (
	"fmt"

	"github.com/trafficlab/corridor/corridor"
	"github.com/trafficlab/corridor/geom"
)

// Config fixes the projection for one rendering session: the grid
// scale in metres per grid unit, the tile size in pixels (width twice
// the height for the 2:1 projection), and the screen origin. It is
// rebuilt whenever the viewport container resizes.
type Config struct {
	Scale  float64   // metres per grid unit
	TileW  float64   // tile width, pixels
	TileH  float64   // tile height, pixels
	Origin geom.Vec2 // screen position of chainage (0,0), pixels
}

// NewConfig validates a projection config. Non-positive scale or tile
// sizes are configuration errors: refusing here is what keeps the
// transforms below free of division checks.
func NewConfig(scale, tileW, tileH float64, origin geom.Vec2) (*Config, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("isometric scale must be positive, got %g", scale)
	}
	if tileW <= 0 || tileH <= 0 {
		return nil, fmt.Errorf("isometric tile size must be positive, got %gx%g", tileW, tileH)
	}
	return &Config{Scale: scale, TileW: tileW, TileH: tileH, Origin: origin}, nil
}

// ToScreen projects a chainage coordinate to pixels: chainage and
// lateral offset become grid units, and the grid is drawn with the
// s axis running down-right and the t axis down-left.
func (c *Config) ToScreen(co corridor.Coordinate) geom.Vec2 {
	gs := co.S / c.Scale
	gt := co.T / c.Scale
	return geom.Vec2{
		(gs-gt)*c.TileW/2 + c.Origin[0],
		(gs+gt)*c.TileH/2 + c.Origin[1],
	}
}

// ToChainage is the exact algebraic inverse of ToScreen.
func (c *Config) ToChainage(p geom.Vec2) corridor.Coordinate {
	a := (p[0] - c.Origin[0]) / (c.TileW / 2)
	b := (p[1] - c.Origin[1]) / (c.TileH / 2)
	gs := (a + b) / 2
	gt := (b - a) / 2
	return corridor.Coordinate{S: gs * c.Scale, T: gt * c.Scale}
}

// Depth returns the painter's-order key for a chainage position:
// objects further along the corridor, or further toward positive
// lateral offset, draw on top. The key is strictly increasing in both
// grid coordinates, so two positions differing in the same direction
// never stack ambiguously.
func (c *Config) Depth(co corridor.Coordinate) float64 {
	return co.S/c.Scale + co.T/c.Scale
}
