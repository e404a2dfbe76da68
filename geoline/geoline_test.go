package geoline

import (
	"testing"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"github.com/stretchr/testify/assert"

	"github.com/trafficlab/corridor/corridor"
)

// eastbound is a three-vertex track running east along the equator,
// a bit over 200m long.
func eastbound() *Line {
	return NewLine(orb.LineString{{0, 0}, {0.001, 0}, {0.002, 0}})
}

func TestLength(t *testing.T) {
	l := eastbound()
	want := orbgeo.Distance(orb.Point{0, 0}, orb.Point{0.001, 0}) +
		orbgeo.Distance(orb.Point{0.001, 0}, orb.Point{0.002, 0})
	assert.InDelta(t, want, l.Length(), 1e-9)
}

func TestSnap(t *testing.T) {
	l := eastbound()
	// A point slightly north of the first segment's midpoint.
	co, snapped := l.Snap(orb.Point{0.0005, 0.00002})
	wantS := orbgeo.Distance(orb.Point{0, 0}, orb.Point{0.0005, 0})
	assert.InDelta(t, wantS, co.S, 0.5)
	// North of an eastbound track is left of travel: positive t.
	if co.T <= 0 {
		t.Errorf("offset t = %v, want positive (north is left of travel)", co.T)
	}
	assert.InDelta(t, 0.0005, snapped.Lon(), 1e-7)
	assert.InDelta(t, 0, snapped.Lat(), 1e-7)

	// South of the track: negative t, same chainage.
	co2, _ := l.Snap(orb.Point{0.0005, -0.00002})
	if co2.T >= 0 {
		t.Errorf("offset t = %v, want negative", co2.T)
	}
	assert.InDelta(t, co.S, co2.S, 0.01)
	assert.InDelta(t, -co.T, co2.T, 0.01)
}

func TestSnapBeyondEnds(t *testing.T) {
	l := eastbound()
	co, _ := l.Snap(orb.Point{-0.001, 0})
	assert.InDelta(t, 0, co.S, 1e-9)
	co, _ = l.Snap(orb.Point{0.005, 0})
	assert.InDelta(t, l.Length(), co.S, 1e-9)
}

func TestLocate(t *testing.T) {
	l := eastbound()
	mid := l.Length() / 2
	p := l.Locate(corridor.Coordinate{S: mid})
	assert.InDelta(t, 0.001, p.Lon(), 1e-6)
	assert.InDelta(t, 0, p.Lat(), 1e-9)

	// Out-of-range chainage clamps to the ends.
	p = l.Locate(corridor.Coordinate{S: -50})
	assert.InDelta(t, 0, p.Lon(), 1e-9)
	p = l.Locate(corridor.Coordinate{S: l.Length() + 50})
	assert.InDelta(t, 0.002, p.Lon(), 1e-6)
}

func TestSnapLocateRoundTrip(t *testing.T) {
	l := NewLine(orb.LineString{{-0.3, 51.5}, {-0.299, 51.5005}, {-0.2975, 51.5007}})
	for _, p := range []orb.Point{
		{-0.2995, 51.50004},
		{-0.2985, 51.5006},
	} {
		co, _ := l.Snap(p)
		back := l.Locate(co)
		// Round trip within about a metre of ground distance.
		if d := orbgeo.Distance(p, back); d > 1 {
			t.Errorf("round trip of %v moved %vm", p, d)
		}
	}
}

func TestDegenerateTracks(t *testing.T) {
	empty := NewLine(nil)
	co, _ := empty.Snap(orb.Point{1, 1})
	if co != (corridor.Coordinate{}) {
		t.Errorf("Snap on empty = %v, want zero", co)
	}
	if got := empty.Length(); got != 0 {
		t.Errorf("Length on empty = %v, want 0", got)
	}

	// A repeated single point filters to one vertex.
	single := NewLine(orb.LineString{{3, 4}, {3, 4}, {3, 4}})
	co, snapped := single.Snap(orb.Point{5, 6})
	if co != (corridor.Coordinate{}) {
		t.Errorf("Snap on single = %v, want zero", co)
	}
	if snapped != (orb.Point{3, 4}) {
		t.Errorf("snapped = %v, want the single vertex", snapped)
	}
	if p := single.Locate(corridor.Coordinate{S: 10, T: 10}); p != (orb.Point{3, 4}) {
		t.Errorf("Locate on single = %v, want the single vertex", p)
	}
}
