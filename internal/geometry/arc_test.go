package geometry

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestTessellateArcFullCircle(t *testing.T) {
	center := orb.Point{50, 50}
	ring := TessellateArc(center, 20, 20, 0, 2*math.Pi, 0)

	if !ring[0].Equal(ring[len(ring)-1]) {
		t.Errorf("ring not closed: first %v, last %v", ring[0], ring[len(ring)-1])
	}

	// A full turn must not gain a pie-slice center vertex.
	for i, p := range ring {
		if p.Equal(center) {
			t.Errorf("center appended at index %d on a full-circle sweep", i)
		}
	}

	// Every vertex sits on the circle.
	for i, p := range ring {
		r := math.Hypot(p[0]-center[0], p[1]-center[1])
		if math.Abs(r-20) > 1e-9 {
			t.Errorf("vertex %d at radius %v, want 20", i, r)
		}
	}
}

func TestTessellateArcHalfCircleAppendsCenter(t *testing.T) {
	center := orb.Point{0, 0}
	ring := TessellateArc(center, 10, 10, 0, math.Pi, 0)

	if !ring[0].Equal(ring[len(ring)-1]) {
		t.Fatalf("ring not closed: first %v, last %v", ring[0], ring[len(ring)-1])
	}

	// Pie slice: center is the second-to-last vertex, before the closing point.
	if got := ring[len(ring)-2]; !got.Equal(center) {
		t.Errorf("expected center before closing point, got %v", got)
	}
}

func TestTessellateArcRotationShiftsParameter(t *testing.T) {
	center := orb.Point{0, 0}
	plain := TessellateArc(center, 10, 10, 0, math.Pi/2, 0)
	rotated := TessellateArc(center, 10, 10, 0, math.Pi/2, math.Pi/2)

	// With equal radii, rotating by the sweep start maps the first vertex of
	// one ring onto where the other starts.
	if math.Abs(rotated[0][0]-0) > 1e-9 || math.Abs(rotated[0][1]-10) > 1e-9 {
		t.Errorf("rotated arc should start at (0,10), got %v", rotated[0])
	}
	if math.Abs(plain[0][0]-10) > 1e-9 || math.Abs(plain[0][1]-0) > 1e-9 {
		t.Errorf("unrotated arc should start at (10,0), got %v", plain[0])
	}
}

func TestTessellateArcUnequalRadii(t *testing.T) {
	ring := TessellateArc(orb.Point{0, 0}, 30, 10, 0, 2*math.Pi, 0)

	var maxX, maxY float64
	for _, p := range ring {
		maxX = math.Max(maxX, math.Abs(p[0]))
		maxY = math.Max(maxY, math.Abs(p[1]))
	}
	if math.Abs(maxX-30) > 1e-9 {
		t.Errorf("x extent %v, want 30", maxX)
	}
	if math.Abs(maxY-10) > 1e-9 {
		t.Errorf("y extent %v, want 10", maxY)
	}
}

func TestTessellateArcZeroRadiusDegenerates(t *testing.T) {
	ring := TessellateArc(orb.Point{5, 5}, 0, 0, 0, 2*math.Pi, 0)
	for i, p := range ring {
		if !p.Equal(orb.Point{5, 5}) {
			t.Errorf("vertex %d = %v, want center", i, p)
		}
	}
}
