package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// ArcSegments is the fixed tessellation resolution for ellipse arcs.
const ArcSegments = 64

// fullTurnEpsilon decides whether a sweep counts as a complete circle.
const fullTurnEpsilon = 1e-9

// TessellateArc approximates an ellipse arc as a closed polygon ring in the
// ellipse's local coordinate space. start and end bound the sweep in radians
// (0 to 2π for a full ellipse); rotation is added to the parameter before
// evaluating the curve.
//
// Adding rotation to the parameter of an axis-aligned ellipse is not a true
// affine rotation when rx != ry. Downstream consumers rely on these exact
// coordinates, so the approximation stays.
//
// A partial sweep gets the ellipse center appended before closing, producing
// a pie slice. The ring always ends on its first coordinate.
func TessellateArc(center orb.Point, rx, ry, start, end, rotation float64) orb.Ring {
	sweep := end - start
	ring := make(orb.Ring, 0, ArcSegments+3)

	for i := 0; i <= ArcSegments; i++ {
		a := start + sweep*float64(i)/ArcSegments + rotation
		ring = append(ring, orb.Point{
			center[0] + rx*math.Cos(a),
			center[1] + ry*math.Sin(a),
		})
	}

	if math.Abs(math.Abs(sweep)-2*math.Pi) > fullTurnEpsilon {
		ring = append(ring, center)
	}

	if !ring[0].Equal(ring[len(ring)-1]) {
		ring = append(ring, ring[0])
	}
	return ring
}
