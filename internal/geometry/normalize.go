package geometry

import "github.com/paulmach/orb"

// Normalize converts a node-local point into floor-relative coordinates.
// offsets is the chain of local positions from the point's owning node up to,
// but not including, the enclosing floor. The scene's vertical axis grows
// downward, so the absolute Y is flipped against the floor height; nested
// shapes always end up floor-relative, never container-relative.
func Normalize(p orb.Point, offsets []orb.Point, floorHeight float64) orb.Point {
	x, y := p[0], p[1]
	for _, off := range offsets {
		x += off[0]
		y += off[1]
	}
	return orb.Point{x, floorHeight - y}
}
