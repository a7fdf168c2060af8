package convert

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/floorcast/floorcast/backend-go/internal/document"
	"github.com/floorcast/floorcast/backend-go/internal/geometry"
)

// SynthesizeNode converts one scene node into zero or more features, all in
// floor-relative coordinates. Malformed or under-specified nodes contribute
// nothing; they never raise.
func SynthesizeNode(node *document.Node, floorHeight float64, opts Options) []*geojson.Feature {
	props, ok := opts.identify(node.Name)
	if !ok {
		return nil
	}

	switch node.Kind {
	case document.KindVector:
		f := synthesizePath(node, floorHeight, props)
		if f == nil {
			return nil
		}
		return []*geojson.Feature{f}

	case document.KindRectangle, document.KindFrame, document.KindGroup:
		if node.IsStairs() {
			return synthesizeStairs(node, floorHeight, props)
		}
		return []*geojson.Feature{boxFeature(node, floorHeight, props)}

	case document.KindStar:
		// Only the footprint is reconstructed, not the star silhouette.
		f := boxFeature(node, floorHeight, props)
		f.Properties["shapeType"] = "star"
		return []*geojson.Feature{f}

	case document.KindEllipse:
		return []*geojson.Feature{synthesizeEllipse(node, floorHeight, props, opts)}

	default:
		return nil
	}
}

// synthesizePath traces the node's vector network into a polygon. The outer
// ring is traced over the full segment set; when regions are declared, every
// loop after the first loop of the first region becomes a hole ring.
func synthesizePath(node *document.Node, floorHeight float64, props geojson.Properties) *geojson.Feature {
	net := node.Network
	if net == nil {
		return nil
	}

	order := geometry.TraceLoop(net.Segments)
	if len(order) < 3 {
		return nil
	}

	offsets := []orb.Point{{node.X, node.Y}}
	outer := ringFromOrder(net, order, offsets, floorHeight)
	if outer == nil {
		return nil
	}

	poly := orb.Polygon{outer}
	for ri := range net.Regions {
		for li, loop := range net.Regions[ri].Loops {
			if ri == 0 && li == 0 {
				continue // outer boundary, already traced
			}
			if hole := traceRing(net, loop, offsets, floorHeight); hole != nil {
				poly = append(poly, hole)
			}
		}
	}

	f := geojson.NewFeature(poly)
	f.Properties = props
	return f
}

// traceRing traces one region loop (a list of segment indices) into a closed
// ring, or nil when the loop is unusable.
func traceRing(net *document.VectorNetwork, loop []int, offsets []orb.Point, floorHeight float64) orb.Ring {
	segs := make([]document.Segment, 0, len(loop))
	for _, si := range loop {
		if si < 0 || si >= len(net.Segments) {
			return nil
		}
		segs = append(segs, net.Segments[si])
	}

	order := geometry.TraceLoop(segs)
	if len(order) < 3 {
		return nil
	}
	return ringFromOrder(net, order, offsets, floorHeight)
}

// ringFromOrder resolves traced vertex indices to normalized coordinates and
// closes the ring.
func ringFromOrder(net *document.VectorNetwork, order []int, offsets []orb.Point, floorHeight float64) orb.Ring {
	ring := make(orb.Ring, 0, len(order)+1)
	for _, vi := range order {
		if vi < 0 || vi >= len(net.Vertices) {
			return nil
		}
		v := net.Vertices[vi]
		ring = append(ring, geometry.Normalize(orb.Point{v.X, v.Y}, offsets, floorHeight))
	}
	return append(ring, ring[0])
}

// boxFeature emits the node's axis-aligned bounding box as a closed ring.
func boxFeature(node *document.Node, floorHeight float64, props geojson.Properties) *geojson.Feature {
	ring := orb.Ring{
		geometry.Normalize(orb.Point{node.X, node.Y}, nil, floorHeight),
		geometry.Normalize(orb.Point{node.X + node.Width, node.Y}, nil, floorHeight),
		geometry.Normalize(orb.Point{node.X + node.Width, node.Y + node.Height}, nil, floorHeight),
		geometry.Normalize(orb.Point{node.X, node.Y + node.Height}, nil, floorHeight),
	}
	ring = append(ring, ring[0])

	f := geojson.NewFeature(orb.Polygon{ring})
	f.Properties = props
	return f
}

// synthesizeStairs emits the stairs frame's bounding box plus one auxiliary
// feature per vector descendant: a 2-vertex/1-edge network becomes a
// LineString, a network of 3 or more vertices a polygon when its loop traces
// cleanly. Auxiliary ids share one zero-padded sequence per container and
// point back at it via parentId.
func synthesizeStairs(node *document.Node, floorHeight float64, props geojson.Properties) []*geojson.Feature {
	baseID, _ := props["id"].(string)
	features := []*geojson.Feature{boxFeature(node, floorHeight, props)}
	seq := 0

	var descend func(n *document.Node, offsets []orb.Point)
	descend = func(n *document.Node, offsets []orb.Point) {
		for i := range n.Children {
			child := &n.Children[i]
			childOffsets := append(append([]orb.Point(nil), offsets...), orb.Point{child.X, child.Y})

			if child.Kind == document.KindVector && child.Network != nil {
				net := child.Network
				switch {
				case len(net.Vertices) == 2 && len(net.Segments) == 1:
					s := net.Segments[0]
					if s.Start >= 0 && s.Start < 2 && s.End >= 0 && s.End < 2 {
						a, b := net.Vertices[s.Start], net.Vertices[s.End]
						seq++
						f := geojson.NewFeature(orb.LineString{
							geometry.Normalize(orb.Point{a.X, a.Y}, childOffsets, floorHeight),
							geometry.Normalize(orb.Point{b.X, b.Y}, childOffsets, floorHeight),
						})
						f.Properties = geojson.Properties{
							"id":       fmt.Sprintf("%s-line-%03d", baseID, seq),
							"parentId": baseID,
						}
						features = append(features, f)
					}

				case len(net.Vertices) >= 3:
					order := geometry.TraceLoop(net.Segments)
					if len(order) >= 3 {
						if ring := ringFromOrder(net, order, childOffsets, floorHeight); ring != nil {
							seq++
							f := geojson.NewFeature(orb.Polygon{ring})
							f.Properties = geojson.Properties{
								"id":       fmt.Sprintf("%s-shape-%03d", baseID, seq),
								"parentId": baseID,
							}
							features = append(features, f)
						}
					}
				}
			}

			if len(child.Children) > 0 {
				descend(child, childOffsets)
			}
		}
	}
	descend(node, []orb.Point{{node.X, node.Y}})

	return features
}

// synthesizeEllipse emits either the center point with a radius property or,
// under EllipseAsPolygon, a tessellated ring carrying the rotation as
// metadata.
func synthesizeEllipse(node *document.Node, floorHeight float64, props geojson.Properties, opts Options) *geojson.Feature {
	rx, ry := node.Width/2, node.Height/2
	center := orb.Point{node.X + rx, node.Y + ry}

	if opts.Ellipses == EllipseAsPoint {
		f := geojson.NewFeature(geometry.Normalize(center, nil, floorHeight))
		props["radius"] = rx
		f.Properties = props
		return f
	}

	start, end := 0.0, 2*math.Pi
	if node.Arc != nil {
		start, end = node.Arc.StartAngle, node.Arc.EndAngle
	}

	local := geometry.TessellateArc(center, rx, ry, start, end, node.Rotation*math.Pi/180)
	ring := make(orb.Ring, 0, len(local))
	for _, p := range local {
		ring = append(ring, geometry.Normalize(p, nil, floorHeight))
	}

	f := geojson.NewFeature(orb.Polygon{ring})
	props["rotation"] = node.Rotation
	f.Properties = props
	return f
}
