package document

import "strings"

// Plan is one stored floor-plan document. Root is the top-level frame whose
// direct children are the building's floor groups.
type Plan struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Root *Node  `json:"root"`
}

type NodeKind string

const (
	KindFrame     NodeKind = "Frame"
	KindGroup     NodeKind = "Group"
	KindVector    NodeKind = "Vector"
	KindRectangle NodeKind = "Rectangle"
	KindEllipse   NodeKind = "Ellipse"
	KindStar      NodeKind = "Star"
)

// Node is one positioned entity in a plan's scene tree. X/Y are the node's
// position in its parent's coordinate space; Width/Height are its extents.
// Network is set for Vector nodes, Arc and Rotation for Ellipse nodes.
type Node struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Kind     NodeKind       `json:"kind"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	Width    float64        `json:"width"`
	Height   float64        `json:"height"`
	Rotation float64        `json:"rotation,omitempty"` // degrees, counter-clockwise
	Arc      *ArcData       `json:"arc,omitempty"`
	Network  *VectorNetwork `json:"network,omitempty"`
	Children []Node         `json:"children,omitempty"`
}

// ArcData holds the sweep of a partial ellipse, in radians. A nil ArcData on
// an ellipse node means a full circle.
type ArcData struct {
	StartAngle float64 `json:"startAngle"`
	EndAngle   float64 `json:"endAngle"`
}

// VectorNetwork is the (vertices, edges) graph describing one freeform
// shape's geometry. Segments are unordered vertex-index pairs. Regions, when
// present, partition the segments into loops; the first loop of the first
// region is the outer boundary and any further loop is a hole.
type VectorNetwork struct {
	Vertices []Vertex  `json:"vertices"`
	Segments []Segment `json:"segments"`
	Regions  []Region  `json:"regions,omitempty"`
}

// Vertex is a 2-D point in the owning node's local coordinate space.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Segment is an unordered pair of indices into the network's vertex list.
type Segment struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Region groups segment-index loops into one named boundary set.
type Region struct {
	Name  string  `json:"name,omitempty"`
	Loops [][]int `json:"loops"`
}

// IsContainer reports whether the node is a frame or group, i.e. a kind that
// carries children and can act as a floor or selection root.
func (n *Node) IsContainer() bool {
	return n.Kind == KindFrame || n.Kind == KindGroup
}

// IsStairs reports whether a container is a stairs assembly, marked by a
// case-insensitive "stairs" substring in its name.
func (n *Node) IsStairs() bool {
	return n.IsContainer() && strings.Contains(strings.ToLower(n.Name), "stairs")
}
