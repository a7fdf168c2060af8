package document

import (
	"math"

	"github.com/floorcast/floorcast/backend-go/internal/typeid"
)

// NewEmptyPlan creates the document seeded into a freshly created plan: a
// root frame with a single empty ground floor.
func NewEmptyPlan(planID, planName string) *Plan {
	return &Plan{
		ID:   planID,
		Name: planName,
		Root: &Node{
			ID:     typeid.NewNodeID(),
			Name:   planName,
			Kind:   KindFrame,
			Width:  1200,
			Height: 800,
			Children: []Node{
				{
					ID:     typeid.NewNodeID(),
					Name:   "Floor 1",
					Kind:   KindFrame,
					Width:  1200,
					Height: 800,
				},
			},
		},
	}
}

// NewSamplePlan builds a small two-floor building used by tests and the demo
// seeder: a room with a column hole, a hallway rectangle, a stairs assembly
// with a rail line and a landing, an elevator star marker, and a door arc.
func NewSamplePlan(planID string) *Plan {
	room := Node{
		ID:   typeid.NewNodeID(),
		Name: "Room 101",
		Kind: KindVector,
		X:    40,
		Y:    60,
		Network: &VectorNetwork{
			Vertices: []Vertex{
				{X: 0, Y: 0}, {X: 300, Y: 0}, {X: 300, Y: 200}, {X: 0, Y: 200}, // outer
				{X: 120, Y: 80}, {X: 180, Y: 80}, {X: 180, Y: 140}, {X: 120, Y: 140}, // column
			},
			Segments: []Segment{
				{Start: 0, End: 1}, {Start: 1, End: 2}, {Start: 2, End: 3}, {Start: 3, End: 0},
				{Start: 4, End: 5}, {Start: 5, End: 6}, {Start: 6, End: 7}, {Start: 7, End: 4},
			},
			Regions: []Region{
				{Name: "room", Loops: [][]int{{0, 1, 2, 3}, {4, 5, 6, 7}}},
			},
		},
	}

	hallway := Node{
		ID:     typeid.NewNodeID(),
		Name:   "Hallway A",
		Kind:   KindRectangle,
		X:      360,
		Y:      60,
		Width:  80,
		Height: 420,
	}

	stairs := Node{
		ID:     typeid.NewNodeID(),
		Name:   "Stairs North",
		Kind:   KindFrame,
		X:      460,
		Y:      60,
		Width:  120,
		Height: 200,
		Children: []Node{
			{
				ID:   typeid.NewNodeID(),
				Name: "rail",
				Kind: KindVector,
				X:    10,
				Y:    10,
				Network: &VectorNetwork{
					Vertices: []Vertex{{X: 0, Y: 0}, {X: 0, Y: 180}},
					Segments: []Segment{{Start: 0, End: 1}},
				},
			},
			{
				ID:   typeid.NewNodeID(),
				Name: "landing",
				Kind: KindVector,
				X:    30,
				Y:    140,
				Network: &VectorNetwork{
					Vertices: []Vertex{{X: 0, Y: 0}, {X: 80, Y: 0}, {X: 80, Y: 50}, {X: 0, Y: 50}},
					Segments: []Segment{
						{Start: 0, End: 1}, {Start: 1, End: 2}, {Start: 2, End: 3}, {Start: 3, End: 0},
					},
				},
			},
		},
	}

	elevator := Node{
		ID:     typeid.NewNodeID(),
		Name:   "Elevator 1",
		Kind:   KindStar,
		X:      620,
		Y:      80,
		Width:  48,
		Height: 48,
	}

	door := Node{
		ID:       typeid.NewNodeID(),
		Name:     "Door 101",
		Kind:     KindEllipse,
		X:        40,
		Y:        270,
		Width:    60,
		Height:   60,
		Rotation: 90,
		Arc:      &ArcData{StartAngle: 0, EndAngle: math.Pi / 2},
	}

	upperRoom := Node{
		ID:   typeid.NewNodeID(),
		Name: "Room 201",
		Kind: KindVector,
		X:    40,
		Y:    60,
		Network: &VectorNetwork{
			Vertices: []Vertex{{X: 0, Y: 0}, {X: 260, Y: 0}, {X: 260, Y: 180}, {X: 0, Y: 180}},
			Segments: []Segment{
				{Start: 0, End: 1}, {Start: 1, End: 2}, {Start: 2, End: 3}, {Start: 3, End: 0},
			},
		},
	}

	return &Plan{
		ID:   planID,
		Name: "Sample Building",
		Root: &Node{
			ID:     typeid.NewNodeID(),
			Name:   "Sample Building",
			Kind:   KindFrame,
			Width:  1200,
			Height: 800,
			Children: []Node{
				{
					ID:       typeid.NewNodeID(),
					Name:     "Floor 1",
					Kind:     KindFrame,
					Width:    1200,
					Height:   800,
					Children: []Node{room, hallway, stairs, elevator, door},
				},
				{
					ID:       typeid.NewNodeID(),
					Name:     "Floor 2",
					Kind:     KindFrame,
					Y:        820,
					Width:    1200,
					Height:   800,
					Children: []Node{upperRoom},
				},
			},
		},
	}
}
