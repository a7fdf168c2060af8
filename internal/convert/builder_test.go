package convert

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/floorcast/floorcast/backend-go/internal/document"
	"github.com/floorcast/floorcast/backend-go/internal/sink"
)

func TestBuildSelectionValidation(t *testing.T) {
	tests := []struct {
		name      string
		selection []document.Node
		wantMsg   string
	}{
		{
			name:      "empty selection",
			selection: nil,
			wantMsg:   "select exactly one top-level frame",
		},
		{
			name: "two selected nodes",
			selection: []document.Node{
				{Kind: document.KindFrame}, {Kind: document.KindFrame},
			},
			wantMsg: "select exactly one top-level frame",
		},
		{
			name:      "non-container selection",
			selection: []document.Node{{Kind: document.KindRectangle}},
			wantMsg:   "selected node must be a frame or group",
		},
		{
			name: "no floor children",
			selection: []document.Node{{
				Kind:     document.KindFrame,
				Children: []document.Node{{Kind: document.KindRectangle, Width: 10, Height: 10}},
			}},
			wantMsg: "no floor groups inside the selection",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out sink.Capture
			Build(tt.selection, Options{}, &out)

			if out.Emits() != 1 {
				t.Fatalf("Emits() = %d, want exactly 1", out.Emits())
			}
			if out.Payload.Kind != sink.KindError {
				t.Fatalf("payload kind = %q, want error", out.Payload.Kind)
			}
			if out.Payload.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", out.Payload.Message, tt.wantMsg)
			}
		})
	}
}

func TestBuildNoUsableFeatures(t *testing.T) {
	selection := []document.Node{{
		Name: "Building",
		Kind: document.KindFrame,
		Children: []document.Node{{
			Name:   "Floor 1",
			Kind:   document.KindFrame,
			Height: 100,
			Children: []document.Node{{
				Name: "sliver",
				Kind: document.KindVector,
				Network: &document.VectorNetwork{
					Vertices: []document.Vertex{{X: 0, Y: 0}, {X: 1, Y: 1}},
					Segments: []document.Segment{{Start: 0, End: 1}},
				},
			}},
		}},
	}}

	var out sink.Capture
	Build(selection, Options{}, &out)

	if out.Emits() != 1 {
		t.Fatalf("Emits() = %d, want exactly 1", out.Emits())
	}
	if out.Payload.Kind != sink.KindError {
		t.Fatalf("payload kind = %q, want error", out.Payload.Kind)
	}
	if !strings.Contains(out.Payload.Message, "no exportable shapes") {
		t.Errorf("unexpected message %q", out.Payload.Message)
	}
}

func TestBuildEmptyFloorSoftNotice(t *testing.T) {
	plan := document.NewSamplePlan("plan_test")
	plan.Root.Children = append(plan.Root.Children, document.Node{
		Name:   "Attic",
		Kind:   document.KindFrame,
		Height: 800,
	})

	var out sink.Capture
	Build([]document.Node{*plan.Root}, Options{}, &out)

	if out.Emits() != 1 {
		t.Fatalf("Emits() = %d, want exactly 1", out.Emits())
	}
	if out.Payload.Kind != sink.KindSuccess {
		t.Fatalf("payload kind = %q, want success: %s", out.Payload.Kind, out.Payload.Message)
	}

	found := false
	for _, n := range out.Notices {
		if strings.Contains(n, "Attic") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a soft notice for the empty floor, got %v", out.Notices)
	}

	var exports []FloorExport
	if err := json.Unmarshal(out.Payload.Floors, &exports); err != nil {
		t.Fatalf("unmarshal floors: %v", err)
	}
	if len(exports) != 3 {
		t.Fatalf("got %d floor entries, want 3", len(exports))
	}
	if exports[2].FloorID != "Attic" {
		t.Errorf("last floor id = %q, want Attic", exports[2].FloorID)
	}
	if n := len(exports[2].FeatureCollection.Features); n != 0 {
		t.Errorf("empty floor carries %d features, want 0", n)
	}
}

func TestBuildSamplePlan(t *testing.T) {
	plan := document.NewSamplePlan("plan_test")

	var out sink.Capture
	Build([]document.Node{*plan.Root}, Options{}, &out)

	if out.Payload == nil || out.Payload.Kind != sink.KindSuccess {
		t.Fatalf("expected success payload, got %+v", out.Payload)
	}
	if out.Payload.Filename != "Sample-Building.geojson" {
		t.Errorf("filename = %q, want Sample-Building.geojson", out.Payload.Filename)
	}

	var exports []FloorExport
	if err := json.Unmarshal(out.Payload.Floors, &exports); err != nil {
		t.Fatalf("unmarshal floors: %v", err)
	}
	if len(exports) != 2 {
		t.Fatalf("got %d floors, want 2", len(exports))
	}
	if exports[0].FloorID != "Floor 1" || exports[1].FloorID != "Floor 2" {
		t.Errorf("floor order %q, %q", exports[0].FloorID, exports[1].FloorID)
	}

	// Floor 1: room, hallway, stairs box + rail line + landing shape,
	// elevator star, door point.
	if n := len(exports[0].FeatureCollection.Features); n != 7 {
		t.Errorf("floor 1 has %d features, want 7", n)
	}
	if n := len(exports[1].FeatureCollection.Features); n != 1 {
		t.Errorf("floor 2 has %d features, want 1", n)
	}
}

func TestBuildDeterministic(t *testing.T) {
	plan := document.NewSamplePlan("plan_test")

	var first, second sink.Capture
	Build([]document.Node{*plan.Root}, Options{Ellipses: EllipseAsPolygon}, &first)
	Build([]document.Node{*plan.Root}, Options{Ellipses: EllipseAsPolygon}, &second)

	if first.Payload == nil || second.Payload == nil {
		t.Fatal("both runs must emit a payload")
	}
	if !bytes.Equal(first.Payload.Floors, second.Payload.Floors) {
		t.Error("same scene converted twice must serialize identically")
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Sample Building", "Sample-Building.geojson"},
		{"", "floor-plan.geojson"},
		{"hq/floors: v2", "hq-floors--v2.geojson"},
		{"already_safe-1", "already_safe-1.geojson"},
	}
	for _, tt := range tests {
		if got := Filename(tt.in); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
