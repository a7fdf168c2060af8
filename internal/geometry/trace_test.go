package geometry

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/floorcast/floorcast/backend-go/internal/document"
)

func TestTraceLoop(t *testing.T) {
	tests := []struct {
		name     string
		segments []document.Segment
		want     []int
	}{
		{
			name: "square cycle drops closing duplicate",
			segments: []document.Segment{
				{Start: 0, End: 1}, {Start: 1, End: 2}, {Start: 2, End: 3}, {Start: 3, End: 0},
			},
			want: []int{0, 1, 2, 3},
		},
		{
			name: "cycle with reversed segments",
			segments: []document.Segment{
				{Start: 0, End: 1}, {Start: 2, End: 1}, {Start: 3, End: 2}, {Start: 0, End: 3},
			},
			want: []int{0, 1, 2, 3},
		},
		{
			name:     "open chain",
			segments: []document.Segment{{Start: 0, End: 1}, {Start: 1, End: 2}},
			want:     []int{0, 1, 2},
		},
		{
			name:     "single segment",
			segments: []document.Segment{{Start: 4, End: 7}},
			want:     []int{4, 7},
		},
		{
			name:     "disconnected remainder stops at dead end",
			segments: []document.Segment{{Start: 0, End: 1}, {Start: 5, End: 6}},
			want:     []int{0, 1},
		},
		{
			name:     "empty input",
			segments: nil,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TraceLoop(tt.segments)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("TraceLoop mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTraceLoopDoesNotMutateInput(t *testing.T) {
	segments := []document.Segment{
		{Start: 0, End: 1}, {Start: 1, End: 2}, {Start: 2, End: 0},
	}
	original := make([]document.Segment, len(segments))
	copy(original, segments)

	TraceLoop(segments)

	if diff := cmp.Diff(original, segments); diff != "" {
		t.Errorf("input segments mutated (-want +got):\n%s", diff)
	}
}

func TestTraceLoopVisitsEachVertexOnce(t *testing.T) {
	// Hexagon given in scrambled order.
	segments := []document.Segment{
		{Start: 3, End: 4}, {Start: 0, End: 1}, {Start: 5, End: 0},
		{Start: 2, End: 3}, {Start: 4, End: 5}, {Start: 1, End: 2},
	}

	got := TraceLoop(segments)
	if len(got) != 6 {
		t.Fatalf("expected 6 indices, got %d: %v", len(got), got)
	}

	seen := make(map[int]bool)
	for _, idx := range got {
		if seen[idx] {
			t.Fatalf("vertex %d visited twice in %v", idx, got)
		}
		seen[idx] = true
	}
}
