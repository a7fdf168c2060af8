package geometry

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		point       orb.Point
		offsets     []orb.Point
		floorHeight float64
		want        orb.Point
	}{
		{
			name:        "flips y against floor height",
			point:       orb.Point{10, 30},
			floorHeight: 100,
			want:        orb.Point{10, 70},
		},
		{
			name:        "point at floor height maps to zero",
			point:       orb.Point{5, 100},
			floorHeight: 100,
			want:        orb.Point{5, 0},
		},
		{
			name:        "offsets compose before the flip",
			point:       orb.Point{1, 2},
			offsets:     []orb.Point{{10, 20}, {100, 200}},
			floorHeight: 500,
			want:        orb.Point{111, 278},
		},
		{
			name:        "no offsets at origin",
			point:       orb.Point{0, 0},
			floorHeight: 800,
			want:        orb.Point{0, 800},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.point, tt.offsets, tt.floorHeight)
			if !got.Equal(tt.want) {
				t.Errorf("Normalize(%v, %v, %v) = %v, want %v",
					tt.point, tt.offsets, tt.floorHeight, got, tt.want)
			}
		})
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	const h = 640.0
	p := orb.Point{42, 17}

	once := Normalize(p, nil, h)
	twice := Normalize(once, nil, h)
	if !twice.Equal(p) {
		t.Errorf("double flip should restore the point: got %v, want %v", twice, p)
	}
}
