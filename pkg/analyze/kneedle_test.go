package analyze

import (
	"testing"
)

func TestFindKnee(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		wantX  float64
	}{
		{
			name: "Saturating curve",
			points: []Point{
				{X: 1, Y: 10},
				{X: 2, Y: 20},
				{X: 3, Y: 28}, // Knee
				{X: 4, Y: 30},
				{X: 5, Y: 31},
			},
			wantX: 3,
		},
		{
			name: "Quadratic growth",
			points: []Point{
				{X: 1, Y: 1},
				{X: 2, Y: 4},
				{X: 3, Y: 9}, // Furthest below the diagonal
				{X: 4, Y: 16},
				{X: 5, Y: 25},
			},
			wantX: 3,
		},
		{
			name: "Linear",
			points: []Point{
				{X: 1, Y: 10},
				{X: 2, Y: 20},
				{X: 3, Y: 30},
				{X: 4, Y: 40},
			},
			// On a line every normalized distance is 0, so the first
			// point encountered wins. There is no real knee here.
			wantX: 1,
		},
		{
			name: "Plateau",
			points: []Point{
				{X: 1, Y: 100},
				{X: 2, Y: 100},
				{X: 3, Y: 100},
			},
			// minY == maxY short-circuits to the last point.
			wantX: 3,
		},
		{
			name: "Step function",
			points: []Point{
				{X: 1, Y: 0},
				{X: 2, Y: 0},
				{X: 3, Y: 100}, // Jump between 2 and 3
				{X: 4, Y: 100},
			},
			// Norm: (0,0), (1/3,0), (2/3,1), (1,1). Absolute distance
			// peaks at 1/3 for both X=2 and X=3; the first one wins.
			wantX: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindKnee(tt.points)
			if got.X != tt.wantX {
				t.Errorf("FindKnee() = %v, want X=%v", got, tt.wantX)
			}
		})
	}
}

func TestFindKneeDegenerate(t *testing.T) {
	if got := FindKnee(nil); got != (Point{}) {
		t.Errorf("FindKnee(nil) = %v, want zero Point", got)
	}
	two := []Point{{X: 1, Y: 1}, {X: 2, Y: 5}}
	if got := FindKnee(two); got.X != 2 {
		t.Errorf("FindKnee(two points) = %v, want the last point", got)
	}
}
