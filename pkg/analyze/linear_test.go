package analyze

import (
	"math"
	"testing"
)

func TestFindDominantSlope(t *testing.T) {
	// A clean linear regime with two outliers tacked on; RANSAC should
	// lock onto the line and report its slope.
	var points []Point
	for x := 1.0; x <= 10; x++ {
		points = append(points, Point{X: x, Y: 2*x + 1})
	}
	points = append(points, Point{X: 11, Y: 200}, Point{X: 12, Y: 500})

	res := FindDominantSlope(points, 0.05)
	if res.InlierCount < 10 {
		t.Fatalf("InlierCount = %d, want >= 10", res.InlierCount)
	}
	if math.Abs(res.Slope-2) > 0.2 {
		t.Errorf("Slope = %v, want ~2", res.Slope)
	}
	if res.Coverage < 10.0/12.0-0.01 {
		t.Errorf("Coverage = %v, want >= %v", res.Coverage, 10.0/12.0)
	}
}

func TestFindDominantSlopeTooFewPoints(t *testing.T) {
	res := FindDominantSlope([]Point{{X: 1, Y: 1}}, 0.05)
	if res.InlierCount != 0 {
		t.Errorf("InlierCount = %d, want 0", res.InlierCount)
	}
}
