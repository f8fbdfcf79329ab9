package analyze

import (
	"sort"
)

// Point is one measurement on a scaling curve: X is the input size, Y
// the measured cost (typically the median trial duration in seconds).
type Point struct {
	X    float64
	Y    float64
	Size int // the original input size, for reporting
}

// FindKnee implements the Kneedle algorithm to find the point of
// maximum curvature. Time-vs-size curves bend both ways (an allocation
// cliff bends up, amortized costs bend down), so the point furthest
// from the normalized diagonal on either side wins.
func FindKnee(points []Point) Point {
	if len(points) < 3 {
		if len(points) > 0 {
			return points[len(points)-1]
		}
		return Point{}
	}

	// 1. Sort by X
	sort.Slice(points, func(i, j int) bool {
		return points[i].X < points[j].X
	})

	// 2. Normalize to [0, 1]
	minX, maxX := points[0].X, points[len(points)-1].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	// Avoid divide by zero
	if maxX == minX || maxY == minY {
		return points[len(points)-1]
	}

	// 3. Distance from the diagonal of the normalized curve.
	// Perfectly linear scaling sits on y=x after normalization, so the
	// knee is wherever the curve strays furthest from that line.
	maxDist := -1.0
	var knee Point

	for _, p := range points {
		xNorm := (p.X - minX) / (maxX - minX)
		yNorm := (p.Y - minY) / (maxY - minY)

		dist := yNorm - xNorm
		if dist < 0 {
			dist = -dist
		}

		if dist > maxDist {
			maxDist = dist
			knee = p
		}
	}

	return knee
}
