package magicpaper

import "math"

// Point is a planar coordinate. Screen coordinates grow rightward in X and
// downward in Y.
type Point struct {
	X, Y float64
}

// Add returns the vector sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Lerp linearly interpolates between p (t=0) and q (t=1).
func (p Point) Lerp(q Point, t float64) Point {
	return Point{(1-t)*p.X + t*q.X, (1-t)*p.Y + t*q.Y}
}

// BoundingBox is an axis aligned rectangle. A valid box has Left <= Right
// and Top <= Bottom.
type BoundingBox struct {
	Left, Top, Right, Bottom float64
}

// BoxAt returns the degenerate box containing only p.
func BoxAt(p Point) BoundingBox {
	return BoundingBox{Left: p.X, Top: p.Y, Right: p.X, Bottom: p.Y}
}

// Width returns Right-Left.
func (b BoundingBox) Width() float64 { return b.Right - b.Left }

// Height returns Bottom-Top.
func (b BoundingBox) Height() float64 { return b.Bottom - b.Top }

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Point {
	return Point{0.5 * (b.Left + b.Right), 0.5 * (b.Top + b.Bottom)}
}

// Extend grows the box so that it covers p. The box only ever grows.
func (b BoundingBox) Extend(p Point) BoundingBox {
	return BoundingBox{
		Left:   math.Min(b.Left, p.X),
		Top:    math.Min(b.Top, p.Y),
		Right:  math.Max(b.Right, p.X),
		Bottom: math.Max(b.Bottom, p.Y),
	}
}

// Translate shifts the box by (dx, dy).
func (b BoundingBox) Translate(dx, dy float64) BoundingBox {
	return BoundingBox{b.Left + dx, b.Top + dy, b.Right + dx, b.Bottom + dy}
}

// Inside reports whether p lies in the box, edges included.
func (b BoundingBox) Inside(p Point) bool {
	return p.X >= b.Left && p.X <= b.Right && p.Y >= b.Top && p.Y <= b.Bottom
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// DistanceSets returns the symmetric chamfer distance between two point
// sets: the mean distance from each point of a to its nearest point in b,
// plus the mean distance from each point of b to its nearest point in a.
// If either set is empty the distance is +Inf.
func DistanceSets(a, b []Point) float64 {
	if len(a) == 0 || len(b) == 0 {
		return math.Inf(1)
	}
	return meanNearest(a, NewPointTree(b)) + meanNearest(b, NewPointTree(a))
}

// meanNearest averages, over every point in pts, the distance to the
// closest point stored in tree.
func meanNearest(pts []Point, tree *PointTree) float64 {
	var sum float64
	for _, p := range pts {
		_, d := tree.Nearest(p)
		sum += d
	}
	return sum / float64(len(pts))
}
