package magicpaper

import (
	"math"
	"sort"
)

// PointTree is a 2-d tree over a fixed point list, used for the nearest
// point queries of recognition and morphing. Queries report the index of the
// match in the original list so callers can break ties by insertion order.
type PointTree struct {
	root *pointNode
	size int
}

// pointNode represents a node in the tree. Each node holds one point, its
// index in the source list, its children, and the axis it splits on.
type pointNode struct {
	Point       Point
	Index       int
	Left, Right *pointNode
	SplitAxis   int
}

type indexedPoint struct {
	p   Point
	idx int
}

// NewPointTree builds a tree over pts. The slice is not retained or
// reordered.
func NewPointTree(pts []Point) *PointTree {
	entries := make([]indexedPoint, len(pts))
	for i, p := range pts {
		entries[i] = indexedPoint{p, i}
	}
	return &PointTree{root: buildPointTree(entries), size: len(pts)}
}

// Len returns the number of points in the tree.
func (t *PointTree) Len() int { return t.size }

// buildPointTree splits entries at the median of the axis with the larger
// variance and recurses into both halves.
func buildPointTree(entries []indexedPoint) *pointNode {
	if len(entries) == 0 {
		return nil
	}
	axis := chooseSplitAxis(entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return component(entries[i].p, axis) < component(entries[j].p, axis)
	})
	median := len(entries) / 2
	return &pointNode{
		Point:     entries[median].p,
		Index:     entries[median].idx,
		Left:      buildPointTree(entries[:median]),
		Right:     buildPointTree(entries[median+1:]),
		SplitAxis: axis,
	}
}

// chooseSplitAxis returns 0 (X) or 1 (Y), whichever has the larger
// variance over entries.
func chooseSplitAxis(entries []indexedPoint) int {
	var meanX, meanY float64
	for _, e := range entries {
		meanX += e.p.X
		meanY += e.p.Y
	}
	meanX /= float64(len(entries))
	meanY /= float64(len(entries))

	var varX, varY float64
	for _, e := range entries {
		varX += (e.p.X - meanX) * (e.p.X - meanX)
		varY += (e.p.Y - meanY) * (e.p.Y - meanY)
	}
	if varX >= varY {
		return 0
	}
	return 1
}

func component(p Point, axis int) float64 {
	if axis == 0 {
		return p.X
	}
	return p.Y
}

// Nearest returns the index of the point closest to target and the distance
// to it. Among equally close points the lowest index wins. An empty tree
// returns -1 and +Inf.
func (t *PointTree) Nearest(target Point) (int, float64) {
	if t.root == nil {
		return -1, math.Inf(1)
	}
	best, bestDist := t.root.nearest(target, -1, math.Inf(1))
	return best, math.Sqrt(bestDist)
}

// nearest walks the subtree, carrying the best index and squared distance
// found so far. The far branch is searched whenever it could hold a point at
// least as close, so that ties are resolved by index rather than by tree
// shape.
func (node *pointNode) nearest(target Point, best int, bestDist float64) (int, float64) {
	if node == nil {
		return best, bestDist
	}

	dx, dy := node.Point.X-target.X, node.Point.Y-target.Y
	dist := dx*dx + dy*dy
	if dist < bestDist || (dist == bestDist && node.Index < best) {
		best, bestDist = node.Index, dist
	}

	axisDist := component(target, node.SplitAxis) - component(node.Point, node.SplitAxis)
	next, other := node.Right, node.Left
	if axisDist < 0 {
		next, other = node.Left, node.Right
	}

	best, bestDist = next.nearest(target, best, bestDist)
	if axisDist*axisDist <= bestDist {
		best, bestDist = other.nearest(target, best, bestDist)
	}
	return best, bestDist
}
