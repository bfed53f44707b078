package magicpaper

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bruteNearest(pts []Point, target Point) (int, float64) {
	best, bestDist := -1, math.Inf(1)
	for i, p := range pts {
		dx, dy := p.X-target.X, p.Y-target.Y
		if d := dx*dx + dy*dy; d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, math.Sqrt(bestDist)
}

func TestPointTreeMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pts := make([]Point, 500)
	for i := range pts {
		pts[i] = Point{rng.Float64()*400 - 200, rng.Float64() * 300}
	}
	tree := NewPointTree(pts)
	require.Equal(t, len(pts), tree.Len())

	for i := 0; i < 200; i++ {
		target := Point{rng.Float64()*500 - 250, rng.Float64()*400 - 50}
		wantIdx, wantDist := bruteNearest(pts, target)
		gotIdx, gotDist := tree.Nearest(target)
		assert.Equal(t, wantIdx, gotIdx, "target %v", target)
		assert.InDelta(t, wantDist, gotDist, 1e-9)
	}
}

func TestPointTreeTiesGoToLowestIndex(t *testing.T) {
	// Integer grid with repeated points, so most queries have ties.
	var pts []Point
	for rep := 0; rep < 3; rep++ {
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				pts = append(pts, Point{float64(x), float64(y)})
			}
		}
	}
	tree := NewPointTree(pts)
	for x := -1.0; x <= 5; x += 0.5 {
		for y := -1.0; y <= 5; y += 0.5 {
			target := Point{x, y}
			wantIdx, _ := bruteNearest(pts, target)
			gotIdx, _ := tree.Nearest(target)
			assert.Equal(t, wantIdx, gotIdx, "target %v", target)
		}
	}
}

func TestPointTreeEmpty(t *testing.T) {
	tree := NewPointTree(nil)
	idx, dist := tree.Nearest(Point{1, 2})
	assert.Equal(t, -1, idx)
	assert.True(t, math.IsInf(dist, 1))
}

func TestNewPointTreeDoesNotReorder(t *testing.T) {
	pts := []Point{{3, 0}, {1, 0}, {2, 0}}
	NewPointTree(pts)
	assert.Equal(t, []Point{{3, 0}, {1, 0}, {2, 0}}, pts)
}
