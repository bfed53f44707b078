package magicpaper

import "math"

// Kind identifies what a glyph is. The recognizable kinds come first, in
// catalog order; that order breaks ties during classification.
type Kind int

const (
	KindLinear Kind = iota
	KindLowerGraph
	KindMidGraph
	KindSigmoid
	KindParameter
	KindSketch
)

// Catalog lists the kinds a sketch can be recognized as, in declaration
// order.
var Catalog = []Kind{KindLinear, KindLowerGraph, KindMidGraph, KindSigmoid}

var kindNames = map[Kind]string{
	KindLinear:     "linear",
	KindLowerGraph: "lower-graph",
	KindMidGraph:   "mid-graph",
	KindSigmoid:    "sigmoid",
	KindParameter:  "parameter",
	KindSketch:     "sketch",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsNeuron reports whether glyphs of this kind carry a bias and inputs.
func (k Kind) IsNeuron() bool { return k == KindLinear || k == KindSigmoid }

// IsPlot reports whether glyphs of this kind are graph axes.
func (k Kind) IsPlot() bool { return k == KindLowerGraph || k == KindMidGraph }

// templates holds the normalized outline of every recognizable kind. Points
// lie in [-1,1] on both axes with y = -1 at the top.
var templates = map[Kind][]Point{
	KindLinear:     squareTemplate(),
	KindLowerGraph: lowerGraphTemplate(),
	KindMidGraph:   midGraphTemplate(),
	KindSigmoid:    circleTemplate(100),
}

// Template returns a copy of the normalized outline for kind, or nil for
// kinds that are not in the catalog.
func Template(kind Kind) []Point {
	pts, ok := templates[kind]
	if !ok {
		return nil
	}
	return append([]Point(nil), pts...)
}

// squareTemplate walks the four edges of the square in steps of 0.05,
// emitting one point per edge per step: top, right, bottom, left.
func squareTemplate() []Point {
	pts := make([]Point, 0, 160)
	for j := 0; j < 40; j++ {
		s := float64(j) * 0.05
		pts = append(pts,
			Point{-1 + s, -1},
			Point{1, -1 + s},
			Point{1 - s, 1},
			Point{-1, 1 - s},
		)
	}
	return pts
}

func circleTemplate(n int) []Point {
	pts := make([]Point, 0, n)
	for j := 0; j < n; j++ {
		theta := 2 * float64(j) * math.Pi / float64(n)
		pts = append(pts, Point{math.Cos(theta), math.Sin(theta)})
	}
	return pts
}

// lowerGraphTemplate is an L: a vertical axis on the left and a horizontal
// axis along the bottom, sampled as two interleaved families.
func lowerGraphTemplate() []Point {
	pts := make([]Point, 0, 200)
	for j := 0; j < 100; j++ {
		s := float64(j) * 0.02
		pts = append(pts, Point{-1, 1 - s}, Point{-1 + s, 1})
	}
	return pts
}

// midGraphTemplate has its horizontal axis through the vertical middle, for
// plots that go negative.
func midGraphTemplate() []Point {
	pts := make([]Point, 0, 100)
	for j := 0; j < 50; j++ {
		s := float64(j) * 0.04
		pts = append(pts, Point{-1, -1 + s}, Point{-1 + s, 0})
	}
	return pts
}
