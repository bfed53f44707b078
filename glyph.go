package magicpaper

import (
	"math"

	"github.com/google/uuid"
)

// GlyphID identifies a glyph for as long as it is in a diagram. IDs are
// never reused, so a stale ID simply stops resolving.
type GlyphID struct {
	value string
}

// NewGlyphID returns a fresh random ID.
func NewGlyphID() GlyphID {
	return GlyphID{value: uuid.New().String()}
}

func (id GlyphID) String() string { return id.value }

// IsZero reports whether id is the zero value, which names no glyph.
func (id GlyphID) IsZero() bool { return id.value == "" }

// EdgeID identifies one input connection of a neuron.
type EdgeID struct {
	value string
}

// NewEdgeID returns a fresh random ID.
func NewEdgeID() EdgeID {
	return EdgeID{value: uuid.New().String()}
}

func (id EdgeID) String() string { return id.value }

// IsZero reports whether id is the zero value.
func (id EdgeID) IsZero() bool { return id.value == "" }

// Edge is a weighted input of a neuron, pointing back at the neuron it
// reads from.
type Edge struct {
	ID     EdgeID
	Weight float64
	Source GlyphID
}

// Neuron is the state carried by linear and sigmoid glyphs.
type Neuron struct {
	Bias   float64
	Inputs []Edge
	// Plot is the graph glyph currently displaying this neuron's network
	// function, if any.
	Plot GlyphID
}

// Activation applies the neuron's activation function for kind.
func Activation(kind Kind, z float64) float64 {
	if kind == KindSigmoid {
		return Sigmoid(z)
	}
	return z
}

// Sigmoid is the logistic function.
func Sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// DefaultBias is the bias a new neuron of kind starts with.
func DefaultBias(kind Kind) float64 {
	if kind == KindSigmoid {
		return -5
	}
	return 0
}

// DefaultWeight is the weight given to a new connection out of a neuron
// of kind.
func DefaultWeight(kind Kind) float64 {
	if kind == KindSigmoid {
		return 10
	}
	return 1
}

// Plot is the state carried by graph glyphs.
type Plot struct {
	// Input is the neuron whose network function is drawn. Only lower
	// graphs are ever bound.
	Input GlyphID
	// Curve holds a freehand graph drawn on a mid graph, keyed by the
	// horizontal offset from the left of the box.
	Curve          *CurveMap
	XLabel, YLabel string
}

// Parameter is the state of a glyph displaying a neuron's bias, or the
// weight of one of its input edges when Edge is set.
type Parameter struct {
	Neuron        GlyphID
	Edge          EdgeID
	Width, Height float64
	Text          string
}

// IsWeight reports whether the parameter shows an edge weight.
func (p *Parameter) IsWeight() bool { return !p.Edge.IsZero() }

// Freehand is the state of an unrecognized sketch committed as a glyph.
// Paths are stored relative to the box, in [0,1] on both axes.
type Freehand struct {
	RelativePaths [][]Point
}

// Glyph is one symbol in a diagram. Exactly one of the kind specific state
// pointers is set, matching Kind.
type Glyph struct {
	id           GlyphID
	Kind         Kind
	Box          BoundingBox
	ScreenPoints []Point

	Neuron    *Neuron
	Plot      *Plot
	Parameter *Parameter
	Freehand  *Freehand
}

// ID returns the glyph's identity.
func (g *Glyph) ID() GlyphID { return g.id }

// GlyphOption configures a glyph as it is added to a diagram.
type GlyphOption func(*Glyph)

// WithBias overrides a neuron's default bias.
func WithBias(b float64) GlyphOption {
	return func(g *Glyph) {
		if g.Neuron != nil {
			g.Neuron.Bias = b
		}
	}
}

// WithAxisLabels sets a graph's axis labels.
func WithAxisLabels(x, y string) GlyphOption {
	return func(g *Glyph) {
		if g.Plot != nil {
			g.Plot.XLabel, g.Plot.YLabel = x, y
		}
	}
}

// WithSketch stores the strokes of s relative to the glyph's box.
func WithSketch(s *Sketch) GlyphOption {
	return func(g *Glyph) {
		if g.Freehand == nil || s == nil {
			return
		}
		w, h := nonZero(g.Box.Width()), nonZero(g.Box.Height())
		paths := make([][]Point, len(s.Strokes))
		for i, stroke := range s.Strokes {
			paths[i] = make([]Point, len(stroke))
			for j, p := range stroke {
				paths[i][j] = Point{(p.X - g.Box.Left) / w, (p.Y - g.Box.Top) / h}
			}
		}
		g.Freehand.RelativePaths = paths
	}
}

// WithParameter anchors a parameter glyph to a neuron's bias, or to the
// weight of the given input edge when edge is not zero.
func WithParameter(neuron GlyphID, edge EdgeID) GlyphOption {
	return func(g *Glyph) {
		if g.Parameter == nil {
			return
		}
		g.Parameter.Neuron = neuron
		g.Parameter.Edge = edge
		if edge.IsZero() {
			g.Parameter.Text = "b = "
		} else {
			g.Parameter.Text = "w = "
		}
	}
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// newGlyph builds a glyph of kind with default state for that kind.
func newGlyph(kind Kind, box BoundingBox) *Glyph {
	g := &Glyph{id: NewGlyphID(), Kind: kind, Box: box}
	switch {
	case kind.IsNeuron():
		g.Neuron = &Neuron{Bias: DefaultBias(kind)}
	case kind.IsPlot():
		g.Plot = &Plot{}
		if kind == KindMidGraph {
			g.Plot.Curve = NewCurveMap()
		}
	case kind == KindParameter:
		g.Parameter = &Parameter{Width: parameterWidth, Height: parameterHeight}
	case kind == KindSketch:
		g.Freehand = &Freehand{}
	}
	g.updateScreenPoints()
	return g
}

// updateScreenPoints recomputes the template outline for the current box.
func (g *Glyph) updateScreenPoints() {
	if tmpl, ok := templates[g.Kind]; ok {
		g.ScreenPoints = ScreenPoints(tmpl, g.Box)
	}
}

// clone copies the glyph's value state under a new identity. Edges are
// copied as new edges from the same sources; plot bindings are not copied.
func (g *Glyph) clone() *Glyph {
	c := &Glyph{
		id:           NewGlyphID(),
		Kind:         g.Kind,
		Box:          g.Box,
		ScreenPoints: append([]Point(nil), g.ScreenPoints...),
	}
	if g.Neuron != nil {
		c.Neuron = &Neuron{Bias: g.Neuron.Bias}
		for _, e := range g.Neuron.Inputs {
			c.Neuron.Inputs = append(c.Neuron.Inputs,
				Edge{ID: NewEdgeID(), Weight: e.Weight, Source: e.Source})
		}
	}
	if g.Plot != nil {
		c.Plot = &Plot{XLabel: g.Plot.XLabel, YLabel: g.Plot.YLabel}
		if g.Plot.Curve != nil {
			c.Plot.Curve = g.Plot.Curve.Clone()
		}
	}
	if g.Parameter != nil {
		p := *g.Parameter
		c.Parameter = &p
	}
	if g.Freehand != nil {
		c.Freehand = &Freehand{RelativePaths: make([][]Point, len(g.Freehand.RelativePaths))}
		for i, path := range g.Freehand.RelativePaths {
			c.Freehand.RelativePaths[i] = append([]Point(nil), path...)
		}
	}
	return c
}
