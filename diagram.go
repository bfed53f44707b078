package magicpaper

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrGlyphNotFound  = errors.New("glyph not found")
	ErrEdgeNotFound   = errors.New("edge not found")
	ErrNotNeuron      = errors.New("glyph is not a neuron")
	ErrNotPlot        = errors.New("glyph cannot plot a network")
	ErrNotParameter   = errors.New("glyph is not a parameter")
	ErrSelfConnection = errors.New("neuron cannot be its own input")
)

const (
	// DefaultMinResizeWidth is the narrowest width Resize will produce.
	DefaultMinResizeWidth = 10.0

	maxDuplicateOffset = 15.0
)

// Diagram owns every glyph on the paper and the relations between them.
// Glyphs refer to each other only by ID. Each method leaves the diagram
// fully consistent before it returns.
type Diagram struct {
	order  []GlyphID
	glyphs map[GlyphID]*Glyph

	// Parameter glyphs by the bias or weight they display, so they can be
	// removed together with it.
	biasParams   map[GlyphID][]GlyphID
	weightParams map[EdgeID][]GlyphID

	MinResizeWidth float64
}

// NewDiagram creates an empty diagram.
func NewDiagram() *Diagram {
	return &Diagram{
		glyphs:         make(map[GlyphID]*Glyph),
		biasParams:     make(map[GlyphID][]GlyphID),
		weightParams:   make(map[EdgeID][]GlyphID),
		MinResizeWidth: DefaultMinResizeWidth,
	}
}

// Len returns the number of glyphs.
func (d *Diagram) Len() int { return len(d.order) }

// Glyph looks up a glyph by ID.
func (d *Diagram) Glyph(id GlyphID) (*Glyph, bool) {
	g, ok := d.glyphs[id]
	return g, ok
}

// Glyphs returns every glyph in insertion order.
func (d *Diagram) Glyphs() []*Glyph {
	out := make([]*Glyph, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.glyphs[id])
	}
	return out
}

// Last returns the most recently added glyph.
func (d *Diagram) Last() (GlyphID, bool) {
	if len(d.order) == 0 {
		return GlyphID{}, false
	}
	return d.order[len(d.order)-1], true
}

// Clear removes every glyph.
func (d *Diagram) Clear() {
	d.order = nil
	d.glyphs = make(map[GlyphID]*Glyph)
	d.biasParams = make(map[GlyphID][]GlyphID)
	d.weightParams = make(map[EdgeID][]GlyphID)
}

// AddGlyph inserts a new glyph of kind with the given box and returns its
// ID. The box is used as given; use ProcessBox first to square neurons.
func (d *Diagram) AddGlyph(kind Kind, box BoundingBox, opts ...GlyphOption) GlyphID {
	g := newGlyph(kind, box)
	for _, opt := range opts {
		opt(g)
	}
	d.insert(g)
	return g.id
}

func (d *Diagram) insert(g *Glyph) {
	d.order = append(d.order, g.id)
	d.glyphs[g.id] = g
	if p := g.Parameter; p != nil {
		if p.IsWeight() {
			d.weightParams[p.Edge] = append(d.weightParams[p.Edge], g.id)
		} else if !p.Neuron.IsZero() {
			d.biasParams[p.Neuron] = append(d.biasParams[p.Neuron], g.id)
		}
	}
}

func (d *Diagram) neuron(id GlyphID) (*Glyph, error) {
	g, ok := d.glyphs[id]
	if !ok {
		return nil, fmt.Errorf("neuron %s: %w", id, ErrGlyphNotFound)
	}
	if g.Neuron == nil {
		return nil, fmt.Errorf("glyph %s (%s): %w", id, g.Kind, ErrNotNeuron)
	}
	return g, nil
}

// Connect adds src as an input of dst, weighted by the default weight for
// src's kind.
func (d *Diagram) Connect(src, dst GlyphID) (EdgeID, error) {
	s, err := d.neuron(src)
	if err != nil {
		return EdgeID{}, err
	}
	return d.ConnectWeighted(src, dst, DefaultWeight(s.Kind))
}

// ConnectWeighted adds src as an input of dst with weight w. A neuron can
// not be connected to itself.
func (d *Diagram) ConnectWeighted(src, dst GlyphID, w float64) (EdgeID, error) {
	if src == dst {
		return EdgeID{}, ErrSelfConnection
	}
	if _, err := d.neuron(src); err != nil {
		return EdgeID{}, err
	}
	dn, err := d.neuron(dst)
	if err != nil {
		return EdgeID{}, err
	}
	e := Edge{ID: NewEdgeID(), Weight: w, Source: src}
	dn.Neuron.Inputs = append(dn.Neuron.Inputs, e)
	return e.ID, nil
}

// BindPlot makes plot the live display of neuron's network function. Any
// earlier binding of either end is cleared, so a neuron drives at most one
// plot and a plot shows at most one neuron.
func (d *Diagram) BindPlot(neuron, plot GlyphID) error {
	n, err := d.neuron(neuron)
	if err != nil {
		return err
	}
	p, ok := d.glyphs[plot]
	if !ok {
		return fmt.Errorf("plot %s: %w", plot, ErrGlyphNotFound)
	}
	if p.Kind != KindLowerGraph {
		return fmt.Errorf("glyph %s (%s): %w", plot, p.Kind, ErrNotPlot)
	}
	if prev, ok := d.glyphs[p.Plot.Input]; ok && prev.Neuron != nil {
		prev.Neuron.Plot = GlyphID{}
	}
	if prev, ok := d.glyphs[n.Neuron.Plot]; ok && prev.Plot != nil {
		prev.Plot.Input = GlyphID{}
	}
	p.Plot.Input = neuron
	n.Neuron.Plot = plot
	return nil
}

// Outputs returns every neuron that has id among its inputs, in diagram
// order. It scans all glyphs, which is cheap at the sizes a hand drawn
// diagram reaches.
func (d *Diagram) Outputs(id GlyphID) []GlyphID {
	var out []GlyphID
	for _, gid := range d.order {
		g := d.glyphs[gid]
		if g.Neuron == nil {
			continue
		}
		for _, e := range g.Neuron.Inputs {
			if e.Source == id {
				out = append(out, gid)
				break
			}
		}
	}
	return out
}

// Duplicate copies a glyph's value state into a new glyph, offset down and
// to the right. A duplicated neuron keeps the inputs of the original (as new
// edges) and becomes an additional input, with the same weight, of every
// neuron the original feeds.
func (d *Diagram) Duplicate(id GlyphID) (GlyphID, error) {
	g, ok := d.glyphs[id]
	if !ok {
		return GlyphID{}, fmt.Errorf("duplicate %s: %w", id, ErrGlyphNotFound)
	}
	c := g.clone()
	if g.Neuron != nil {
		for _, outID := range d.Outputs(id) {
			out := d.glyphs[outID]
			for _, e := range out.Neuron.Inputs {
				if e.Source == id {
					out.Neuron.Inputs = append(out.Neuron.Inputs,
						Edge{ID: NewEdgeID(), Weight: e.Weight, Source: c.id})
					break
				}
			}
		}
	}
	offset := math.Min(maxDuplicateOffset,
		math.Floor(0.2*math.Max(c.Box.Width(), c.Box.Height())))
	c.Box = c.Box.Translate(offset, offset)
	c.updateScreenPoints()
	d.insert(c)
	return c.id, nil
}

// Move translates a glyph by (dx, dy).
func (d *Diagram) Move(id GlyphID, dx, dy float64) error {
	g, ok := d.glyphs[id]
	if !ok {
		return fmt.Errorf("move %s: %w", id, ErrGlyphNotFound)
	}
	g.Box = g.Box.Translate(dx, dy)
	g.updateScreenPoints()
	return nil
}

// Resize scales a glyph's box by factor about its top left corner.
func (d *Diagram) Resize(id GlyphID, factor float64) error {
	g, ok := d.glyphs[id]
	if !ok {
		return fmt.Errorf("resize %s: %w", id, ErrGlyphNotFound)
	}
	return d.ResizeFrom(id, g.Box, factor)
}

// ResizeFrom sets a glyph's box to base scaled by factor about base's top
// left corner, rounding the new extents to whole pixels. A factor that
// would make the glyph narrower than MinResizeWidth leaves it unchanged.
func (d *Diagram) ResizeFrom(id GlyphID, base BoundingBox, factor float64) error {
	g, ok := d.glyphs[id]
	if !ok {
		return fmt.Errorf("resize %s: %w", id, ErrGlyphNotFound)
	}
	width := math.Round(factor * base.Width())
	height := math.Round(factor * base.Height())
	if width < d.MinResizeWidth {
		return nil
	}
	g.Box = BoundingBox{
		Left:   base.Left,
		Top:    base.Top,
		Right:  base.Left + width,
		Bottom: base.Top + height,
	}
	g.updateScreenPoints()
	return nil
}

// Delete removes a glyph along with every reference to it: edges reading
// from a deleted neuron, the binding between a neuron and its plot, and the
// parameter glyphs annotating the neuron or its edges.
func (d *Diagram) Delete(id GlyphID) error {
	g, ok := d.glyphs[id]
	if !ok {
		return fmt.Errorf("delete %s: %w", id, ErrGlyphNotFound)
	}
	d.remove(id)

	switch {
	case g.Neuron != nil:
		for _, outID := range d.Outputs(id) {
			out := d.glyphs[outID]
			kept := out.Neuron.Inputs[:0]
			for _, e := range out.Neuron.Inputs {
				if e.Source == id {
					d.removeWeightParams(e.ID)
					continue
				}
				kept = append(kept, e)
			}
			out.Neuron.Inputs = kept
		}
		for _, e := range g.Neuron.Inputs {
			d.removeWeightParams(e.ID)
		}
		for _, pid := range d.biasParams[id] {
			d.remove(pid)
		}
		delete(d.biasParams, id)
		if p, ok := d.glyphs[g.Neuron.Plot]; ok && p.Plot != nil {
			p.Plot.Input = GlyphID{}
		}
	case g.Plot != nil:
		if n, ok := d.glyphs[g.Plot.Input]; ok && n.Neuron != nil && n.Neuron.Plot == id {
			n.Neuron.Plot = GlyphID{}
		}
	case g.Parameter != nil:
		d.unindexParameter(g)
	}
	return nil
}

// remove drops a glyph from the collection without touching relations.
func (d *Diagram) remove(id GlyphID) {
	delete(d.glyphs, id)
	for i, gid := range d.order {
		if gid == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			return
		}
	}
}

func (d *Diagram) removeWeightParams(e EdgeID) {
	for _, pid := range d.weightParams[e] {
		d.remove(pid)
	}
	delete(d.weightParams, e)
}

func (d *Diagram) unindexParameter(g *Glyph) {
	p := g.Parameter
	if p.IsWeight() {
		d.weightParams[p.Edge] = without(d.weightParams[p.Edge], g.id)
		if len(d.weightParams[p.Edge]) == 0 {
			delete(d.weightParams, p.Edge)
		}
		return
	}
	d.biasParams[p.Neuron] = without(d.biasParams[p.Neuron], g.id)
	if len(d.biasParams[p.Neuron]) == 0 {
		delete(d.biasParams, p.Neuron)
	}
}

func without(ids []GlyphID, id GlyphID) []GlyphID {
	out := ids[:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

// GlyphAt returns the glyph under p. When glyphs overlap the most recently
// added one wins.
func (d *Diagram) GlyphAt(p Point) (GlyphID, bool) {
	d.LayoutParameters()
	for i := len(d.order) - 1; i >= 0; i-- {
		if d.glyphs[d.order[i]].Box.Inside(p) {
			return d.order[i], true
		}
	}
	return GlyphID{}, false
}

// SketchCurve records a freehand sample on a mid graph at screen point p.
// Points outside the graph's box are ignored.
func (d *Diagram) SketchCurve(id GlyphID, p Point) error {
	g, ok := d.glyphs[id]
	if !ok {
		return fmt.Errorf("curve %s: %w", id, ErrGlyphNotFound)
	}
	if g.Plot == nil || g.Plot.Curve == nil {
		return fmt.Errorf("curve %s (%s): %w", id, g.Kind, ErrNotPlot)
	}
	if g.Box.Inside(p) {
		g.Plot.Curve.Set(int(math.Round(p.X-g.Box.Left)), p.Y-g.Box.Top)
	}
	return nil
}
