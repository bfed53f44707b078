package magicpaper

import (
	"fmt"
	"math"
	"strconv"
)

const (
	// DefaultVoxelSize is the horizontal drag, in pixels, that moves a
	// scrubbed parameter by one step.
	DefaultVoxelSize = 6.0

	parameterWidth  = 120.0
	parameterHeight = 28.0
	parameterLift   = 34.0
	parameterInset  = 20.0
)

// Ramp returns the parameter value reached n voxels to the right of zero.
// Steps grow by a factor of ten every nine voxels:
// 0, 0.1, ..., 0.9, 1, 2, ..., 9, 10, 20, ..., 90, 100, 200, ...
func Ramp(n int) float64 {
	a := n
	if a < 0 {
		a = -a
	}
	sign := 1.0
	if n < 0 {
		sign = -1
	}
	switch {
	case a < 10:
		return float64(n) / 10
	case 10 <= a && a < 19:
		return sign * float64(a-9)
	case 19 <= a && a < 28:
		return sign * float64(a-18) * 10
	default:
		// 28 <= a < 37 is the hundreds range; larger offsets keep
		// stepping by a hundred.
		return sign * float64(a-27) * 100
	}
}

// Unramp is the inverse of Ramp: the number of voxels right of zero needed
// to reach v. Values between steps round to the nearest voxel.
func Unramp(v float64) int {
	a := math.Abs(v)
	sign := 1.0
	if v < 0 {
		sign = -1
	}
	var n float64
	switch {
	case a < 1:
		n = v * 10
	case a < 10:
		n = sign * (a + 9)
	case a < 100:
		n = sign * (a/10 + 18)
	default:
		n = sign * (a/100 + 27)
	}
	return int(math.Round(n))
}

// ScrubValue returns the value reached by dragging dx pixels from a
// parameter that started at start.
func ScrubValue(start, dx, voxelSize float64) float64 {
	if voxelSize <= 0 {
		voxelSize = DefaultVoxelSize
	}
	return Ramp(Unramp(start) + int(math.Floor(dx/voxelSize)))
}

func (d *Diagram) parameter(id GlyphID) (*Glyph, error) {
	g, ok := d.glyphs[id]
	if !ok {
		return nil, fmt.Errorf("parameter %s: %w", id, ErrGlyphNotFound)
	}
	if g.Parameter == nil {
		return nil, fmt.Errorf("glyph %s (%s): %w", id, g.Kind, ErrNotParameter)
	}
	return g, nil
}

// edge finds an input edge of neuron by ID.
func (d *Diagram) edge(neuron GlyphID, id EdgeID) (*Edge, error) {
	n, err := d.neuron(neuron)
	if err != nil {
		return nil, err
	}
	for i := range n.Neuron.Inputs {
		if n.Neuron.Inputs[i].ID == id {
			return &n.Neuron.Inputs[i], nil
		}
	}
	return nil, fmt.Errorf("edge %s of %s: %w", id, neuron, ErrEdgeNotFound)
}

// ParameterValue returns the bias or weight a parameter glyph displays.
func (d *Diagram) ParameterValue(id GlyphID) (float64, error) {
	g, err := d.parameter(id)
	if err != nil {
		return 0, err
	}
	p := g.Parameter
	if p.IsWeight() {
		e, err := d.edge(p.Neuron, p.Edge)
		if err != nil {
			return 0, err
		}
		return e.Weight, nil
	}
	n, err := d.neuron(p.Neuron)
	if err != nil {
		return 0, err
	}
	return n.Neuron.Bias, nil
}

// SetParameterValue writes the bias or weight a parameter glyph displays.
func (d *Diagram) SetParameterValue(id GlyphID, v float64) error {
	g, err := d.parameter(id)
	if err != nil {
		return err
	}
	p := g.Parameter
	if p.IsWeight() {
		e, err := d.edge(p.Neuron, p.Edge)
		if err != nil {
			return err
		}
		e.Weight = v
		return nil
	}
	n, err := d.neuron(p.Neuron)
	if err != nil {
		return err
	}
	n.Neuron.Bias = v
	return nil
}

// Scrub sets a parameter to the value reached by dragging dx pixels from
// start, and returns it.
func (d *Diagram) Scrub(id GlyphID, start, dx, voxelSize float64) (float64, error) {
	v := ScrubValue(start, dx, voxelSize)
	if err := d.SetParameterValue(id, v); err != nil {
		return 0, err
	}
	return v, nil
}

// ParameterText is the label a parameter glyph displays, such as "b = -5".
func (d *Diagram) ParameterText(id GlyphID) (string, error) {
	g, err := d.parameter(id)
	if err != nil {
		return "", err
	}
	v, err := d.ParameterValue(id)
	if err != nil {
		return "", err
	}
	return g.Parameter.Text + strconv.FormatFloat(v, 'f', -1, 64), nil
}

// AddParameters adds a bias parameter for neuron and a weight parameter
// for each of its input edges, skipping any that already exist. It returns
// the IDs of the parameters it created.
func (d *Diagram) AddParameters(neuron GlyphID) ([]GlyphID, error) {
	n, err := d.neuron(neuron)
	if err != nil {
		return nil, err
	}
	var added []GlyphID
	if len(d.biasParams[neuron]) == 0 {
		added = append(added, d.AddGlyph(KindParameter, BoundingBox{},
			WithParameter(neuron, EdgeID{})))
	}
	for _, e := range n.Neuron.Inputs {
		if len(d.weightParams[e.ID]) == 0 {
			added = append(added, d.AddGlyph(KindParameter, BoundingBox{},
				WithParameter(neuron, e.ID)))
		}
	}
	d.LayoutParameters()
	return added, nil
}

// LayoutParameters recomputes the box of every parameter glyph from the
// neurons it annotates. A bias sits above its neuron; a weight sits above
// the line joining its source and destination, lifted clear of the line at
// both ends of its own width.
func (d *Diagram) LayoutParameters() {
	for _, id := range d.order {
		g := d.glyphs[id]
		if g.Parameter == nil {
			continue
		}
		if box, ok := d.parameterBox(g.Parameter); ok {
			g.Box = box
		}
	}
}

func (d *Diagram) parameterBox(p *Parameter) (BoundingBox, bool) {
	dst, ok := d.glyphs[p.Neuron]
	if !ok || dst.Neuron == nil {
		return BoundingBox{}, false
	}
	if !p.IsWeight() {
		top := dst.Box.Top - parameterLift
		c := dst.Box.Center()
		return BoundingBox{
			Left:   c.X - p.Width/2,
			Top:    top,
			Right:  c.X + p.Width/2,
			Bottom: top + p.Height,
		}, true
	}

	e, err := d.edge(p.Neuron, p.Edge)
	if err != nil {
		return BoundingBox{}, false
	}
	src, ok := d.glyphs[e.Source]
	if !ok {
		return BoundingBox{}, false
	}
	p0, p1 := src.Box.Center(), dst.Box.Center()
	left := (p0.X + p1.X - p.Width) / 2
	right := (p0.X + p1.X + p.Width) / 2
	var deltaY float64
	if p1.X != p0.X {
		grad := (p1.Y - p0.Y) / (p1.X - p0.X)
		deltaY = math.Min(grad*(left+parameterInset-p0.X), grad*(right-parameterInset-p0.X))
	} else {
		deltaY = math.Min(0, p1.Y-p0.Y)
	}
	top := p0.Y + deltaY - parameterLift
	return BoundingBox{Left: left, Top: top, Right: right, Bottom: top + p.Height}, true
}
