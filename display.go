package magicpaper

import (
	"math"

	"go.uber.org/zap"
)

// Connection is a neuron connection being dragged out by the user.
type Connection struct {
	From       GlyphID
	Start, End Point
}

// View is the transient interaction state drawn on top of the diagram.
type View struct {
	Hovered    GlyphID
	Connecting *Connection
	Sketch     *Sketch
	Morph      [][]Point
}

// Painter turns a diagram into a display list.
type Painter struct {
	Theme    Theme
	FontSize float64
	log      *zap.Logger
}

// PainterOption is a functional option for configuring a Painter.
type PainterOption func(*Painter)

// WithTheme sets the colours used.
func WithTheme(t Theme) PainterOption {
	return func(p *Painter) { p.Theme = t }
}

// WithFontSize sets the text size, in pixels.
func WithFontSize(size float64) PainterOption {
	return func(p *Painter) { p.FontSize = size }
}

// WithPainterLogger sets where connection warnings go.
func WithPainterLogger(l *zap.Logger) PainterOption {
	return func(p *Painter) { p.log = l }
}

// NewPainter creates a Painter with the default theme.
func NewPainter(opts ...PainterOption) *Painter {
	cfg := DefaultConfig()
	p := &Painter{Theme: cfg.Theme, FontSize: cfg.FontSize, log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Display returns the display list for the diagram and view, in drawing
// order: glyphs oldest first, then the sketch in progress, then the morph
// frame.
func (p *Painter) Display(d *Diagram, v View) []Primitive {
	d.LayoutParameters()
	var out []Primitive
	for _, g := range d.Glyphs() {
		out = append(out, p.glyph(d, g, v)...)
	}
	if v.Sketch != nil {
		out = append(out, p.paths(v.Sketch.Strokes, p.Theme.Foreground)...)
	}
	if v.Morph != nil {
		out = append(out, p.paths(v.Morph, p.Theme.Foreground)...)
	}
	return out
}

func (p *Painter) glyph(d *Diagram, g *Glyph, v View) []Primitive {
	switch g.Kind {
	case KindLinear, KindSigmoid:
		return p.neuron(d, g, v)
	case KindLowerGraph:
		return p.lowerGraph(d, g)
	case KindMidGraph:
		return p.midGraph(g)
	case KindParameter:
		return p.parameter(d, g, v)
	case KindSketch:
		return p.freehand(g)
	}
	return nil
}

func (p *Painter) neuron(d *Diagram, g *Glyph, v View) []Primitive {
	var out []Primitive
	b := g.Box
	fg := p.Theme.Foreground
	if g.Kind == KindLinear {
		out = append(out,
			Line{b.Left, b.Top, b.Right, b.Top, fg, 1},
			Line{b.Right, b.Top, b.Right, b.Bottom, fg, 1},
			Line{b.Right, b.Bottom, b.Left, b.Bottom, fg, 1},
			Line{b.Left, b.Bottom, b.Left, b.Top, fg, 1},
		)
	} else {
		c := b.Center()
		out = append(out, CircularArc{X: c.X, Y: c.Y, Radius: 0.5 * b.Width(),
			Start: 0, End: 2 * math.Pi, Color: fg, Width: 1})
	}
	if conn := v.Connecting; conn != nil && conn.From == g.id {
		out = append(out, Arrow{conn.Start.X, conn.Start.Y, conn.End.X, conn.End.Y, fg, 1})
	}
	for _, outID := range d.Outputs(g.id) {
		dst := d.glyphs[outID]
		x0, y0, x1, y1 := p.connector(g, dst)
		out = append(out, Arrow{x0, y0, x1, y1, fg, 1})
	}
	return out
}

// connector picks the endpoints of the arrow from src to dst. Linear units
// can only be wired into from the left; other directions still get an arrow
// at a best-effort position, with a warning.
func (p *Painter) connector(src, dst *Glyph) (x0, y0, x1, y1 float64) {
	sc, dc := src.Box.Center(), dst.Box.Center()
	l := Distance(sc, dc)
	if l == 0 {
		p.log.Warn("connected neurons are concentric",
			zap.Stringer("source", src.id), zap.Stringer("destination", dst.id))
		return sc.X, sc.Y, dc.X, dc.Y
	}
	nx, ny := (dc.X-sc.X)/l, (dc.Y-sc.Y)/l

	if src.Kind == KindLinear {
		x0 = src.Box.Right
		y0 = alongLine(sc, nx, ny, x0, 0.5*src.Box.Height())
	} else {
		r := 0.5 * src.Box.Width()
		x0, y0 = sc.X+r*nx, sc.Y+r*ny
	}

	if dst.Kind == KindLinear {
		if nx <= 0 || math.Abs(ny) > math.Abs(nx) {
			p.log.Warn("linear neurons can only be connected in a left-right direction",
				zap.Stringer("source", src.id), zap.Stringer("destination", dst.id))
		}
		x1 = dst.Box.Left
		y1 = alongLine(sc, nx, ny, x1, -0.5*dst.Box.Height())
		if nx == 0 {
			x1 = dc.X
			y1 = dc.Y - math.Copysign(0.5*dst.Box.Height(), ny)
		}
	} else {
		r := 0.5 * dst.Box.Width()
		x1, y1 = dc.X-r*nx, dc.Y-r*ny
	}
	return x0, y0, x1, y1
}

// alongLine returns the y coordinate at x of the line through c with
// direction (nx, ny). A vertical line has no such point, so the result is
// c.Y offset by fallback in the direction of ny.
func alongLine(c Point, nx, ny, x, fallback float64) float64 {
	if nx == 0 {
		return c.Y + math.Copysign(math.Abs(fallback), ny)
	}
	return c.Y + (ny/nx)*(x-c.X)
}

func (p *Painter) lowerGraph(d *Diagram, g *Glyph) []Primitive {
	b := g.Box
	fg := p.Theme.Foreground
	out := []Primitive{
		Arrow{b.Left, b.Bottom, b.Left, b.Top, fg, 1},
		Arrow{b.Left, b.Bottom, b.Right, b.Bottom, fg, 1},
	}
	n, ok := d.glyphs[g.Plot.Input]
	if !ok {
		return out
	}
	out = append(out, p.plotConnector(n, g)...)

	net, err := d.Synthesize(n.id)
	if err != nil || !net.Supported() {
		p.log.Debug("neural net doesn't have a supported architecture",
			zap.Stringer("neuron", n.id))
		return out
	}
	xScale := func(x float64) float64 { return b.Left + x*0.9*b.Width() }
	yScale := func(y float64) float64 { return b.Bottom - y*0.9*b.Height() }
	out = append(out,
		Text{"1", xScale(1), yScale(0) + 27, AlignCenter, fg, p.FontSize},
		Line{xScale(1), yScale(0), xScale(1), yScale(0) + 5, fg, 1},
		Text{"1", xScale(0) - 12, yScale(1) + 7, AlignCenter, fg, p.FontSize},
		Line{xScale(0) - 5, yScale(1), xScale(0), yScale(1), fg, 1},
	)
	curve := make([]Point, 200)
	for j := range curve {
		x := float64(j) * 0.005
		curve[j] = Point{xScale(x), yScale(net.Func(x))}
	}
	return append(out, p.path(curve, p.Theme.Curve)...)
}

// plotConnector draws a curved arrow from a neuron's right side to the top
// left of the graph it drives. It assumes the graph sits to the right.
func (p *Painter) plotConnector(n, g *Glyph) []Primitive {
	c := n.Box.Center()
	p0 := Point{c.X + 0.5*n.Box.Width() + 5, c.Y}
	p3 := Point{g.Box.Left - 10, g.Box.Center().Y - 40}
	p1 := Point{p0.X + 50, p0.Y - 50}
	p2 := Point{p3.X - 50, p3.Y - 50}

	const segments = 24
	col := p.Theme.Connector
	out := make([]Primitive, 0, segments+2)
	prev := p0
	for i := 1; i <= segments; i++ {
		next := cubicBezier(p0, p1, p2, p3, float64(i)/segments)
		out = append(out, Line{prev.X, prev.Y, next.X, next.Y, col, 1.5})
		prev = next
	}
	return append(out,
		Line{p3.X, p3.Y, p3.X, p3.Y - 10, col, 1.5},
		Line{p3.X, p3.Y, p3.X - 10, p3.Y, col, 1.5},
	)
}

func cubicBezier(p0, p1, p2, p3 Point, t float64) Point {
	u := 1 - t
	a, b, c, e := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return Point{
		a*p0.X + b*p1.X + c*p2.X + e*p3.X,
		a*p0.Y + b*p1.Y + c*p2.Y + e*p3.Y,
	}
}

func (p *Painter) midGraph(g *Glyph) []Primitive {
	b := g.Box
	fg := p.Theme.Foreground
	mid := 0.5 * (b.Top + b.Bottom)
	out := []Primitive{
		Arrow{b.Left, b.Bottom, b.Left, b.Top, fg, 1},
		Arrow{b.Left, mid, b.Right, mid, fg, 1},
	}
	if g.Plot.Curve != nil {
		curve := make([]Point, 0, g.Plot.Curve.Len())
		g.Plot.Curve.Iterate(func(x int, y float64) {
			curve = append(curve, Point{float64(x) + b.Left, y + b.Top})
		})
		out = append(out, p.path(curve, p.Theme.Curve)...)
	}
	if g.Plot.XLabel != "" {
		out = append(out, Text{g.Plot.XLabel, b.Right - 15, mid + 20, AlignRight, fg, p.FontSize})
	}
	if g.Plot.YLabel != "" {
		out = append(out, Text{g.Plot.YLabel, b.Left - 12, b.Top + 25, AlignRight, fg, p.FontSize})
	}
	return out
}

func (p *Painter) parameter(d *Diagram, g *Glyph, v View) []Primitive {
	text, err := d.ParameterText(g.id)
	if err != nil {
		return nil
	}
	var out []Primitive
	b := g.Box
	if v.Hovered == g.id {
		out = append(out, FilledRoundedRectangle{b.Left, b.Top, b.Right, b.Bottom, 3,
			p.Theme.Highlight, p.Theme.Highlight, 0})
	}
	return append(out, Text{text, 0.5 * (b.Left + b.Right), b.Top + 22, AlignCenter,
		p.Theme.Foreground, p.FontSize})
}

func (p *Painter) freehand(g *Glyph) []Primitive {
	b := g.Box
	paths := make([][]Point, len(g.Freehand.RelativePaths))
	for i, rel := range g.Freehand.RelativePaths {
		paths[i] = make([]Point, len(rel))
		for j, pt := range rel {
			paths[i][j] = Point{pt.X*b.Width() + b.Left, pt.Y*b.Height() + b.Top}
		}
	}
	return p.paths(paths, p.Theme.Foreground)
}

func (p *Painter) paths(paths [][]Point, color string) []Primitive {
	var out []Primitive
	for _, path := range paths {
		out = append(out, p.path(path, color)...)
	}
	return out
}

// path strokes a polyline segment by segment. A single point is drawn as a
// one pixel square.
func (p *Painter) path(path []Point, color string) []Primitive {
	switch len(path) {
	case 0:
		return nil
	case 1:
		pt := path[0]
		return []Primitive{FilledRoundedRectangle{pt.X, pt.Y, pt.X + 1, pt.Y + 1, 0, color, color, 0}}
	}
	out := make([]Primitive, 0, len(path)-1)
	for k := 0; k < len(path)-1; k++ {
		out = append(out, Line{path[k].X, path[k].Y, path[k+1].X, path[k+1].Y, color, 1})
	}
	return out
}
