package magicpaper

import "math"

// Sketch is the freehand input being drawn: a list of strokes and one
// bounding box covering all of them. The zero value is an empty sketch.
type Sketch struct {
	Strokes [][]Point
	Box     BoundingBox
}

// BeginStroke starts a new stroke at p.
func (s *Sketch) BeginStroke(p Point) {
	s.extend(p)
	s.Strokes = append(s.Strokes, []Point{p})
}

// AddPoint appends p to the last stroke, starting one if there is none.
func (s *Sketch) AddPoint(p Point) {
	if len(s.Strokes) == 0 {
		s.BeginStroke(p)
		return
	}
	s.extend(p)
	last := len(s.Strokes) - 1
	s.Strokes[last] = append(s.Strokes[last], p)
}

func (s *Sketch) extend(p Point) {
	if len(s.Strokes) == 0 {
		s.Box = BoxAt(p)
		return
	}
	s.Box = s.Box.Extend(p)
}

// Empty reports whether the sketch holds no points.
func (s *Sketch) Empty() bool { return len(s.Strokes) == 0 }

// Points flattens every stroke into a single list, in drawing order.
func (s *Sketch) Points() []Point {
	var pts []Point
	for _, stroke := range s.Strokes {
		pts = append(pts, stroke...)
	}
	return pts
}

// Clone returns a deep copy of the sketch.
func (s *Sketch) Clone() *Sketch {
	c := &Sketch{Box: s.Box, Strokes: make([][]Point, len(s.Strokes))}
	for i, stroke := range s.Strokes {
		c.Strokes[i] = append([]Point(nil), stroke...)
	}
	return c
}

// Rescale maps the sketch into the normalized space of the templates. Y
// always spans [-1,1]; X is scaled by the same factor, so a wide sketch
// spans more than [-1,1] and recognition stays sensitive to aspect ratio.
// A perfectly flat sketch is treated as one unit tall.
func (s *Sketch) Rescale() []Point {
	width := s.Box.Width()
	height := s.Box.Height()
	if height <= 0 {
		height = 1
	}
	pts := s.Points()
	out := make([]Point, len(pts))
	for i, p := range pts {
		// Equal to (width/height)*(2*(x-left)/width-1) without dividing
		// by width.
		out[i] = Point{
			X: (2*(p.X-s.Box.Left) - width) / height,
			Y: 2*(p.Y-s.Box.Top)/height - 1,
		}
	}
	return out
}

// Recognition is the outcome of classifying a sketch. Distances holds the
// chamfer distance to every catalog template, indexed like Catalog.
type Recognition struct {
	Kind      Kind
	Distances []float64
}

// Classify returns the catalog kind whose template is closest to the
// rescaled sketch. It never rejects a sketch: the nearest kind always wins,
// with ties going to the earlier catalog entry.
func Classify(s *Sketch) Recognition {
	rescaled := s.Rescale()
	rec := Recognition{Kind: Catalog[0], Distances: make([]float64, len(Catalog))}
	best := math.Inf(1)
	for i, kind := range Catalog {
		d := DistanceSets(rescaled, templates[kind])
		rec.Distances[i] = d
		if d < best {
			best = d
			rec.Kind = kind
		}
	}
	return rec
}

// ProcessBox derives a glyph's bounding box from the box of the sketch it
// was recognized from. Neurons are made square about the sketch center:
// linear units take the sketch width as their side, sigmoid units take the
// larger half extent as their radius. Other kinds keep the sketch box.
func ProcessBox(kind Kind, box BoundingBox) BoundingBox {
	switch kind {
	case KindLinear:
		size := box.Width()
		x := (box.Left + box.Right - size) / 2
		y := (box.Top + box.Bottom - size) / 2
		return BoundingBox{Left: x, Top: y, Right: x + size, Bottom: y + size}
	case KindSigmoid:
		r := math.Max(0.5*box.Width(), 0.5*box.Height())
		c := box.Center()
		return BoundingBox{Left: c.X - r, Top: c.Y - r, Right: c.X + r, Bottom: c.Y + r}
	default:
		return box
	}
}

// ScreenPoints maps normalized template points into box.
func ScreenPoints(template []Point, box BoundingBox) []Point {
	width, height := box.Width(), box.Height()
	mid := box.Center()
	out := make([]Point, len(template))
	for i, p := range template {
		out[i] = Point{mid.X + 0.5*p.X*width, mid.Y + 0.5*p.Y*height}
	}
	return out
}
