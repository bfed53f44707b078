package magicpaper

// Primitive is one drawing instruction in a display list. The set is
// closed: Line, Arrow, FilledRoundedRectangle, CircularArc and Text.
// Colours are CSS colour names or #rgb/#rrggbb strings.
type Primitive interface {
	primitive()
}

// Line is a straight stroke from (X0,Y0) to (X1,Y1).
type Line struct {
	X0, Y0, X1, Y1 float64
	Color          string
	Width          float64
}

// Arrow is a Line with an arrowhead at (X1,Y1).
type Arrow struct {
	X0, Y0, X1, Y1 float64
	Color          string
	Width          float64
}

// FilledRoundedRectangle spans (X0,Y0)-(X1,Y1) with corners of the given
// radius. A zero Width draws no outline.
type FilledRoundedRectangle struct {
	X0, Y0, X1, Y1 float64
	Radius         float64
	Stroke, Fill   string
	Width          float64
}

// CircularArc strokes the circle of Radius about (X,Y) from angle Start to
// End, in radians, clockwise on screen.
type CircularArc struct {
	X, Y, Radius float64
	Start, End   float64
	Color        string
	Width        float64
}

// Align positions Text horizontally relative to its anchor.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Text draws Content with its baseline at Y.
type Text struct {
	Content string
	X, Y    float64
	Align   Align
	Color   string
	Size    float64
}

func (Line) primitive()                   {}
func (Arrow) primitive()                  {}
func (FilledRoundedRectangle) primitive() {}
func (CircularArc) primitive()            {}
func (Text) primitive()                   {}

// ArrowHead returns the two barbs of an arrow pointing at (x1,y1): each is a
// segment from the tip, 8 pixels back along the shaft and 4 to either side.
func ArrowHead(x0, y0, x1, y1 float64) [2]Point {
	dx, dy := x0-x1, y0-y1
	norm := Distance(Point{x0, y0}, Point{x1, y1})
	if norm == 0 {
		return [2]Point{{x1, y1}, {x1, y1}}
	}
	nx, ny := dx/norm, dy/norm
	mx, my := -ny, nx
	return [2]Point{
		{x1 + 8*nx + 4*mx, y1 + 8*ny + 4*my},
		{x1 + 8*nx - 4*mx, y1 + 8*ny - 4*my},
	}
}
