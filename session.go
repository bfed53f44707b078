package magicpaper

import (
	"math"
	"unicode"

	"go.uber.org/zap"
)

// Tool is what pointer motion currently does.
type Tool int

const (
	ToolNone Tool = iota
	// ToolSketch adds points to the sketch in progress.
	ToolSketch
	// ToolConnect drags a connection out of a neuron.
	ToolConnect
	// ToolScrub drags a parameter's value.
	ToolScrub
	// ToolCurve draws a freehand curve on a mid graph.
	ToolCurve
	// ToolMove drags a glyph until the pointer is released.
	ToolMove
	// ToolResize scales a glyph with horizontal motion until z is pressed
	// again. Pointer buttons are ignored meanwhile.
	ToolResize
	// ToolLabel types axis labels into a mid graph until the second Enter.
	// Pointer input is ignored meanwhile.
	ToolLabel
)

var toolNames = [...]string{"none", "sketch", "connect", "scrub", "curve", "move", "resize", "label"}

func (t Tool) String() string {
	if int(t) < len(toolNames) {
		return toolNames[t]
	}
	return "unknown"
}

// Status lines shown while the pointer is over a glyph.
const (
	StatusGlyph      = "Duplicate   dElete   Move   resiZe"
	StatusParameters = "Parameters"
	StatusLabel      = "Label"
)

// Session is all the state of one interactive drawing session. Every input
// handler reads and writes it explicitly; there is no global state. All
// methods must be called from a single goroutine.
type Session struct {
	Diagram *Diagram

	cfg     Config
	log     *zap.Logger
	painter *Painter

	sketch  *Sketch
	hovered GlyphID
	tool    Tool
	active  GlyphID

	pointer    Point
	connection *Connection

	scrubStartX     float64
	scrubStartValue float64
	resizeBase      BoundingBox
	resizeDelta     float64
	labelY          bool

	morph      *Morph
	morphFrame [][]Point
	// generation counts clears; a morph started before a clear is
	// discarded when it completes.
	generation int
}

// SessionOption is a functional option for configuring a Session.
type SessionOption func(*Session)

// WithLogger sets the session's logger. The default discards everything.
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) { s.log = l }
}

// NewSession creates a session with an empty diagram.
func NewSession(cfg Config, opts ...SessionOption) *Session {
	s := &Session{
		Diagram: NewDiagram(),
		cfg:     cfg,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Diagram.MinResizeWidth = cfg.MinResizeWidth
	s.painter = NewPainter(
		WithTheme(cfg.Theme),
		WithFontSize(cfg.FontSize),
		WithPainterLogger(s.log.Named("painter")),
	)
	return s
}

// Config returns the configuration the session was created with.
func (s *Session) Config() Config { return s.cfg }

// Tool returns the active tool.
func (s *Session) Tool() Tool { return s.tool }

// Hovered returns the glyph under the pointer, if any.
func (s *Session) Hovered() (GlyphID, bool) { return s.hovered, !s.hovered.IsZero() }

// Sketch returns the sketch in progress, or nil.
func (s *Session) Sketch() *Sketch { return s.sketch }

// Animating reports whether a recognized sketch is still morphing.
func (s *Session) Animating() bool { return s.morph != nil }

func (s *Session) modal() bool { return s.tool == ToolResize || s.tool == ToolLabel }

// detectGlyph updates the hovered glyph from the pointer position.
func (s *Session) detectGlyph() {
	s.hovered, _ = s.Diagram.GlyphAt(s.pointer)
}

// PointerDown handles a button press at (x, y) in paper coordinates.
func (s *Session) PointerDown(x, y float64) {
	if s.modal() {
		return
	}
	s.pointer = Point{x, y}
	s.detectGlyph()
	if s.tool == ToolMove {
		return
	}

	g, over := s.Diagram.Glyph(s.hovered)
	if !over {
		s.tool = ToolSketch
		if s.sketch == nil {
			s.sketch = &Sketch{}
		}
		s.sketch.BeginStroke(s.pointer)
		return
	}

	switch {
	case g.Neuron != nil:
		s.tool = ToolConnect
		s.active = g.id
		s.connection = &Connection{From: g.id, Start: s.pointer, End: s.pointer}
	case g.Kind == KindMidGraph:
		s.tool = ToolCurve
		s.active = g.id
		s.logError("sketch curve", s.Diagram.SketchCurve(g.id, s.pointer))
	case g.Kind == KindParameter:
		v, err := s.Diagram.ParameterValue(g.id)
		if err != nil {
			s.logError("start scrub", err)
			return
		}
		s.tool = ToolScrub
		s.active = g.id
		s.scrubStartX = s.pointer.X
		s.scrubStartValue = v
	}
}

// PointerMove handles pointer motion to (x, y).
func (s *Session) PointerMove(x, y float64) {
	if s.tool == ToolLabel {
		return
	}
	last := s.pointer
	s.pointer = Point{x, y}
	if s.tool == ToolResize {
		s.resize()
		return
	}
	s.detectGlyph()

	switch s.tool {
	case ToolSketch:
		if s.sketch != nil {
			s.sketch.AddPoint(s.pointer)
		}
	case ToolConnect:
		s.connection.End = s.pointer
	case ToolScrub:
		_, err := s.Diagram.Scrub(s.active, s.scrubStartValue,
			s.pointer.X-s.scrubStartX, s.cfg.VoxelSize)
		s.logError("scrub", err)
	case ToolCurve:
		s.logError("sketch curve", s.Diagram.SketchCurve(s.active, s.pointer))
	case ToolMove:
		s.logError("move", s.Diagram.Move(s.active, s.pointer.X-last.X, s.pointer.Y-last.Y))
	}
}

// PointerUp handles a button release at (x, y). It finishes whatever the
// active tool was doing.
func (s *Session) PointerUp(x, y float64) {
	if s.modal() {
		return
	}
	s.pointer = Point{x, y}
	s.detectGlyph()
	if s.tool == ToolConnect && s.connection != nil {
		s.finishConnection()
	}
	s.tool = ToolNone
	s.active = GlyphID{}
	s.connection = nil
}

func (s *Session) finishConnection() {
	from := s.connection.From
	s.connection = nil
	target, ok := s.Diagram.Glyph(s.hovered)
	if !ok || target.id == from {
		return
	}
	switch {
	case target.Neuron != nil:
		_, err := s.Diagram.Connect(from, target.id)
		s.logError("connect", err)
	case target.Kind == KindLowerGraph:
		s.logError("bind plot", s.Diagram.BindPlot(from, target.id))
	default:
		s.log.Warn("neurons can only be connected to neurons and lower graphs",
			zap.Stringer("target", target.id), zap.Stringer("kind", target.Kind))
	}
}

func (s *Session) resize() {
	newDelta := s.pointer.X - s.resizeBase.Left
	factor := 1.0
	if newDelta >= s.cfg.MinResizeWidth {
		factor = newDelta / s.resizeDelta
	}
	s.logError("resize", s.Diagram.ResizeFrom(s.active, s.resizeBase, factor))
}

// KeyPress handles a typed character. Commands are case insensitive.
func (s *Session) KeyPress(r rune) {
	switch s.tool {
	case ToolResize:
		if unicode.ToLower(r) == 'z' {
			s.tool = ToolNone
			s.active = GlyphID{}
		}
		return
	case ToolLabel:
		s.label(r)
		return
	}

	s.detectGlyph()
	switch unicode.ToLower(r) {
	case 'a':
		s.addSketchGlyph()
	case 'c':
		s.clear()
	case 'r':
		s.recognize()
	case 't':
		s.trash()
	case 'd':
		if _, ok := s.Hovered(); ok {
			_, err := s.Diagram.Duplicate(s.hovered)
			s.logError("duplicate", err)
		}
	case 'e':
		if _, ok := s.Hovered(); ok {
			s.logError("delete", s.Diagram.Delete(s.hovered))
			s.detectGlyph()
			s.releaseStale()
		}
	case 'm':
		s.toggleMove()
	case 'z':
		s.startResize()
	case 'l':
		if g, ok := s.Diagram.Glyph(s.hovered); ok && g.Kind == KindMidGraph {
			s.tool = ToolLabel
			s.active = g.id
			s.labelY = false
		}
	case 'p':
		if g, ok := s.Diagram.Glyph(s.hovered); ok && g.Neuron != nil {
			_, err := s.Diagram.AddParameters(g.id)
			s.logError("add parameters", err)
		}
	}
}

func (s *Session) addSketchGlyph() {
	if s.sketch == nil {
		return
	}
	s.Diagram.AddGlyph(KindSketch, s.sketch.Box, WithSketch(s.sketch))
	s.dropSketch()
	s.detectGlyph()
}

// dropSketch discards the sketch in progress. A stroke still being drawn
// ends with it.
func (s *Session) dropSketch() {
	s.sketch = nil
	if s.tool == ToolSketch {
		s.tool = ToolNone
	}
}

// releaseStale ends a pointer tool whose glyph has been deleted.
func (s *Session) releaseStale() {
	if s.tool == ToolNone || s.tool == ToolSketch {
		return
	}
	if _, ok := s.Diagram.Glyph(s.active); ok {
		return
	}
	s.tool = ToolNone
	s.active = GlyphID{}
	s.connection = nil
}

func (s *Session) clear() {
	s.sketch = nil
	s.generation++
	s.Diagram.Clear()
	s.hovered = GlyphID{}
	s.tool = ToolNone
	s.active = GlyphID{}
	s.connection = nil
}

// recognize classifies the sketch in progress and starts morphing it into
// the recognized glyph, which joins the diagram once the morph completes.
// A second recognition waits until the running morph has finished.
func (s *Session) recognize() {
	if s.sketch == nil || s.sketch.Empty() {
		return
	}
	if s.morph != nil {
		s.log.Debug("recognition ignored while a morph is running")
		return
	}
	rec := Classify(s.sketch)
	s.log.Debug("sketch classified",
		zap.Stringer("kind", rec.Kind), zap.Float64s("distances", rec.Distances))

	kind := rec.Kind
	box := ProcessBox(kind, s.sketch.Box)
	raw := s.sketch.Clone()
	s.dropSketch()
	gen := s.generation
	s.morph = NewMorph(ScreenPoints(Template(kind), box), raw.Strokes, s.cfg.MorphStep, func() {
		if gen != s.generation {
			s.log.Debug("morph outlived a clear", zap.Stringer("kind", kind))
			return
		}
		id := s.Diagram.AddGlyph(kind, box)
		s.log.Info("glyph added", zap.Stringer("kind", kind), zap.Stringer("id", id))
		s.detectGlyph()
	})
}

func (s *Session) trash() {
	if s.sketch != nil {
		s.dropSketch()
		return
	}
	if id, ok := s.Diagram.Last(); ok {
		s.logError("delete", s.Diagram.Delete(id))
		s.detectGlyph()
		s.releaseStale()
	}
}

func (s *Session) toggleMove() {
	switch s.tool {
	case ToolMove:
		s.tool = ToolNone
		s.active = GlyphID{}
	case ToolNone:
		if _, ok := s.Hovered(); ok {
			s.tool = ToolMove
			s.active = s.hovered
		}
	}
}

func (s *Session) startResize() {
	g, ok := s.Diagram.Glyph(s.hovered)
	if !ok {
		return
	}
	s.tool = ToolResize
	s.active = g.id
	s.resizeBase = g.Box
	s.resizeDelta = math.Max(s.cfg.MinResizeWidth, s.pointer.X-g.Box.Left)
}

// label appends r to the mid graph's x label, then after Enter to its y
// label; a second Enter ends labelling.
func (s *Session) label(r rune) {
	g, ok := s.Diagram.Glyph(s.active)
	if !ok || g.Plot == nil {
		s.tool = ToolNone
		return
	}
	if r == '\r' || r == '\n' {
		if s.labelY {
			s.tool = ToolNone
			s.active = GlyphID{}
		}
		s.labelY = true
		return
	}
	if s.labelY {
		g.Plot.YLabel += string(r)
	} else {
		g.Plot.XLabel += string(r)
	}
}

// Tick advances the running morph by one frame; call it once per display
// refresh. It reports whether a morph is still running afterwards.
func (s *Session) Tick() bool {
	if s.morph == nil {
		return false
	}
	frame, ok := s.morph.Step()
	if ok {
		s.morphFrame = frame
		return true
	}
	s.morph = nil
	s.morphFrame = nil
	return false
}

// Display returns the display list for the current state.
func (s *Session) Display() []Primitive {
	return s.painter.Display(s.Diagram, View{
		Hovered:    s.hovered,
		Connecting: s.connection,
		Sketch:     s.sketch,
		Morph:      s.morphFrame,
	})
}

// Status returns the two status bar lines: the commands available over any
// glyph, and those specific to the hovered glyph's kind.
func (s *Session) Status() (glyph, special string) {
	g, ok := s.Diagram.Glyph(s.hovered)
	if !ok {
		return "", ""
	}
	switch {
	case g.Neuron != nil:
		special = StatusParameters
	case g.Kind == KindMidGraph:
		special = StatusLabel
	}
	return StatusGlyph, special
}

func (s *Session) logError(op string, err error) {
	if err != nil {
		s.log.Warn(op+" failed", zap.Error(err))
	}
}
