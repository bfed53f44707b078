package magicpaper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// drawSquare strokes the outline of the square with the given top left
// corner and side.
func drawSquare(s *Session, left, top, side float64) {
	s.PointerDown(left, top)
	for d := 5.0; d <= side; d += 5 {
		s.PointerMove(left+d, top)
	}
	for d := 5.0; d <= side; d += 5 {
		s.PointerMove(left+side, top+d)
	}
	for d := 5.0; d <= side; d += 5 {
		s.PointerMove(left+side-d, top+side)
	}
	for d := 5.0; d <= side; d += 5 {
		s.PointerMove(left, top+side-d)
	}
	s.PointerUp(left, top)
}

func typeKeys(s *Session, keys string) {
	for _, r := range keys {
		s.KeyPress(r)
	}
}

func TestSessionRecognizeSquare(t *testing.T) {
	s := NewSession(DefaultConfig())
	drawSquare(s, 100, 100, 100)
	assert.Equal(t, ToolNone, s.Tool())
	require.NotNil(t, s.Sketch())
	assert.Equal(t, BoundingBox{Left: 100, Top: 100, Right: 200, Bottom: 200}, s.Sketch().Box)

	s.KeyPress('r')
	assert.Nil(t, s.Sketch())
	assert.True(t, s.Animating())
	assert.Zero(t, s.Diagram.Len())

	frames := 0
	for s.Tick() {
		frames++
		assert.NotEmpty(t, s.Display())
	}
	assert.Equal(t, 24, frames)
	assert.False(t, s.Animating())

	require.Equal(t, 1, s.Diagram.Len())
	g := s.Diagram.Glyphs()[0]
	assert.Equal(t, KindLinear, g.Kind)
	assert.Equal(t, BoundingBox{Left: 100, Top: 100, Right: 200, Bottom: 200}, g.Box)
}

func TestSessionRecognizeWaitsForMorph(t *testing.T) {
	s := NewSession(DefaultConfig())
	drawSquare(s, 100, 100, 100)
	s.KeyPress('r')
	drawSquare(s, 400, 100, 100)
	s.KeyPress('R')
	assert.NotNil(t, s.Sketch())

	for s.Tick() {
	}
	assert.Equal(t, 1, s.Diagram.Len())

	s.KeyPress('r')
	assert.Nil(t, s.Sketch())
	for s.Tick() {
	}
	assert.Equal(t, 2, s.Diagram.Len())
}

func TestSessionTickWithoutMorph(t *testing.T) {
	s := NewSession(DefaultConfig())
	assert.False(t, s.Tick())
	s.KeyPress('r')
	assert.False(t, s.Animating())
}

func TestSessionConnect(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewSession(DefaultConfig(), WithLogger(zap.New(core)))
	a := s.Diagram.AddGlyph(KindLinear, box(0, 0, 60))
	b := s.Diagram.AddGlyph(KindLinear, box(200, 0, 60))
	plot := s.Diagram.AddGlyph(KindLowerGraph, box(400, 0, 100))
	mid := s.Diagram.AddGlyph(KindMidGraph, box(400, 200, 100))

	s.PointerDown(30, 30)
	assert.Equal(t, ToolConnect, s.Tool())
	s.PointerMove(230, 30)
	assert.Contains(t, s.Display(), Primitive(Arrow{30, 30, 230, 30, "white", 1}))
	s.PointerUp(230, 30)
	assert.Equal(t, ToolNone, s.Tool())

	inputs := mustGlyph(t, s.Diagram, b).Neuron.Inputs
	require.Len(t, inputs, 1)
	assert.Equal(t, a, inputs[0].Source)

	s.PointerDown(230, 30)
	s.PointerUp(450, 50)
	assert.Equal(t, plot, mustGlyph(t, s.Diagram, b).Neuron.Plot)

	s.PointerDown(30, 30)
	s.PointerUp(450, 250)
	assert.Equal(t, 1, logs.FilterMessage("neurons can only be connected to neurons and lower graphs").Len())
	assert.Empty(t, mustGlyph(t, s.Diagram, mid).Plot.Input.String())

	// Releasing over empty paper or the source itself does nothing.
	s.PointerDown(30, 30)
	s.PointerUp(30, 500)
	s.PointerDown(30, 30)
	s.PointerUp(40, 40)
	assert.Empty(t, mustGlyph(t, s.Diagram, a).Neuron.Inputs)
	assert.Len(t, mustGlyph(t, s.Diagram, b).Neuron.Inputs, 1)
}

func TestSessionScrub(t *testing.T) {
	s := NewSession(DefaultConfig())
	n := s.Diagram.AddGlyph(KindLinear, box(100, 100, 60))

	s.PointerMove(130, 130)
	s.KeyPress('p')
	require.Equal(t, 2, s.Diagram.Len())

	s.PointerDown(130, 80)
	assert.Equal(t, ToolScrub, s.Tool())
	s.PointerMove(190, 80)
	assert.Equal(t, 1.0, mustGlyph(t, s.Diagram, n).Neuron.Bias)
	s.PointerMove(124, 80)
	assert.InDelta(t, -0.1, mustGlyph(t, s.Diagram, n).Neuron.Bias, 1e-12)
	s.PointerUp(124, 80)
	assert.Equal(t, ToolNone, s.Tool())
}

func TestSessionCurve(t *testing.T) {
	s := NewSession(DefaultConfig())
	mid := s.Diagram.AddGlyph(KindMidGraph, box(300, 300, 100))

	s.PointerDown(310, 320)
	assert.Equal(t, ToolCurve, s.Tool())
	s.PointerMove(320, 330)
	s.PointerMove(500, 330)
	s.PointerUp(500, 330)

	assert.Equal(t, []int{10, 20}, mustGlyph(t, s.Diagram, mid).Plot.Curve.Keys())
}

func TestSessionMove(t *testing.T) {
	s := NewSession(DefaultConfig())
	n := s.Diagram.AddGlyph(KindLinear, box(100, 100, 60))

	s.PointerMove(130, 130)
	s.KeyPress('m')
	assert.Equal(t, ToolMove, s.Tool())
	s.PointerMove(140, 135)
	assert.Equal(t, BoundingBox{Left: 110, Top: 105, Right: 170, Bottom: 165}, mustGlyph(t, s.Diagram, n).Box)

	s.PointerDown(140, 135)
	assert.Equal(t, ToolMove, s.Tool())
	s.PointerUp(140, 135)
	assert.Equal(t, ToolNone, s.Tool())

	s.PointerMove(150, 150)
	assert.Equal(t, BoundingBox{Left: 110, Top: 105, Right: 170, Bottom: 165}, mustGlyph(t, s.Diagram, n).Box)

	s.KeyPress('m')
	assert.Equal(t, ToolMove, s.Tool())
	s.KeyPress('M')
	assert.Equal(t, ToolNone, s.Tool())
}

func TestSessionResize(t *testing.T) {
	s := NewSession(DefaultConfig())
	n := s.Diagram.AddGlyph(KindLinear, box(100, 100, 60))

	s.PointerMove(150, 130)
	s.KeyPress('z')
	assert.Equal(t, ToolResize, s.Tool())

	s.PointerMove(200, 130)
	assert.Equal(t, box(100, 100, 120), mustGlyph(t, s.Diagram, n).Box)

	s.PointerDown(200, 130)
	assert.Equal(t, ToolResize, s.Tool())

	s.PointerMove(105, 130)
	assert.Equal(t, box(100, 100, 60), mustGlyph(t, s.Diagram, n).Box)

	// Other commands are ignored until resizing ends.
	s.KeyPress('e')
	assert.Equal(t, 1, s.Diagram.Len())

	s.KeyPress('Z')
	assert.Equal(t, ToolNone, s.Tool())
}

func TestSessionLabel(t *testing.T) {
	s := NewSession(DefaultConfig())
	mid := s.Diagram.AddGlyph(KindMidGraph, box(300, 300, 100))

	s.PointerMove(350, 350)
	s.KeyPress('l')
	assert.Equal(t, ToolLabel, s.Tool())
	typeKeys(s, "time\rvalue\r")
	assert.Equal(t, ToolNone, s.Tool())

	g := mustGlyph(t, s.Diagram, mid)
	assert.Equal(t, "time", g.Plot.XLabel)
	assert.Equal(t, "value", g.Plot.YLabel)
	assert.Equal(t, 1, s.Diagram.Len())

	// Labels only apply to mid graphs.
	s.Diagram.AddGlyph(KindLowerGraph, box(0, 0, 100))
	s.PointerMove(50, 50)
	s.KeyPress('l')
	assert.Equal(t, ToolNone, s.Tool())
}

func TestSessionGlyphCommands(t *testing.T) {
	s := NewSession(DefaultConfig())
	n := s.Diagram.AddGlyph(KindLinear, box(0, 0, 60))

	s.PointerMove(30, 30)
	s.KeyPress('d')
	require.Equal(t, 2, s.Diagram.Len())
	last, _ := s.Diagram.Last()
	assert.Equal(t, box(12, 12, 60), mustGlyph(t, s.Diagram, last).Box)

	// The duplicate is on top now.
	s.KeyPress('E')
	assert.Equal(t, 1, s.Diagram.Len())
	id, ok := s.Hovered()
	assert.True(t, ok)
	assert.Equal(t, n, id)

	s.PointerMove(500, 500)
	s.KeyPress('e')
	assert.Equal(t, 1, s.Diagram.Len())
}

func TestSessionSketchCommands(t *testing.T) {
	s := NewSession(DefaultConfig())

	s.PointerDown(10, 10)
	s.PointerMove(20, 30)
	s.PointerUp(20, 30)
	s.KeyPress('a')
	assert.Nil(t, s.Sketch())
	require.Equal(t, 1, s.Diagram.Len())
	assert.Equal(t, KindSketch, s.Diagram.Glyphs()[0].Kind)

	s.PointerDown(100, 100)
	s.PointerUp(100, 100)
	s.KeyPress('t')
	assert.Nil(t, s.Sketch())
	assert.Equal(t, 1, s.Diagram.Len())

	s.KeyPress('t')
	assert.Zero(t, s.Diagram.Len())

	s.Diagram.AddGlyph(KindLinear, box(0, 0, 60))
	s.PointerDown(100, 100)
	s.KeyPress('c')
	assert.Zero(t, s.Diagram.Len())
	assert.Nil(t, s.Sketch())
	assert.Equal(t, ToolNone, s.Tool())
}

func TestSessionStatus(t *testing.T) {
	s := NewSession(DefaultConfig())
	s.Diagram.AddGlyph(KindSigmoid, box(0, 0, 60))
	s.Diagram.AddGlyph(KindMidGraph, box(200, 0, 100))
	s.Diagram.AddGlyph(KindLowerGraph, box(400, 0, 100))

	tests := []struct {
		name          string
		at            Point
		glyph, action string
	}{
		{"nothing", Point{700, 700}, "", ""},
		{"neuron", Point{30, 30}, StatusGlyph, StatusParameters},
		{"mid graph", Point{250, 50}, StatusGlyph, StatusLabel},
		{"lower graph", Point{450, 50}, StatusGlyph, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.PointerMove(tt.at.X, tt.at.Y)
			glyph, action := s.Status()
			assert.Equal(t, tt.glyph, glyph)
			assert.Equal(t, tt.action, action)
		})
	}
}

func TestSessionUsesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinResizeWidth = 50
	s := NewSession(cfg)
	assert.Equal(t, 50.0, s.Diagram.MinResizeWidth)
	assert.Equal(t, cfg, s.Config())
}

func TestSessionKeysDuringStroke(t *testing.T) {
	for _, k := range "rta" {
		t.Run(string(k), func(t *testing.T) {
			s := NewSession(DefaultConfig())
			s.PointerDown(10, 10)
			s.PointerMove(50, 10)
			s.PointerMove(50, 50)
			s.KeyPress(k)
			assert.Equal(t, ToolNone, s.Tool())
			assert.Nil(t, s.Sketch())

			s.PointerMove(60, 60)
			s.PointerUp(60, 60)
			assert.Nil(t, s.Sketch())

			s.PointerDown(200, 200)
			s.PointerMove(210, 210)
			assert.Equal(t, ToolSketch, s.Tool())
			require.NotNil(t, s.Sketch())
			assert.Len(t, s.Sketch().Strokes, 1)
		})
	}
}

func TestSessionKeysDuringPointerTools(t *testing.T) {
	tools := []struct {
		name       string
		down, move Point
		tool       Tool
		// want maps a key to the tool left active after it.
		want map[rune]Tool
	}{
		{"sketch", Point{600, 600}, Point{620, 620}, ToolSketch,
			map[rune]Tool{'a': ToolNone, 'c': ToolNone, 'r': ToolNone, 't': ToolNone, 'e': ToolSketch}},
		{"connect", Point{130, 130}, Point{135, 135}, ToolConnect,
			map[rune]Tool{'a': ToolConnect, 'c': ToolNone, 'r': ToolConnect, 't': ToolConnect, 'e': ToolNone}},
		{"scrub", Point{130, 80}, Point{130, 80}, ToolScrub,
			map[rune]Tool{'a': ToolScrub, 'c': ToolNone, 'r': ToolScrub, 't': ToolNone, 'e': ToolNone}},
		{"curve", Point{310, 320}, Point{320, 330}, ToolCurve,
			map[rune]Tool{'a': ToolCurve, 'c': ToolNone, 'r': ToolCurve, 't': ToolCurve, 'e': ToolNone}},
	}
	for _, tt := range tools {
		for _, k := range "acrte" {
			t.Run(tt.name+"/"+string(k), func(t *testing.T) {
				s := NewSession(DefaultConfig())
				s.Diagram.AddGlyph(KindLinear, box(100, 100, 60))
				s.Diagram.AddGlyph(KindMidGraph, box(300, 300, 100))
				s.PointerMove(130, 130)
				s.KeyPress('p')
				require.Equal(t, 3, s.Diagram.Len())

				s.PointerDown(tt.down.X, tt.down.Y)
				s.PointerMove(tt.move.X, tt.move.Y)
				require.Equal(t, tt.tool, s.Tool())

				s.KeyPress(k)
				assert.Equal(t, tt.want[k], s.Tool())
				if s.Tool() == ToolSketch {
					assert.NotNil(t, s.Sketch())
				}

				assert.NotPanics(t, func() {
					s.PointerMove(tt.move.X+10, tt.move.Y+10)
					s.Display()
					s.PointerUp(tt.move.X+10, tt.move.Y+10)
					s.Display()
				})
				assert.Equal(t, ToolNone, s.Tool())
				for s.Tick() {
				}
			})
		}
	}
}

func TestSessionClearDiscardsRunningMorph(t *testing.T) {
	s := NewSession(DefaultConfig())
	drawSquare(s, 100, 100, 100)
	s.KeyPress('r')
	require.True(t, s.Animating())

	s.KeyPress('c')
	for s.Tick() {
	}
	assert.Zero(t, s.Diagram.Len())

	drawSquare(s, 100, 100, 100)
	s.KeyPress('r')
	for s.Tick() {
	}
	assert.Equal(t, 1, s.Diagram.Len())
}
