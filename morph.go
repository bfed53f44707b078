package magicpaper

import "time"

// DefaultMorphStep is the amount the interpolation parameter advances per
// display refresh.
const DefaultMorphStep = 0.04

// PointPair links a sketch point to the glyph point it travels to.
type PointPair struct {
	Start, End Point
}

// Morph animates a raw sketch into the outline of the glyph it was
// recognized as. It is driven one frame per display refresh by Step and
// cannot be cancelled: once started it always runs to completion, and the
// completion callback fires exactly once.
type Morph struct {
	pairs  [][]PointPair
	step   float64
	frame  int
	done   bool
	onDone func()
}

// NewMorph pairs every point of every stroke with its nearest glyph screen
// point (first found on ties). onDone may be nil.
func NewMorph(screenPoints []Point, strokes [][]Point, step float64, onDone func()) *Morph {
	if step <= 0 {
		step = DefaultMorphStep
	}
	tree := NewPointTree(screenPoints)
	pairs := make([][]PointPair, len(strokes))
	for i, stroke := range strokes {
		pairs[i] = make([]PointPair, len(stroke))
		for j, p := range stroke {
			end := p
			if idx, _ := tree.Nearest(p); idx >= 0 {
				end = screenPoints[idx]
			}
			pairs[i][j] = PointPair{Start: p, End: end}
		}
	}
	return &Morph{pairs: pairs, step: step, onDone: onDone}
}

// Pairs returns the point correspondences, one slice per stroke.
func (m *Morph) Pairs() [][]PointPair { return m.pairs }

// Done reports whether the morph has completed.
func (m *Morph) Done() bool { return m.done }

// Step advances the interpolation parameter by one increment. While the
// parameter is below 1 it returns the interpolated strokes and true. The
// first call that reaches 1 runs the completion callback and returns false,
// as does every call after that.
func (m *Morph) Step() ([][]Point, bool) {
	if m.done {
		return nil, false
	}
	m.frame++
	// p is recomputed from the frame count so rounding does not accumulate.
	p := float64(m.frame) * m.step
	if p < 1-1e-9 {
		return m.interpolate(p), true
	}
	m.done = true
	if m.onDone != nil {
		m.onDone()
	}
	return nil, false
}

func (m *Morph) interpolate(p float64) [][]Point {
	paths := make([][]Point, len(m.pairs))
	for i, stroke := range m.pairs {
		paths[i] = make([]Point, len(stroke))
		for j, pair := range stroke {
			paths[i][j] = pair.Start.Lerp(pair.End, p)
		}
	}
	return paths
}

// Run drives m to completion, taking one step per value received from ticks
// and handing each intermediate frame to draw. It returns once the morph
// has completed or ticks is closed.
func (m *Morph) Run(ticks <-chan time.Time, draw func([][]Point)) {
	for range ticks {
		frame, ok := m.Step()
		if !ok {
			return
		}
		if draw != nil {
			draw(frame)
		}
	}
}
