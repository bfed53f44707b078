package magicpaper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeDirect(t *testing.T) {
	d := NewDiagram()
	x := d.AddGlyph(KindLinear, box(0, 0, 60))
	y := d.AddGlyph(KindLinear, box(100, 0, 60), WithBias(3))
	_, err := d.ConnectWeighted(x, y, 2)
	require.NoError(t, err)

	net, err := d.Synthesize(y)
	require.NoError(t, err)
	require.True(t, net.Supported())
	assert.Equal(t, ShapeDirect, net.Shape)
	assert.InDelta(t, 3, net.Func(0), 1e-12)
	assert.InDelta(t, 5, net.Func(1), 1e-12)
	assert.InDelta(t, 7, net.Func(2), 1e-12)
}

func TestSynthesizeDirectSigmoid(t *testing.T) {
	d := NewDiagram()
	x := d.AddGlyph(KindLinear, box(0, 0, 60))
	y := d.AddGlyph(KindSigmoid, box(100, 0, 60))
	_, err := d.ConnectWeighted(x, y, 10)
	require.NoError(t, err)

	net, err := d.Synthesize(y)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, net.Func(0.5), 1e-12)
	assert.InDelta(t, Sigmoid(-5), net.Func(0), 1e-12)
}

func TestSynthesizeHidden(t *testing.T) {
	d := NewDiagram()
	x := d.AddGlyph(KindLinear, box(0, 0, 60))
	h1 := d.AddGlyph(KindSigmoid, box(100, 0, 60))
	h2 := d.AddGlyph(KindSigmoid, box(100, 100, 60), WithBias(2))
	y := d.AddGlyph(KindLinear, box(200, 0, 60), WithBias(0.5))

	for _, c := range []struct {
		src, dst GlyphID
		w        float64
	}{
		{x, h1, 10},
		{x, h2, -3},
		{h1, y, 2},
		{h2, y, 1},
	} {
		_, err := d.ConnectWeighted(c.src, c.dst, c.w)
		require.NoError(t, err)
	}

	net, err := d.Synthesize(y)
	require.NoError(t, err)
	assert.Equal(t, ShapeHidden, net.Shape)
	for _, in := range []float64{0, 0.25, 0.5, 1} {
		want := 0.5 + 2*Sigmoid(10*in-5) + Sigmoid(-3*in+2)
		assert.InDelta(t, want, net.Func(in), 1e-12, "x=%v", in)
	}
}

func TestSynthesizeUnsupported(t *testing.T) {
	d := NewDiagram()
	lone := d.AddGlyph(KindLinear, box(0, 0, 60))
	x1 := d.AddGlyph(KindLinear, box(0, 100, 60))
	x2 := d.AddGlyph(KindLinear, box(0, 200, 60))
	h1 := d.AddGlyph(KindSigmoid, box(100, 100, 60))
	h2 := d.AddGlyph(KindSigmoid, box(100, 200, 60))
	y := d.AddGlyph(KindLinear, box(200, 150, 60))
	plot := d.AddGlyph(KindLowerGraph, box(400, 0, 100))

	for _, c := range [][2]GlyphID{{x1, h1}, {x2, h2}, {h1, y}, {h2, y}} {
		_, err := d.Connect(c[0], c[1])
		require.NoError(t, err)
	}

	tests := []struct {
		name string
		id   GlyphID
	}{
		{"no inputs", lone},
		{"hidden units read different inputs", y},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, err := d.Synthesize(tt.id)
			require.NoError(t, err)
			assert.Equal(t, ShapeUnsupported, net.Shape)
			assert.False(t, net.Supported())
		})
	}

	_, err := d.Synthesize(plot)
	assert.ErrorIs(t, err, ErrNotNeuron)
}

func TestSynthesizeSnapshotsValues(t *testing.T) {
	d := NewDiagram()
	x := d.AddGlyph(KindLinear, box(0, 0, 60))
	y := d.AddGlyph(KindLinear, box(100, 0, 60))
	_, err := d.ConnectWeighted(x, y, 2)
	require.NoError(t, err)

	net, err := d.Synthesize(y)
	require.NoError(t, err)
	mustGlyph(t, d, y).Neuron.Bias = 100
	assert.InDelta(t, 2, net.Func(1), 1e-12)
}
