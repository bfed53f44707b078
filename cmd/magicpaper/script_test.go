package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/magicpaper"
)

const squareScript = `
events:
  - down: [100, 100]
  - move: [150, 100]
  - move: [200, 100]
  - move: [200, 150]
  - move: [200, 200]
  - move: [150, 200]
  - move: [100, 200]
  - move: [100, 150]
  - move: [100, 100]
  - up: [100, 100]
  - key: r
  - ticks: 30
`

func TestReadScript(t *testing.T) {
	s, err := ReadScript(strings.NewReader(squareScript))
	require.NoError(t, err)
	require.Len(t, s.Events, 13)
	assert.Equal(t, []float64{100, 100}, s.Events[0].Down)
	assert.Equal(t, "r", s.Events[11].Key)
	assert.Equal(t, 30, s.Events[12].Ticks)
}

func TestReadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", "events:\n  - tap: [1, 2]\n"},
		{"wrong arity", "events:\n  - down: [1]\n"},
		{"two fields", "events:\n  - down: [1, 2]\n    key: r\n"},
		{"empty event", "events:\n  - {}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadScript(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestKeyRunes(t *testing.T) {
	assert.Equal(t, []rune{'\r'}, keyRunes("Enter"))
	assert.Equal(t, []rune{' '}, keyRunes("space"))
	assert.Equal(t, []rune("time"), keyRunes("time"))
}

func TestReplay(t *testing.T) {
	script, err := ReadScript(strings.NewReader(squareScript))
	require.NoError(t, err)

	s := magicpaper.NewSession(magicpaper.DefaultConfig())
	animated := 0
	require.NoError(t, script.Replay(s, func(animating bool) error {
		if animating {
			animated++
		}
		return nil
	}))

	assert.Equal(t, 24, animated)
	require.Equal(t, 1, s.Diagram.Len())
	assert.Equal(t, magicpaper.KindLinear, s.Diagram.Glyphs()[0].Kind)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "square.yaml")
	require.NoError(t, os.WriteFile(scriptPath, []byte(squareScript), 0o644))
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log_level: error\ncanvas:\n  width: 320\n  height: 240\n"), 0o644))
	framesDir := filepath.Join(dir, "frames")
	require.NoError(t, os.MkdirAll(framesDir, 0o755))
	output := filepath.Join(dir, "out.png")

	require.NoError(t, run(scriptPath, configPath, output, framesDir, "", 0.5))

	_, err := os.Stat(output)
	assert.NoError(t, err)
	frames, err := filepath.Glob(filepath.Join(framesDir, "frame_*.png"))
	require.NoError(t, err)
	assert.Len(t, frames, 24)
}
