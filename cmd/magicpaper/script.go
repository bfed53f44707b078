package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/wbrown/magicpaper"
	"gopkg.in/yaml.v3"
)

// Event is one recorded input. Exactly one field is set.
type Event struct {
	Down  []float64 `yaml:"down" validate:"omitempty,len=2"`
	Move  []float64 `yaml:"move" validate:"omitempty,len=2"`
	Up    []float64 `yaml:"up" validate:"omitempty,len=2"`
	Key   string    `yaml:"key"`
	Ticks int       `yaml:"ticks" validate:"gte=0"`
}

// Script is a sequence of input events replayed against a session.
type Script struct {
	Events []Event `yaml:"events" validate:"dive"`
}

var validate = validator.New()

func (e Event) fields() int {
	n := 0
	for _, set := range []bool{e.Down != nil, e.Move != nil, e.Up != nil, e.Key != "", e.Ticks > 0} {
		if set {
			n++
		}
	}
	return n
}

// ReadScript decodes and validates a YAML event script.
func ReadScript(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode script: %w", err)
	}
	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	for i, e := range s.Events {
		if e.fields() != 1 {
			return nil, fmt.Errorf("event %d: exactly one of down, move, up, key or ticks must be set", i)
		}
	}
	return &s, nil
}

// LoadScript reads a script file.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()
	return ReadScript(f)
}

// keyRunes turns a key event into the characters it types. Named keys
// are matched case insensitively; anything else is typed rune by rune.
func keyRunes(key string) []rune {
	switch strings.ToLower(key) {
	case "enter", "return":
		return []rune{'\r'}
	case "space":
		return []rune{' '}
	}
	return []rune(key)
}

// Replay feeds every event to s. tick is called after each display refresh
// with whether a morph is still running.
func (sc *Script) Replay(s *magicpaper.Session, tick func(animating bool) error) error {
	for _, e := range sc.Events {
		switch {
		case e.Down != nil:
			s.PointerDown(e.Down[0], e.Down[1])
		case e.Move != nil:
			s.PointerMove(e.Move[0], e.Move[1])
		case e.Up != nil:
			s.PointerUp(e.Up[0], e.Up[1])
		case e.Key != "":
			for _, r := range keyRunes(e.Key) {
				s.KeyPress(r)
			}
		case e.Ticks > 0:
			for i := 0; i < e.Ticks; i++ {
				if err := tick(s.Tick()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
