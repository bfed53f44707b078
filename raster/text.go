package raster

import (
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/wbrown/magicpaper"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

var defaultFont = sync.OnceValues(func() (*truetype.Font, error) {
	return freetype.ParseFont(goregular.TTF)
})

// DefaultFont returns the parsed Go Regular face.
func DefaultFont() (*truetype.Font, error) {
	f, err := defaultFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse default font: %w", err)
	}
	return f, nil
}

// LoadFont loads a TrueType font from file.
func LoadFont(path string) (*truetype.Font, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	f, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	return f, nil
}

// textWidth measures the advance of s at size pixels.
func textWidth(f *truetype.Font, size float64, s string) fixed.Int26_6 {
	face := truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72})
	defer face.Close()
	return font.MeasureString(face, s)
}

func (c *Canvas) text(t magicpaper.Text) error {
	col, err := ParseColor(t.Color)
	if err != nil {
		return err
	}
	if t.Content == "" || t.Size <= 0 {
		return nil
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(c.font)
	ctx.SetFontSize(t.Size)
	ctx.SetClip(c.Bounds())
	ctx.SetDst(c.RGBA)
	ctx.SetSrc(image.NewUniform(col))
	ctx.SetHinting(font.HintingFull)

	pt := fixed.Point26_6{X: fixed.Int26_6(t.X * 64), Y: fixed.Int26_6(t.Y * 64)}
	switch t.Align {
	case magicpaper.AlignCenter:
		pt.X -= textWidth(c.font, t.Size, t.Content) / 2
	case magicpaper.AlignRight:
		pt.X -= textWidth(c.font, t.Size, t.Content)
	}
	if _, err := ctx.DrawString(t.Content, pt); err != nil {
		return fmt.Errorf("failed to draw %q: %w", t.Content, err)
	}
	return nil
}
