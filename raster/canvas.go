// Package raster draws magicpaper display lists onto images, in pure Go.
package raster

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/wbrown/magicpaper"
	"golang.org/x/image/vector"
)

// Canvas is an RGBA image that display lists are drawn onto.
type Canvas struct {
	*image.RGBA
	z    *vector.Rasterizer
	font *truetype.Font
}

// Option is a functional option for configuring a Canvas.
type Option func(*Canvas)

// WithFont sets the face used for Text primitives. The default is Go
// Regular.
func WithFont(f *truetype.Font) Option {
	return func(c *Canvas) { c.font = f }
}

// NewCanvas creates a canvas of the given size filled with background.
func NewCanvas(width, height int, background string, opts ...Option) (*Canvas, error) {
	bg, err := ParseColor(background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	c := &Canvas{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
		z:    vector.NewRasterizer(width, height),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.font == nil {
		if c.font, err = DefaultFont(); err != nil {
			return nil, err
		}
	}
	draw.Draw(c.RGBA, c.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return c, nil
}

// Render draws list onto a new canvas with the theme's background.
func Render(list []magicpaper.Primitive, width, height int, theme magicpaper.Theme, opts ...Option) (*image.RGBA, error) {
	c, err := NewCanvas(width, height, theme.Background, opts...)
	if err != nil {
		return nil, err
	}
	if err := c.Draw(list); err != nil {
		return nil, err
	}
	return c.RGBA, nil
}

// Draw paints every primitive in order. It stops at the first primitive
// with an unparseable colour.
func (c *Canvas) Draw(list []magicpaper.Primitive) error {
	for i, p := range list {
		if err := c.drawPrimitive(p); err != nil {
			return fmt.Errorf("primitive %d: %w", i, err)
		}
	}
	return nil
}

func (c *Canvas) drawPrimitive(p magicpaper.Primitive) error {
	switch v := p.(type) {
	case magicpaper.Line:
		col, err := ParseColor(v.Color)
		if err != nil {
			return err
		}
		c.stroke(v.X0, v.Y0, v.X1, v.Y1, v.Width, image.NewUniform(col))
	case magicpaper.Arrow:
		col, err := ParseColor(v.Color)
		if err != nil {
			return err
		}
		src := image.NewUniform(col)
		c.stroke(v.X0, v.Y0, v.X1, v.Y1, v.Width, src)
		for _, barb := range magicpaper.ArrowHead(v.X0, v.Y0, v.X1, v.Y1) {
			c.stroke(v.X1, v.Y1, barb.X, barb.Y, v.Width, src)
		}
	case magicpaper.FilledRoundedRectangle:
		return c.roundedRectangle(v)
	case magicpaper.CircularArc:
		col, err := ParseColor(v.Color)
		if err != nil {
			return err
		}
		c.arc(v, image.NewUniform(col))
	case magicpaper.Text:
		return c.text(v)
	default:
		return fmt.Errorf("unsupported primitive %T", p)
	}
	return nil
}

// fill rasterizes the closed polygon pts.
func (c *Canvas) fill(pts []magicpaper.Point, src image.Image) {
	if len(pts) < 3 {
		return
	}
	b := c.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
	c.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		c.z.LineTo(float32(p.X), float32(p.Y))
	}
	c.z.ClosePath()
	c.z.Draw(c.RGBA, b, src, image.Point{})
}

// stroke draws a segment as a quadrilateral of the given width. Widths
// below one pixel are drawn one pixel wide.
func (c *Canvas) stroke(x0, y0, x1, y1, width float64, src image.Image) {
	half := math.Max(width, 1) / 2
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		c.fill([]magicpaper.Point{
			{X: x0 - half, Y: y0 - half}, {X: x0 + half, Y: y0 - half},
			{X: x0 + half, Y: y0 + half}, {X: x0 - half, Y: y0 + half},
		}, src)
		return
	}
	nx, ny := -dy/l*half, dx/l*half
	c.fill([]magicpaper.Point{
		{X: x0 + nx, Y: y0 + ny}, {X: x1 + nx, Y: y1 + ny},
		{X: x1 - nx, Y: y1 - ny}, {X: x0 - nx, Y: y0 - ny},
	}, src)
}

// arcPoints samples the arc of radius r about (cx, cy) from start to end.
func arcPoints(cx, cy, r, start, end float64) []magicpaper.Point {
	n := int(math.Ceil(math.Abs(end-start) * r / 3))
	if n < 8 {
		n = 8
	}
	pts := make([]magicpaper.Point, n+1)
	for i := range pts {
		theta := start + (end-start)*float64(i)/float64(n)
		pts[i] = magicpaper.Point{X: cx + r*math.Cos(theta), Y: cy + r*math.Sin(theta)}
	}
	return pts
}

// arc fills the band between the inner and outer edge of the stroke.
func (c *Canvas) arc(a magicpaper.CircularArc, src image.Image) {
	half := math.Max(a.Width, 1) / 2
	outer := arcPoints(a.X, a.Y, a.Radius+half, a.Start, a.End)
	inner := arcPoints(a.X, a.Y, math.Max(a.Radius-half, 0), a.Start, a.End)
	band := make([]magicpaper.Point, 0, len(outer)+len(inner))
	band = append(band, outer...)
	for i := len(inner) - 1; i >= 0; i-- {
		band = append(band, inner[i])
	}
	c.fill(band, src)
}

func roundedRectanglePath(r magicpaper.FilledRoundedRectangle) []magicpaper.Point {
	x0, x1 := math.Min(r.X0, r.X1), math.Max(r.X0, r.X1)
	y0, y1 := math.Min(r.Y0, r.Y1), math.Max(r.Y0, r.Y1)
	rad := math.Min(r.Radius, math.Min(x1-x0, y1-y0)/2)
	if rad <= 0 {
		return []magicpaper.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
	}
	var pts []magicpaper.Point
	pts = append(pts, arcPoints(x1-rad, y0+rad, rad, -math.Pi/2, 0)...)
	pts = append(pts, arcPoints(x1-rad, y1-rad, rad, 0, math.Pi/2)...)
	pts = append(pts, arcPoints(x0+rad, y1-rad, rad, math.Pi/2, math.Pi)...)
	pts = append(pts, arcPoints(x0+rad, y0+rad, rad, math.Pi, 3*math.Pi/2)...)
	return pts
}

func (c *Canvas) roundedRectangle(r magicpaper.FilledRoundedRectangle) error {
	fill, err := ParseColor(r.Fill)
	if err != nil {
		return err
	}
	path := roundedRectanglePath(r)
	c.fill(path, image.NewUniform(fill))
	if r.Width <= 0 {
		return nil
	}
	stroke, err := ParseColor(r.Stroke)
	if err != nil {
		return err
	}
	src := image.NewUniform(stroke)
	for i := range path {
		p, q := path[i], path[(i+1)%len(path)]
		c.stroke(p.X, p.Y, q.X, q.Y, r.Width, src)
	}
	return nil
}
