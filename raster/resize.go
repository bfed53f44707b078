package raster

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for scaling frames.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom, which keeps thin strokes legible
	// when downscaling.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest, and keeps pixels crisp when upscaling.
	InterpolationNearest
)

func (interp Interpolation) scaler() draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize resizes an RGBA image to the specified dimensions using the
// given interpolation method.
func Resize(img *image.RGBA, width, height int, interp Interpolation) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	interp.scaler().Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// Scale resizes an image by factor in both dimensions, keeping at least
// one pixel. A factor of 1 returns img unchanged.
func Scale(img *image.RGBA, factor float64, interp Interpolation) *image.RGBA {
	if factor == 1 || factor <= 0 {
		return img
	}
	width := max(1, int(float64(img.Bounds().Dx())*factor))
	height := max(1, int(float64(img.Bounds().Dy())*factor))
	return Resize(img, width, height, interp)
}
