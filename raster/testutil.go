package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"golang.org/x/image/draw"
)

// CountPixels returns the number of pixels of img exactly equal to c.
func CountPixels(img *image.RGBA, c color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

// CountInk returns the number of pixels that differ from the background.
func CountInk(img *image.RGBA, background color.RGBA) int {
	b := img.Bounds()
	return b.Dx()*b.Dy() - CountPixels(img, background)
}

// CalculateMSE calculates the Mean Squared Error between two RGBA images.
func CalculateMSE(img1, img2 *image.RGBA) float64 {
	if img1.Bounds().Size() != img2.Bounds().Size() {
		return math.MaxFloat64
	}

	width, height := img1.Bounds().Dx(), img1.Bounds().Dy()
	var sumSq float64
	count := float64(width * height * 3) // 3 channels

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c1 := img1.RGBAAt(img1.Bounds().Min.X+x, img1.Bounds().Min.Y+y)
			c2 := img2.RGBAAt(img2.Bounds().Min.X+x, img2.Bounds().Min.Y+y)
			dr := float64(c1.R) - float64(c2.R)
			dg := float64(c1.G) - float64(c2.G)
			db := float64(c1.B) - float64(c2.B)
			sumSq += dr*dr + dg*dg + db*db
		}
	}

	return sumSq / count
}

// CalculateJaccardIndex compares the inked pixels of two drawings on the
// same background. Returns a value between 0 (no overlap) and 1 (perfect
// overlap).
func CalculateJaccardIndex(img1, img2 *image.RGBA, background color.RGBA) float64 {
	if img1.Bounds().Size() != img2.Bounds().Size() {
		return 0
	}

	width, height := img1.Bounds().Dx(), img1.Bounds().Dy()
	var intersection, union int

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			e1 := inked(img1.RGBAAt(img1.Bounds().Min.X+x, img1.Bounds().Min.Y+y), background)
			e2 := inked(img2.RGBAAt(img2.Bounds().Min.X+x, img2.Bounds().Min.Y+y), background)
			if e1 && e2 {
				intersection++
			}
			if e1 || e2 {
				union++
			}
		}
	}

	if union == 0 {
		return 1.0 // Both empty
	}
	return float64(intersection) / float64(union)
}

// inked reports whether c is far enough from the background to count as
// part of the drawing rather than antialiasing fringe.
func inked(c, background color.RGBA) bool {
	d := math.Abs(float64(c.R)-float64(background.R)) +
		math.Abs(float64(c.G)-float64(background.G)) +
		math.Abs(float64(c.B)-float64(background.B))
	return d > 3*128
}

// LoadImage decodes a frame written by SaveImage back into an RGBA image
// so it can be compared against a freshly rendered one.
func LoadImage(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frame %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode frame %s: %w", path, err)
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba, nil
}
