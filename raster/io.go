package raster

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// SaveImage writes a rendered frame to path. A .jpg, .jpeg or .gif
// extension selects that encoding; anything else is written as PNG.
func SaveImage(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame %s: %w", path, err)
	}
	var encErr error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		encErr = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	case ".gif":
		encErr = gif.Encode(f, img, nil)
	default:
		encErr = png.Encode(f, img)
	}
	if err := f.Close(); encErr == nil {
		encErr = err
	}
	if encErr != nil {
		return fmt.Errorf("write frame %s: %w", path, encErr)
	}
	return nil
}

// SaveFrame writes frame n of an animation into dir as frame_NNNN.png and
// returns the path written.
func SaveFrame(img image.Image, dir string, n int) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", n))
	if err := SaveImage(img, path); err != nil {
		return "", err
	}
	return path, nil
}
