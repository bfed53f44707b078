package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/golang/freetype/truetype"
	"github.com/wbrown/magicpaper"
	"github.com/wbrown/magicpaper/raster"
	"go.uber.org/zap"
)

// statusLines draws the session's status bar at the bottom left, the way
// the interactive paper shows available commands.
func statusLines(s *magicpaper.Session, cfg magicpaper.Config) []magicpaper.Primitive {
	glyph, special := s.Status()
	size := 0.6 * cfg.FontSize
	bottom := float64(cfg.Canvas.Height) - 10
	var out []magicpaper.Primitive
	if glyph != "" {
		out = append(out, magicpaper.Text{Content: glyph, X: 10, Y: bottom - size - 4,
			Color: cfg.Theme.Foreground, Size: size})
	}
	if special != "" {
		out = append(out, magicpaper.Text{Content: special, X: 10, Y: bottom,
			Color: cfg.Theme.Foreground, Size: size})
	}
	return out
}

type renderer struct {
	cfg   magicpaper.Config
	font  *truetype.Font
	scale float64
}

func (r *renderer) render(s *magicpaper.Session) (*image.RGBA, error) {
	var opts []raster.Option
	if r.font != nil {
		opts = append(opts, raster.WithFont(r.font))
	}
	list := append(s.Display(), statusLines(s, r.cfg)...)
	img, err := raster.Render(list, r.cfg.Canvas.Width, r.cfg.Canvas.Height, r.cfg.Theme, opts...)
	if err != nil {
		return nil, err
	}
	return raster.Scale(img, r.scale, raster.InterpolationArea), nil
}

func run(scriptPath, configPath, output, framesDir, fontPath string, scale float64) error {
	cfg, err := magicpaper.LoadConfig(configPath)
	if err != nil {
		return err
	}
	logger, err := magicpaper.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	script, err := LoadScript(scriptPath)
	if err != nil {
		return err
	}

	r := &renderer{cfg: cfg, scale: scale}
	if fontPath != "" {
		if r.font, err = raster.LoadFont(fontPath); err != nil {
			return err
		}
	}

	s := magicpaper.NewSession(cfg, magicpaper.WithLogger(logger))
	frame := 0
	err = script.Replay(s, func(animating bool) error {
		if framesDir == "" || !animating {
			return nil
		}
		img, err := r.render(s)
		if err != nil {
			return err
		}
		path, err := raster.SaveFrame(img, framesDir, frame)
		if err != nil {
			return err
		}
		logger.Debug("frame written", zap.String("path", path))
		frame++
		return nil
	})
	if err != nil {
		return err
	}

	img, err := r.render(s)
	if err != nil {
		return err
	}
	if err := raster.SaveImage(img, output); err != nil {
		return err
	}
	logger.Info("diagram rendered",
		zap.String("output", output),
		zap.Int("glyphs", s.Diagram.Len()),
		zap.Int("frames", frame))
	return nil
}

func main() {
	scriptPath := flag.String("script", "",
		"Path to the YAML event script (required)")
	configPath := flag.String("config", "",
		"Path to a YAML config file (defaults are used if not specified)")
	output := flag.String("output", "magicpaper.png",
		"Path to save the final frame (png, jpg or gif)")
	framesDir := flag.String("frames", "",
		"Directory to write one PNG per display refresh while morphing")
	fontPath := flag.String("font", "",
		"TTF font for text (default: Go Regular)")
	scale := flag.Float64("scale", 1.0,
		"Scale factor for the output images")
	flag.Parse()

	if *scriptPath == "" {
		fmt.Println("Please provide an event script using the -script flag")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if *framesDir != "" {
		if err := os.MkdirAll(*framesDir, 0o755); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if err := run(*scriptPath, *configPath, *output, *framesDir, *fontPath, *scale); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
