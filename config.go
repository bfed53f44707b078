package magicpaper

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Theme holds the colours a display list is drawn with.
type Theme struct {
	Background string `yaml:"background" validate:"required"`
	Foreground string `yaml:"foreground" validate:"required"`
	Curve      string `yaml:"curve" validate:"required"`
	Connector  string `yaml:"connector" validate:"required"`
	Highlight  string `yaml:"highlight" validate:"required"`
}

// CanvasSize is the size of the surface a display list is rasterized onto.
type CanvasSize struct {
	Width  int `yaml:"width" validate:"gt=0"`
	Height int `yaml:"height" validate:"gt=0"`
}

// Config holds every tunable of a session.
type Config struct {
	VoxelSize      float64    `yaml:"voxel_size" validate:"gt=0"`
	MorphStep      float64    `yaml:"morph_step" validate:"gt=0,lte=1"`
	MinResizeWidth float64    `yaml:"min_resize_width" validate:"gte=0"`
	FontSize       float64    `yaml:"font_size" validate:"gt=0"`
	LogLevel       string     `yaml:"log_level" validate:"oneof=debug info warn error"`
	Development    bool       `yaml:"development"`
	Canvas         CanvasSize `yaml:"canvas"`
	Theme          Theme      `yaml:"theme"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		VoxelSize:      DefaultVoxelSize,
		MorphStep:      DefaultMorphStep,
		MinResizeWidth: DefaultMinResizeWidth,
		FontSize:       28,
		LogLevel:       "info",
		Canvas:         CanvasSize{Width: 1280, Height: 800},
		Theme: Theme{
			Background: "black",
			Foreground: "white",
			Curve:      "yellow",
			Connector:  "red",
			Highlight:  "#777",
		},
	}
}

var validate = validator.New()

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, formatFieldError(e))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt", "gte", "lte":
		return fmt.Sprintf("%s must be %s %s", field, e.Tag(), e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// ReadConfig decodes YAML from r over the defaults and validates the
// result. Fields missing from the document keep their default value.
func ReadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML config file. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	return ReadConfig(f)
}

// NewLogger builds a zap logger at the configured level.
func NewLogger(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
