package cli

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"golang.org/x/image/colornames"
)

// defaultConfigPath is read when present, if --config is not given.
const defaultConfigPath = "webgrid.toml"

// Config is the content of the configuration file.
//
//	[viewport]
//	width = 800
//	height = 0 # auto
//
//	[render]
//	scale = 2
//	background = "#fafafa"
//	show_tracks = true
//
//	[text]
//	font_size = 16
//	line_height = 1.2
type Config struct {
	Viewport ViewportConfig `toml:"viewport"`
	Render   RenderConfig   `toml:"render"`
	Text     TextConfig     `toml:"text"`
}

// ViewportConfig is the size of the initial containing block.
// A zero Height means an auto height.
type ViewportConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// RenderConfig controls the PNG output.
type RenderConfig struct {
	Scale      float64 `toml:"scale"`
	Background string  `toml:"background"`
	ShowTracks bool    `toml:"show_tracks"`
}

// TextConfig sets the font properties of the <body> element.
type TextConfig struct {
	FontSize   float64 `toml:"font_size"`
	LineHeight float64 `toml:"line_height"`
}

func defaultConfig() Config {
	return Config{
		Viewport: ViewportConfig{Width: 800},
		Render:   RenderConfig{Scale: 1, Background: "white"},
		Text:     TextConfig{FontSize: 16, LineHeight: 1.2},
	}
}

// loadConfig reads the configuration file at path, on top of the defaults.
// A missing file is only an error when the path was explicitly given.
func loadConfig(path string, explicit bool, logger *log.Logger) (Config, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	for _, key := range md.Undecoded() {
		logger.Warn("unknown config key", "file", path, "key", key.String())
	}
	logger.Debug("config loaded", "file", path)
	return cfg, cfg.validate()
}

func (cfg Config) validate() error {
	switch {
	case cfg.Viewport.Width <= 0:
		return fmt.Errorf("invalid viewport width %g", cfg.Viewport.Width)
	case cfg.Viewport.Height < 0:
		return fmt.Errorf("invalid viewport height %g", cfg.Viewport.Height)
	case cfg.Render.Scale <= 0:
		return fmt.Errorf("invalid render scale %g", cfg.Render.Scale)
	case cfg.Text.FontSize <= 0 || cfg.Text.LineHeight <= 0:
		return fmt.Errorf("invalid text settings %+v", cfg.Text)
	}
	if _, err := parseColor(cfg.Render.Background); err != nil {
		return err
	}
	return nil
}

// parseColor accepts the SVG color keywords and the #rgb and #rrggbb notations.
func parseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	var r, g, b uint8
	switch {
	case len(s) == 7 && s[0] == '#':
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err == nil {
			return color.RGBA{r, g, b, 0xff}, nil
		}
	case len(s) == 4 && s[0] == '#':
		if _, err := fmt.Sscanf(s, "#%1x%1x%1x", &r, &g, &b); err == nil {
			return color.RGBA{r * 17, g * 17, b * 17, 0xff}, nil
		}
	}
	return nil, fmt.Errorf("invalid color %q", s)
}
