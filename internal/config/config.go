// Package config holds the settings shared by the viewer and the
// renderer. Values come from defaults, then a TOML file, then command
// line flags that were set explicitly.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"bubblemap/internal/scale"
)

type Config struct {
	Projection string `toml:"projection"`
	Outline    string `toml:"outline"`
	Data       string `toml:"data"`

	Log     LogConfig    `toml:"log"`
	Bubbles BubbleConfig `toml:"bubbles"`
	Render  RenderConfig `toml:"render"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type BubbleConfig struct {
	MinRadius float64 `toml:"min_radius"`
	MaxRadius float64 `toml:"max_radius"`
	Mode      string  `toml:"mode"`
	Missing   float64 `toml:"missing"`
	LowColor  string  `toml:"low_color"`
	HighColor string  `toml:"high_color"`
}

type RenderConfig struct {
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	Padding    float64 `toml:"padding"`
	Output     string  `toml:"output"`
	Background string  `toml:"background"`
	Stroke     string  `toml:"stroke"`
}

func Default() Config {
	size := scale.DefaultSizeOptions()
	return Config{
		Projection: scale.DefaultProjection,
		Log:        LogConfig{Level: "info"},
		Bubbles: BubbleConfig{
			MinRadius: size.Range[0],
			MaxRadius: size.Range[1],
			Mode:      string(size.Mode),
			Missing:   size.Missing,
			LowColor:  "#fcd975",
			HighColor: "#7c3aed",
		},
		Render: RenderConfig{
			Width:      960,
			Height:     600,
			Padding:    10,
			Output:     "bubblemap.svg",
			Background: "#ffffff",
			Stroke:     "#9ca3af",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// Unknown keys are an error so typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Outline = os.ExpandEnv(cfg.Outline)
	cfg.Data = os.ExpandEnv(cfg.Data)
	cfg.Log.File = os.ExpandEnv(cfg.Log.File)
	cfg.Render.Output = os.ExpandEnv(cfg.Render.Output)
	return cfg, nil
}

// ApplyFlags copies the flags of fs that were set on the command line.
// Flags fs does not define are ignored.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	str := func(name string, dst *string) {
		if err == nil && fs.Changed(name) {
			*dst, err = fs.GetString(name)
		}
	}
	str("projection", &c.Projection)
	str("outline", &c.Outline)
	str("data", &c.Data)
	str("log-level", &c.Log.Level)
	str("log-file", &c.Log.File)
	str("output", &c.Render.Output)
	if err == nil && fs.Changed("width") {
		c.Render.Width, err = fs.GetInt("width")
	}
	if err == nil && fs.Changed("height") {
		c.Render.Height, err = fs.GetInt("height")
	}
	if err == nil && fs.Changed("padding") {
		c.Render.Padding, err = fs.GetFloat64("padding")
	}
	return err
}

func (c Config) Validate() error {
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Render.Padding < 0 || 2*c.Render.Padding >= float64(min(c.Render.Width, c.Render.Height)) {
		return fmt.Errorf("render padding %g does not fit %dx%d", c.Render.Padding, c.Render.Width, c.Render.Height)
	}
	if err := c.SizeOptions().Validate(); err != nil {
		return err
	}
	return nil
}

func (c Config) SizeOptions() scale.SizeOptions {
	return scale.SizeOptions{
		Range:   [2]float64{c.Bubbles.MinRadius, c.Bubbles.MaxRadius},
		Mode:    scale.SizeMode(c.Bubbles.Mode),
		Missing: c.Bubbles.Missing,
	}
}
