package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	yaml "github.com/goccy/go-yaml"
	"github.com/graphicsprogramming/quadrender/lib/rendering/shaders"
	"github.com/graphicsprogramming/quadrender/lib/utils"
)

const (
	DefaultWidth       = 800
	DefaultHeight      = 800
	DefaultTitle       = "Graphics Programming"
	DefaultClearColour = "#0000ffff"
)

type Config struct {
	Window      WindowCfg
	Shader      ShaderCfg
	ClearColour string `yaml:"clear_colour"`
	LogLevel    string `yaml:"log_level"`
	Api         *ApiCfg
}

type WindowCfg struct {
	Width  int
	Height int
	Title  string
	VSync  *bool `yaml:"vsync"`
}

type ShaderCfg struct {
	// Path to the combined shader resource. Empty selects the built-in one.
	Path   CfgPath
	Policy string
}

type ApiCfg struct {
	Bind           string
	EnableProfiler bool `yaml:"enable_profiler"`
}

// Default is the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Parse(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %s", filename, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	absFilename, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("somehow, %s is malformed: %w", filename, err)
	}
	UnmarshalBase = filepath.Dir(absFilename)

	m := yaml.NewDecoder(f, yaml.DisallowUnknownField())
	cfg := &Config{}
	err = m.Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", filename, err)
	}
	cfg.applyDefaults()
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Window.Width == 0 {
		c.Window.Width = DefaultWidth
	}
	if c.Window.Height == 0 {
		c.Window.Height = DefaultHeight
	}
	if c.Window.Title == "" {
		c.Window.Title = DefaultTitle
	}
	if c.Window.VSync == nil {
		vsync := true
		c.Window.VSync = &vsync
	}
	if c.ClearColour == "" {
		c.ClearColour = DefaultClearColour
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) Validate() error {
	if c.Window.Width < 1 || c.Window.Height < 1 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if !utils.ColourValidate(c.ClearColour) {
		return fmt.Errorf("%s is not a valid RGBA hex colour", c.ClearColour)
	}
	if _, err := shaders.ParsePolicy(c.Shader.Policy); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Api != nil && c.Api.Bind == "" {
		return fmt.Errorf("api.bind must be specified when the api is enabled")
	}
	return nil
}

// ShaderPolicy returns the parsed shader policy. Validate has already
// rejected unknown values.
func (c *Config) ShaderPolicy() shaders.Policy {
	p, _ := shaders.ParsePolicy(c.Shader.Policy)
	return p
}

func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	if err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Window:\n")
	b.WriteString(fmt.Sprintf("  %dx%d %q (vsync %t)\n", c.Window.Width, c.Window.Height, c.Window.Title, *c.Window.VSync))

	b.WriteString("\nShader:\n")
	if c.Shader.Path == "" {
		b.WriteString("  built-in\n")
	} else {
		b.WriteString(fmt.Sprintf("  %s\n", c.Shader.Path))
	}
	b.WriteString(fmt.Sprintf("  policy %s\n", c.ShaderPolicy()))

	b.WriteString(fmt.Sprintf("\nClear colour: %s\n", c.ClearColour))

	if c.Api != nil {
		b.WriteString(fmt.Sprintf("\nApi: %s\n", c.Api.Bind))
	}

	return b.String()
}
