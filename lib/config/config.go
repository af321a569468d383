package config

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strings"

	"github.com/aum-visual/aumgfx/lib/log"
	yaml "github.com/goccy/go-yaml"
)

// Config covers the process around the graphics output. The window,
// shaders and geometry are fixed and deliberately absent.
type Config struct {
	Name     string
	LogLevel string `yaml:"log_level"`
	Watch    bool
	Api      *ApiCfg
}

type ApiCfg struct {
	Bind           string
	EnableProfiler bool `yaml:"enable_profiler"`
}

func Default() *Config {
	return &Config{
		Name:     "OpenGL",
		LogLevel: "info",
	}
}

func Parse(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %s", filename, err)
	}
	defer closeLogged(f, filename)

	m := yaml.NewDecoder(f)
	cfg := Default()
	err = m.Decode(cfg)
	if err != nil {
		return nil, err
	}
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, err
}

func closeLogged(c io.Closer, filename string) {
	err := c.Close()
	if err != nil {
		log.New("config").Warnf("could not close %s: %s", filename, err)
	}
}

func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level is invalid: %w", err)
	}
	if c.Api != nil {
		if err := c.Api.Validate(); err != nil {
			return fmt.Errorf("api is invalid: %w", err)
		}
	}
	return nil
}

func (a *ApiCfg) Validate() error {
	if a.Bind == "" {
		return fmt.Errorf("bind address must be specified")
	}
	if _, _, err := net.SplitHostPort(a.Bind); err != nil {
		return fmt.Errorf("bind address %s is malformed: %w", a.Bind, err)
	}
	return nil
}

// Level is only meaningful on a validated config.
func (c *Config) Level() slog.Level {
	l, _ := log.ParseLevel(c.LogLevel)
	return l
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Output: %s\n", c.Name))
	b.WriteString(fmt.Sprintf("Log level: %s\n", c.Level()))
	if c.Watch {
		b.WriteString("Watching config for changes\n")
	}

	b.WriteString("\nApi:\n")
	if c.Api == nil {
		b.WriteString("  disabled\n")
	} else {
		b.WriteString(fmt.Sprintf("  bind %s\n", c.Api.Bind))
		if c.Api.EnableProfiler {
			b.WriteString("  profiler enabled\n")
		}
	}

	return b.String()
}
