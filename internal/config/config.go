// Package config loads go-cdoc settings from .cdoc.yaml / .cdoc.toml files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	derrors "github.com/agentflare-ai/go-cdoc/internal/errors"
	"github.com/agentflare-ai/go-cdoc/internal/extract"
	"github.com/agentflare-ai/go-cdoc/internal/ignore"
	"github.com/agentflare-ai/go-cdoc/internal/render"
)

// Config is the file form of the command-line options. Flags given on the
// command line override values loaded here.
type Config struct {
	Ignore      []string          `yaml:"ignore" toml:"ignore"`
	Quiet       bool              `yaml:"quiet" toml:"quiet"`
	Format      string            `yaml:"format" toml:"format"`
	Jobs        int               `yaml:"jobs" toml:"jobs"`
	Index       bool              `yaml:"index" toml:"index"`
	Strict      bool              `yaml:"strict" toml:"strict"`
	MetricsFile string            `yaml:"metrics_file" toml:"metrics_file"`
	LogLevel    string            `yaml:"log_level" toml:"log_level"`
	Syntaxes    map[string]string `yaml:"syntaxes" toml:"syntaxes"` // extension -> syntax name
}

// Names searched by Discover, in order.
var FileNames = []string{".cdoc.yaml", ".cdoc.yml", ".cdoc.toml"}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Format:   string(render.FormatMarkdown),
		Jobs:     1,
		LogLevel: "warn",
	}
}

// Discover returns the first config file in dir, or "" when there is none.
func Discover(dir string) string {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Load reads the config file at path on top of Default. A .env file next to it
// is loaded first (without overriding the process environment) so ${VAR}
// references in the file can use it.
func Load(path string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return nil, derrors.Configuration("load env", envPath, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, derrors.Configuration("read config", path, err)
	}
	expanded := []byte(os.ExpandEnv(string(data)))

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(expanded))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, derrors.Configuration("parse config", path, err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(expanded))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, derrors.Configuration("parse config", path, err)
		}
	default:
		return nil, derrors.Configuration("parse config", path, fmt.Errorf("unsupported config extension %q", ext))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field, returning the first problem as a configuration error.
func (c *Config) Validate() error {
	if c.Jobs < 1 {
		return derrors.Configuration("validate config", "", fmt.Errorf("jobs must be at least 1, got %d", c.Jobs))
	}
	if _, err := render.ParseFormat(c.Format); err != nil {
		return err
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := ignore.New(c.Ignore); err != nil {
		return err
	}
	if _, err := extract.NewExtractor(c.Syntaxes); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps debug, info, warn/warning and error to slog levels. Empty means warn.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, derrors.Configuration("parse log level", "", fmt.Errorf("unknown log level %q", s))
	}
}
