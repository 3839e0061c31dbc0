package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/flip-z/textutils/internal/tail"
)

type Color string

const (
	ColorAuto   Color = "auto"
	ColorAlways Color = "always"
	ColorNever  Color = "never"
)

func (c Color) Valid() bool {
	switch c {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

type Config struct {
	Version  int        `yaml:"version"`
	LogLevel string     `yaml:"log_level"`
	Tail     TailConfig `yaml:"tail"`
	Cut      CutConfig  `yaml:"cut"`
	Grep     GrepConfig `yaml:"grep"`
}

type TailConfig struct {
	Lines string `yaml:"lines"`
	Quiet bool   `yaml:"quiet"`
}

type CutConfig struct {
	Delimiter string `yaml:"delimiter"`
}

type GrepConfig struct {
	Color Color `yaml:"color"`
	Jobs  int   `yaml:"jobs"`
}

func Default() Config {
	return Config{
		Version:  1,
		LogLevel: "warn",
		Tail:     TailConfig{Lines: "10"},
		Cut:      CutConfig{Delimiter: "\t"},
		Grep:     GrepConfig{Color: ColorNever, Jobs: 4},
	}
}

func (c *Config) Validate() error {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version %d", c.Version)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if strings.TrimSpace(c.Tail.Lines) == "" {
		return errors.New("tail.lines must not be empty")
	}
	if _, err := tail.ParseCount(c.Tail.Lines); err != nil {
		return fmt.Errorf("invalid tail.lines %q", c.Tail.Lines)
	}
	if len(c.Cut.Delimiter) != 1 {
		return fmt.Errorf("cut.delimiter %q must be a single byte", c.Cut.Delimiter)
	}
	if !c.Grep.Color.Valid() {
		return fmt.Errorf("invalid grep.color %q", c.Grep.Color)
	}
	if c.Grep.Jobs < 1 {
		return fmt.Errorf("grep.jobs must be positive, got %d", c.Grep.Jobs)
	}
	return nil
}
