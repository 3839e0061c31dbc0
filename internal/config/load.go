package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load layers defaults, the YAML file and the environment, then validates
// the result. A missing config file is not an error.
func Load(lookup LookupFunc) (Config, error) {
	cfg := Default()
	if p := Path(lookup); p != "" {
		if err := readYAMLFile(p, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Default(), err
		}
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return Default(), err
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func readYAMLFile[T any](path string, out *T) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup LookupFunc) error {
	get := func(k string) (string, bool) {
		v, ok := lookup(k)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := get(EnvTailLine); ok {
		cfg.Tail.Lines = v
	}
	if v, ok := get(EnvColor); ok {
		cfg.Grep.Color = Color(strings.ToLower(v))
	}
	if v, ok := get(EnvJobs); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvJobs, err)
		}
		cfg.Grep.Jobs = n
	}
	return nil
}
