package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Init writes the default configuration to path. An existing file is left
// alone unless force is set; created reports whether anything was written.
func Init(path string, force bool) (created bool, err error) {
	if path == "" {
		return false, fmt.Errorf("no config path: set %s or HOME", EnvConfig)
	}
	if !force && exists(path) {
		return false, nil
	}
	cfg := Default()
	if err := writeYAMLFile(path, &cfg); err != nil {
		return false, err
	}
	return true, nil
}

func writeYAMLFile(path string, v any) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return writeFileAtomic(path, buf.Bytes(), 0o644)
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s -> %s: %w", tmp, path, err)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
