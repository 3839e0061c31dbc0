package config

import "path/filepath"

const (
	EnvConfig   = "TEXTUTILS_CONFIG"
	EnvLogLevel = "TEXTUTILS_LOG_LEVEL"
	EnvTailLine = "TEXTUTILS_TAIL_LINES"
	EnvColor    = "TEXTUTILS_GREP_COLOR"
	EnvJobs     = "TEXTUTILS_GREP_JOBS"
)

// Path resolves the config file location. An empty result means there is
// nowhere to look.
func Path(lookup LookupFunc) string {
	if p, ok := lookup(EnvConfig); ok && p != "" {
		return p
	}
	if dir, ok := lookup("XDG_CONFIG_HOME"); ok && dir != "" {
		return filepath.Join(dir, "textutils", "config.yaml")
	}
	if home, ok := lookup("HOME"); ok && home != "" {
		return filepath.Join(home, ".config", "textutils", "config.yaml")
	}
	return ""
}
