package config

import (
	"fmt"
	"strings"
)

type DoctorReport struct {
	Path     string
	Problems []string
	Warnings []string
}

func (r *DoctorReport) OK() bool { return len(r.Problems) == 0 }

// Doctor inspects the configuration the tools would load and reports what is
// wrong with it without failing on the first problem.
func Doctor(lookup LookupFunc) *DoctorReport {
	r := &DoctorReport{Path: Path(lookup)}
	if r.Path == "" {
		r.Warnings = append(r.Warnings, fmt.Sprintf("no config path; set %s or HOME", EnvConfig))
	} else if !exists(r.Path) {
		r.Warnings = append(r.Warnings, fmt.Sprintf("missing %s, using defaults", r.Path))
	} else {
		cfg := Default()
		if err := readYAMLFile(r.Path, &cfg); err != nil {
			r.Problems = append(r.Problems, err.Error())
			return r
		}
		if err := cfg.Validate(); err != nil {
			r.Problems = append(r.Problems, fmt.Sprintf("%s: %v", r.Path, err))
		}
	}

	for _, k := range []string{EnvLogLevel, EnvTailLine, EnvColor, EnvJobs} {
		if v, ok := lookup(k); ok && strings.TrimSpace(v) == "" {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s is set but empty", k))
		}
	}
	if _, err := Load(lookup); err != nil && len(r.Problems) == 0 {
		r.Problems = append(r.Problems, err.Error())
	}
	return r
}
