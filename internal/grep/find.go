package grep

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var ErrIsDir = errors.New("is a directory")

// Entry is one input to search, or the reason a path could not be used.
type Entry struct {
	Path string
	Err  error
}

// FindFiles expands the command-line paths. "-" passes through untouched.
// Directories are only descended into when recursive is set; unreadable
// entries below a directory are skipped.
func FindFiles(paths []string, recursive bool) []Entry {
	var out []Entry
	for _, p := range paths {
		if p == "-" {
			out = append(out, Entry{Path: p})
			continue
		}
		st, err := os.Stat(p)
		if err != nil {
			var pe *fs.PathError
			if errors.As(err, &pe) {
				err = pe.Err
			}
			out = append(out, Entry{Path: p, Err: fmt.Errorf("%s: %w", p, err)})
			continue
		}
		switch {
		case st.IsDir() && !recursive:
			out = append(out, Entry{Path: p, Err: fmt.Errorf("%s %w", p, ErrIsDir)})
		case st.IsDir():
			_ = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return nil
				}
				if d.Type().IsRegular() {
					out = append(out, Entry{Path: path})
				}
				return nil
			})
		case st.Mode().IsRegular():
			out = append(out, Entry{Path: p})
		}
	}
	return out
}
