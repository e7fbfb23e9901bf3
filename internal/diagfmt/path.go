package diagfmt

import (
	"path/filepath"
	"strings"
)

// formatPath renders p according to mode.
func formatPath(p string, mode PathMode, base string) string {
	switch mode {
	case PathModeBasename:
		return filepath.Base(p)
	case PathModeAbsolute:
		if abs, err := filepath.Abs(p); err == nil {
			return filepath.ToSlash(abs)
		}
		return p
	case PathModeRelative, PathModeAuto:
		if base == "" || strings.HasPrefix(p, "<") {
			return p
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return p
		}
		rel, err := filepath.Rel(base, abs)
		if err != nil || (mode == PathModeAuto && strings.HasPrefix(rel, "..")) {
			return p
		}
		return filepath.ToSlash(rel)
	}
	return p
}
