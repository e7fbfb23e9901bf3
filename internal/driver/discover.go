package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gobwas/glob"
)

// ErrNoInputs is returned when discovery finds no source files.
var ErrNoInputs = errors.New("no source files found")

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Discovery expands command-line inputs into source files.
type Discovery struct {
	root       string
	extensions []string
	ignore     []compiledPattern
}

// NewDiscovery compiles ignore patterns. Patterns match slash-separated
// paths relative to root.
func NewDiscovery(root string, extensions, ignore []string) (*Discovery, error) {
	d := &Discovery{root: root, extensions: extensions}
	for _, pattern := range ignore {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, errors.Wrapf(err, "bad ignore pattern %q", pattern)
		}
		d.ignore = append(d.ignore, compiledPattern{pattern: pattern, glob: g})
	}
	return d, nil
}

// Expand resolves inputs: an existing file is taken as is, a directory is
// walked for files with a known extension, anything else is a glob over
// paths as written on the command line. The result is sorted and free of
// duplicates.
func (d *Discovery) Expand(ctx context.Context, inputs []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(in)
		switch {
		case err == nil && !info.IsDir():
			add(in)
		case err == nil:
			if err := d.walk(ctx, in, func(p string) { add(p) }); err != nil {
				return nil, err
			}
		case errors.Is(err, os.ErrNotExist) && isGlob(in):
			g, gerr := glob.Compile(filepath.ToSlash(in), '/')
			if gerr != nil {
				return nil, errors.Wrapf(gerr, "bad input pattern %q", in)
			}
			if err := d.walk(ctx, globBase(in), func(p string) {
				if g.Match(filepath.ToSlash(p)) {
					add(p)
				}
			}); err != nil {
				return nil, err
			}
		default:
			return nil, errors.Wrapf(err, "input %q", in)
		}
	}

	if len(files) == 0 {
		return nil, errors.WithHintf(ErrNoInputs,
			"looked for %s; check scan.extensions and scan.ignore", strings.Join(d.extensions, ", "))
	}
	slices.Sort(files)
	return files, nil
}

func (d *Discovery) walk(ctx context.Context, dir string, visit func(string)) error {
	return filepath.WalkDir(dir, func(path string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.Ignored(path) {
			if e.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !e.IsDir() && d.HasSourceExt(path) {
			visit(path)
		}
		return nil
	})
}

// HasSourceExt reports whether path has one of the scanned extensions.
func (d *Discovery) HasSourceExt(path string) bool {
	return slices.Contains(d.extensions, filepath.Ext(path))
}

// Ignored reports whether path matches an ignore pattern. A directory also
// matches "dir/**" patterns, so whole subtrees are pruned.
func (d *Discovery) Ignored(path string) bool {
	rel := d.rel(path)
	if rel == "." {
		return false
	}
	for _, cp := range d.ignore {
		if cp.glob.Match(rel) || cp.glob.Match(rel+"/") || cp.glob.Match(rel+"/x") {
			return true
		}
		// "**/build/**" should also catch "build/..." at the root.
		if simplified, ok := strings.CutPrefix(cp.pattern, "**/"); ok {
			if g, err := glob.Compile(simplified, '/'); err == nil && (g.Match(rel) || g.Match(rel+"/x")) {
				return true
			}
		}
	}
	return false
}

func (d *Discovery) rel(path string) string {
	if d.root == "" {
		return filepath.ToSlash(path)
	}
	if filepath.IsAbs(d.root) && !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	r, err := filepath.Rel(d.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(r)
}

func isGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// globBase returns the directory part of pattern before its first
// metacharacter.
func globBase(pattern string) string {
	i := strings.IndexAny(pattern, "*?[{")
	dir := filepath.Dir(pattern[:i] + "x")
	if dir == "" {
		return "."
	}
	return dir
}
