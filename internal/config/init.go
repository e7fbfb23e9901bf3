package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrExists is returned by WriteDefault when the directory already has a
// config file.
var ErrExists = errors.New("config file already exists")

// WriteDefault writes a commented default cystub.toml into dir and returns
// its path.
func WriteDefault(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", errors.Wrapf(ErrExists, "%s", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", errors.Wrapf(err, "failed to stat %q", path)
	}
	if err := os.WriteFile(path, []byte(defaultFile(Default())), 0o644); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", path)
	}
	return path, nil
}

func defaultFile(d *Config) string {
	return fmt.Sprintf(`# cystub configuration
[output]
extension = %q
indent = %d
line_width = %d

[typemap]
# identity | python
preset = %q
# extra table file with [partial], [complete], buffer and pointer
# file = "typemap.toml"

[scan]
extensions = %s
ignore = %s

[cache]
enabled = %t
# dir = ".cystub-cache"

[run]
# 0 uses every CPU
jobs = %d
verify = %t
`,
		d.Output.Extension, d.Output.Indent, d.Output.LineWidth,
		d.Typemap.Preset,
		tomlList(d.Scan.Extensions), tomlList(d.Scan.Ignore),
		d.Cache.Enabled,
		d.Run.Jobs, d.Run.Verify)
}

func tomlList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = strconv.Quote(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
