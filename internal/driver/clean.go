package driver

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
)

// RemoveStubs deletes the stub files of sources and returns the removed
// paths. Missing stubs are skipped.
func RemoveStubs(ctx context.Context, sources []string, ext string) ([]string, error) {
	var removed []string
	seen := make(map[string]struct{}, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		p := StubPath(src, ext)
		if _, ok := seen[p]; ok || p == src {
			continue
		}
		seen[p] = struct{}{}
		if err := os.Remove(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return removed, errors.Wrapf(err, "failed to remove %s", p)
		}
		removed = append(removed, p)
	}
	return removed, nil
}
