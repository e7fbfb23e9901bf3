package stubgen

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cystub/internal/format"
	"cystub/internal/source"
	"cystub/internal/typemap"
)

var updateGolden = flag.Bool("update", false, "rewrite golden stubs under testdata/golden/stubs")

// TestStubsGolden converts every testdata/golden/stubs/*.pyx with the
// identity hooks and compares against the neighbouring .pyi and optional
// .residue files.
func TestStubsGolden(t *testing.T) {
	dir := filepath.Join("..", "..", "testdata", "golden", "stubs")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read golden dir: %v", err)
	}
	for _, ent := range entries {
		if ent.IsDir() || filepath.Ext(ent.Name()) != ".pyx" {
			continue
		}
		name := strings.TrimSuffix(ent.Name(), ".pyx")
		t.Run(name, func(t *testing.T) {
			fs := source.NewFileSet()
			id, err := fs.Load(filepath.Join(dir, ent.Name()))
			if err != nil {
				t.Fatal(err)
			}
			res := Convert(fs.Get(id), Options{Format: format.Options{Hooks: typemap.Identity()}})

			stubPath := filepath.Join(dir, name+".pyi")
			residuePath := filepath.Join(dir, name+".residue")
			if *updateGolden {
				writeGolden(t, stubPath, res.Stub)
				if res.Residue != "" {
					writeGolden(t, residuePath, res.Residue+"\n")
				} else {
					_ = os.Remove(residuePath)
				}
				return
			}

			want, err := os.ReadFile(stubPath)
			if err != nil {
				t.Fatalf("read %s.pyi: %v", name, err)
			}
			if res.Stub != string(want) {
				t.Fatalf("stub mismatch:\nwant:\n%s\ngot:\n%s", want, res.Stub)
			}
			wantResidue := ""
			if b, err := os.ReadFile(residuePath); err == nil {
				wantResidue = strings.TrimSpace(string(b))
			}
			if res.Residue != wantResidue {
				t.Fatalf("residue = %q, want %q", res.Residue, wantResidue)
			}
			if err := CheckRoundTrip(res.Decls(), res.Stub, format.Options{Hooks: typemap.Identity()}); err != nil {
				t.Fatalf("round trip: %v", err)
			}
		})
	}
}

func writeGolden(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
