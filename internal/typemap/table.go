package typemap

import (
	"crypto/sha256"
	"encoding/hex"
	"maps"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// BufferMarker is the prefix the renderer gives raw-buffer slots; a
// composed type containing it is replaced by Table.Buffer when set.
const BufferMarker = ":"

// Table is a declarative mapping that builds Hooks.
type Table struct {
	Partial  map[string]string `toml:"partial"`
	Complete map[string]string `toml:"complete"`
	// Buffer replaces any composed type that holds a raw-buffer slot.
	Buffer string `toml:"buffer"`
	// Pointer replaces a pointer name ("double*", "void**") that Partial
	// does not map itself.
	Pointer string `toml:"pointer"`
}

// Hooks builds translation functions from t. The table is copied, later
// changes to t do not affect the result.
func (t Table) Hooks() Hooks {
	partial := maps.Clone(t.Partial)
	complete := maps.Clone(t.Complete)
	buffer := t.Buffer
	pointer := t.Pointer
	h := Hooks{}
	if len(partial) > 0 || pointer != "" {
		h.Partial = func(name string) string {
			if to, ok := partial[name]; ok {
				return to
			}
			if pointer != "" && strings.HasSuffix(name, "*") {
				return pointer
			}
			return name
		}
	}
	if len(complete) > 0 || buffer != "" {
		h.Complete = func(typ string) string {
			if buffer != "" && hasBufferSlot(typ) {
				return buffer
			}
			if to, ok := complete[typ]; ok {
				return to
			}
			return typ
		}
	}
	return h
}

// Merge returns t with every entry of o added, o winning on conflicts.
func (t Table) Merge(o Table) Table {
	out := Table{
		Partial:  maps.Clone(t.Partial),
		Complete: maps.Clone(t.Complete),
		Buffer:   t.Buffer,
		Pointer:  t.Pointer,
	}
	if out.Partial == nil {
		out.Partial = map[string]string{}
	}
	if out.Complete == nil {
		out.Complete = map[string]string{}
	}
	maps.Copy(out.Partial, o.Partial)
	maps.Copy(out.Complete, o.Complete)
	if o.Buffer != "" {
		out.Buffer = o.Buffer
	}
	if o.Pointer != "" {
		out.Pointer = o.Pointer
	}
	return out
}

// Fingerprint identifies the table contents; equal tables share a fingerprint.
func (t Table) Fingerprint() string {
	h := sha256.New()
	write := func(section string, m map[string]string) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			h.Write([]byte(section + "\x00" + k + "\x00" + m[k] + "\x00"))
		}
	}
	write("partial", t.Partial)
	write("complete", t.Complete)
	h.Write([]byte("buffer\x00" + t.Buffer + "\x00"))
	h.Write([]byte("pointer\x00" + t.Pointer))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// hasBufferSlot reports whether a composed type contains a raw-buffer
// parameter such as "double[:, ::1]".
func hasBufferSlot(typ string) bool {
	i := strings.IndexByte(typ, '[')
	if i < 0 {
		return false
	}
	for _, part := range strings.Split(typ[i+1:], ",") {
		part = strings.TrimSpace(strings.TrimRight(part, "]"))
		if strings.HasPrefix(part, BufferMarker) {
			return true
		}
	}
	return false
}

// ErrUnknownKeys reports keys in a table file that the loader ignored.
var ErrUnknownKeys = errors.New("unknown keys in typemap table")

// LoadTable reads a TOML table file:
//
//	buffer = "memoryview"
//	pointer = "int"
//	[partial]
//	double = "float"
//	[complete]
//	"list[int]" = "List[int]"
//
// Unknown keys do not fail the load; they are returned wrapped in
// ErrUnknownKeys next to the decoded table.
func LoadTable(path string) (Table, error) {
	var t Table
	meta, err := toml.DecodeFile(path, &t)
	if err != nil {
		return Table{}, errors.Wrapf(err, "%s: failed to parse typemap", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return t, errors.Wrapf(ErrUnknownKeys, "%s: %s", path, strings.Join(keys, ", "))
	}
	return t, nil
}

// ParseTable decodes a table from TOML text.
func ParseTable(text string) (Table, error) {
	var t Table
	if _, err := toml.Decode(text, &t); err != nil {
		return Table{}, errors.Wrap(err, "failed to parse typemap")
	}
	return t, nil
}
