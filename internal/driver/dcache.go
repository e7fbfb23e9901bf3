package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vmihailenco/msgpack/v5"

	"cystub/internal/diag"
	"cystub/internal/format"
	"cystub/internal/source"
	"cystub/internal/stubgen"
)

// Current schema version - increment when Entry format or rendering changes.
const cacheSchemaVersion uint16 = 1

// memoryEntries bounds the in-process layer of the cache.
const memoryEntries = 1024

// Key identifies a stub by source content and everything that shapes the
// rendering.
type Key [sha256.Size]byte

func (k Key) String() string { return hex.EncodeToString(k[:]) }

// CacheKey hashes the file content hash with the hook fingerprint, the
// layout options and the diagnostics limit the cached bag was filled under.
func CacheKey(content [sha256.Size]byte, fingerprint string, opt format.Options, maxDiagnostics int) Key {
	h := sha256.New()
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], cacheSchemaVersion)
	_, _ = h.Write(buf[:])
	_, _ = h.Write(content[:])
	_, _ = h.Write([]byte(fingerprint))
	var dims [24]byte
	binary.LittleEndian.PutUint64(dims[:8], uint64(max(opt.IndentWidth, 0)))
	binary.LittleEndian.PutUint64(dims[8:16], uint64(max(opt.LineWidth, 0)))
	binary.LittleEndian.PutUint64(dims[16:], uint64(max(maxDiagnostics, 0)))
	_, _ = h.Write(dims[:])
	var out Key
	copy(out[:], h.Sum(nil))
	return out
}

// Entry is the cached outcome of converting one file. Spans are stored
// without the file id and re-attached on load.
type Entry struct {
	Schema       uint16
	Stub         string
	Residue      string
	ResidueChars int
	Decls        int
	Verified     bool
	Diagnostics  []CachedDiagnostic
}

type CachedDiagnostic struct {
	Severity   uint8
	Code       uint16
	Start, End uint32
	Message    string
	Notes      []CachedNote
}

type CachedNote struct {
	Start, End uint32
	Message    string
}

// entryFromResult snapshots a conversion result.
func entryFromResult(res *stubgen.Result) *Entry {
	e := &Entry{
		Schema:       cacheSchemaVersion,
		Stub:         res.Stub,
		Residue:      res.Residue,
		ResidueChars: res.Coverage.Chars(),
		Decls:        len(res.Matches),
	}
	for _, d := range res.Bag.Items() {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Message: n.Msg})
		}
		e.Diagnostics = append(e.Diagnostics, cd)
	}
	return e
}

// restore replays cached diagnostics into bag against file.
func (e *Entry) restore(file source.FileID, bag *diag.Bag) {
	for _, cd := range e.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code),
			source.Span{File: file, Start: cd.Start, End: cd.End}, cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(source.Span{File: file, Start: n.Start, End: n.End}, n.Message)
		}
		bag.Add(d)
	}
}

// Cache stores stub entries in memory and on disk under dir.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
	mem *lru.Cache[Key, *Entry]
}

// DefaultCacheDir returns $XDG_CACHE_HOME/<app> or ~/.cache/<app>.
func DefaultCacheDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "failed to locate home directory")
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// OpenCache creates dir if needed and returns a cache rooted there.
func OpenCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create cache directory %s", dir)
	}
	mem, err := lru.New[Key, *Entry](memoryEntries)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create memory cache")
	}
	return &Cache{dir: dir, mem: mem}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string { return c.dir }

func (c *Cache) pathFor(key Key) string {
	hexKey := key.String()
	// подкаталог по первому байту, чтобы не раздувать один каталог
	return filepath.Join(c.dir, "stubs", hexKey[:2], hexKey+".mp")
}

// Put stores entry in memory and writes it atomically to disk.
func (c *Cache) Put(key Key, entry *Entry) error {
	if c == nil {
		return nil
	}
	c.mem.Add(key, entry)

	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return errors.Wrap(err, "failed to create cache shard")
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return errors.Wrap(err, "failed to create cache file")
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(entry); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return errors.Wrap(err, "failed to encode cache entry")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "failed to close cache file")
	}
	// Атомарная замена
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "failed to publish cache entry")
	}
	return nil
}

// Get returns the entry for key. Entries from another schema are treated
// as misses.
func (c *Cache) Get(key Key) (*Entry, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	if e, ok := c.mem.Get(key); ok {
		return e, true, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "failed to read cache entry")
	}
	var e Entry
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return nil, false, errors.Wrapf(err, "corrupt cache entry %s", key)
	}
	if e.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	c.mem.Add(key, &e)
	return &e, true, nil
}

// Len returns the number of entries held in memory.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.mem.Len()
}

// DropAll removes every entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mem.Purge()
	if err := os.RemoveAll(filepath.Join(c.dir, "stubs")); err != nil {
		return errors.Wrap(err, "failed to clear cache")
	}
	return nil
}
