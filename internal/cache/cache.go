// Package cache stores evaluated program output on disk, keyed by the program
// text and the radices it was evaluated with.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Payload format changes.
const SchemaVersion uint16 = 1

// Digest identifies one cache entry.
type Digest [sha256.Size]byte

// String returns the hex form of the digest.
func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Key hashes a program together with its input and output radix.
func Key(program string, inputRadix, outputRadix int) Digest {
	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(inputRadix))  //nolint:gosec // G115: radix is in [2, 36].
	binary.LittleEndian.PutUint32(buf[4:], uint32(outputRadix)) //nolint:gosec // G115: radix is in [2, 36].
	h.Write(buf[:])
	h.Write([]byte(program))
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// Payload is one cached evaluation.
type Payload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Program     string
	InputRadix  int
	OutputRadix int

	Lines []string // printed output, in order
	Err   string   // evaluation error text, empty on success

	RunID       string // batch run that produced the entry
	CreatedUnix int64
}

// Cache keeps payloads under dir/results. Safe for concurrent use.
// A nil *Cache behaves as an always-empty cache.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// DefaultDir returns $XDG_CACHE_HOME/numera, falling back to ~/.cache/numera.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "numera"), nil
}

// Open creates dir if needed and returns a cache rooted there.
// An empty dir selects DefaultDir.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "results", key.String()+".mp")
}

// Put serializes and atomically writes a payload. A zero Schema is set to SchemaVersion.
func (c *Cache) Put(key Digest, payload *Payload) (err error) {
	if c == nil || payload == nil {
		return nil
	}
	if payload.Schema == 0 {
		payload.Schema = SchemaVersion
	}
	if payload.CreatedUnix == 0 {
		payload.CreatedUnix = time.Now().Unix()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()      //nolint:errcheck
			_ = os.Remove(tmp) //nolint:errcheck
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Get reads a payload. A missing entry or one written with another schema is a miss.
func (c *Cache) Get(key Digest, out *Payload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close() //nolint:errcheck

	var payload Payload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	if payload.Schema != SchemaVersion {
		return false, nil
	}
	*out = payload
	return true, nil
}

// DropAll removes every entry. The cache stays usable afterwards.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return os.MkdirAll(c.dir, 0o755)
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
