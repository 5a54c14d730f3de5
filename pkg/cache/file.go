package cache

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// FileCache stores entries as files under a directory, sharded by the first
// byte of the key hash. Writes go to a temp file renamed into place, so
// concurrent mumplot processes never observe a partial entry.
type FileCache struct {
	dir string
}

// NewFileCache opens (and creates) a cache rooted at dir.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// An entry file is a one-line header followed by the raw value:
//
//	mumplot-cache 1 <expiry in unix nanoseconds, 0 = never>\n<data>
const entryMagic = "mumplot-cache 1 "

const tempPrefix = ".entry-"

func encodeEntry(data []byte, expires time.Time) []byte {
	var exp int64
	if !expires.IsZero() {
		exp = expires.UnixNano()
	}
	b := make([]byte, 0, len(entryMagic)+21+len(data))
	b = append(b, entryMagic...)
	b = strconv.AppendInt(b, exp, 10)
	b = append(b, '\n')
	return append(b, data...)
}

func decodeEntry(raw []byte) (data []byte, expires time.Time, ok bool) {
	rest, found := bytes.CutPrefix(raw, []byte(entryMagic))
	if !found {
		return nil, time.Time{}, false
	}
	head, body, found := bytes.Cut(rest, []byte{'\n'})
	if !found {
		return nil, time.Time{}, false
	}
	n, err := strconv.ParseInt(string(head), 10, 64)
	if err != nil {
		return nil, time.Time{}, false
	}
	if n > 0 {
		expires = time.Unix(0, n)
	}
	return body, expires, true
}

func expired(expires, now time.Time) bool {
	return !expires.IsZero() && now.After(expires)
}

// Get returns the entry for key. Corrupt and expired entries are removed and
// reported as misses.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	data, expires, ok := decodeEntry(raw)
	if !ok || expired(expires, time.Now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return data, true, nil
}

func (c *FileCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	var expires time.Time
	if ttl > 0 {
		expires = time.Now().Add(ttl)
	}
	return writeAtomic(c.path(key), encodeEntry(data, expires))
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, tempPrefix+"*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (c *FileCache) Delete(_ context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the cache root.
func (c *FileCache) Dir() string {
	return c.dir
}

// Clear removes every entry and returns how many were deleted. The cache
// root survives; emptied shard directories do not.
func (c *FileCache) Clear() (int, error) {
	return c.sweep(func(string) bool { return true })
}

// Prune removes entries that expired before now, and any it cannot decode.
func (c *FileCache) Prune(now time.Time) (int, error) {
	return c.sweep(func(path string) bool {
		raw, err := os.ReadFile(path)
		if err != nil {
			return false
		}
		_, expires, ok := decodeEntry(raw)
		return !ok || expired(expires, now)
	})
}

// sweep deletes the entry files for which drop returns true.
func (c *FileCache) sweep(drop func(path string) bool) (int, error) {
	removed := 0
	var shards []string
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == c.dir {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			if path != c.dir {
				shards = append(shards, path)
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), tempPrefix) {
			return nil
		}
		if drop(path) && os.Remove(path) == nil {
			removed++
		}
		return nil
	})
	for _, s := range shards {
		_ = os.Remove(s) // fails while the shard still holds entries
	}
	return removed, err
}

func (c *FileCache) Close() error { return nil }

// path maps a key to <dir>/<first hash byte>/<rest of hash>.
func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:])
}

var _ Cache = (*FileCache)(nil)
