package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores entries as JSON files under a root directory. It is
// the default backend for CLI runs: no daemon, survives across
// invocations, and safe to wipe at any time.
type FileCache struct {
	root string
}

// NewFileCache opens (creating if needed) a file cache rooted at dir.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{root: dir}, nil
}

// record is the on-disk entry shape. A zero Deadline means the entry
// never expires.
type record struct {
	Payload  []byte    `json:"payload"`
	Deadline time.Time `json:"deadline,omitzero"`
}

func (r record) expired(now time.Time) bool {
	return !r.Deadline.IsZero() && now.After(r.Deadline)
}

// Get reads the entry for key. Corrupt or expired entries are removed
// and reported as misses, never as errors.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.entryPath(key)

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil || rec.expired(time.Now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return rec.Payload, true, nil
}

// Set writes the entry for key. The write goes through a temp file and
// a rename so a concurrent Get never observes a half-written entry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	rec := record{Payload: data}
	if ttl > 0 {
		rec.Deadline = time.Now().Add(ttl)
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	path := c.entryPath(key)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "entry-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes the entry for key. Missing entries are fine.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.entryPath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Close is a no-op; the cache holds no open handles between calls.
func (c *FileCache) Close() error {
	return nil
}

// entryPath maps a key to its file. Entries shard into 256 directories
// by the first hash byte so a large cache never piles every file into
// one directory.
func (c *FileCache) entryPath(key string) string {
	digest := Hash([]byte(key))
	return filepath.Join(c.root, digest[:2], digest[2:]+".json")
}

// Clear removes every entry under dir but keeps the directory itself,
// so caches constructed over it keep working. A missing dir is fine.
func Clear(dir string) error {
	shards, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read cache dir %s: %w", dir, err)
	}

	for _, shard := range shards {
		if err := os.RemoveAll(filepath.Join(dir, shard.Name())); err != nil {
			return fmt.Errorf("clear cache dir %s: %w", dir, err)
		}
	}
	return nil
}

var _ Cache = (*FileCache)(nil)
