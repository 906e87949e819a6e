package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores layout entries as JSON files in a directory, one file per
// key, named by the key's content hash. Writes go through a temp file and a
// rename, so an interrupted run never leaves a half-written entry behind.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-backed cache rooted at dir, creating the
// directory if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// layoutEntry is the on-disk form of one cached layout.
type layoutEntry struct {
	Layout    []byte    `json:"layout"`
	WrittenAt time.Time `json:"written_at"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// expired reports whether the entry has a deadline in the past.
func (e *layoutEntry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Get retrieves a cached layout. Undecodable and expired entries are removed
// and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.entryPath(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry layoutEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if entry.expired(time.Now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return entry.Layout, true, nil
}

// Set stores a layout under key. A positive ttl sets an expiry deadline.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := layoutEntry{
		Layout:    data,
		WrittenAt: time.Now(),
	}
	if ttl > 0 {
		entry.ExpiresAt = entry.WrittenAt.Add(ttl)
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	// Write-then-rename keeps concurrent readers off partial entries.
	path := c.entryPath(key)
	tmp, err := os.CreateTemp(c.dir, "entry-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes the entry for key. Missing entries are not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.entryPath(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Prune removes every expired or undecodable entry in the cache directory
// and returns the number of files removed.
func (c *FileCache) Prune() (int, error) {
	files, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	removed := 0
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
			continue
		}
		path := filepath.Join(c.dir, f.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var entry layoutEntry
		if err := json.Unmarshal(data, &entry); err == nil && !entry.expired(now) {
			continue
		}
		if os.Remove(path) == nil {
			removed++
		}
	}
	return removed, nil
}

// Close does nothing for the file cache.
func (c *FileCache) Close() error {
	return nil
}

// entryPath maps a key onto its entry file.
func (c *FileCache) entryPath(key string) string {
	return filepath.Join(c.dir, Hash([]byte(key))+".json")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
