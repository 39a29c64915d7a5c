package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/cygraph/pkg/observability"
)

// FileCache stores entries as JSON files under a directory, sharded by key
// hash so a large cache does not pile thousands of files into one dir.
// It is what the CLI uses to cache rendered artifacts between runs.
//
// Multiple processes can share the same directory; the filesystem provides
// atomicity at the single-entry level.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache rooted at dir, creating the
// directory if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// fileEntry is the on-disk envelope around cached bytes.
// Expiry is a unix timestamp; 0 means the entry never expires.
type fileEntry struct {
	Data   []byte `json:"data"`
	Expiry int64  `json:"expiry,omitempty"`
}

func (e fileEntry) expired(now time.Time) bool {
	return e.Expiry != 0 && now.Unix() > e.Expiry
}

// Get retrieves a value. Unreadable or expired entries are removed and
// reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		observability.CacheOps().OnCacheMiss(ctx, "file")
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(raw, &entry); err != nil || entry.expired(time.Now()) {
		_ = os.Remove(path)
		observability.CacheOps().OnCacheMiss(ctx, "file")
		return nil, false, nil
	}

	observability.CacheOps().OnCacheHit(ctx, "file")
	return entry.Data, true, nil
}

// Set stores a value. A ttl of 0 stores it without expiry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{Data: data}
	if ttl != 0 {
		entry.Expiry = time.Now().Add(ttl).Unix()
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return err
	}

	observability.CacheOps().OnCacheSet(ctx, "file", len(data))
	return nil
}

// Delete removes a value. Missing keys are not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for a file cache.
func (c *FileCache) Close() error { return nil }

// path shards entries into 256 subdirectories by the first hash byte.
func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, h[:2], h[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
