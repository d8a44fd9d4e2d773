package pypi

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
)

const (
	cacheDirPerm  = 0o750
	cacheFilePerm = 0o600
)

// diskCache stores raw index responses keyed by (index URL, package name).
// Entries older than the TTL are treated as absent.
type diskCache struct {
	dir string
	ttl time.Duration
}

func newDiskCache(dir string, ttl time.Duration) *diskCache {
	return &diskCache{dir: dir, ttl: ttl}
}

func cacheKey(indexURL, name string) string {
	h := xxhash.New()
	_, _ = h.WriteString(indexURL)
	_, _ = h.Write([]byte{0}) // Separator
	_, _ = h.WriteString(name)
	return fmt.Sprintf("%016x", h.Sum64())
}

func (c *diskCache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func (c *diskCache) get(key string) ([]byte, bool) {
	path := c.path(key)

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is derived from a hash under the cache dir
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *diskCache) put(key string, data []byte) error {
	if err := os.MkdirAll(c.dir, cacheDirPerm); err != nil {
		return err
	}
	return os.WriteFile(c.path(key), data, cacheFilePerm)
}
