package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"fairprice/backend/internal/models"
)

// Cache memoizes the loaded catalog for the process lifetime. The file is
// re-read when its modification time or size changes, or after Invalidate.
//
// The returned slice is shared between callers and must be treated as read-only.
type Cache struct {
	path     string
	district DistrictFunc

	mu      sync.Mutex
	loaded  bool
	modTime time.Time
	size    int64
	data    []models.Business
}

func NewCache(path string, district DistrictFunc) *Cache {
	return &Cache{path: path, district: district}
}

// Get returns the cached catalog, loading it first if needed.
func (c *Cache) Get() ([]models.Business, error) {
	info, err := os.Stat(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, c.path)
		}
		return nil, fmt.Errorf("stat catalog %s: %w", c.path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && info.ModTime().Equal(c.modTime) && info.Size() == c.size {
		return c.data, nil
	}

	data, err := Load(c.path, c.district)
	if err != nil {
		return nil, err
	}
	c.data = data
	c.modTime = info.ModTime()
	c.size = info.Size()
	c.loaded = true
	return c.data, nil
}

// Invalidate drops the cached catalog; the next Get reloads the file.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.loaded = false
	c.data = nil
	c.mu.Unlock()
}
