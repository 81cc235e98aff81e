package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

const cacheRoot = "cache"

// pagePath returns the cache file path for a campground show page.
func pagePath(id string) string {
	hash := xxhash.Sum64String("campground:" + id)
	return filepath.Join(cacheRoot, "campgrounds", fmt.Sprintf("%s_%016x.html", id, hash))
}

func ensureCacheDir() error {
	return os.MkdirAll(filepath.Join(cacheRoot, "campgrounds"), 0755)
}

// WritePage stores a rendered show page.
func WritePage(id, html string) error {
	if err := ensureCacheDir(); err != nil {
		return err
	}
	return os.WriteFile(pagePath(id), []byte(html), 0644)
}

// ReadPage returns the cached show page if it exists and is not expired.
func ReadPage(id string, maxAge time.Duration) (string, bool) {
	path := pagePath(id)

	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	if time.Since(info.ModTime()) > maxAge {
		return "", false
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(content), true
}

// ClearPage removes the cached show page for a campground. Every mutation of
// a campground or its reviews clears it.
func ClearPage(id string) error {
	err := os.Remove(pagePath(id))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ClearAll removes every cached page.
func ClearAll() error {
	return os.RemoveAll(filepath.Join(cacheRoot, "campgrounds"))
}

// ClearOld removes cache files older than maxAge.
func ClearOld(maxAge time.Duration) error {
	return filepath.Walk(cacheRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}
		if time.Since(info.ModTime()) > maxAge {
			os.Remove(path)
		}
		return nil
	})
}
