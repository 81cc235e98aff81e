// Package storage holds uploaded campground images. The provider is an
// interface so handlers and the aggregate store never depend on where the
// bytes actually live.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Image is what the provider hands back per stored file: a URL for display
// and the filename key used to destroy the object later.
type Image struct {
	URL      string
	Filename string
}

type Store interface {
	Save(file *multipart.FileHeader) (Image, error)
	Destroy(filename string) error
}

// DiskStore keeps uploads on the local filesystem and serves them from a
// static route.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: baseURL}, nil
}

func (s *DiskStore) Save(file *multipart.FileHeader) (Image, error) {
	src, err := file.Open()
	if err != nil {
		return Image{}, fmt.Errorf("storage: open upload: %w", err)
	}
	defer src.Close()

	filename := uuid.NewString() + "_" + filepath.Base(file.Filename)

	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return Image{}, fmt.Errorf("storage: create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return Image{}, fmt.Errorf("storage: write file: %w", err)
	}

	return Image{
		URL:      s.baseURL + "/" + filename,
		Filename: filename,
	}, nil
}

// Destroy removes the stored object. A missing object is not an error so a
// retried deletion stays a no-op.
func (s *DiskStore) Destroy(filename string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(filename)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: remove file: %w", err)
	}
	return nil
}
