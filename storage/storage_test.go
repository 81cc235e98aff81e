package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func uploadedFile(t *testing.T, name, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("images", name)
	assert.NoError(t, err)
	_, err = part.Write([]byte(content))
	assert.NoError(t, err)
	writer.Close()

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	assert.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["images"][0]
}

func TestDiskStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "/uploads")
	assert.NoError(t, err)

	img, err := store.Save(uploadedFile(t, "camp.jpg", "image-bytes"))

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(img.URL, "/uploads/"))
	assert.True(t, strings.HasSuffix(img.Filename, "_camp.jpg"))

	content, err := os.ReadFile(filepath.Join(dir, img.Filename))
	assert.NoError(t, err)
	assert.Equal(t, "image-bytes", string(content))
}

func TestDiskStore_SaveUniqueFilenames(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "/uploads")
	assert.NoError(t, err)

	first, err := store.Save(uploadedFile(t, "camp.jpg", "a"))
	assert.NoError(t, err)
	second, err := store.Save(uploadedFile(t, "camp.jpg", "b"))
	assert.NoError(t, err)

	assert.NotEqual(t, first.Filename, second.Filename)
}

func TestDiskStore_Destroy(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "/uploads")
	assert.NoError(t, err)

	img, err := store.Save(uploadedFile(t, "camp.jpg", "image-bytes"))
	assert.NoError(t, err)

	assert.NoError(t, store.Destroy(img.Filename))

	_, err = os.Stat(filepath.Join(dir, img.Filename))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStore_DestroyMissingIsNoop(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "/uploads")
	assert.NoError(t, err)

	assert.NoError(t, store.Destroy("never-existed.jpg"))
}
