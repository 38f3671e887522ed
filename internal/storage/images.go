// Package storage implements the object store behind desk photos:
// upload(path, file) -> public URL and remove(path), backed by a local
// directory served under /uploads. Uploads are validated server-side
// regardless of what the client claims: size cap and a sniffed MIME
// check against a small allow-list.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ErrTooLarge is returned when the upload exceeds the configured cap.
var ErrTooLarge = errors.New("file too large")

// ErrBadType is returned when the sniffed content type is not an
// allowed image format.
var ErrBadType = errors.New("unsupported file type")

// allowed maps accepted MIME types to the file extension stored on disk.
var allowed = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ImageStore writes desk photos into Dir and names them with random
// UUIDs so uploads can never collide or traverse paths.
type ImageStore struct {
	Dir      string // filesystem directory, created on demand
	MaxBytes int64  // upload size cap
	BasePath string // public URL prefix, e.g. "/uploads"
}

func NewImageStore(dir string, maxBytes int64) *ImageStore {
	return &ImageStore{Dir: dir, MaxBytes: maxBytes, BasePath: "/uploads"}
}

// Save reads the upload, validates size and MIME type, writes it under
// a fresh UUID name and returns the public URL path. The reader is
// consumed at most MaxBytes+1 bytes.
func (s *ImageStore) Save(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.MaxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > s.MaxBytes {
		return "", ErrTooLarge
	}
	mt := mimetype.Detect(data)
	ext, ok := allowed[mt.String()]
	if !ok {
		return "", ErrBadType
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return "", err
	}
	return s.BasePath + "/" + name, nil
}

// Remove deletes the object behind a public URL previously returned by
// Save. URLs outside the store's base path are rejected; a missing
// file is not an error.
func (s *ImageStore) Remove(publicURL string) error {
	name, ok := strings.CutPrefix(publicURL, s.BasePath+"/")
	if !ok || name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		return fmt.Errorf("not a stored image url: %q", publicURL)
	}
	err := os.Remove(filepath.Join(s.Dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
