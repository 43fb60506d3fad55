// Package storage keeps uploaded product images on disk. Files get a
// random name; the reference stored on the product is the public URL
// path ("/uploads/<name>").
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const urlPrefix = "/uploads/"

type ImageStore struct {
	dir string
	log *zap.Logger
}

func NewImageStore(dir string, log *zap.Logger) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &ImageStore{dir: dir, log: log}, nil
}

// Dir is the directory served statically under /uploads.
func (s *ImageStore) Dir() string {
	return s.dir
}

// Save writes an uploaded file and returns its public reference.
func (s *ImageStore) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return urlPrefix + name, nil
}

// Remove deletes a stored image by its public reference. Best-effort:
// a failure is logged and swallowed, never surfaced to the caller.
func (s *ImageStore) Remove(ref string) {
	if !strings.HasPrefix(ref, urlPrefix) {
		return
	}
	name := path.Base(strings.TrimPrefix(ref, urlPrefix))
	if name == "" || name == "." || name == "/" {
		return
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("failed to remove image", zap.String("ref", ref), zap.Error(err))
	}
}
