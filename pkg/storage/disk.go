package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DiskStorage keeps objects on the local filesystem under baseDir and serves
// them under baseURL (the static file route of the HTTP server).
type DiskStorage struct {
	baseDir string
	baseURL string
}

func NewDiskStorage(baseDir, baseURL string) *DiskStorage {
	return &DiskStorage{
		baseDir: baseDir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *DiskStorage) Put(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	full, err := s.resolve(objectPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}
	return s.URL(objectPath), nil
}

func (s *DiskStorage) Delete(ctx context.Context, objectPath string) error {
	full, err := s.resolve(objectPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *DiskStorage) URL(objectPath string) string {
	return s.baseURL + "/" + strings.TrimPrefix(objectPath, "/")
}

func (s *DiskStorage) PathFromURL(url string) (string, bool) {
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

var errEscapesBase = errors.New("object path escapes storage directory")

func (s *DiskStorage) resolve(objectPath string) (string, error) {
	full := filepath.Join(s.baseDir, filepath.FromSlash(objectPath))
	rel, err := filepath.Rel(s.baseDir, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", errEscapesBase
	}
	return full, nil
}
