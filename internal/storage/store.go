package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore keeps product blobs on local disk. Private files (the purchased
// downloads) live under filesDir and are never routed; preview images live
// under publicDir and are served under publicPrefix by the router.
type FileStore struct {
	filesDir     string
	publicDir    string
	publicPrefix string
}

func NewFileStore(filesDir, publicDir, publicPrefix string) (*FileStore, error) {
	if err := os.MkdirAll(filesDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create files dir: %w", err)
	}
	if err := os.MkdirAll(publicDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create public dir: %w", err)
	}
	return &FileStore{
		filesDir:     filesDir,
		publicDir:    publicDir,
		publicPrefix: strings.TrimSuffix(publicPrefix, "/"),
	}, nil
}

func (f *FileStore) PublicDir() string {
	return f.publicDir
}

// SaveFile writes a private blob and returns its path on disk.
func (f *FileStore) SaveFile(originalName string, data []byte) (string, error) {
	path := filepath.Join(f.filesDir, blobKey(originalName))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}

// SaveImage writes a public blob and returns its URL path (publicPrefix/key).
func (f *FileStore) SaveImage(originalName string, data []byte) (string, error) {
	key := blobKey(originalName)
	if err := os.WriteFile(filepath.Join(f.publicDir, key), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return f.publicPrefix + "/" + key, nil
}

// RemoveFile deletes a private blob by the path SaveFile returned.
func (f *FileStore) RemoveFile(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// RemoveImage deletes a public blob by the URL path SaveImage returned.
func (f *FileStore) RemoveImage(imagePath string) error {
	key := strings.TrimPrefix(imagePath, f.publicPrefix+"/")
	if err := os.Remove(filepath.Join(f.publicDir, key)); err != nil {
		return fmt.Errorf("failed to remove image: %w", err)
	}
	return nil
}

// OpenFile opens a private blob for streaming to a paid customer.
func (f *FileStore) OpenFile(path string) (*os.File, os.FileInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}
	return file, info, nil
}

// blobKey prefixes the original filename with a random token so repeated
// uploads of the same name never collide. The original name is kept only as
// its base to stop path segments sneaking into the key.
func blobKey(originalName string) string {
	return uuid.New().String() + "-" + filepath.Base(originalName)
}
