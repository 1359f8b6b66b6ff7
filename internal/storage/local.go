package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage handles file storage on the local filesystem
type LocalStorage struct {
	basePath string
	now      func() time.Time
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath, now: time.Now}, nil
}

// UploadFromBytes saves bytes under subDir/yyyy/mm and returns the relative path.
// The stored name is the timestamped filename plus a short random suffix.
func (s *LocalStorage) UploadFromBytes(data []byte, filename string, subDir string) (string, error) {
	now := s.now()
	dir := filepath.Join(s.basePath, subDir, now.Format("2006/01"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	storedName := fmt.Sprintf("%s-%s-%s%s", now.Format("20060102T150405"), base, generateID(), ext)
	filePath := filepath.Join(dir, storedName)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	relPath, _ := filepath.Rel(s.basePath, filePath)
	return relPath, nil
}

// Download returns a stored file for reading
func (s *LocalStorage) Download(relativePath string) (*os.File, error) {
	return os.Open(s.GetFullPath(relativePath))
}

// Exists checks if a file exists
func (s *LocalStorage) Exists(relativePath string) bool {
	_, err := os.Stat(s.GetFullPath(relativePath))
	return err == nil
}

// GetFullPath returns the path of a stored file on disk
func (s *LocalStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.basePath, filepath.Clean("/"+relativePath))
}

func generateID() string {
	bytes := make([]byte, 4)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
