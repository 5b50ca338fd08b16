// Package cookies stores per-platform session cookie files. The files are the
// only durable state in the service: extraction reads them, the update
// endpoint overwrites them. Writes go through a temp file and atomic rename
// so a concurrent reader never sees a partially written file.
package cookies

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jackxcreation/downloader-ninjaX-backend/internal/domain"
	"github.com/jackxcreation/downloader-ninjaX-backend/internal/platform"
)

// Store provides access to per-platform cookie files.
type Store interface {
	// Path returns the on-disk path of the platform's cookie file and
	// whether the file currently exists.
	Path(p platform.Platform) (string, bool)

	// Write overwrites the platform's cookie file with the given content.
	Write(p platform.Platform, content []byte) error
}

// FileStore is a filesystem-backed Store keeping one plain-text file per
// platform under a single directory.
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cookie dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the cookie file path for the platform and whether it exists.
func (s *FileStore) Path(p platform.Platform) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.filename(p)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return path, false
	}
	return path, true
}

// Write atomically replaces the platform's cookie file.
func (s *FileStore) Write(p platform.Platform, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.filename(p)
	tmp, err := os.CreateTemp(s.dir, "."+string(p)+"-cookies-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", domain.ErrCookieWrite, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write temp file: %v", domain.ErrCookieWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close temp file: %v", domain.ErrCookieWrite, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replace %s: %v", domain.ErrCookieWrite, path, err)
	}
	return nil
}

func (s *FileStore) filename(p platform.Platform) string {
	return filepath.Join(s.dir, string(p)+"_cookies.txt")
}
