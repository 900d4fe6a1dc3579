// Package wallpapers provides wallpaper file storage and blurhash placeholders.
package wallpapers

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
)

// Storage manages wallpaper files on disk, split into per-type
// subdirectories: {basePath}/bing/ and {basePath}/custom/.
// Thread-safe for concurrent operations.
type Storage struct {
	basePath string
	mu       sync.RWMutex
}

// NewStorage creates wallpaper storage under basePath, creating the per-type
// subdirectories if missing.
func NewStorage(basePath string) (*Storage, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	for _, sub := range []string{string(domain.WallpaperTypeBing), string(domain.WallpaperTypeCustom)} {
		if err := os.MkdirAll(filepath.Join(basePath, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create wallpapers directory: %w", err)
		}
	}
	return &Storage{basePath: basePath}, nil
}

// minFreeBytes is the reserve kept below which wallpaper writes are
// refused rather than filling the disk.
const minFreeBytes = 64 << 20

// Save stores wallpaper data under the type subdirectory.
func (s *Storage) Save(wpType domain.WallpaperType, filename string, data []byte) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if len(data) == 0 {
		return fmt.Errorf("wallpaper data cannot be empty")
	}
	if free, err := freeBytes(s.basePath); err == nil && free < uint64(len(data))+minFreeBytes {
		return fmt.Errorf("not enough disk space for wallpaper: %d bytes free", free)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.Path(wpType, filename), data, 0o644); err != nil {
		return fmt.Errorf("write wallpaper file: %w", err)
	}
	return nil
}

// Get retrieves wallpaper data.
func (s *Storage) Get(wpType domain.WallpaperType, filename string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path(wpType, filename))
	if err != nil {
		return nil, fmt.Errorf("read wallpaper file: %w", err)
	}
	return data, nil
}

// Exists reports whether the wallpaper file is on disk.
func (s *Storage) Exists(wpType domain.WallpaperType, filename string) bool {
	if filename == "" {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.Path(wpType, filename))
	return err == nil
}

// Delete removes a wallpaper file. Missing files are not an error.
func (s *Storage) Delete(wpType domain.WallpaperType, filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path(wpType, filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete wallpaper file: %w", err)
	}
	return nil
}

// Path returns the full filesystem path for a wallpaper file.
func (s *Storage) Path(wpType domain.WallpaperType, filename string) string {
	return filepath.Join(s.basePath, string(wpType), filename)
}

// Dir returns the directory for a wallpaper type.
func (s *Storage) Dir(wpType domain.WallpaperType) string {
	return filepath.Join(s.basePath, string(wpType))
}

// BasePath returns the storage root.
func (s *Storage) BasePath() string {
	return s.basePath
}
