// Package icons provides site icon storage and favicon downloading.
package icons

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Extensions an icon file may carry, in lookup order.
var iconExtensions = []string{".png", ".ico", ".jpg", ".jpeg", ".svg", ".gif", ".webp"}

// Storage manages icon files on disk. Files are named site-{siteID}{ext}.
// Thread-safe for concurrent operations.
type Storage struct {
	basePath string
	mu       sync.RWMutex
}

// NewStorage creates icon storage under {basePath}. The directory is created
// if missing.
func NewStorage(basePath string) (*Storage, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create icons directory: %w", err)
	}
	return &Storage{basePath: basePath}, nil
}

// Save stores icon data for a site with the given extension (".png" etc).
// Any previously stored icon with a different extension is removed so a site
// never has two icon files.
func (s *Storage) Save(siteID, ext string, data []byte) (string, error) {
	if siteID == "" {
		return "", fmt.Errorf("site ID cannot be empty")
	}
	if len(data) == 0 {
		return "", fmt.Errorf("icon data cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filename := "site-" + siteID + ext
	path := filepath.Join(s.basePath, filename)

	for _, other := range iconExtensions {
		if other == ext {
			continue
		}
		os.Remove(filepath.Join(s.basePath, "site-"+siteID+other))
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write icon file: %w", err)
	}
	return filename, nil
}

// Find returns the stored icon filename for a site, or "" when none exists.
func (s *Storage) Find(siteID string) string {
	if siteID == "" {
		return ""
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ext := range iconExtensions {
		filename := "site-" + siteID + ext
		if _, err := os.Stat(filepath.Join(s.basePath, filename)); err == nil {
			return filename
		}
	}
	return ""
}

// Exists reports whether an icon is stored for the site.
func (s *Storage) Exists(siteID string) bool {
	return s.Find(siteID) != ""
}

// Delete removes the stored icon for a site, if any. Missing files are not
// an error.
func (s *Storage) Delete(siteID string) error {
	if siteID == "" {
		return fmt.Errorf("site ID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ext := range iconExtensions {
		path := filepath.Join(s.basePath, "site-"+siteID+ext)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("delete icon file: %w", err)
		}
	}
	return nil
}

// Path returns the full filesystem path for a stored icon filename.
func (s *Storage) Path(filename string) string {
	return filepath.Join(s.basePath, filename)
}

// BasePath returns the storage directory.
func (s *Storage) BasePath() string {
	return s.basePath
}
