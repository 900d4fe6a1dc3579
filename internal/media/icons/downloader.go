package icons

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	// maxIconSize limits download size to prevent memory exhaustion.
	maxIconSize = 2 * 1024 * 1024 // 2MB

	// downloadTimeout is the maximum time for an icon download.
	downloadTimeout = 15 * time.Second
)

// DownloadResult contains the result of an icon download operation.
type DownloadResult struct {
	Filename string // Stored filename, e.g. site-site-abc123.png
	Size     int64  // File size in bytes
	Skipped  bool   // True when a stored icon already existed (no request made)
}

// Downloader fetches favicons and stores them through Storage.
type Downloader struct {
	httpClient *http.Client
	storage    *Storage
	logger     *slog.Logger
}

// NewDownloader creates an icon downloader.
func NewDownloader(storage *Storage, logger *slog.Logger) *Downloader {
	return &Downloader{
		httpClient: &http.Client{Timeout: downloadTimeout},
		storage:    storage,
		logger:     logger,
	}
}

// Download fetches the icon at url and stores it for the site. When an icon
// is already stored for the site, the call returns immediately without any
// network traffic; pass force to overwrite.
func (d *Downloader) Download(ctx context.Context, siteID, url string, force bool) (*DownloadResult, error) {
	if url == "" {
		return nil, errors.New("empty icon URL")
	}

	if !force {
		if existing := d.storage.Find(siteID); existing != "" {
			return &DownloadResult{Filename: existing, Skipped: true}, nil
		}
	}

	downloadCtx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(downloadCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxIconSize))
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("empty response body")
	}

	ext := extensionFor(resp.Header.Get("Content-Type"), data)
	filename, err := d.storage.Save(siteID, ext, data)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	d.logger.Info("downloaded site icon",
		"site_id", siteID,
		"filename", filename,
		"size", len(data),
	)

	return &DownloadResult{Filename: filename, Size: int64(len(data))}, nil
}

// ExtensionForData picks a file extension by sniffing the image bytes.
// Used for inline base64 icon uploads where no content type is available.
func ExtensionForData(data []byte) string {
	return extensionFor("", data)
}

// extensionFor picks a file extension from the response content type, falling
// back to content sniffing.
func extensionFor(contentType string, data []byte) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/svg+xml":
		return ".svg"
	case "image/webp":
		return ".webp"
	case "image/x-icon", "image/vnd.microsoft.icon":
		return ".ico"
	}

	switch http.DetectContentType(data) {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/x-icon", "image/vnd.microsoft.icon":
		return ".ico"
	}

	// ICO served as octet-stream is common enough to default to.
	return ".ico"
}
