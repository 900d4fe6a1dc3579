// Package bing provides a client for the Bing image-of-the-day archive.
package bing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://www.bing.com"
	archivePath    = "/HPImageArchive.aspx"

	// maxImageSize limits the wallpaper download size.
	maxImageSize = 30 * 1024 * 1024 // 30MB

	requestTimeout = 30 * time.Second
)

// Image is one entry from the image-of-the-day archive.
type Image struct {
	StartDate string `json:"startdate"` // YYYYMMDD
	URL       string `json:"url"`       // relative, pre-sized
	URLBase   string `json:"urlbase"`   // relative, append a resolution suffix
	Title     string `json:"title"`
	Copyright string `json:"copyright"`
}

// Date returns the image's start date parsed from its YYYYMMDD form.
func (i Image) Date() (time.Time, error) {
	return time.Parse("20060102", i.StartDate)
}

// archiveResponse is the wire shape of the archive endpoint.
type archiveResponse struct {
	Images []Image `json:"images"`
}

// Client fetches image-of-the-day metadata and image bytes.
type Client struct {
	httpClient *http.Client
	baseURL    string
	market     string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Bing endpoint. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// NewClient creates a Bing archive client for the given market (e.g. "en-US").
func NewClient(market string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    defaultBaseURL,
		market:     market,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Today fetches metadata for the current image of the day.
func (c *Client) Today(ctx context.Context) (*Image, error) {
	query := url.Values{
		"format": {"js"},
		"idx":    {"0"},
		"n":      {"1"},
		"mkt":    {c.market},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+archivePath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch archive: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("archive request failed: status %d", resp.StatusCode)
	}

	var archive archiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&archive); err != nil {
		return nil, fmt.Errorf("decode archive: %w", err)
	}
	if len(archive.Images) == 0 {
		return nil, errors.New("archive returned no images")
	}

	return &archive.Images[0], nil
}

// DownloadUHD fetches the best-quality rendition of the image. It tries the
// UHD suffix first and falls back to the pre-sized URL the archive lists.
func (c *Client) DownloadUHD(ctx context.Context, img *Image) ([]byte, error) {
	if img.URLBase != "" {
		data, err := c.download(ctx, c.baseURL+img.URLBase+"_UHD.jpg")
		if err == nil {
			return data, nil
		}
		c.logger.Warn("UHD wallpaper fetch failed, falling back", "error", err)
	}

	if img.URL == "" {
		return nil, errors.New("image has no URL")
	}
	return c.download(ctx, c.baseURL+img.URL)
}

func (c *Client) download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image request failed: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("empty image body")
	}
	return data, nil
}
