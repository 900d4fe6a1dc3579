package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	"github.com/launchdeckapp/launchdeck-server/internal/media/icons"
	"github.com/launchdeckapp/launchdeck-server/internal/search"
	"github.com/launchdeckapp/launchdeck-server/internal/store/sqlite"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestIndex(t *testing.T) *search.SiteIndex {
	t.Helper()
	index, err := search.NewSiteIndex(search.Options{DataPath: t.TempDir(), Logger: testLogger()})
	require.NoError(t, err)
	t.Cleanup(func() { index.Close() })
	return index
}

func newTestSiteService(t *testing.T) (*SiteService, *sqlite.Store) {
	t.Helper()
	st := newTestStore(t)
	iconStorage, err := icons.NewStorage(t.TempDir())
	require.NoError(t, err)
	downloader := icons.NewDownloader(iconStorage, testLogger())
	svc := NewSiteService(st, iconStorage, downloader, newTestIndex(t), testLogger())
	return svc, st
}

func mustCreateSite(t *testing.T, svc *SiteService, req CreateSiteRequest) *domain.Site {
	t.Helper()
	site, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	return site
}

func mustCreateFolder(t *testing.T, svc *SiteService, name, category string) *domain.Site {
	t.Helper()
	return mustCreateSite(t, svc, CreateSiteRequest{
		Name:     name,
		Category: category,
		Type:     domain.SiteTypeFolder,
	})
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 17), G: uint8(y * 31), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func pngBase64(t *testing.T) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString(pngBytes(t, 4, 4))
}

// waitForIcon polls for the background favicon fetch to land.
func waitForIcon(t *testing.T, st *sqlite.Store, siteID string, timeout time.Duration) *domain.Site {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		site, err := st.GetSite(context.Background(), siteID)
		require.NoError(t, err)
		if site.IconMode == domain.IconModeUpload {
			return site
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("icon fetch did not complete")
	return nil
}
