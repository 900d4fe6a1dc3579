package icons

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
)

// tiny valid PNG header plus filler, enough for content sniffing.
var pngBytes = append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func TestStorageSaveReplacesOtherExtensions(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Save("site-1", ".ico", []byte("ico-data")); err != nil {
		t.Fatalf("save ico: %v", err)
	}
	if _, err := s.Save("site-1", ".png", pngBytes); err != nil {
		t.Fatalf("save png: %v", err)
	}

	// Only the png remains.
	if got := s.Find("site-1"); got != "site-site-1.png" {
		t.Errorf("Find: got %q", got)
	}
	if _, err := os.Stat(s.Path("site-site-1.ico")); !os.IsNotExist(err) {
		t.Error("old ico file still present")
	}
}

func TestStorageDelete(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save("site-1", ".png", pngBytes); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("site-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.Exists("site-1") {
		t.Error("icon still exists after delete")
	}
	// Deleting again is fine.
	if err := s.Delete("site-1"); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestDownloadStoresIcon(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "image/png")
		w.Write(pngBytes)
	}))
	defer srv.Close()

	storage, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	d := NewDownloader(storage, testLogger())

	result, err := d.Download(context.Background(), "site-1", srv.URL+"/favicon.png", false)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if result.Skipped {
		t.Error("first download reported skipped")
	}
	if result.Filename != "site-site-1.png" {
		t.Errorf("filename: got %q", result.Filename)
	}
	if requests.Load() != 1 {
		t.Errorf("requests: got %d, want 1", requests.Load())
	}
}

func TestDownloadIdempotent(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "image/png")
		w.Write(pngBytes)
	}))
	defer srv.Close()

	storage, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	d := NewDownloader(storage, testLogger())
	ctx := context.Background()

	if _, err := d.Download(ctx, "site-1", srv.URL, false); err != nil {
		t.Fatal(err)
	}

	// Second call must not touch the network.
	result, err := d.Download(ctx, "site-1", srv.URL, false)
	if err != nil {
		t.Fatalf("second download: %v", err)
	}
	if !result.Skipped {
		t.Error("second download not skipped")
	}
	if requests.Load() != 1 {
		t.Errorf("requests after second call: got %d, want 1", requests.Load())
	}

	// Force bypasses the cache.
	if _, err := d.Download(ctx, "site-1", srv.URL, true); err != nil {
		t.Fatal(err)
	}
	if requests.Load() != 2 {
		t.Errorf("requests after force: got %d, want 2", requests.Load())
	}
}

func TestDownloadServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	storage, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	d := NewDownloader(storage, testLogger())

	if _, err := d.Download(context.Background(), "site-1", srv.URL, false); err == nil {
		t.Error("expected error for 500 response")
	}
	if storage.Exists("site-1") {
		t.Error("icon stored despite failed download")
	}
}
