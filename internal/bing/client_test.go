package bing

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func TestToday(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/HPImageArchive.aspx" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("mkt"); got != "en-US" {
			t.Errorf("mkt: got %q", got)
		}
		w.Write([]byte(`{"images":[{"startdate":"20260830","url":"/th?id=OHR.Test_1920x1080.jpg","urlbase":"/th?id=OHR.Test","title":"A test image","copyright":"Someone"}]}`))
	}))
	defer srv.Close()

	c := NewClient("en-US", testLogger(), WithBaseURL(srv.URL))

	img, err := c.Today(context.Background())
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if img.StartDate != "20260830" {
		t.Errorf("StartDate: got %q", img.StartDate)
	}
	date, err := img.Date()
	if err != nil {
		t.Fatalf("Date: %v", err)
	}
	if date.Format("2006-01-02") != "2026-08-30" {
		t.Errorf("date: got %s", date)
	}
}

func TestDownloadUHDFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.RawQuery
		if strings.Contains(r.URL.Path+raw, "_UHD") {
			http.Error(w, "no uhd", http.StatusNotFound)
			return
		}
		w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	c := NewClient("en-US", testLogger(), WithBaseURL(srv.URL))

	img := &Image{URLBase: "/th?id=OHR.Test", URL: "/th?id=OHR.Test_1920x1080.jpg"}
	data, err := c.DownloadUHD(context.Background(), img)
	if err != nil {
		t.Fatalf("DownloadUHD: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Errorf("data: got %q", data)
	}
}

func TestTodayEmptyArchive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"images":[]}`))
	}))
	defer srv.Close()

	c := NewClient("en-US", testLogger(), WithBaseURL(srv.URL))
	if _, err := c.Today(context.Background()); err == nil {
		t.Error("expected error for empty archive")
	}
}
