package wallpapers

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestStorageRoundTrip(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	data := []byte("fake image bytes")
	if err := s.Save(domain.WallpaperTypeBing, "bing-2026-08-30.jpg", data); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !s.Exists(domain.WallpaperTypeBing, "bing-2026-08-30.jpg") {
		t.Error("saved file not found")
	}
	got, err := s.Get(domain.WallpaperTypeBing, "bing-2026-08-30.jpg")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("data mismatch")
	}

	// Types live in separate subdirectories.
	if s.Exists(domain.WallpaperTypeCustom, "bing-2026-08-30.jpg") {
		t.Error("file visible under wrong type")
	}

	if err := s.Delete(domain.WallpaperTypeBing, "bing-2026-08-30.jpg"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.Exists(domain.WallpaperTypeBing, "bing-2026-08-30.jpg") {
		t.Error("file still exists after delete")
	}
}

func TestComputeBlurHash(t *testing.T) {
	hash, err := ComputeBlurHash(encodePNG(t, 320, 180))
	if err != nil {
		t.Fatalf("ComputeBlurHash: %v", err)
	}
	if hash == "" {
		t.Error("empty hash")
	}

	// Tiny images skip the resize path.
	small, err := ComputeBlurHash(encodePNG(t, 16, 16))
	if err != nil {
		t.Fatalf("ComputeBlurHash small: %v", err)
	}
	if small == "" {
		t.Error("empty hash for small image")
	}
}

func TestComputeBlurHashRejectsGarbage(t *testing.T) {
	if _, err := ComputeBlurHash([]byte("not an image")); err == nil {
		t.Error("expected decode error")
	}
}

func TestFreeBytesReportsSpace(t *testing.T) {
	free, err := freeBytes(t.TempDir())
	if err != nil {
		t.Fatalf("freeBytes: %v", err)
	}
	if free == 0 {
		t.Error("expected free space on temp filesystem")
	}
}
