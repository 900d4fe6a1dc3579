package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	"github.com/launchdeckapp/launchdeck-server/internal/media/wallpapers"
	"github.com/launchdeckapp/launchdeck-server/internal/store/sqlite"
)

func startTestRegistrar(t *testing.T) (*WallpaperRegistrar, *sqlite.Store, string) {
	t.Helper()
	st := newTestStore(t)
	storage, err := wallpapers.NewStorage(t.TempDir())
	require.NoError(t, err)

	registrar, err := NewWallpaperRegistrar(st, storage, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go registrar.Run(ctx)
	t.Cleanup(func() {
		cancel()
		registrar.Close()
	})

	return registrar, st, storage.Dir(domain.WallpaperTypeCustom)
}

func waitForWallpaperCount(t *testing.T, st *sqlite.Store, want int, timeout time.Duration) []domain.Wallpaper {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		wps, err := st.ListWallpapers(context.Background())
		require.NoError(t, err)
		if len(wps) == want {
			return wps
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("wallpaper count never reached %d", want)
	return nil
}

func TestRegistrarPicksUpDroppedFile(t *testing.T) {
	_, st, dir := startTestRegistrar(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "drop.png"), pngBytes(t, 16, 9), 0o644))

	wps := waitForWallpaperCount(t, st, 1, 10*time.Second)
	assert.Equal(t, "drop.png", wps[0].Filename)
	assert.Equal(t, domain.WallpaperTypeCustom, wps[0].Type)
	assert.NotEmpty(t, wps[0].Blurhash)
}

func TestRegistrarRemovesStaleRecord(t *testing.T) {
	_, st, dir := startTestRegistrar(t)

	path := filepath.Join(dir, "gone.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 16, 9), 0o644))
	waitForWallpaperCount(t, st, 1, 10*time.Second)

	require.NoError(t, os.Remove(path))
	waitForWallpaperCount(t, st, 0, 10*time.Second)
}

func TestRegistrarIgnoresNonImages(t *testing.T) {
	_, st, dir := startTestRegistrar(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "real.png"), pngBytes(t, 8, 8), 0o644))

	wps := waitForWallpaperCount(t, st, 1, 10*time.Second)
	assert.Equal(t, "real.png", wps[0].Filename)
}
