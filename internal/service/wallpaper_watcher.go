package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/launchdeckapp/launchdeck-server/internal/coalesce"
	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	"github.com/launchdeckapp/launchdeck-server/internal/id"
	"github.com/launchdeckapp/launchdeck-server/internal/media/wallpapers"
	"github.com/launchdeckapp/launchdeck-server/internal/store"
	"github.com/launchdeckapp/launchdeck-server/internal/watcher"
)

// reconcileDelay batches a burst of dropped files into one directory sweep.
const reconcileDelay = time.Second

// WallpaperRegistrar watches the custom wallpaper directory and keeps the
// database in step with files dropped there out-of-band. Filesystem events
// only mark a coalesced reconciler; the flush sweeps the whole directory, so
// adds and removes are handled uniformly and a missed event self-heals on
// the next sweep.
type WallpaperRegistrar struct {
	store   store.Store
	storage *wallpapers.Storage
	watcher *watcher.Watcher
	flusher *coalesce.Flusher
	logger  *slog.Logger
}

// NewWallpaperRegistrar creates a registrar watching the custom wallpaper
// directory.
func NewWallpaperRegistrar(s store.Store, storage *wallpapers.Storage, logger *slog.Logger) (*WallpaperRegistrar, error) {
	w, err := watcher.New(storage.Dir(domain.WallpaperTypeCustom), logger)
	if err != nil {
		return nil, fmt.Errorf("create wallpaper watcher: %w", err)
	}

	r := &WallpaperRegistrar{
		store:   s,
		storage: storage,
		watcher: w,
		logger:  logger,
	}
	r.flusher = coalesce.New(r.reconcile, reconcileDelay, logger)
	return r, nil
}

// Run consumes watcher events until the context is cancelled. An initial
// reconcile pass registers files dropped while the server was down.
func (r *WallpaperRegistrar) Run(ctx context.Context) {
	r.flusher.Mark()

	go func() {
		if err := r.watcher.Start(ctx); err != nil {
			r.logger.Error("wallpaper watcher stopped", "error", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-r.watcher.Events():
			if !ok {
				return
			}
			r.flusher.Mark()
		case err, ok := <-r.watcher.Errors():
			if !ok {
				return
			}
			r.logger.Warn("wallpaper watcher error", "error", err)
		}
	}
}

// Close stops the watcher and drains a pending reconcile.
func (r *WallpaperRegistrar) Close() error {
	if err := r.watcher.Stop(); err != nil {
		r.logger.Warn("wallpaper watcher stop failed", "error", err)
	}
	return r.flusher.Close()
}

// reconcile sweeps the custom wallpaper directory: files without a record
// get one (with a computed blurhash), records without a file are removed.
func (r *WallpaperRegistrar) reconcile(ctx context.Context) error {
	dir := r.storage.Dir(domain.WallpaperTypeCustom)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read wallpaper dir: %w", err)
	}

	onDisk := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isImageFile(entry.Name()) {
			continue
		}
		onDisk[entry.Name()] = true
	}

	records, err := r.store.ListWallpapers(ctx)
	if err != nil {
		return fmt.Errorf("list wallpapers: %w", err)
	}
	recorded := make(map[string]string, len(records))
	for _, wp := range records {
		if wp.Type == domain.WallpaperTypeCustom {
			recorded[wp.Filename] = wp.ID
		}
	}

	for filename := range onDisk {
		if _, ok := recorded[filename]; ok {
			continue
		}
		if err := r.register(ctx, filename); err != nil {
			r.logger.Warn("wallpaper registration failed", "filename", filename, "error", err)
		}
	}

	for filename, wpID := range recorded {
		if onDisk[filename] {
			continue
		}
		if err := r.store.DeleteWallpaper(ctx, wpID); err != nil && !store.IsNotFound(err) {
			r.logger.Warn("stale wallpaper record removal failed", "filename", filename, "error", err)
		} else {
			r.logger.Info("stale wallpaper record removed", "filename", filename)
		}
	}

	return nil
}

func (r *WallpaperRegistrar) register(ctx context.Context, filename string) error {
	data, err := r.storage.Get(domain.WallpaperTypeCustom, filename)
	if err != nil {
		return err
	}

	blurhash, err := wallpapers.ComputeBlurHash(data)
	if err != nil {
		r.logger.Warn("blurhash computation failed", "filename", filename, "error", err)
	}

	wpID, err := id.Generate("wp")
	if err != nil {
		return err
	}
	wp := &domain.Wallpaper{
		ID:        wpID,
		URL:       wallpaperAssetURL(domain.WallpaperTypeCustom, filename),
		Type:      domain.WallpaperTypeCustom,
		Filename:  filename,
		Size:      int64(len(data)),
		Blurhash:  blurhash,
		CreatedAt: time.Now(),
	}
	if err := r.store.CreateWallpaper(ctx, wp); err != nil && !store.IsAlreadyExists(err) {
		return err
	}

	r.logger.Info("dropped wallpaper registered", "filename", filename)
	return nil
}

func isImageFile(name string) bool {
	switch filepath.Ext(name) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	}
	return false
}
