package service

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/launchdeckapp/launchdeck-server/internal/bing"
	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	domainerrors "github.com/launchdeckapp/launchdeck-server/internal/errors"
	"github.com/launchdeckapp/launchdeck-server/internal/id"
	"github.com/launchdeckapp/launchdeck-server/internal/media/wallpapers"
	"github.com/launchdeckapp/launchdeck-server/internal/store"
)

// WallpaperService manages wallpaper records and files: custom uploads and
// the Bing image-of-the-day sync.
type WallpaperService struct {
	store      store.Store
	storage    *wallpapers.Storage
	bingClient *bing.Client
	maxUpload  int64
	logger     *slog.Logger

	// Concurrent Bing syncs (several browser tabs at startup) collapse
	// into a single fetch.
	syncGroup singleflight.Group
}

// NewWallpaperService creates a wallpaper service. maxUpload caps upload
// sizes in bytes.
func NewWallpaperService(
	s store.Store,
	storage *wallpapers.Storage,
	bingClient *bing.Client,
	maxUpload int64,
	logger *slog.Logger,
) *WallpaperService {
	return &WallpaperService{
		store:      s,
		storage:    storage,
		bingClient: bingClient,
		maxUpload:  maxUpload,
		logger:     logger,
	}
}

// List returns all wallpaper records, newest first.
func (s *WallpaperService) List(ctx context.Context) ([]domain.Wallpaper, error) {
	return s.store.ListWallpapers(ctx)
}

// Upload stores a custom wallpaper. The stored filename is generated; the
// original name only contributes its extension.
func (s *WallpaperService) Upload(ctx context.Context, originalName string, data []byte) (*domain.Wallpaper, error) {
	if len(data) == 0 {
		return nil, domainerrors.Validation("file is empty")
	}
	if s.maxUpload > 0 && int64(len(data)) > s.maxUpload {
		return nil, domainerrors.Validation(fmt.Sprintf("file exceeds maximum size of %d bytes", s.maxUpload))
	}

	ext := strings.ToLower(path.Ext(originalName))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		return nil, domainerrors.Validation("unsupported image type " + ext)
	}

	// Blurhash is a placeholder nicety; an undecodable-but-servable image
	// still uploads.
	blurhash, err := wallpapers.ComputeBlurHash(data)
	if err != nil {
		s.logger.Warn("blurhash computation failed", "error", err)
	}

	filename := uuid.NewString() + ext
	if err := s.storage.Save(domain.WallpaperTypeCustom, filename, data); err != nil {
		return nil, fmt.Errorf("save wallpaper: %w", err)
	}

	wp, err := s.createRecord(ctx, domain.WallpaperTypeCustom, filename, int64(len(data)), blurhash)
	if err != nil {
		return nil, err
	}

	s.logger.Info("wallpaper uploaded", "wallpaper_id", wp.ID, "size", wp.Size)
	return wp, nil
}

// Delete removes a wallpaper record and its backing file. The file removal
// is best-effort.
func (s *WallpaperService) Delete(ctx context.Context, wallpaperID string) error {
	wp, err := s.store.GetWallpaper(ctx, wallpaperID)
	if err != nil {
		if store.IsNotFound(err) {
			return domainerrors.NotFound("wallpaper not found")
		}
		return fmt.Errorf("get wallpaper: %w", err)
	}

	if err := s.store.DeleteWallpaper(ctx, wallpaperID); err != nil && !store.IsNotFound(err) {
		return fmt.Errorf("delete wallpaper: %w", err)
	}
	if err := s.storage.Delete(wp.Type, wp.Filename); err != nil {
		s.logger.Warn("wallpaper file cleanup failed", "filename", wp.Filename, "error", err)
	}

	s.logger.Info("wallpaper deleted", "wallpaper_id", wallpaperID)
	return nil
}

// SyncBing ensures today's Bing image is stored locally and returns its
// record. Cache hit (row and file present) costs no network. On remote
// failure the most recent cached Bing wallpaper is returned instead; with
// nothing cached the sync reports unavailable. Concurrent calls share one
// flight.
func (s *WallpaperService) SyncBing(ctx context.Context) (*domain.Wallpaper, error) {
	result, err, _ := s.syncGroup.Do("bing-sync", func() (any, error) {
		return s.syncBing(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Wallpaper), nil
}

func (s *WallpaperService) syncBing(ctx context.Context) (*domain.Wallpaper, error) {
	// Date-keyed cache check before any network traffic.
	today := bingFilename(time.Now())
	if wp := s.cachedBing(ctx, today); wp != nil {
		return wp, nil
	}

	img, err := s.bingClient.Today(ctx)
	if err != nil {
		s.logger.Warn("bing metadata fetch failed", "error", err)
		return s.bingFallback(ctx, err)
	}

	filename := today
	if date, derr := img.Date(); derr == nil {
		filename = bingFilename(date)
	}
	if wp := s.cachedBing(ctx, filename); wp != nil {
		return wp, nil
	}

	data, err := s.bingClient.DownloadUHD(ctx, img)
	if err != nil {
		s.logger.Warn("bing image download failed", "error", err)
		return s.bingFallback(ctx, err)
	}

	blurhash, err := wallpapers.ComputeBlurHash(data)
	if err != nil {
		s.logger.Warn("blurhash computation failed", "error", err)
	}
	if err := s.storage.Save(domain.WallpaperTypeBing, filename, data); err != nil {
		return nil, fmt.Errorf("save bing wallpaper: %w", err)
	}

	wp, err := s.createRecord(ctx, domain.WallpaperTypeBing, filename, int64(len(data)), blurhash)
	if err != nil {
		return nil, err
	}

	s.logger.Info("bing wallpaper synced", "filename", filename, "size", wp.Size)
	return wp, nil
}

// cachedBing returns the record for filename when both the row and the file
// exist. A row without its file forces a re-download.
func (s *WallpaperService) cachedBing(ctx context.Context, filename string) *domain.Wallpaper {
	wp, err := s.store.GetWallpaperByFilename(ctx, filename)
	if err != nil {
		return nil
	}
	if !s.storage.Exists(domain.WallpaperTypeBing, wp.Filename) {
		return nil
	}
	return wp
}

// bingFallback serves the most recent cached Bing wallpaper after a remote
// failure, or reports unavailable when nothing is cached.
func (s *WallpaperService) bingFallback(ctx context.Context, cause error) (*domain.Wallpaper, error) {
	wp, err := s.store.LatestWallpaper(ctx, domain.WallpaperTypeBing)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domainerrors.Unavailable("bing wallpaper unavailable").Wrap(cause)
		}
		return nil, fmt.Errorf("latest bing wallpaper: %w", err)
	}
	s.logger.Info("serving cached bing wallpaper", "filename", wp.Filename)
	return wp, nil
}

func (s *WallpaperService) createRecord(ctx context.Context, wpType domain.WallpaperType, filename string, size int64, blurhash string) (*domain.Wallpaper, error) {
	wpID, err := id.Generate("wp")
	if err != nil {
		return nil, fmt.Errorf("generate wallpaper ID: %w", err)
	}
	wp := &domain.Wallpaper{
		ID:        wpID,
		URL:       wallpaperAssetURL(wpType, filename),
		Type:      wpType,
		Filename:  filename,
		Size:      size,
		Blurhash:  blurhash,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateWallpaper(ctx, wp); err != nil {
		if store.IsAlreadyExists(err) {
			// Lost a race against another writer for the same filename.
			return s.store.GetWallpaperByFilename(ctx, filename)
		}
		return nil, fmt.Errorf("create wallpaper record: %w", err)
	}
	return wp, nil
}

func wallpaperAssetURL(wpType domain.WallpaperType, filename string) string {
	return "/assets/wallpapers/" + string(wpType) + "/" + filename
}

// bingFilename is the date-keyed filename for a Bing image-of-the-day.
func bingFilename(date time.Time) string {
	return "bing-" + date.Format("2006-01-02") + ".jpg"
}
