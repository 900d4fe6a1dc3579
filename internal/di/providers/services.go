package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/launchdeckapp/launchdeck-server/internal/auth"
	"github.com/launchdeckapp/launchdeck-server/internal/bing"
	"github.com/launchdeckapp/launchdeck-server/internal/config"
	"github.com/launchdeckapp/launchdeck-server/internal/logger"
	"github.com/launchdeckapp/launchdeck-server/internal/media/icons"
	"github.com/launchdeckapp/launchdeck-server/internal/service"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideSiteService provides the site service.
func ProvideSiteService(i do.Injector) (*service.SiteService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	storages := do.MustInvoke[*MediaStorages](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	downloader := icons.NewDownloader(storages.Icons, log.Logger)

	return service.NewSiteService(storeHandle.Store, storages.Icons, downloader, indexHandle.SiteIndex, log.Logger), nil
}

// ProvideCategoryService provides the category service.
func ProvideCategoryService(i do.Injector) (*service.CategoryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	siteService := do.MustInvoke[*service.SiteService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCategoryService(storeHandle.Store, siteService, log.Logger), nil
}

// SettingsServiceHandle wraps the settings service so pending coalesced
// writes are flushed on shutdown.
type SettingsServiceHandle struct {
	*service.SettingsService
}

// Shutdown implements do.Shutdownable.
func (h *SettingsServiceHandle) Shutdown() error {
	return h.Close()
}

// ProvideSettingsService provides the settings service.
func ProvideSettingsService(i do.Injector) (*SettingsServiceHandle, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return &SettingsServiceHandle{
		SettingsService: service.NewSettingsService(storeHandle.Store, log.Logger),
	}, nil
}

// ProvideWallpaperService provides the wallpaper service.
func ProvideWallpaperService(i do.Injector) (*service.WallpaperService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	storages := do.MustInvoke[*MediaStorages](i)
	log := do.MustInvoke[*logger.Logger](i)

	bingClient := bing.NewClient(cfg.Bing.Market, log.Logger)

	return service.NewWallpaperService(
		storeHandle.Store,
		storages.Wallpapers,
		bingClient,
		cfg.Storage.MaxUploadSize,
		log.Logger,
	), nil
}

// WallpaperRegistrarHandle runs the wallpaper directory watcher for its
// lifetime and stops it on shutdown.
type WallpaperRegistrarHandle struct {
	*service.WallpaperRegistrar
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *WallpaperRegistrarHandle) Shutdown() error {
	h.cancel()
	return h.Close()
}

// ProvideWallpaperRegistrar provides the watcher that keeps wallpaper
// records in sync with files dropped into or removed from the directory.
func ProvideWallpaperRegistrar(i do.Injector) (*WallpaperRegistrarHandle, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	storages := do.MustInvoke[*MediaStorages](i)
	log := do.MustInvoke[*logger.Logger](i)

	registrar, err := service.NewWallpaperRegistrar(storeHandle.Store, storages.Wallpapers, log.Logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go registrar.Run(ctx)

	log.Info("Wallpaper directory watcher started")

	return &WallpaperRegistrarHandle{WallpaperRegistrar: registrar, cancel: cancel}, nil
}

// ProvideFontService provides the custom font service.
func ProvideFontService(i do.Injector) (*service.FontService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	settingsHandle := do.MustInvoke[*SettingsServiceHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFontService(storeHandle.Store, settingsHandle.SettingsService, log.Logger), nil
}

// ProvideWidgetService provides the todo and countdown service.
func ProvideWidgetService(i do.Injector) (*service.WidgetService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewWidgetService(storeHandle.Store, log.Logger), nil
}

// ProvideBackupService provides the export/import service.
func ProvideBackupService(i do.Injector) (*service.BackupService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	storages := do.MustInvoke[*MediaStorages](i)
	searchService := do.MustInvoke[*service.SearchService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBackupService(storeHandle.Store, storages.Wallpapers, searchService, log.Logger), nil
}
