// Package di provides dependency injection configuration for the LaunchDeck server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/launchdeckapp/launchdeck-server/internal/auth"
	"github.com/launchdeckapp/launchdeck-server/internal/config"
	"github.com/launchdeckapp/launchdeck-server/internal/di/providers"
	"github.com/launchdeckapp/launchdeck-server/internal/logger"
	"github.com/launchdeckapp/launchdeck-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideMediaStorages)

	// Search and metadata
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)
	do.Provide(injector, providers.ProvidePageMetaService)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)
	do.Provide(injector, providers.ProvideAuthService)

	// Business services
	do.Provide(injector, providers.ProvideSiteService)
	do.Provide(injector, providers.ProvideCategoryService)
	do.Provide(injector, providers.ProvideSettingsService)
	do.Provide(injector, providers.ProvideWallpaperService)
	do.Provide(injector, providers.ProvideFontService)
	do.Provide(injector, providers.ProvideWidgetService)
	do.Provide(injector, providers.ProvideBackupService)

	// Workers
	do.Provide(injector, providers.ProvideWallpaperRegistrar)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)
	do.Provide(injector, providers.ProvideMDNSService)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.MediaStorages](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*providers.PageMetaHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.SiteService](injector)
	_ = do.MustInvoke[*service.CategoryService](injector)
	_ = do.MustInvoke[*providers.SettingsServiceHandle](injector)
	_ = do.MustInvoke[*service.WallpaperService](injector)
	_ = do.MustInvoke[*service.FontService](injector)
	_ = do.MustInvoke[*service.WidgetService](injector)
	_ = do.MustInvoke[*service.BackupService](injector)

	// Workers
	_ = do.MustInvoke[*providers.WallpaperRegistrarHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)
	_ = do.MustInvoke[*providers.MDNSServiceHandle](injector)

	return nil
}
