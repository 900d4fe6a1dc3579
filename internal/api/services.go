package api

import (
	"github.com/launchdeckapp/launchdeck-server/internal/pagemeta"
	"github.com/launchdeckapp/launchdeck-server/internal/service"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Auth      *service.AuthService
	Site      *service.SiteService
	Category  *service.CategoryService
	Settings  *service.SettingsService
	Wallpaper *service.WallpaperService
	Font      *service.FontService
	Widget    *service.WidgetService
	Search    *service.SearchService
	Backup    *service.BackupService
	PageMeta  *pagemeta.Service
}
