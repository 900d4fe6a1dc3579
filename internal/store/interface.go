// Package store defines the persistence interface for the LaunchDeck server.
package store

import (
	"context"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Sites
	CreateSite(ctx context.Context, site *domain.Site) error
	GetSite(ctx context.Context, id string) (*domain.Site, error)
	UpdateSite(ctx context.Context, site *domain.Site) error
	UpsertSite(ctx context.Context, site *domain.Site) error
	DeleteSite(ctx context.Context, id string) error
	ListSites(ctx context.Context) ([]domain.Site, error)
	ListSitesByCategory(ctx context.Context, category string) ([]domain.Site, error)
	ListChildren(ctx context.Context, folderID string) ([]domain.Site, error)
	ReplaceSiteOrdering(ctx context.Context, sites []domain.Site) error
	NextSiteOrder(ctx context.Context, category, parentID string) (int, error)

	// Categories
	CreateCategory(ctx context.Context, cat *domain.Category) error
	GetCategory(ctx context.Context, name string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, cat *domain.Category) error
	UpsertCategory(ctx context.Context, cat *domain.Category) error
	DeleteCategory(ctx context.Context, name string) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	RenameCategory(ctx context.Context, oldName, newName string) error
	ReplaceCategoryOrdering(ctx context.Context, names []string) error

	// Global settings (singleton row)
	GetSettings(ctx context.Context) (*domain.GlobalSettings, error)
	ReplaceSettings(ctx context.Context, settings *domain.GlobalSettings) error

	// Wallpapers
	CreateWallpaper(ctx context.Context, wp *domain.Wallpaper) error
	GetWallpaper(ctx context.Context, id string) (*domain.Wallpaper, error)
	GetWallpaperByFilename(ctx context.Context, filename string) (*domain.Wallpaper, error)
	DeleteWallpaper(ctx context.Context, id string) error
	ListWallpapers(ctx context.Context) ([]domain.Wallpaper, error)
	LatestWallpaper(ctx context.Context, wpType domain.WallpaperType) (*domain.Wallpaper, error)

	// Custom fonts
	CreateFont(ctx context.Context, font *domain.CustomFont) error
	UpsertFont(ctx context.Context, font *domain.CustomFont) error
	GetFont(ctx context.Context, id string) (*domain.CustomFont, error)
	DeleteFont(ctx context.Context, id string) error
	ListFonts(ctx context.Context) ([]domain.CustomFont, error)

	// Widgets
	CreateTodo(ctx context.Context, todo *domain.Todo) error
	UpsertTodo(ctx context.Context, todo *domain.Todo) error
	UpdateTodo(ctx context.Context, todo *domain.Todo) error
	GetTodo(ctx context.Context, id string) (*domain.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
	ListTodos(ctx context.Context) ([]domain.Todo, error)
	CreateCountdown(ctx context.Context, cd *domain.Countdown) error
	UpsertCountdown(ctx context.Context, cd *domain.Countdown) error
	GetCountdown(ctx context.Context, id string) (*domain.Countdown, error)
	DeleteCountdown(ctx context.Context, id string) error
	ListCountdowns(ctx context.Context) ([]domain.Countdown, error)

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CountUsers(ctx context.Context) (int, error)
}
