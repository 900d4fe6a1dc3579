package backup

import (
	"context"
	"encoding/base64"
	"log/slog"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	"github.com/launchdeckapp/launchdeck-server/internal/media/wallpapers"
	"github.com/launchdeckapp/launchdeck-server/internal/store"
)

// Exporter builds backup documents from the store.
type Exporter struct {
	store     store.Store
	wpStorage *wallpapers.Storage
	logger    *slog.Logger
}

// NewExporter creates an exporter. wpStorage may be nil; the wallpaper is
// then never inlined.
func NewExporter(s store.Store, wpStorage *wallpapers.Storage, logger *slog.Logger) *Exporter {
	return &Exporter{store: s, wpStorage: wpStorage, logger: logger}
}

// Export assembles the full backup document. Export is best-effort: a
// failing section is skipped and reported in warnings rather than failing
// the whole export.
func (e *Exporter) Export(ctx context.Context) (*Document, []string) {
	doc := &Document{
		Sites:            []domain.Site{},
		Categories:       []string{},
		CategoryColors:   map[string]string{},
		HiddenCategories: []string{},
		CustomFonts:      []domain.CustomFont{},
		Todos:            []domain.Todo{},
		Countdowns:       []domain.Countdown{},
	}
	var warnings []string

	warn := func(section string, err error) {
		e.logger.Warn("backup section failed", "section", section, "error", err)
		warnings = append(warnings, section+": "+err.Error())
	}

	if sites, err := e.store.ListSites(ctx); err != nil {
		warn("sites", err)
	} else {
		doc.Sites = sites
	}

	if cats, err := e.store.ListCategories(ctx); err != nil {
		warn("categories", err)
	} else {
		for _, cat := range cats {
			doc.Categories = append(doc.Categories, cat.Name)
			if cat.Color != "" {
				doc.CategoryColors[cat.Name] = cat.Color
			}
			if cat.IsHidden {
				doc.HiddenCategories = append(doc.HiddenCategories, cat.Name)
			}
		}
	}

	if settings, err := e.store.GetSettings(ctx); err != nil {
		warn("settings", err)
	} else {
		doc.Layout = settings.Layout
		doc.Config = settings.Config
		doc.Theme = settings.Theme
		doc.SearchEngine = settings.SearchEngine
	}

	if fonts, err := e.store.ListFonts(ctx); err != nil {
		warn("customFonts", err)
	} else {
		doc.CustomFonts = fonts
	}

	if todos, err := e.store.ListTodos(ctx); err != nil {
		warn("todos", err)
	} else {
		doc.Todos = todos
	}

	if cds, err := e.store.ListCountdowns(ctx); err != nil {
		warn("countdowns", err)
	} else {
		doc.Countdowns = cds
	}

	e.inlineWallpaper(ctx, doc, &warnings)

	return doc, warnings
}

// inlineWallpaper embeds the most recent custom wallpaper, best-effort.
// Bing wallpapers are refetchable and never inlined.
func (e *Exporter) inlineWallpaper(ctx context.Context, doc *Document, warnings *[]string) {
	if e.wpStorage == nil {
		return
	}

	wp, err := e.store.LatestWallpaper(ctx, domain.WallpaperTypeCustom)
	if err != nil {
		if !store.IsNotFound(err) {
			*warnings = append(*warnings, "wallpaper: "+err.Error())
		}
		return
	}

	data, err := e.wpStorage.Get(domain.WallpaperTypeCustom, wp.Filename)
	if err != nil {
		e.logger.Warn("backup wallpaper inline failed", "filename", wp.Filename, "error", err)
		*warnings = append(*warnings, "wallpaper: "+err.Error())
		return
	}

	doc.Wallpaper = &InlineWallpaper{
		Filename: wp.Filename,
		Data:     base64.StdEncoding.EncodeToString(data),
		Blurhash: wp.Blurhash,
	}
}
