package backup

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"time"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	"github.com/launchdeckapp/launchdeck-server/internal/id"
	"github.com/launchdeckapp/launchdeck-server/internal/media/wallpapers"
	"github.com/launchdeckapp/launchdeck-server/internal/store"
)

// Importer applies backup documents to the store with per-item leniency.
type Importer struct {
	store     store.Store
	wpStorage *wallpapers.Storage
	logger    *slog.Logger
}

// NewImporter creates an importer. wpStorage may be nil; inlined wallpapers
// are then skipped.
func NewImporter(s store.Store, wpStorage *wallpapers.Storage, logger *slog.Logger) *Importer {
	return &Importer{store: s, wpStorage: wpStorage, logger: logger}
}

// Import applies the document item by item. A bad item is recorded in the
// result and skipped; everything importable lands. Existing records with
// matching IDs are replaced.
func (i *Importer) Import(ctx context.Context, doc *Document) *Result {
	result := &Result{}

	i.importCategories(ctx, doc, result)
	i.importSites(ctx, doc, result)
	i.importSettings(ctx, doc, result)
	i.importFonts(ctx, doc, result)
	i.importWidgets(ctx, doc, result)
	i.importWallpaper(ctx, doc, result)

	i.logger.Info("backup import finished",
		"succeeded", result.Succeeded,
		"failed", result.Failed,
	)
	return result
}

func (i *Importer) importCategories(ctx context.Context, doc *Document, result *Result) {
	hidden := make(map[string]bool, len(doc.HiddenCategories))
	for _, name := range doc.HiddenCategories {
		hidden[name] = true
	}

	for order, name := range doc.Categories {
		if name == "" {
			result.fail("categories", "", errors.New("category name is empty"))
			continue
		}
		cat := &domain.Category{
			Name:     name,
			Order:    order,
			Color:    doc.CategoryColors[name],
			IsHidden: hidden[name],
		}
		cat.InitTimestamps()
		if err := i.store.UpsertCategory(ctx, cat); err != nil {
			result.fail("categories", name, err)
			continue
		}
		result.ok(1)
	}
}

func (i *Importer) importSites(ctx context.Context, doc *Document, result *Result) {
	// Folders first so children never reference a missing parent mid-import.
	ordered := make([]domain.Site, 0, len(doc.Sites))
	for _, s := range doc.Sites {
		if s.IsFolder() {
			ordered = append(ordered, s)
		}
	}
	for _, s := range doc.Sites {
		if !s.IsFolder() {
			ordered = append(ordered, s)
		}
	}

	for _, site := range ordered {
		site := site
		if site.Name == "" {
			result.fail("sites", site.ID, errors.New("site name is empty"))
			continue
		}
		if site.ID == "" {
			generated, err := id.Generate("site")
			if err != nil {
				result.fail("sites", "", err)
				continue
			}
			site.ID = generated
		}
		if site.Type == "" {
			site.Type = domain.SiteTypeLink
		}
		if site.IconMode == "" {
			site.IconMode = domain.IconModeAuto
		}
		if site.CreatedAt.IsZero() {
			site.CreatedAt = time.Now()
		}
		site.UpdatedAt = time.Now()

		// Ensure the owning category exists even when the categories
		// section omitted it.
		i.ensureCategory(ctx, site.Category)

		if err := i.store.UpsertSite(ctx, &site); err != nil {
			result.fail("sites", site.ID, err)
			continue
		}
		result.ok(1)
	}
}

func (i *Importer) ensureCategory(ctx context.Context, name string) {
	if name == "" {
		return
	}
	if _, err := i.store.GetCategory(ctx, name); err == nil {
		return
	}
	cat := &domain.Category{Name: name}
	cat.InitTimestamps()
	if err := i.store.CreateCategory(ctx, cat); err != nil && !store.IsAlreadyExists(err) {
		i.logger.Warn("import could not create category", "name", name, "error", err)
	}
}

func (i *Importer) importSettings(ctx context.Context, doc *Document, result *Result) {
	if doc.Layout == nil && doc.Config == nil && doc.Theme == nil && doc.SearchEngine == "" {
		return
	}
	settings := &domain.GlobalSettings{
		ID:           domain.GlobalSettingsID,
		Layout:       doc.Layout,
		Config:       doc.Config,
		Theme:        doc.Theme,
		SearchEngine: doc.SearchEngine,
		UpdatedAt:    time.Now(),
	}
	if err := i.store.ReplaceSettings(ctx, settings); err != nil {
		result.fail("settings", domain.GlobalSettingsID, err)
		return
	}
	result.ok(1)
}

func (i *Importer) importFonts(ctx context.Context, doc *Document, result *Result) {
	for _, font := range doc.CustomFonts {
		font := font
		if font.Family == "" {
			result.fail("customFonts", font.ID, errors.New("font family is empty"))
			continue
		}
		if font.ID == "" {
			generated, err := id.Generate("font")
			if err != nil {
				result.fail("customFonts", "", err)
				continue
			}
			font.ID = generated
		}
		if font.CreatedAt.IsZero() {
			font.CreatedAt = time.Now()
		}
		if err := i.store.UpsertFont(ctx, &font); err != nil {
			result.fail("customFonts", font.ID, err)
			continue
		}
		result.ok(1)
	}
}

func (i *Importer) importWidgets(ctx context.Context, doc *Document, result *Result) {
	for _, todo := range doc.Todos {
		todo := todo
		if todo.Text == "" {
			result.fail("todos", todo.ID, errors.New("todo text is empty"))
			continue
		}
		if todo.ID == "" {
			generated, err := id.Generate("todo")
			if err != nil {
				result.fail("todos", "", err)
				continue
			}
			todo.ID = generated
		}
		if todo.CreatedAt.IsZero() {
			todo.CreatedAt = time.Now()
		}
		if err := i.store.UpsertTodo(ctx, &todo); err != nil {
			result.fail("todos", todo.ID, err)
			continue
		}
		result.ok(1)
	}

	for _, cd := range doc.Countdowns {
		cd := cd
		if cd.Label == "" {
			result.fail("countdowns", cd.ID, errors.New("countdown label is empty"))
			continue
		}
		if cd.Date.IsZero() {
			result.fail("countdowns", cd.ID, errors.New("countdown date is missing"))
			continue
		}
		if cd.ID == "" {
			generated, err := id.Generate("cd")
			if err != nil {
				result.fail("countdowns", "", err)
				continue
			}
			cd.ID = generated
		}
		if cd.CreatedAt.IsZero() {
			cd.CreatedAt = time.Now()
		}
		if err := i.store.UpsertCountdown(ctx, &cd); err != nil {
			result.fail("countdowns", cd.ID, err)
			continue
		}
		result.ok(1)
	}
}

func (i *Importer) importWallpaper(ctx context.Context, doc *Document, result *Result) {
	if doc.Wallpaper == nil || i.wpStorage == nil {
		return
	}
	inline := doc.Wallpaper
	if inline.Filename == "" {
		result.fail("wallpaper", "", errors.New("wallpaper filename is empty"))
		return
	}

	data, err := base64.StdEncoding.DecodeString(inline.Data)
	if err != nil {
		result.fail("wallpaper", inline.Filename, err)
		return
	}
	if err := i.wpStorage.Save(domain.WallpaperTypeCustom, inline.Filename, data); err != nil {
		result.fail("wallpaper", inline.Filename, err)
		return
	}

	if _, err := i.store.GetWallpaperByFilename(ctx, inline.Filename); err == nil {
		// Record already present; the file refresh above is enough.
		result.ok(1)
		return
	}

	wpID, err := id.Generate("wp")
	if err != nil {
		result.fail("wallpaper", inline.Filename, err)
		return
	}
	wp := &domain.Wallpaper{
		ID:        wpID,
		URL:       "/assets/wallpapers/custom/" + inline.Filename,
		Type:      domain.WallpaperTypeCustom,
		Filename:  inline.Filename,
		Size:      int64(len(data)),
		Blurhash:  inline.Blurhash,
		CreatedAt: time.Now(),
	}
	if err := i.store.CreateWallpaper(ctx, wp); err != nil {
		result.fail("wallpaper", inline.Filename, err)
		return
	}
	result.ok(1)
}
