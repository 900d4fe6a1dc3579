package backup

import (
	"context"
	"encoding/json"
	"log/slog"
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

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seed(t *testing.T, s *sqlite.Store) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	for i, name := range []string{"Work", "Play"} {
		cat := &domain.Category{Name: name, Order: i, CreatedAt: now, UpdatedAt: now}
		if name == "Play" {
			cat.Color = "#AA00FF"
			cat.IsHidden = true
		}
		require.NoError(t, s.CreateCategory(ctx, cat))
	}

	folder := &domain.Site{ID: "site-f", Name: "Tools", Category: "Work", Type: domain.SiteTypeFolder, IconMode: domain.IconModeAuto, CreatedAt: now, UpdatedAt: now}
	child := &domain.Site{ID: "site-c", Name: "CI", URL: "https://ci.example.com", Category: "Work", ParentID: "site-f", Type: domain.SiteTypeLink, IconMode: domain.IconModeAuto, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.CreateSite(ctx, folder))
	require.NoError(t, s.CreateSite(ctx, child))

	settings := &domain.GlobalSettings{
		ID:           domain.GlobalSettingsID,
		Layout:       json.RawMessage(`{"columns":5}`),
		Theme:        json.RawMessage(`{"mode":"dark"}`),
		SearchEngine: "kagi",
		UpdatedAt:    now,
	}
	require.NoError(t, s.ReplaceSettings(ctx, settings))

	require.NoError(t, s.CreateFont(ctx, &domain.CustomFont{ID: "font-1", Name: "Inter", Family: "Inter", CreatedAt: now}))
	require.NoError(t, s.CreateTodo(ctx, &domain.Todo{ID: "todo-1", Text: "ship backup", CreatedAt: now}))
	require.NoError(t, s.CreateCountdown(ctx, &domain.Countdown{ID: "cd-1", Label: "Trip", Date: now.Add(240 * time.Hour), CreatedAt: now}))
}

func TestExportShape(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	exporter := NewExporter(s, nil, testLogger())
	doc, warnings := exporter.Export(context.Background())

	assert.Empty(t, warnings)
	assert.Len(t, doc.Sites, 2)
	assert.Equal(t, []string{"Work", "Play"}, doc.Categories)
	assert.Equal(t, map[string]string{"Play": "#AA00FF"}, doc.CategoryColors)
	assert.Equal(t, []string{"Play"}, doc.HiddenCategories)
	assert.JSONEq(t, `{"columns":5}`, string(doc.Layout))
	assert.Equal(t, "kagi", doc.SearchEngine)
	assert.Len(t, doc.CustomFonts, 1)
	assert.Len(t, doc.Todos, 1)
	assert.Len(t, doc.Countdowns, 1)
}

func TestImportExportRoundTrip(t *testing.T) {
	src := newTestStore(t)
	seed(t, src)
	ctx := context.Background()

	doc, warnings := NewExporter(src, nil, testLogger()).Export(ctx)
	require.Empty(t, warnings)

	// The document survives JSON serialization intact.
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	var decoded Document
	require.NoError(t, json.Unmarshal(raw, &decoded))

	dst := newTestStore(t)
	result := NewImporter(dst, nil, testLogger()).Import(ctx, &decoded)
	assert.Zero(t, result.Failed, "failures: %+v", result.Failures)

	// Exporting the destination yields the same state.
	doc2, _ := NewExporter(dst, nil, testLogger()).Export(ctx)
	assert.Equal(t, doc.Categories, doc2.Categories)
	assert.Equal(t, doc.CategoryColors, doc2.CategoryColors)
	assert.Equal(t, doc.HiddenCategories, doc2.HiddenCategories)
	assert.Equal(t, doc.SearchEngine, doc2.SearchEngine)
	require.Len(t, doc2.Sites, len(doc.Sites))

	bySiteID := map[string]domain.Site{}
	for _, site := range doc2.Sites {
		bySiteID[site.ID] = site
	}
	for _, want := range doc.Sites {
		got, ok := bySiteID[want.ID]
		require.True(t, ok, "missing site %s", want.ID)
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Category, got.Category)
		assert.Equal(t, want.ParentID, got.ParentID)
		assert.Equal(t, want.Order, got.Order)
	}
}

func TestImportLenientPerItem(t *testing.T) {
	dst := newTestStore(t)
	ctx := context.Background()

	doc := &Document{
		Categories: []string{"Work", ""},
		Sites: []domain.Site{
			{ID: "site-ok", Name: "Fine", Category: "Work"},
			{ID: "site-bad", Name: "", Category: "Work"}, // rejected
		},
		Todos: []domain.Todo{
			{ID: "todo-ok", Text: "water plants"},
			{Text: ""}, // rejected
		},
	}

	result := NewImporter(dst, nil, testLogger()).Import(ctx, doc)

	assert.Equal(t, 3, result.Succeeded) // Work, site-ok, todo-ok
	assert.Equal(t, 3, result.Failed)
	assert.Len(t, result.Failures, 3)

	// The good items landed despite the bad ones.
	if _, err := dst.GetSite(ctx, "site-ok"); err != nil {
		t.Errorf("site-ok missing: %v", err)
	}
	if _, err := dst.GetTodo(ctx, "todo-ok"); err != nil {
		t.Errorf("todo-ok missing: %v", err)
	}
}

func TestImportCreatesMissingCategories(t *testing.T) {
	dst := newTestStore(t)
	ctx := context.Background()

	doc := &Document{
		Sites: []domain.Site{{ID: "site-1", Name: "Orphan", Category: "Uncatalogued"}},
	}
	result := NewImporter(dst, nil, testLogger()).Import(ctx, doc)
	require.Zero(t, result.Failed)

	if _, err := dst.GetCategory(ctx, "Uncatalogued"); err != nil {
		t.Errorf("category not auto-created: %v", err)
	}
}

func TestWallpaperInlineRoundTrip(t *testing.T) {
	ctx := context.Background()

	srcStore := newTestStore(t)
	srcWp, err := wallpapers.NewStorage(t.TempDir())
	require.NoError(t, err)

	data := []byte("pretend-image-bytes")
	require.NoError(t, srcWp.Save(domain.WallpaperTypeCustom, "beach.png", data))
	require.NoError(t, srcStore.CreateWallpaper(ctx, &domain.Wallpaper{
		ID: "wp-1", URL: "/assets/wallpapers/custom/beach.png",
		Type: domain.WallpaperTypeCustom, Filename: "beach.png",
		Size: int64(len(data)), Blurhash: "LKO2?U%2Tw=w", CreatedAt: time.Now(),
	}))

	doc, _ := NewExporter(srcStore, srcWp, testLogger()).Export(ctx)
	require.NotNil(t, doc.Wallpaper)
	assert.Equal(t, "beach.png", doc.Wallpaper.Filename)

	dstStore := newTestStore(t)
	dstWp, err := wallpapers.NewStorage(t.TempDir())
	require.NoError(t, err)

	result := NewImporter(dstStore, dstWp, testLogger()).Import(ctx, doc)
	require.Zero(t, result.Failed, "failures: %+v", result.Failures)

	restored, err := dstWp.Get(domain.WallpaperTypeCustom, "beach.png")
	require.NoError(t, err)
	assert.Equal(t, data, restored)

	wp, err := dstStore.GetWallpaperByFilename(ctx, "beach.png")
	require.NoError(t, err)
	assert.Equal(t, "LKO2?U%2Tw=w", wp.Blurhash)
}
