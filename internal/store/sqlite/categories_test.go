package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	"github.com/launchdeckapp/launchdeck-server/internal/store"
)

func makeTestCategory(name string, order int) *domain.Category {
	now := time.Now()
	return &domain.Category{
		Name:      name,
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateAndGetCategory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cat := makeTestCategory("Reading", 2)
	cat.Color = "#33AAFF"
	cat.IsHidden = true

	if err := s.CreateCategory(ctx, cat); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	got, err := s.GetCategory(ctx, "Reading")
	if err != nil {
		t.Fatalf("GetCategory: %v", err)
	}
	if got.Order != 2 {
		t.Errorf("Order: got %d, want 2", got.Order)
	}
	if got.Color != "#33AAFF" {
		t.Errorf("Color: got %q", got.Color)
	}
	if !got.IsHidden {
		t.Error("IsHidden: got false, want true")
	}

	if err := s.CreateCategory(ctx, makeTestCategory("Reading", 0)); !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("duplicate: expected ErrAlreadyExists, got %v", err)
	}
}

func TestRenameCategoryCascadesToSites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateCategory(ctx, makeTestCategory("Work", 0)); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	for _, id := range []string{"site-a", "site-b"} {
		if err := s.CreateSite(ctx, makeTestSite(id, id, "Work")); err != nil {
			t.Fatalf("CreateSite: %v", err)
		}
	}
	if err := s.CreateSite(ctx, makeTestSite("site-c", "C", "Play")); err != nil {
		t.Fatalf("CreateSite: %v", err)
	}

	if err := s.RenameCategory(ctx, "Work", "Office"); err != nil {
		t.Fatalf("RenameCategory: %v", err)
	}

	if _, err := s.GetCategory(ctx, "Work"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("old name still resolves: %v", err)
	}
	if _, err := s.GetCategory(ctx, "Office"); err != nil {
		t.Errorf("new name missing: %v", err)
	}

	moved, err := s.ListSitesByCategory(ctx, "Office")
	if err != nil {
		t.Fatalf("ListSitesByCategory: %v", err)
	}
	if len(moved) != 2 {
		t.Errorf("expected 2 sites under Office, got %d", len(moved))
	}

	// Unrelated categories untouched.
	play, _ := s.ListSitesByCategory(ctx, "Play")
	if len(play) != 1 {
		t.Errorf("expected 1 site under Play, got %d", len(play))
	}
}

func TestRenameCategoryErrors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.RenameCategory(ctx, "Nope", "New"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing: expected ErrNotFound, got %v", err)
	}

	if err := s.CreateCategory(ctx, makeTestCategory("A", 0)); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateCategory(ctx, makeTestCategory("B", 1)); err != nil {
		t.Fatal(err)
	}
	if err := s.RenameCategory(ctx, "A", "B"); !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("collision: expected ErrAlreadyExists, got %v", err)
	}
}

func TestReplaceCategoryOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, name := range []string{"A", "B", "C"} {
		if err := s.CreateCategory(ctx, makeTestCategory(name, i)); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.ReplaceCategoryOrdering(ctx, []string{"C", "A", "B"}); err != nil {
		t.Fatalf("ReplaceCategoryOrdering: %v", err)
	}

	cats, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	want := []string{"C", "A", "B"}
	for i, cat := range cats {
		if cat.Name != want[i] {
			t.Errorf("position %d: got %q, want %q", i, cat.Name, want[i])
		}
	}
}

func TestDeleteCategory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateCategory(ctx, makeTestCategory("Tmp", 0)); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteCategory(ctx, "Tmp"); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if err := s.DeleteCategory(ctx, "Tmp"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// First access creates an empty singleton.
	first, err := s.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if first.ID != domain.GlobalSettingsID {
		t.Errorf("ID: got %q", first.ID)
	}

	first.Layout = []byte(`{"columns":6}`)
	first.Theme = []byte(`{"mode":"dark"}`)
	first.SearchEngine = "duckduckgo"
	first.UpdatedAt = time.Now()
	if err := s.ReplaceSettings(ctx, first); err != nil {
		t.Fatalf("ReplaceSettings: %v", err)
	}

	got, err := s.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if string(got.Layout) != `{"columns":6}` {
		t.Errorf("Layout: got %s", got.Layout)
	}
	if string(got.Theme) != `{"mode":"dark"}` {
		t.Errorf("Theme: got %s", got.Theme)
	}
	if got.SearchEngine != "duckduckgo" {
		t.Errorf("SearchEngine: got %q", got.SearchEngine)
	}
	if got.Config != nil {
		t.Errorf("Config: expected nil, got %s", got.Config)
	}
}
