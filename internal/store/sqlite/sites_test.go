package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	"github.com/launchdeckapp/launchdeck-server/internal/store"
)

// makeTestSite creates a domain.Site with sensible defaults for testing.
func makeTestSite(id, name, category string) *domain.Site {
	now := time.Now()
	return &domain.Site{
		ID:        id,
		Name:      name,
		URL:       "https://example.com/" + id,
		Category:  category,
		IconMode:  domain.IconModeAuto,
		Type:      domain.SiteTypeLink,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateAndGetSite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	site := makeTestSite("site-1", "Hacker News", "Reading")
	site.Description = "Tech news aggregator"
	site.Color = "#FF6600"
	site.Icon = "/assets/icons/site-site-1.png?v=1"
	site.IconMode = domain.IconModeUpload
	site.Order = 3
	site.IsHidden = true
	site.Fonts = &domain.FontOverrides{TitleFamily: "Inter", TitleSize: 14}

	if err := s.CreateSite(ctx, site); err != nil {
		t.Fatalf("CreateSite: %v", err)
	}

	got, err := s.GetSite(ctx, "site-1")
	if err != nil {
		t.Fatalf("GetSite: %v", err)
	}

	if got.Name != site.Name {
		t.Errorf("Name: got %q, want %q", got.Name, site.Name)
	}
	if got.URL != site.URL {
		t.Errorf("URL: got %q, want %q", got.URL, site.URL)
	}
	if got.Description != site.Description {
		t.Errorf("Description: got %q, want %q", got.Description, site.Description)
	}
	if got.Category != site.Category {
		t.Errorf("Category: got %q, want %q", got.Category, site.Category)
	}
	if got.Color != site.Color {
		t.Errorf("Color: got %q, want %q", got.Color, site.Color)
	}
	if got.Icon != site.Icon {
		t.Errorf("Icon: got %q, want %q", got.Icon, site.Icon)
	}
	if got.IconMode != domain.IconModeUpload {
		t.Errorf("IconMode: got %q, want upload", got.IconMode)
	}
	if got.Order != 3 {
		t.Errorf("Order: got %d, want 3", got.Order)
	}
	if !got.IsHidden {
		t.Error("IsHidden: got false, want true")
	}
	if got.Fonts == nil || got.Fonts.TitleFamily != "Inter" || got.Fonts.TitleSize != 14 {
		t.Errorf("Fonts: got %+v", got.Fonts)
	}
}

func TestCreateSiteDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	site := makeTestSite("site-1", "One", "Work")
	if err := s.CreateSite(ctx, site); err != nil {
		t.Fatalf("CreateSite: %v", err)
	}
	err := s.CreateSite(ctx, makeTestSite("site-1", "Two", "Work"))
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetSiteNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetSite(context.Background(), "site-missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateSite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	site := makeTestSite("site-1", "Old", "Work")
	if err := s.CreateSite(ctx, site); err != nil {
		t.Fatalf("CreateSite: %v", err)
	}

	site.Name = "New"
	site.ParentID = ""
	site.Fonts = nil
	site.Touch()
	if err := s.UpdateSite(ctx, site); err != nil {
		t.Fatalf("UpdateSite: %v", err)
	}

	got, err := s.GetSite(ctx, "site-1")
	if err != nil {
		t.Fatalf("GetSite: %v", err)
	}
	if got.Name != "New" {
		t.Errorf("Name: got %q, want New", got.Name)
	}
	if got.Fonts != nil {
		t.Errorf("Fonts: expected nil, got %+v", got.Fonts)
	}

	err = s.UpdateSite(ctx, makeTestSite("site-ghost", "x", "Work"))
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing site, got %v", err)
	}
}

func TestUpsertSite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	site := makeTestSite("site-1", "First", "Work")
	if err := s.UpsertSite(ctx, site); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	site.Name = "Second"
	if err := s.UpsertSite(ctx, site); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := s.GetSite(ctx, "site-1")
	if err != nil {
		t.Fatalf("GetSite: %v", err)
	}
	if got.Name != "Second" {
		t.Errorf("Name: got %q, want Second", got.Name)
	}
}

func TestListSitesByCategory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	folder := makeTestSite("site-f", "Folder", "Work")
	folder.Type = domain.SiteTypeFolder
	child := makeTestSite("site-c", "Child", "Work")
	child.ParentID = "site-f"
	other := makeTestSite("site-o", "Other", "Play")

	for _, site := range []*domain.Site{folder, child, other} {
		if err := s.CreateSite(ctx, site); err != nil {
			t.Fatalf("CreateSite %s: %v", site.ID, err)
		}
	}

	work, err := s.ListSitesByCategory(ctx, "Work")
	if err != nil {
		t.Fatalf("ListSitesByCategory: %v", err)
	}
	if len(work) != 2 {
		t.Fatalf("expected 2 sites in Work, got %d", len(work))
	}
	// Root items sort before folder children.
	if work[0].ID != "site-f" {
		t.Errorf("expected root folder first, got %s", work[0].ID)
	}

	children, err := s.ListChildren(ctx, "site-f")
	if err != nil {
		t.Fatalf("ListChildren: %v", err)
	}
	if len(children) != 1 || children[0].ID != "site-c" {
		t.Errorf("unexpected children: %+v", children)
	}
}

func TestNextSiteOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	next, err := s.NextSiteOrder(ctx, "Work", "")
	if err != nil {
		t.Fatalf("NextSiteOrder empty: %v", err)
	}
	if next != 0 {
		t.Errorf("empty scope: got %d, want 0", next)
	}

	a := makeTestSite("site-a", "A", "Work")
	a.Order = 4
	if err := s.CreateSite(ctx, a); err != nil {
		t.Fatalf("CreateSite: %v", err)
	}

	next, err = s.NextSiteOrder(ctx, "Work", "")
	if err != nil {
		t.Fatalf("NextSiteOrder: %v", err)
	}
	if next != 5 {
		t.Errorf("got %d, want 5", next)
	}

	// A different parent scope counts separately.
	next, err = s.NextSiteOrder(ctx, "Work", "site-f")
	if err != nil {
		t.Fatalf("NextSiteOrder folder scope: %v", err)
	}
	if next != 0 {
		t.Errorf("folder scope: got %d, want 0", next)
	}
}

func TestReplaceSiteOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := makeTestSite("site-a", "A", "Work")
	b := makeTestSite("site-b", "B", "Work")
	b.Order = 1
	for _, site := range []*domain.Site{a, b} {
		if err := s.CreateSite(ctx, site); err != nil {
			t.Fatalf("CreateSite: %v", err)
		}
	}

	// Swap orders and move B to another category.
	a.Order = 1
	b.Order = 0
	b.Category = "Play"
	a.Touch()
	b.Touch()
	if err := s.ReplaceSiteOrdering(ctx, []domain.Site{*a, *b}); err != nil {
		t.Fatalf("ReplaceSiteOrdering: %v", err)
	}

	gotA, _ := s.GetSite(ctx, "site-a")
	gotB, _ := s.GetSite(ctx, "site-b")
	if gotA.Order != 1 {
		t.Errorf("A order: got %d, want 1", gotA.Order)
	}
	if gotB.Category != "Play" || gotB.Order != 0 {
		t.Errorf("B: got category=%q order=%d", gotB.Category, gotB.Order)
	}
}

func TestReplaceSiteOrderingUnknownIDRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := makeTestSite("site-a", "A", "Work")
	if err := s.CreateSite(ctx, a); err != nil {
		t.Fatalf("CreateSite: %v", err)
	}

	a.Order = 7
	ghost := makeTestSite("site-ghost", "Ghost", "Work")
	err := s.ReplaceSiteOrdering(ctx, []domain.Site{*a, *ghost})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// The transaction must have rolled back A's update.
	got, _ := s.GetSite(ctx, "site-a")
	if got.Order != 0 {
		t.Errorf("order after rollback: got %d, want 0", got.Order)
	}
}

func TestDeleteSite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateSite(ctx, makeTestSite("site-1", "A", "Work")); err != nil {
		t.Fatalf("CreateSite: %v", err)
	}
	if err := s.DeleteSite(ctx, "site-1"); err != nil {
		t.Fatalf("DeleteSite: %v", err)
	}
	if err := s.DeleteSite(ctx, "site-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
