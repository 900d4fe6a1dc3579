package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	domainerrors "github.com/launchdeckapp/launchdeck-server/internal/errors"
)

func TestCreateSiteGeneratesIDAndOrder(t *testing.T) {
	svc, _ := newTestSiteService(t)
	ctx := context.Background()

	first := mustCreateSite(t, svc, CreateSiteRequest{Name: "GitHub", Category: "Dev"})
	second := mustCreateSite(t, svc, CreateSiteRequest{Name: "GitLab", Category: "Dev"})

	assert.NotEmpty(t, first.ID)
	assert.Equal(t, 0, first.Order)
	assert.Equal(t, 1, second.Order)
	assert.Equal(t, domain.SiteTypeLink, first.Type)
	assert.Equal(t, domain.IconModeAuto, first.IconMode)

	// The category row was auto-created.
	cats, err := svc.store.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Dev", cats[0].Name)
}

func TestCreateSiteHonorsClientID(t *testing.T) {
	svc, _ := newTestSiteService(t)

	site := mustCreateSite(t, svc, CreateSiteRequest{ID: "site-client", Name: "News", Category: "Read"})
	assert.Equal(t, "site-client", site.ID)

	_, err := svc.Create(context.Background(), CreateSiteRequest{ID: "site-client", Name: "Dup", Category: "Read"})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestCreateSiteRejectsBadParent(t *testing.T) {
	svc, _ := newTestSiteService(t)
	ctx := context.Background()

	folder := mustCreateFolder(t, svc, "Tools", "Dev")
	plain := mustCreateSite(t, svc, CreateSiteRequest{Name: "Plain", Category: "Dev"})

	// Missing parent.
	_, err := svc.Create(ctx, CreateSiteRequest{Name: "X", Category: "Dev", ParentID: "site-nope"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	// Parent is not a folder.
	_, err = svc.Create(ctx, CreateSiteRequest{Name: "X", Category: "Dev", ParentID: plain.ID})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	// Parent in a different category.
	_, err = svc.Create(ctx, CreateSiteRequest{Name: "X", Category: "Play", ParentID: folder.ID})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	// Folders never nest.
	_, err = svc.Create(ctx, CreateSiteRequest{Name: "Y", Category: "Dev", Type: domain.SiteTypeFolder, ParentID: folder.ID})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	// Orders are scoped per (category, parent).
	child := mustCreateSite(t, svc, CreateSiteRequest{Name: "CI", Category: "Dev", ParentID: folder.ID})
	assert.Equal(t, 0, child.Order)
}

func TestUpdateSitePatchesFields(t *testing.T) {
	svc, _ := newTestSiteService(t)
	ctx := context.Background()

	site := mustCreateSite(t, svc, CreateSiteRequest{Name: "HN", URL: "https://news.ycombinator.com", Category: "Read"})

	newName := "Hacker News"
	hidden := true
	updated, err := svc.Update(ctx, site.ID, SiteUpdate{Name: &newName, IsHidden: &hidden})
	require.NoError(t, err)
	assert.Equal(t, "Hacker News", updated.Name)
	assert.True(t, updated.IsHidden)
	assert.Equal(t, site.URL, updated.URL)

	empty := ""
	_, err = svc.Update(ctx, site.ID, SiteUpdate{Name: &empty})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = svc.Update(ctx, "site-missing", SiteUpdate{Name: &newName})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestDeleteFolderPromotesChildren(t *testing.T) {
	svc, st := newTestSiteService(t)
	ctx := context.Background()

	root := mustCreateSite(t, svc, CreateSiteRequest{Name: "Root", Category: "Dev"})
	folder := mustCreateFolder(t, svc, "Tools", "Dev")
	child := mustCreateSite(t, svc, CreateSiteRequest{Name: "CI", Category: "Dev", ParentID: folder.ID})

	require.NoError(t, svc.Delete(ctx, folder.ID, false))

	promoted, err := st.GetSite(ctx, child.ID)
	require.NoError(t, err)
	assert.Empty(t, promoted.ParentID)
	assert.Equal(t, "Dev", promoted.Category)
	// Appended after the existing root item.
	assert.Greater(t, promoted.Order, root.Order)

	_, err = svc.Get(ctx, folder.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestDeleteFolderWithContents(t *testing.T) {
	svc, st := newTestSiteService(t)
	ctx := context.Background()

	folder := mustCreateFolder(t, svc, "Tools", "Dev")
	child := mustCreateSite(t, svc, CreateSiteRequest{Name: "CI", Category: "Dev", ParentID: folder.ID})
	bystander := mustCreateSite(t, svc, CreateSiteRequest{Name: "Docs", Category: "Dev"})

	require.NoError(t, svc.Delete(ctx, folder.ID, true))

	_, err := st.GetSite(ctx, child.ID)
	assert.Error(t, err)
	_, err = st.GetSite(ctx, bystander.ID)
	assert.NoError(t, err)
}

func TestReplaceAllReindexesAndValidates(t *testing.T) {
	svc, _ := newTestSiteService(t)
	ctx := context.Background()

	a := mustCreateSite(t, svc, CreateSiteRequest{Name: "A", Category: "Dev"})
	b := mustCreateSite(t, svc, CreateSiteRequest{Name: "B", Category: "Dev"})
	folder := mustCreateFolder(t, svc, "F", "Dev")

	// Drop A into the folder with the in-gesture sentinel order; swap B first.
	result, err := svc.ReplaceAll(ctx, []SitePlacement{
		{ID: b.ID, Category: "Dev", Order: 0},
		{ID: folder.ID, Category: "Dev", Order: 1},
		{ID: a.ID, Category: "Dev", ParentID: folder.ID, Order: domain.FolderAppendOrder},
	})
	require.NoError(t, err)

	byID := make(map[string]domain.Site)
	for _, s := range result {
		byID[s.ID] = s
	}
	assert.Equal(t, 0, byID[b.ID].Order)
	assert.Equal(t, 1, byID[folder.ID].Order)
	// Sentinel collapsed to a dense index inside the folder scope.
	assert.Equal(t, folder.ID, byID[a.ID].ParentID)
	assert.Equal(t, 0, byID[a.ID].Order)
}

func TestReplaceAllRejectsInvariantViolations(t *testing.T) {
	svc, _ := newTestSiteService(t)
	ctx := context.Background()

	a := mustCreateSite(t, svc, CreateSiteRequest{Name: "A", Category: "Dev"})
	folder := mustCreateFolder(t, svc, "F", "Dev")

	// Parent in a different category than the child.
	_, err := svc.ReplaceAll(ctx, []SitePlacement{
		{ID: folder.ID, Category: "Dev", Order: 0},
		{ID: a.ID, Category: "Play", ParentID: folder.ID, Order: 0},
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	// Unknown site ID.
	_, err = svc.ReplaceAll(ctx, []SitePlacement{{ID: "site-ghost", Category: "Dev", Order: 0}})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestDragIntoFolderOrdersAfterExistingChildren(t *testing.T) {
	svc, _ := newTestSiteService(t)
	ctx := context.Background()

	folder := mustCreateFolder(t, svc, "F", "Dev")
	first := mustCreateSite(t, svc, CreateSiteRequest{Name: "First", Category: "Dev", ParentID: folder.ID})
	second := mustCreateSite(t, svc, CreateSiteRequest{Name: "Second", Category: "Dev", ParentID: folder.ID})
	dragged := mustCreateSite(t, svc, CreateSiteRequest{Name: "Dragged", Category: "Dev"})

	sites, err := svc.List(ctx)
	require.NoError(t, err)

	// Mid-gesture: hover over the folder applies the append rule.
	require.True(t, domain.DragOver(sites, dragged.ID, folder.ID))

	placements := make([]SitePlacement, len(sites))
	for i, s := range sites {
		placements[i] = SitePlacement{ID: s.ID, Category: s.Category, ParentID: s.ParentID, Order: s.Order, IsHidden: s.IsHidden}
	}
	result, err := svc.ReplaceAll(ctx, placements)
	require.NoError(t, err)

	byID := make(map[string]domain.Site)
	for _, s := range result {
		byID[s.ID] = s
	}
	assert.Equal(t, folder.ID, byID[dragged.ID].ParentID)
	assert.Equal(t, 0, byID[first.ID].Order)
	assert.Equal(t, 1, byID[second.ID].Order)
	assert.Equal(t, 2, byID[dragged.ID].Order)
}

func TestSetIconFromBase64(t *testing.T) {
	svc, _ := newTestSiteService(t)
	ctx := context.Background()

	site := mustCreateSite(t, svc, CreateSiteRequest{Name: "X", Category: "Dev"})

	updated, err := svc.SetIcon(ctx, site.ID, SetIconRequest{Data: pngBase64(t)})
	require.NoError(t, err)
	assert.Equal(t, domain.IconModeUpload, updated.IconMode)
	assert.Contains(t, updated.Icon, "/assets/icons/site-"+site.ID)
	assert.Contains(t, updated.Icon, "?v=")
	assert.True(t, svc.iconStorage.Exists(site.ID))

	// Exactly one source must be given.
	_, err = svc.SetIcon(ctx, site.ID, SetIconRequest{})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	_, err = svc.SetIcon(ctx, site.ID, SetIconRequest{URL: "https://x.test/i.png", Data: "AAAA"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}
