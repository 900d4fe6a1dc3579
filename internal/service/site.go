package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	domainerrors "github.com/launchdeckapp/launchdeck-server/internal/errors"
	"github.com/launchdeckapp/launchdeck-server/internal/id"
	"github.com/launchdeckapp/launchdeck-server/internal/media/icons"
	"github.com/launchdeckapp/launchdeck-server/internal/search"
	"github.com/launchdeckapp/launchdeck-server/internal/store"
)

// iconFetchTimeout bounds the background favicon download after a site create.
const iconFetchTimeout = 30 * time.Second

// SiteService manages bookmarks and folders: CRUD, bulk reordering, and
// icon assets. All mutations keep the search index in sync.
type SiteService struct {
	store          store.Store
	iconStorage    *icons.Storage
	iconDownloader *icons.Downloader
	index          *search.SiteIndex
	logger         *slog.Logger
}

// NewSiteService creates a site service.
func NewSiteService(
	s store.Store,
	iconStorage *icons.Storage,
	iconDownloader *icons.Downloader,
	index *search.SiteIndex,
	logger *slog.Logger,
) *SiteService {
	return &SiteService{
		store:          s,
		iconStorage:    iconStorage,
		iconDownloader: iconDownloader,
		index:          index,
		logger:         logger,
	}
}

// CreateSiteRequest contains a new bookmark or folder. ID is honored when the
// client supplies one (offline-first clients generate IDs locally).
type CreateSiteRequest struct {
	ID          string                `json:"id,omitempty"`
	Name        string                `json:"name" validate:"required,max=200"`
	URL         string                `json:"url,omitempty" validate:"omitempty,max=2048"`
	Description string                `json:"description,omitempty" validate:"omitempty,max=1000"`
	Category    string                `json:"category" validate:"required,max=100"`
	Color       string                `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Icon        string                `json:"icon,omitempty"`
	IconMode    domain.IconMode       `json:"iconMode,omitempty" validate:"omitempty,oneof=auto upload library"`
	Fonts       *domain.FontOverrides `json:"fonts,omitempty"`
	IsHidden    bool                  `json:"isHidden,omitempty"`
	Type        domain.SiteType       `json:"type,omitempty" validate:"omitempty,oneof=site folder"`
	ParentID    string                `json:"parentId,omitempty"`
}

// SiteUpdate contains the patchable site fields. Nil means unchanged.
type SiteUpdate struct {
	Name        *string               `json:"name,omitempty" validate:"omitempty,max=200"`
	URL         *string               `json:"url,omitempty" validate:"omitempty,max=2048"`
	Description *string               `json:"description,omitempty" validate:"omitempty,max=1000"`
	Category    *string               `json:"category,omitempty" validate:"omitempty,max=100"`
	Color       *string               `json:"color,omitempty"`
	Icon        *string               `json:"icon,omitempty"`
	IconMode    *domain.IconMode      `json:"iconMode,omitempty" validate:"omitempty,oneof=auto upload library"`
	Fonts       *domain.FontOverrides `json:"fonts,omitempty"`
	Order       *int                  `json:"order,omitempty"`
	IsHidden    *bool                 `json:"isHidden,omitempty"`
	ParentID    *string               `json:"parentId,omitempty"`
}

// SitePlacement is one entry of a bulk full-collection ordering update:
// where every site sits after a drag gesture finished.
type SitePlacement struct {
	ID       string `json:"id" validate:"required"`
	Category string `json:"category" validate:"required"`
	ParentID string `json:"parentId,omitempty"`
	Order    int    `json:"order"`
	IsHidden bool   `json:"isHidden"`
}

// SetIconRequest carries an icon source: a remote URL or inline base64 bytes.
// Exactly one must be set.
type SetIconRequest struct {
	URL  string `json:"url,omitempty" validate:"omitempty,url"`
	Data string `json:"data,omitempty"`
}

// List returns all sites ordered by category, root-before-nested, then order.
func (s *SiteService) List(ctx context.Context) ([]domain.Site, error) {
	return s.store.ListSites(ctx)
}

// Get returns a single site by ID.
func (s *SiteService) Get(ctx context.Context, siteID string) (*domain.Site, error) {
	site, err := s.store.GetSite(ctx, siteID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domainerrors.NotFound("site not found")
		}
		return nil, fmt.Errorf("get site: %w", err)
	}
	return site, nil
}

// Create adds a bookmark or folder. The new site is placed at the end of its
// (category, parent) sibling scope. For auto-icon bookmarks a favicon fetch
// is started in the background; its failure never fails the create.
func (s *SiteService) Create(ctx context.Context, req CreateSiteRequest) (*domain.Site, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	site := &domain.Site{
		ID:          req.ID,
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
		Category:    req.Category,
		Color:       req.Color,
		Icon:        req.Icon,
		IconMode:    req.IconMode,
		Fonts:       req.Fonts,
		IsHidden:    req.IsHidden,
		Type:        req.Type,
		ParentID:    req.ParentID,
	}
	if site.ID == "" {
		generated, err := id.Generate("site")
		if err != nil {
			return nil, fmt.Errorf("generate site ID: %w", err)
		}
		site.ID = generated
	}
	if site.Type == "" {
		site.Type = domain.SiteTypeLink
	}
	if site.IconMode == "" {
		site.IconMode = domain.IconModeAuto
	}

	if err := s.validateParent(ctx, site); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, site.Category); err != nil {
		return nil, err
	}

	order, err := s.store.NextSiteOrder(ctx, site.Category, site.ParentID)
	if err != nil {
		return nil, fmt.Errorf("next site order: %w", err)
	}
	site.Order = order
	site.InitTimestamps()

	if err := s.store.CreateSite(ctx, site); err != nil {
		if store.IsAlreadyExists(err) {
			return nil, domainerrors.AlreadyExists("site ID already exists")
		}
		return nil, fmt.Errorf("create site: %w", err)
	}

	s.indexSite(site)

	if !site.IsFolder() && site.URL != "" && site.IconMode == domain.IconModeAuto {
		s.fetchIconAsync(site.ID, site.URL)
	}

	s.logger.Info("site created", "site_id", site.ID, "name", site.Name, "category", site.Category)
	return site, nil
}

// Update applies a partial update.
func (s *SiteService) Update(ctx context.Context, siteID string, update SiteUpdate) (*domain.Site, error) {
	if err := validate.Validate(update); err != nil {
		return nil, err
	}

	site, err := s.Get(ctx, siteID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if *update.Name == "" {
			return nil, domainerrors.Validation("name cannot be empty")
		}
		site.Name = *update.Name
	}
	if update.URL != nil {
		site.URL = *update.URL
	}
	if update.Description != nil {
		site.Description = *update.Description
	}
	if update.Category != nil {
		site.Category = *update.Category
	}
	if update.Color != nil {
		site.Color = *update.Color
	}
	if update.Icon != nil {
		site.Icon = *update.Icon
	}
	if update.IconMode != nil {
		site.IconMode = *update.IconMode
	}
	if update.Fonts != nil {
		site.Fonts = update.Fonts
	}
	if update.Order != nil {
		site.Order = *update.Order
	}
	if update.IsHidden != nil {
		site.IsHidden = *update.IsHidden
	}
	if update.ParentID != nil {
		site.ParentID = *update.ParentID
	}

	if err := s.validateParent(ctx, site); err != nil {
		return nil, err
	}
	if update.Category != nil {
		if err := s.ensureCategory(ctx, site.Category); err != nil {
			return nil, err
		}
	}

	site.Touch()
	if err := s.store.UpdateSite(ctx, site); err != nil {
		if store.IsNotFound(err) {
			return nil, domainerrors.NotFound("site not found")
		}
		return nil, fmt.Errorf("update site: %w", err)
	}

	s.indexSite(site)
	return site, nil
}

// Delete removes a site. For folders, deleteContents selects the child
// policy: delete them too, or promote them to category roots.
func (s *SiteService) Delete(ctx context.Context, siteID string, deleteContents bool) error {
	site, err := s.Get(ctx, siteID)
	if err != nil {
		return err
	}

	if site.IsFolder() {
		children, err := s.store.ListChildren(ctx, site.ID)
		if err != nil {
			return fmt.Errorf("list folder children: %w", err)
		}
		for i := range children {
			child := &children[i]
			if deleteContents {
				if err := s.removeSite(ctx, child); err != nil {
					return err
				}
				continue
			}
			// Promote to category root, appended after existing roots.
			child.ParentID = ""
			order, err := s.store.NextSiteOrder(ctx, child.Category, "")
			if err != nil {
				return fmt.Errorf("next site order: %w", err)
			}
			child.Order = order
			child.Touch()
			if err := s.store.UpdateSite(ctx, child); err != nil {
				return fmt.Errorf("promote child %s: %w", child.ID, err)
			}
		}
	}

	if err := s.removeSite(ctx, site); err != nil {
		return err
	}

	s.logger.Info("site deleted", "site_id", siteID, "delete_contents", deleteContents)
	return nil
}

// ReplaceAll applies a full-collection ordering update: the client sends the
// placement of every site after a drag gesture. The result is validated
// against the parent/category invariant and reindexed to dense orders before
// it is written in one transaction.
func (s *SiteService) ReplaceAll(ctx context.Context, placements []SitePlacement) ([]domain.Site, error) {
	sites, err := s.store.ListSites(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}

	byID := make(map[string]*domain.Site, len(sites))
	for i := range sites {
		byID[sites[i].ID] = &sites[i]
	}

	now := time.Now()
	for _, p := range placements {
		site, ok := byID[p.ID]
		if !ok {
			return nil, domainerrors.NotFound("unknown site " + p.ID)
		}
		site.Category = p.Category
		site.ParentID = p.ParentID
		site.Order = p.Order
		site.IsHidden = p.IsHidden
		site.UpdatedAt = now
	}

	if err := domain.Validate(sites); err != nil {
		return nil, domainerrors.Validation(err.Error())
	}

	// Collapse sentinel and client-side orders to dense per-scope indexes.
	domain.SortSiblings(sites)
	domain.ReindexAll(sites)

	for _, p := range placements {
		if err := s.ensureCategory(ctx, p.Category); err != nil {
			return nil, err
		}
	}

	if err := s.store.ReplaceSiteOrdering(ctx, sites); err != nil {
		return nil, fmt.Errorf("replace site ordering: %w", err)
	}

	s.reindexAll(sites)
	return sites, nil
}

// SetIcon stores an icon for a site from a remote URL or inline base64 data,
// then flips the site to uploaded-icon mode. URL fetches are idempotent: an
// already-stored icon short-circuits without a network request.
func (s *SiteService) SetIcon(ctx context.Context, siteID string, req SetIconRequest) (*domain.Site, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	if (req.URL == "") == (req.Data == "") {
		return nil, domainerrors.Validation("exactly one of url or data must be set")
	}

	site, err := s.Get(ctx, siteID)
	if err != nil {
		return nil, err
	}

	var filename string
	if req.Data != "" {
		data, err := base64.StdEncoding.DecodeString(req.Data)
		if err != nil {
			return nil, domainerrors.Validation("data is not valid base64")
		}
		filename, err = s.iconStorage.Save(siteID, icons.ExtensionForData(data), data)
		if err != nil {
			return nil, fmt.Errorf("save icon: %w", err)
		}
	} else {
		result, err := s.iconDownloader.Download(ctx, siteID, req.URL, false)
		if err != nil {
			return nil, domainerrors.Unavailable("icon download failed").Wrap(err)
		}
		filename = result.Filename
	}

	site.Icon = iconAssetURL(filename)
	site.IconMode = domain.IconModeUpload
	site.Touch()
	if err := s.store.UpdateSite(ctx, site); err != nil {
		return nil, fmt.Errorf("update site icon: %w", err)
	}

	s.indexSite(site)
	return site, nil
}

// removeSite deletes the row, the icon file, and the search document.
func (s *SiteService) removeSite(ctx context.Context, site *domain.Site) error {
	if err := s.store.DeleteSite(ctx, site.ID); err != nil && !store.IsNotFound(err) {
		return fmt.Errorf("delete site %s: %w", site.ID, err)
	}
	if err := s.iconStorage.Delete(site.ID); err != nil {
		s.logger.Warn("icon cleanup failed", "site_id", site.ID, "error", err)
	}
	if err := s.index.Delete(site.ID); err != nil {
		s.logger.Warn("search deindex failed", "site_id", site.ID, "error", err)
	}
	return nil
}

// validateParent enforces the nesting invariant: folders have no parent, and
// a parent reference names an existing folder in the same category.
func (s *SiteService) validateParent(ctx context.Context, site *domain.Site) error {
	if site.ParentID == "" {
		return nil
	}
	if site.IsFolder() {
		return domainerrors.Validation("folders cannot be nested")
	}
	parent, err := s.store.GetSite(ctx, site.ParentID)
	if err != nil {
		if store.IsNotFound(err) {
			return domainerrors.Validation("parent folder does not exist")
		}
		return fmt.Errorf("get parent: %w", err)
	}
	if !parent.IsFolder() {
		return domainerrors.Validation("parent is not a folder")
	}
	if parent.Category != site.Category {
		return domainerrors.Validation("parent folder is in a different category")
	}
	return nil
}

// ensureCategory creates the category row when a site names one that does
// not exist yet.
func (s *SiteService) ensureCategory(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	if _, err := s.store.GetCategory(ctx, name); err == nil {
		return nil
	} else if !store.IsNotFound(err) {
		return fmt.Errorf("get category: %w", err)
	}
	cat := &domain.Category{Name: name}
	cat.InitTimestamps()
	if err := s.store.CreateCategory(ctx, cat); err != nil && !store.IsAlreadyExists(err) {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// fetchIconAsync downloads a favicon in the background and updates the site
// record on success. Fire-and-forget: errors are logged only.
func (s *SiteService) fetchIconAsync(siteID, siteURL string) {
	source := faviconURL(siteURL)
	if source == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), iconFetchTimeout)
		defer cancel()

		result, err := s.iconDownloader.Download(ctx, siteID, source, false)
		if err != nil {
			s.logger.Warn("background icon fetch failed", "site_id", siteID, "url", source, "error", err)
			return
		}

		site, err := s.store.GetSite(ctx, siteID)
		if err != nil {
			return
		}
		site.Icon = iconAssetURL(result.Filename)
		site.IconMode = domain.IconModeUpload
		site.Touch()
		if err := s.store.UpdateSite(ctx, site); err != nil {
			s.logger.Warn("icon record update failed", "site_id", siteID, "error", err)
			return
		}
		s.indexSite(site)
	}()
}

func (s *SiteService) indexSite(site *domain.Site) {
	if err := s.index.Index(search.DocumentFor(site)); err != nil {
		s.logger.Warn("search index failed", "site_id", site.ID, "error", err)
	}
}

func (s *SiteService) reindexAll(sites []domain.Site) {
	docs := make([]*search.SiteDocument, len(sites))
	for i := range sites {
		docs[i] = search.DocumentFor(&sites[i])
	}
	if err := s.index.IndexAll(docs); err != nil {
		s.logger.Warn("search reindex failed", "error", err)
	}
}

// iconAssetURL builds the served icon path with a cache-busting suffix.
func iconAssetURL(filename string) string {
	return "/assets/icons/" + filename + "?v=" + strconv.FormatInt(time.Now().Unix(), 10)
}

// faviconURL derives the conventional favicon location from a page URL.
func faviconURL(siteURL string) string {
	u, err := url.Parse(siteURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host + "/favicon.ico"
}
