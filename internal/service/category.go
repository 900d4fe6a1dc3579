package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	domainerrors "github.com/launchdeckapp/launchdeck-server/internal/errors"
	"github.com/launchdeckapp/launchdeck-server/internal/store"
)

// CategoryService manages category rows and the rename cascade into sites.
type CategoryService struct {
	store       store.Store
	siteService *SiteService
	logger      *slog.Logger
}

// NewCategoryService creates a category service. The site service handles
// member-site deletion and search reindexing on cascades.
func NewCategoryService(s store.Store, siteService *SiteService, logger *slog.Logger) *CategoryService {
	return &CategoryService{store: s, siteService: siteService, logger: logger}
}

// CreateCategoryRequest contains a new category.
type CreateCategoryRequest struct {
	Name     string `json:"name" validate:"required,max=100,pathsafe"`
	Color    string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	IsHidden bool   `json:"isHidden,omitempty"`
}

// RenameCategoryRequest renames a category; the new name cascades into every
// member site in one transaction.
type RenameCategoryRequest struct {
	OldName string `json:"oldName" validate:"required"`
	NewName string `json:"newName" validate:"required,max=100,pathsafe"`
}

// CategoryUpdate contains the patchable category fields. Nil means unchanged.
type CategoryUpdate struct {
	Color    *string `json:"color,omitempty"`
	IsHidden *bool   `json:"isHidden,omitempty"`
	Order    *int    `json:"order,omitempty"`
}

// List returns all categories in display order.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.store.ListCategories(ctx)
}

// Create adds a category at the end of the display order.
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*domain.Category, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	existing, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	cat := &domain.Category{
		Name:     req.Name,
		Order:    nextCategoryOrder(existing),
		Color:    req.Color,
		IsHidden: req.IsHidden,
	}
	cat.InitTimestamps()

	if err := s.store.CreateCategory(ctx, cat); err != nil {
		if store.IsAlreadyExists(err) {
			return nil, domainerrors.AlreadyExists("category name already in use")
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.logger.Info("category created", "name", cat.Name)
	return cat, nil
}

// Rename renames a category and cascades the new name into every member
// site. Member sites are reindexed afterwards so search filters stay valid.
func (s *CategoryService) Rename(ctx context.Context, req RenameCategoryRequest) (*domain.Category, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	if req.OldName == req.NewName {
		return s.get(ctx, req.OldName)
	}

	if err := s.store.RenameCategory(ctx, req.OldName, req.NewName); err != nil {
		switch {
		case store.IsNotFound(err):
			return nil, domainerrors.NotFound("category not found")
		case store.IsAlreadyExists(err):
			return nil, domainerrors.AlreadyExists("category name already in use")
		}
		return nil, fmt.Errorf("rename category: %w", err)
	}

	if sites, err := s.store.ListSitesByCategory(ctx, req.NewName); err == nil {
		s.siteService.reindexAll(sites)
	} else {
		s.logger.Warn("post-rename reindex failed", "category", req.NewName, "error", err)
	}

	s.logger.Info("category renamed", "old", req.OldName, "new", req.NewName)
	return s.get(ctx, req.NewName)
}

// Update applies a partial update to a category.
func (s *CategoryService) Update(ctx context.Context, name string, update CategoryUpdate) (*domain.Category, error) {
	cat, err := s.get(ctx, name)
	if err != nil {
		return nil, err
	}

	if update.Color != nil {
		cat.Color = *update.Color
	}
	if update.IsHidden != nil {
		cat.IsHidden = *update.IsHidden
	}
	if update.Order != nil {
		cat.Order = *update.Order
	}
	cat.Touch()

	if err := s.store.UpdateCategory(ctx, cat); err != nil {
		if store.IsNotFound(err) {
			return nil, domainerrors.NotFound("category not found")
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return cat, nil
}

// Reorder replaces the category display order with the given name sequence.
func (s *CategoryService) Reorder(ctx context.Context, names []string) ([]domain.Category, error) {
	if len(names) == 0 {
		return nil, domainerrors.Validation("order cannot be empty")
	}
	if err := s.store.ReplaceCategoryOrdering(ctx, names); err != nil {
		if store.IsNotFound(err) {
			return nil, domainerrors.NotFound("unknown category in order")
		}
		return nil, fmt.Errorf("replace category ordering: %w", err)
	}
	return s.store.ListCategories(ctx)
}

// Delete removes a category. With deleteSites the member sites (and their
// icons and search documents) go too; without it they keep their category
// name, so re-creating the category restores the grouping.
func (s *CategoryService) Delete(ctx context.Context, name string, deleteSites bool) error {
	if _, err := s.get(ctx, name); err != nil {
		return err
	}

	if deleteSites {
		sites, err := s.store.ListSitesByCategory(ctx, name)
		if err != nil {
			return fmt.Errorf("list category sites: %w", err)
		}
		for i := range sites {
			if err := s.siteService.removeSite(ctx, &sites[i]); err != nil {
				return err
			}
		}
	}

	if err := s.store.DeleteCategory(ctx, name); err != nil && !store.IsNotFound(err) {
		return fmt.Errorf("delete category: %w", err)
	}

	s.logger.Info("category deleted", "name", name, "delete_sites", deleteSites)
	return nil
}

func (s *CategoryService) get(ctx context.Context, name string) (*domain.Category, error) {
	cat, err := s.store.GetCategory(ctx, name)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domainerrors.NotFound("category not found")
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return cat, nil
}

func nextCategoryOrder(existing []domain.Category) int {
	next := 0
	for _, cat := range existing {
		if cat.Order >= next {
			next = cat.Order + 1
		}
	}
	return next
}
