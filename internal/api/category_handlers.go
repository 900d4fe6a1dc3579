package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	"github.com/launchdeckapp/launchdeck-server/internal/service"
)

func (s *Server) registerCategoryRoutes() {
	security := []map[string][]string{{"bearer": {}}}

	huma.Register(s.api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories",
		Summary:     "List categories",
		Tags:        []string{"Categories"},
		Security:    security,
	}, s.handleListCategories)

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-category",
		Method:        http.MethodPost,
		Path:          "/api/v1/categories",
		Summary:       "Create a category",
		Tags:        []string{"Categories"},
		Security:    security,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "rename-category",
		Method:      http.MethodPut,
		Path:        "/api/v1/categories",
		Summary:     "Rename a category",
		Description: "Renames the category and moves every member site in one transaction.",
		Tags:        []string{"Categories"},
		Security:    security,
	}, s.handleRenameCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "reorder-categories",
		Method:      http.MethodPut,
		Path:        "/api/v1/categories/order",
		Summary:     "Reorder categories",
		Tags:        []string{"Categories"},
		Security:    security,
	}, s.handleReorderCategories)

	huma.Register(s.api, huma.Operation{
		OperationID: "update-category",
		Method:      http.MethodPatch,
		Path:        "/api/v1/categories/{name}",
		Summary:     "Update a category",
		Tags:        []string{"Categories"},
		Security:    security,
	}, s.handleUpdateCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-category",
		Method:      http.MethodDelete,
		Path:        "/api/v1/categories/{name}",
		Summary:     "Delete a category",
		Description: "Member sites are kept unless deleteSites is set.",
		Tags:        []string{"Categories"},
		Security:    security,
	}, s.handleDeleteCategory)
}

type listCategoriesInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

type categoriesOutput struct {
	Body struct {
		Categories []domain.Category `json:"categories"`
	}
}

func (s *Server) handleListCategories(ctx context.Context, input *listCategoriesInput) (*categoriesOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	categories, err := s.services.Category.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := &categoriesOutput{}
	resp.Body.Categories = categories
	return resp, nil
}

type createCategoryInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          service.CreateCategoryRequest
}

type categoryOutput struct {
	Body domain.Category
}

func (s *Server) handleCreateCategory(ctx context.Context, input *createCategoryInput) (*categoryOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	category, err := s.services.Category.Create(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &categoryOutput{Body: *category}, nil
}

type renameCategoryInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          service.RenameCategoryRequest
}

func (s *Server) handleRenameCategory(ctx context.Context, input *renameCategoryInput) (*categoryOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	category, err := s.services.Category.Rename(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &categoryOutput{Body: *category}, nil
}

type reorderCategoriesInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          struct {
		Names []string `json:"names" doc:"Every category name in the new display order"`
	}
}

func (s *Server) handleReorderCategories(ctx context.Context, input *reorderCategoriesInput) (*categoriesOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	categories, err := s.services.Category.Reorder(ctx, input.Body.Names)
	if err != nil {
		return nil, err
	}

	resp := &categoriesOutput{}
	resp.Body.Categories = categories
	return resp, nil
}

type updateCategoryInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Name          string `path:"name" doc:"Category name"`
	Body          service.CategoryUpdate
}

func (s *Server) handleUpdateCategory(ctx context.Context, input *updateCategoryInput) (*categoryOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	category, err := s.services.Category.Update(ctx, input.Name, input.Body)
	if err != nil {
		return nil, err
	}
	return &categoryOutput{Body: *category}, nil
}

type deleteCategoryInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Name          string `path:"name" doc:"Category name"`
	DeleteSites   bool   `query:"deleteSites" doc:"Also delete member sites"`
}

func (s *Server) handleDeleteCategory(ctx context.Context, input *deleteCategoryInput) (*MessageOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Category.Delete(ctx, input.Name, input.DeleteSites); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Category deleted"}}, nil
}
