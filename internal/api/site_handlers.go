package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	"github.com/launchdeckapp/launchdeck-server/internal/service"
)

func (s *Server) registerSiteRoutes() {
	security := []map[string][]string{{"bearer": {}}}

	huma.Register(s.api, huma.Operation{
		OperationID: "list-sites",
		Method:      http.MethodGet,
		Path:        "/api/v1/sites",
		Summary:     "List all sites",
		Description: "Returns every site and folder ordered by category, nesting, and position.",
		Tags:        []string{"Sites"},
		Security:    security,
	}, s.handleListSites)

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-site",
		Method:        http.MethodPost,
		Path:          "/api/v1/sites",
		Summary:       "Create a site or folder",
		Tags:        []string{"Sites"},
		Security:    security,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateSite)

	huma.Register(s.api, huma.Operation{
		OperationID: "replace-site-ordering",
		Method:      http.MethodPut,
		Path:        "/api/v1/sites",
		Summary:     "Replace the full site ordering",
		Description: "Bulk drag-and-drop commit: every site's category, parent, order, and visibility in one transaction.",
		Tags:        []string{"Sites"},
		Security:    security,
	}, s.handleReplaceSiteOrdering)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-site",
		Method:      http.MethodGet,
		Path:        "/api/v1/sites/{id}",
		Summary:     "Get a site",
		Tags:        []string{"Sites"},
		Security:    security,
	}, s.handleGetSite)

	huma.Register(s.api, huma.Operation{
		OperationID: "update-site",
		Method:      http.MethodPatch,
		Path:        "/api/v1/sites/{id}",
		Summary:     "Update a site",
		Tags:        []string{"Sites"},
		Security:    security,
	}, s.handleUpdateSite)

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-site",
		Method:      http.MethodDelete,
		Path:        "/api/v1/sites/{id}",
		Summary:     "Delete a site or folder",
		Description: "Deleting a folder promotes its children to the category root unless deleteContents is set.",
		Tags:        []string{"Sites"},
		Security:    security,
	}, s.handleDeleteSite)

	huma.Register(s.api, huma.Operation{
		OperationID: "set-site-icon",
		Method:      http.MethodPost,
		Path:        "/api/v1/sites/{id}/icon",
		Summary:     "Set a site icon",
		Description: "Accepts a remote image URL or inline base64 image data.",
		Tags:        []string{"Sites"},
		Security:    security,
	}, s.handleSetSiteIcon)
}

type listSitesInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

type sitesOutput struct {
	Body struct {
		Sites []domain.Site `json:"sites"`
	}
}

func (s *Server) handleListSites(ctx context.Context, input *listSitesInput) (*sitesOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	sites, err := s.services.Site.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := &sitesOutput{}
	resp.Body.Sites = sites
	return resp, nil
}

type createSiteInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          service.CreateSiteRequest
}

type siteOutput struct {
	Body domain.Site
}

func (s *Server) handleCreateSite(ctx context.Context, input *createSiteInput) (*siteOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	site, err := s.services.Site.Create(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &siteOutput{Body: *site}, nil
}

type getSiteInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            string `path:"id" doc:"Site ID"`
}

func (s *Server) handleGetSite(ctx context.Context, input *getSiteInput) (*siteOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	site, err := s.services.Site.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &siteOutput{Body: *site}, nil
}

type updateSiteInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            string `path:"id" doc:"Site ID"`
	Body          service.SiteUpdate
}

func (s *Server) handleUpdateSite(ctx context.Context, input *updateSiteInput) (*siteOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	site, err := s.services.Site.Update(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &siteOutput{Body: *site}, nil
}

type deleteSiteInput struct {
	Authorization  string `header:"Authorization" doc:"Bearer token"`
	ID             string `path:"id" doc:"Site ID"`
	DeleteContents bool   `query:"deleteContents" doc:"Also delete folder contents instead of promoting them"`
}

func (s *Server) handleDeleteSite(ctx context.Context, input *deleteSiteInput) (*MessageOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Site.Delete(ctx, input.ID, input.DeleteContents); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Site deleted"}}, nil
}

type replaceSiteOrderingInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          struct {
		Sites []service.SitePlacement `json:"sites" doc:"Placement for every existing site"`
	}
}

func (s *Server) handleReplaceSiteOrdering(ctx context.Context, input *replaceSiteOrderingInput) (*sitesOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	sites, err := s.services.Site.ReplaceAll(ctx, input.Body.Sites)
	if err != nil {
		return nil, err
	}

	resp := &sitesOutput{}
	resp.Body.Sites = sites
	return resp, nil
}

type setSiteIconInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            string `path:"id" doc:"Site ID"`
	Body          service.SetIconRequest
}

func (s *Server) handleSetSiteIcon(ctx context.Context, input *setSiteIconInput) (*siteOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	site, err := s.services.Site.SetIcon(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &siteOutput{Body: *site}, nil
}
