package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/launchdeckapp/launchdeck-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search-sites",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search sites",
		Description: "Full-text search across site names, URLs, descriptions, and categories.",
		Tags:        []string{"Search"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSearch)
}

type searchInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Query         string `query:"q" doc:"Search query"`
	Category      string `query:"category" doc:"Restrict results to one category"`
	Limit         int    `query:"limit" doc:"Maximum results to return (default 20, max 100)"`
	Offset        int    `query:"offset" doc:"Results to skip for paging"`
}

type searchOutput struct {
	Body search.Result
}

func (s *Server) handleSearch(ctx context.Context, input *searchInput) (*searchOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	result, err := s.services.Search.Search(ctx, search.Params{
		Query:    input.Query,
		Category: input.Category,
		Limit:    input.Limit,
		Offset:   input.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &searchOutput{Body: *result}, nil
}
