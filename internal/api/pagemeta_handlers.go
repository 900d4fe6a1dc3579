package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/launchdeckapp/launchdeck-server/internal/pagemeta"
)

func (s *Server) registerPageMetaRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-page-metadata",
		Method:      http.MethodGet,
		Path:        "/api/v1/pagemeta",
		Summary:     "Look up page metadata",
		Description: "Fetches title, description, and icon candidates for a URL. Results are cached.",
		Tags:        []string{"Search"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handlePageMeta)
}

type pageMetaInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	URL           string `query:"url" required:"true" doc:"Page URL to inspect"`
}

type pageMetaOutput struct {
	Body pagemeta.Metadata
}

func (s *Server) handlePageMeta(ctx context.Context, input *pageMetaInput) (*pageMetaOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	meta, err := s.services.PageMeta.Lookup(ctx, input.URL)
	if err != nil {
		return nil, err
	}
	return &pageMetaOutput{Body: *meta}, nil
}
