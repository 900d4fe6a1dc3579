package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	"github.com/launchdeckapp/launchdeck-server/internal/service"
)

func (s *Server) registerFontRoutes() {
	security := []map[string][]string{{"bearer": {}}}

	huma.Register(s.api, huma.Operation{
		OperationID: "list-fonts",
		Method:      http.MethodGet,
		Path:        "/api/v1/fonts",
		Summary:     "List custom fonts",
		Tags:        []string{"Fonts"},
		Security:    security,
	}, s.handleListFonts)

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-font",
		Method:        http.MethodPost,
		Path:          "/api/v1/fonts",
		Summary:       "Register a custom font",
		Tags:        []string{"Fonts"},
		Security:    security,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateFont)

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-font",
		Method:      http.MethodDelete,
		Path:        "/api/v1/fonts/{id}",
		Summary:     "Delete a custom font",
		Description: "Settings referencing the font's family are reset to the default.",
		Tags:        []string{"Fonts"},
		Security:    security,
	}, s.handleDeleteFont)
}

type listFontsInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

type fontsOutput struct {
	Body struct {
		Fonts []domain.CustomFont `json:"fonts"`
	}
}

func (s *Server) handleListFonts(ctx context.Context, input *listFontsInput) (*fontsOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	fonts, err := s.services.Font.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := &fontsOutput{}
	resp.Body.Fonts = fonts
	return resp, nil
}

type createFontInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          service.CreateFontRequest
}

type fontOutput struct {
	Body domain.CustomFont
}

func (s *Server) handleCreateFont(ctx context.Context, input *createFontInput) (*fontOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	font, err := s.services.Font.Create(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &fontOutput{Body: *font}, nil
}

type deleteFontInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            string `path:"id" doc:"Font ID"`
}

func (s *Server) handleDeleteFont(ctx context.Context, input *deleteFontInput) (*MessageOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Font.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Font deleted"}}, nil
}
