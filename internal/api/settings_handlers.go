package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	"github.com/launchdeckapp/launchdeck-server/internal/service"
)

func (s *Server) registerSettingsRoutes() {
	security := []map[string][]string{{"bearer": {}}}

	huma.Register(s.api, huma.Operation{
		OperationID: "get-settings",
		Method:      http.MethodGet,
		Path:        "/api/v1/settings",
		Summary:     "Get global settings",
		Tags:        []string{"Settings"},
		Security:    security,
	}, s.handleGetSettings)

	huma.Register(s.api, huma.Operation{
		OperationID: "replace-settings",
		Method:      http.MethodPut,
		Path:        "/api/v1/settings",
		Summary:     "Replace global settings",
		Description: "Whole-document replace. Writes are coalesced; the latest document wins.",
		Tags:        []string{"Settings"},
		Security:    security,
	}, s.handleReplaceSettings)
}

type getSettingsInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

type settingsOutput struct {
	Body domain.GlobalSettings
}

func (s *Server) handleGetSettings(ctx context.Context, input *getSettingsInput) (*settingsOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	settings, err := s.services.Settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &settingsOutput{Body: *settings}, nil
}

type replaceSettingsInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          service.SettingsUpdateRequest
}

func (s *Server) handleReplaceSettings(ctx context.Context, input *replaceSettingsInput) (*settingsOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	settings, err := s.services.Settings.Replace(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &settingsOutput{Body: *settings}, nil
}
