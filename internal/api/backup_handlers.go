package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/launchdeckapp/launchdeck-server/internal/backup"
)

func (s *Server) registerBackupRoutes() {
	security := []map[string][]string{{"bearer": {}}}

	huma.Register(s.api, huma.Operation{
		OperationID: "export-backup",
		Method:      http.MethodGet,
		Path:        "/api/v1/export",
		Summary:     "Export everything",
		Description: "Produces a single JSON document with all sites, categories, settings, fonts, widgets, and the active custom wallpaper inlined.",
		Tags:        []string{"Backup"},
		Security:    security,
	}, s.handleExport)

	huma.Register(s.api, huma.Operation{
		OperationID: "import-backup",
		Method:      http.MethodPost,
		Path:        "/api/v1/import",
		Summary:     "Import a backup",
		Description: "Applies a backup document item by item. Invalid items are skipped and reported; everything importable lands.",
		Tags:        []string{"Backup"},
		Security:    security,
	}, s.handleImport)
}

type exportInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

type exportOutput struct {
	Body struct {
		backup.Document
		Warnings []string `json:"warnings,omitempty" doc:"Non-fatal issues hit during export"`
	}
}

func (s *Server) handleExport(ctx context.Context, input *exportInput) (*exportOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	doc, warnings := s.services.Backup.Export(ctx)

	resp := &exportOutput{}
	resp.Body.Document = *doc
	resp.Body.Warnings = warnings
	return resp, nil
}

type importInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          backup.Document
}

type importOutput struct {
	Body backup.Result
}

func (s *Server) handleImport(ctx context.Context, input *importInput) (*importOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	result := s.services.Backup.Import(ctx, &input.Body)
	return &importOutput{Body: *result}, nil
}
