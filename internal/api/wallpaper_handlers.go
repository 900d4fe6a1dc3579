package api

import (
	"context"
	"io"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	"github.com/launchdeckapp/launchdeck-server/internal/http/response"
)

func (s *Server) registerWallpaperRoutes() {
	security := []map[string][]string{{"bearer": {}}}

	huma.Register(s.api, huma.Operation{
		OperationID: "list-wallpapers",
		Method:      http.MethodGet,
		Path:        "/api/v1/wallpapers",
		Summary:     "List wallpapers",
		Tags:        []string{"Wallpapers"},
		Security:    security,
	}, s.handleListWallpapers)

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-wallpaper",
		Method:      http.MethodDelete,
		Path:        "/api/v1/wallpapers/{id}",
		Summary:     "Delete a wallpaper",
		Tags:        []string{"Wallpapers"},
		Security:    security,
	}, s.handleDeleteWallpaper)

	huma.Register(s.api, huma.Operation{
		OperationID: "sync-bing-wallpaper",
		Method:      http.MethodPost,
		Path:        "/api/v1/wallpapers/bing",
		Summary:     "Fetch today's Bing wallpaper",
		Description: "Downloads and caches the Bing image of the day. Falls back to the most recent cached image when Bing is unreachable.",
		Tags:        []string{"Wallpapers"},
		Security:    security,
	}, s.handleSyncBingWallpaper)
}

type listWallpapersInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

type wallpapersOutput struct {
	Body struct {
		Wallpapers []domain.Wallpaper `json:"wallpapers"`
	}
}

func (s *Server) handleListWallpapers(ctx context.Context, input *listWallpapersInput) (*wallpapersOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	wallpapers, err := s.services.Wallpaper.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := &wallpapersOutput{}
	resp.Body.Wallpapers = wallpapers
	return resp, nil
}

type deleteWallpaperInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            string `path:"id" doc:"Wallpaper ID"`
}

func (s *Server) handleDeleteWallpaper(ctx context.Context, input *deleteWallpaperInput) (*MessageOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Wallpaper.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Wallpaper deleted"}}, nil
}

type wallpaperOutput struct {
	Body domain.Wallpaper
}

type syncBingInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

func (s *Server) handleSyncBingWallpaper(ctx context.Context, input *syncBingInput) (*wallpaperOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	wallpaper, err := s.services.Wallpaper.SyncBing(ctx)
	if err != nil {
		return nil, err
	}
	return &wallpaperOutput{Body: *wallpaper}, nil
}

// handleWallpaperUpload accepts a multipart wallpaper upload. It is a plain
// chi handler; huma's typed bodies don't fit streamed multipart forms.
func (s *Server) handleWallpaperUpload(w http.ResponseWriter, r *http.Request) {
	if _, err := GetUserID(r.Context()); err != nil {
		response.Unauthorized(w, "Not authenticated", s.logger)
		return
	}

	// One extra KB so an oversized file reaches the service's size check
	// and reports a clean validation error.
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+1024)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		response.BadRequest(w, "Invalid or oversized multipart form", s.logger)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Missing file field", s.logger)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(w, "Could not read upload", s.logger)
		return
	}

	wallpaper, err := s.services.Wallpaper.Upload(r.Context(), header.Filename, data)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, wallpaper, s.logger)
}
