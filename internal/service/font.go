package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	domainerrors "github.com/launchdeckapp/launchdeck-server/internal/errors"
	"github.com/launchdeckapp/launchdeck-server/internal/id"
	"github.com/launchdeckapp/launchdeck-server/internal/store"
)

// FontService manages user-registered fonts.
type FontService struct {
	store           store.Store
	settingsService *SettingsService
	logger          *slog.Logger
}

// NewFontService creates a font service. Deleting a font resets settings
// references through the settings service.
func NewFontService(s store.Store, settingsService *SettingsService, logger *slog.Logger) *FontService {
	return &FontService{store: s, settingsService: settingsService, logger: logger}
}

// CreateFontRequest registers a custom font.
type CreateFontRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Family   string `json:"family" validate:"required,max=100"`
	URL      string `json:"url,omitempty" validate:"omitempty,url"`
	Provider string `json:"provider,omitempty" validate:"omitempty,max=100"`
}

// List returns all registered fonts sorted by name.
func (s *FontService) List(ctx context.Context) ([]domain.CustomFont, error) {
	return s.store.ListFonts(ctx)
}

// Create registers a font.
func (s *FontService) Create(ctx context.Context, req CreateFontRequest) (*domain.CustomFont, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	fontID, err := id.Generate("font")
	if err != nil {
		return nil, fmt.Errorf("generate font ID: %w", err)
	}
	font := &domain.CustomFont{
		ID:        fontID,
		Name:      req.Name,
		Family:    req.Family,
		URL:       req.URL,
		Provider:  req.Provider,
		CreatedAt: time.Now(),
	}

	if err := s.store.CreateFont(ctx, font); err != nil {
		return nil, fmt.Errorf("create font: %w", err)
	}

	s.logger.Info("font registered", "font_id", fontID, "family", font.Family)
	return font, nil
}

// Delete removes a font and resets any settings reference to it.
func (s *FontService) Delete(ctx context.Context, fontID string) error {
	font, err := s.store.GetFont(ctx, fontID)
	if err != nil {
		if store.IsNotFound(err) {
			return domainerrors.NotFound("font not found")
		}
		return fmt.Errorf("get font: %w", err)
	}

	if err := s.store.DeleteFont(ctx, fontID); err != nil && !store.IsNotFound(err) {
		return fmt.Errorf("delete font: %w", err)
	}

	if err := s.settingsService.ResetFontReferences(ctx, font.Family); err != nil {
		s.logger.Warn("settings font reset failed", "family", font.Family, "error", err)
	}

	s.logger.Info("font deleted", "font_id", fontID, "family", font.Family)
	return nil
}
