package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
)

// GetSettings loads the singleton settings row, creating an empty one on
// first access so callers never see not-found.
func (s *Store) GetSettings(ctx context.Context) (*domain.GlobalSettings, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, layout, config, theme, search_engine, updated_at
		FROM global_settings WHERE id = ?`, domain.GlobalSettingsID)

	var (
		gs        domain.GlobalSettings
		layout    sql.NullString
		config    sql.NullString
		theme     sql.NullString
		updatedAt string
	)

	err := row.Scan(&gs.ID, &layout, &config, &theme, &gs.SearchEngine, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		gs := domain.NewGlobalSettings()
		if err := s.ReplaceSettings(ctx, gs); err != nil {
			return nil, err
		}
		return gs, nil
	}
	if err != nil {
		return nil, err
	}

	gs.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	if layout.Valid {
		gs.Layout = []byte(layout.String)
	}
	if config.Valid {
		gs.Config = []byte(config.String)
	}
	if theme.Valid {
		gs.Theme = []byte(theme.String)
	}

	return &gs, nil
}

// ReplaceSettings writes the whole settings document, inserting on first use.
func (s *Store) ReplaceSettings(ctx context.Context, settings *domain.GlobalSettings) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO global_settings (id, layout, config, theme, search_engine, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			layout = excluded.layout,
			config = excluded.config,
			theme = excluded.theme,
			search_engine = excluded.search_engine,
			updated_at = excluded.updated_at`,
		domain.GlobalSettingsID,
		nullString(string(settings.Layout)),
		nullString(string(settings.Config)),
		nullString(string(settings.Theme)),
		settings.SearchEngine,
		formatTime(settings.UpdatedAt),
	)
	return err
}
