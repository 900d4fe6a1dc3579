package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	"github.com/launchdeckapp/launchdeck-server/internal/store"
)

const fontColumns = `id, name, family, url, provider, created_at`

// scanFont scans a row into a domain.CustomFont.
func scanFont(scanner interface{ Scan(dest ...any) error }) (*domain.CustomFont, error) {
	var f domain.CustomFont

	var createdAt string

	err := scanner.Scan(&f.ID, &f.Name, &f.Family, &f.URL, &f.Provider, &createdAt)
	if err != nil {
		return nil, err
	}

	f.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateFont inserts a custom font record.
func (s *Store) CreateFont(ctx context.Context, font *domain.CustomFont) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO custom_fonts (id, name, family, url, provider, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		font.ID,
		font.Name,
		font.Family,
		font.URL,
		font.Provider,
		formatTime(font.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// UpsertFont inserts or replaces a font by ID. Used by backup import.
func (s *Store) UpsertFont(ctx context.Context, font *domain.CustomFont) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO custom_fonts (id, name, family, url, provider, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			family = excluded.family,
			url = excluded.url,
			provider = excluded.provider`,
		font.ID,
		font.Name,
		font.Family,
		font.URL,
		font.Provider,
		formatTime(font.CreatedAt),
	)
	return err
}

// GetFont retrieves a font by ID.
func (s *Store) GetFont(ctx context.Context, id string) (*domain.CustomFont, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+fontColumns+` FROM custom_fonts WHERE id = ?`, id)

	font, err := scanFont(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return font, nil
}

// DeleteFont removes a font record.
func (s *Store) DeleteFont(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM custom_fonts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListFonts returns every custom font ordered by name.
func (s *Store) ListFonts(ctx context.Context) ([]domain.CustomFont, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+fontColumns+` FROM custom_fonts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fonts []domain.CustomFont
	for rows.Next() {
		font, err := scanFont(rows)
		if err != nil {
			return nil, err
		}
		fonts = append(fonts, *font)
	}
	return fonts, rows.Err()
}
