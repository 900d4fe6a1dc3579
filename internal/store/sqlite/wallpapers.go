package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	"github.com/launchdeckapp/launchdeck-server/internal/store"
)

const wallpaperColumns = `id, url, type, filename, size, blurhash, created_at`

// scanWallpaper scans a row into a domain.Wallpaper.
func scanWallpaper(scanner interface{ Scan(dest ...any) error }) (*domain.Wallpaper, error) {
	var w domain.Wallpaper

	var (
		blurhash  sql.NullString
		createdAt string
	)

	err := scanner.Scan(
		&w.ID,
		&w.URL,
		&w.Type,
		&w.Filename,
		&w.Size,
		&blurhash,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	w.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	if blurhash.Valid {
		w.Blurhash = blurhash.String
	}

	return &w, nil
}

// CreateWallpaper inserts a wallpaper record. Returns store.ErrAlreadyExists
// when a record with the same type and filename exists.
func (s *Store) CreateWallpaper(ctx context.Context, wp *domain.Wallpaper) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wallpapers (id, url, type, filename, size, blurhash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		wp.ID,
		wp.URL,
		wp.Type,
		wp.Filename,
		wp.Size,
		nullString(wp.Blurhash),
		formatTime(wp.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetWallpaper retrieves a wallpaper by ID.
func (s *Store) GetWallpaper(ctx context.Context, id string) (*domain.Wallpaper, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+wallpaperColumns+` FROM wallpapers WHERE id = ?`, id)

	wp, err := scanWallpaper(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return wp, nil
}

// GetWallpaperByFilename retrieves a wallpaper by its stored filename,
// regardless of type. Used for the Bing date-keyed cache check.
func (s *Store) GetWallpaperByFilename(ctx context.Context, filename string) (*domain.Wallpaper, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+wallpaperColumns+` FROM wallpapers WHERE filename = ?`, filename)

	wp, err := scanWallpaper(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return wp, nil
}

// DeleteWallpaper removes a wallpaper record.
func (s *Store) DeleteWallpaper(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM wallpapers WHERE id = ?`, id)
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

// ListWallpapers returns every wallpaper, newest first.
func (s *Store) ListWallpapers(ctx context.Context) ([]domain.Wallpaper, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+wallpaperColumns+` FROM wallpapers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wps []domain.Wallpaper
	for rows.Next() {
		wp, err := scanWallpaper(rows)
		if err != nil {
			return nil, err
		}
		wps = append(wps, *wp)
	}
	return wps, rows.Err()
}

// LatestWallpaper returns the most recent wallpaper of the given type, or
// store.ErrNotFound when none exist. Backs the Bing offline fallback.
func (s *Store) LatestWallpaper(ctx context.Context, wpType domain.WallpaperType) (*domain.Wallpaper, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+wallpaperColumns+` FROM wallpapers
		 WHERE type = ? ORDER BY created_at DESC LIMIT 1`, wpType)

	wp, err := scanWallpaper(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return wp, nil
}
