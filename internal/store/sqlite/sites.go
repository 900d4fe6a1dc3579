package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	"github.com/launchdeckapp/launchdeck-server/internal/store"
)

// siteColumns is the ordered list of columns selected in site queries.
// Must match the scan order in scanSite.
const siteColumns = `id, name, url, description, category, color, icon, icon_mode,
	fonts, sort_order, is_hidden, type, parent_id, created_at, updated_at`

// scanSite scans a sql.Row (or sql.Rows via its Scan method) into a domain.Site.
func scanSite(scanner interface{ Scan(dest ...any) error }) (*domain.Site, error) {
	var s domain.Site

	var (
		color     sql.NullString
		icon      sql.NullString
		fonts     sql.NullString
		isHidden  int
		parentID  sql.NullString
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&s.ID,
		&s.Name,
		&s.URL,
		&s.Description,
		&s.Category,
		&color,
		&icon,
		&s.IconMode,
		&fonts,
		&s.Order,
		&isHidden,
		&s.Type,
		&parentID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	s.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if color.Valid {
		s.Color = color.String
	}
	if icon.Valid {
		s.Icon = icon.String
	}
	if parentID.Valid {
		s.ParentID = parentID.String
	}
	if fonts.Valid && fonts.String != "" {
		var fo domain.FontOverrides
		if err := json.Unmarshal([]byte(fonts.String), &fo); err != nil {
			return nil, fmt.Errorf("decode site fonts: %w", err)
		}
		s.Fonts = &fo
	}

	s.IsHidden = isHidden != 0

	return &s, nil
}

// marshalFonts encodes font overrides for storage, NULL when unset.
func marshalFonts(fo *domain.FontOverrides) (sql.NullString, error) {
	if fo == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(fo)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode site fonts: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// CreateSite inserts a new site. Returns store.ErrAlreadyExists when the ID
// is taken.
func (s *Store) CreateSite(ctx context.Context, site *domain.Site) error {
	fonts, err := marshalFonts(site.Fonts)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sites (
			id, name, url, description, category, color, icon, icon_mode,
			fonts, sort_order, is_hidden, type, parent_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		site.ID,
		site.Name,
		site.URL,
		site.Description,
		site.Category,
		nullString(site.Color),
		nullString(site.Icon),
		site.IconMode,
		fonts,
		site.Order,
		boolToInt(site.IsHidden),
		site.Type,
		nullString(site.ParentID),
		formatTime(site.CreatedAt),
		formatTime(site.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetSite retrieves a site by ID.
func (s *Store) GetSite(ctx context.Context, id string) (*domain.Site, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+siteColumns+` FROM sites WHERE id = ?`, id)

	site, err := scanSite(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return site, nil
}

// UpdateSite rewrites every mutable column of an existing site.
func (s *Store) UpdateSite(ctx context.Context, site *domain.Site) error {
	fonts, err := marshalFonts(site.Fonts)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE sites SET
			name = ?, url = ?, description = ?, category = ?, color = ?,
			icon = ?, icon_mode = ?, fonts = ?, sort_order = ?, is_hidden = ?,
			type = ?, parent_id = ?, updated_at = ?
		WHERE id = ?`,
		site.Name,
		site.URL,
		site.Description,
		site.Category,
		nullString(site.Color),
		nullString(site.Icon),
		site.IconMode,
		fonts,
		site.Order,
		boolToInt(site.IsHidden),
		site.Type,
		nullString(site.ParentID),
		formatTime(site.UpdatedAt),
		site.ID,
	)
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

// UpsertSite inserts the site or, when the ID exists, replaces it. Used by
// backup import where client-supplied IDs must survive.
func (s *Store) UpsertSite(ctx context.Context, site *domain.Site) error {
	fonts, err := marshalFonts(site.Fonts)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sites (
			id, name, url, description, category, color, icon, icon_mode,
			fonts, sort_order, is_hidden, type, parent_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			url = excluded.url,
			description = excluded.description,
			category = excluded.category,
			color = excluded.color,
			icon = excluded.icon,
			icon_mode = excluded.icon_mode,
			fonts = excluded.fonts,
			sort_order = excluded.sort_order,
			is_hidden = excluded.is_hidden,
			type = excluded.type,
			parent_id = excluded.parent_id,
			updated_at = excluded.updated_at`,
		site.ID,
		site.Name,
		site.URL,
		site.Description,
		site.Category,
		nullString(site.Color),
		nullString(site.Icon),
		site.IconMode,
		fonts,
		site.Order,
		boolToInt(site.IsHidden),
		site.Type,
		nullString(site.ParentID),
		formatTime(site.CreatedAt),
		formatTime(site.UpdatedAt),
	)
	return err
}

// DeleteSite removes a site by ID.
func (s *Store) DeleteSite(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sites WHERE id = ?`, id)
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

// ListSites returns every site ordered by category, folder scope, then order.
func (s *Store) ListSites(ctx context.Context) ([]domain.Site, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+siteColumns+` FROM sites
		 ORDER BY category, parent_id IS NOT NULL, parent_id, sort_order`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSites(rows)
}

// ListSitesByCategory returns the sites of one category ordered by scope.
func (s *Store) ListSitesByCategory(ctx context.Context, category string) ([]domain.Site, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+siteColumns+` FROM sites
		 WHERE category = ?
		 ORDER BY parent_id IS NOT NULL, parent_id, sort_order`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSites(rows)
}

// ListChildren returns the direct children of a folder in display order.
func (s *Store) ListChildren(ctx context.Context, folderID string) ([]domain.Site, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+siteColumns+` FROM sites
		 WHERE parent_id = ?
		 ORDER BY sort_order`, folderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSites(rows)
}

// ReplaceSiteOrdering rewrites category, parent and order for the given sites
// in a single transaction. Sites absent from the slice are untouched.
func (s *Store) ReplaceSiteOrdering(ctx context.Context, sites []domain.Site) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE sites SET category = ?, parent_id = ?, sort_order = ?,
			is_hidden = ?, updated_at = ?
		WHERE id = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range sites {
		site := &sites[i]
		result, err := stmt.ExecContext(ctx,
			site.Category,
			nullString(site.ParentID),
			site.Order,
			boolToInt(site.IsHidden),
			formatTime(site.UpdatedAt),
			site.ID,
		)
		if err != nil {
			return err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return fmt.Errorf("site %s: %w", site.ID, store.ErrNotFound)
		}
	}

	return tx.Commit()
}

// NextSiteOrder returns the order value for appending to a sibling scope.
func (s *Store) NextSiteOrder(ctx context.Context, category, parentID string) (int, error) {
	var next int
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(sort_order) + 1, 0) FROM sites
		WHERE category = ? AND COALESCE(parent_id, '') = ?`,
		category, parentID).Scan(&next)
	if err != nil {
		return 0, err
	}
	return next, nil
}

// collectSites drains a result set into a slice.
func collectSites(rows *sql.Rows) ([]domain.Site, error) {
	var sites []domain.Site
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, err
		}
		sites = append(sites, *site)
	}
	return sites, rows.Err()
}
