package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	"github.com/launchdeckapp/launchdeck-server/internal/store"
)

const categoryColumns = `name, sort_order, color, is_hidden, created_at, updated_at`

// scanCategory scans a row into a domain.Category.
func scanCategory(scanner interface{ Scan(dest ...any) error }) (*domain.Category, error) {
	var c domain.Category

	var (
		color     sql.NullString
		isHidden  int
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&c.Name,
		&c.Order,
		&color,
		&isHidden,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if color.Valid {
		c.Color = color.String
	}
	c.IsHidden = isHidden != 0

	return &c, nil
}

// CreateCategory inserts a new category. Returns store.ErrAlreadyExists when
// the name is taken.
func (s *Store) CreateCategory(ctx context.Context, cat *domain.Category) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (name, sort_order, color, is_hidden, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		cat.Name,
		cat.Order,
		nullString(cat.Color),
		boolToInt(cat.IsHidden),
		formatTime(cat.CreatedAt),
		formatTime(cat.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetCategory retrieves a category by name.
func (s *Store) GetCategory(ctx context.Context, name string) (*domain.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE name = ?`, name)

	cat, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// UpdateCategory rewrites the mutable columns of an existing category.
func (s *Store) UpdateCategory(ctx context.Context, cat *domain.Category) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE categories SET sort_order = ?, color = ?, is_hidden = ?, updated_at = ?
		WHERE name = ?`,
		cat.Order,
		nullString(cat.Color),
		boolToInt(cat.IsHidden),
		formatTime(cat.UpdatedAt),
		cat.Name,
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

// UpsertCategory inserts or replaces a category by name. Used by backup import.
func (s *Store) UpsertCategory(ctx context.Context, cat *domain.Category) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (name, sort_order, color, is_hidden, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			sort_order = excluded.sort_order,
			color = excluded.color,
			is_hidden = excluded.is_hidden,
			updated_at = excluded.updated_at`,
		cat.Name,
		cat.Order,
		nullString(cat.Color),
		boolToInt(cat.IsHidden),
		formatTime(cat.CreatedAt),
		formatTime(cat.UpdatedAt),
	)
	return err
}

// DeleteCategory removes a category row. Member sites are handled by the
// service layer (delete or re-home) before this is called.
func (s *Store) DeleteCategory(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE name = ?`, name)
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

// ListCategories returns all categories in display order.
func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY sort_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []domain.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		cats = append(cats, *cat)
	}
	return cats, rows.Err()
}

// RenameCategory renames a category and cascades the new name into every
// member site, in one transaction. The name is the key sites reference, so
// both writes must land together.
func (s *Store) RenameCategory(ctx context.Context, oldName, newName string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := formatTime(time.Now())

	result, err := tx.ExecContext(ctx, `
		UPDATE categories SET name = ?, updated_at = ? WHERE name = ?`,
		newName, now, oldName)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE sites SET category = ?, updated_at = ? WHERE category = ?`,
		newName, now, oldName); err != nil {
		return err
	}

	return tx.Commit()
}

// ReplaceCategoryOrdering rewrites sort_order to match the given name order.
func (s *Store) ReplaceCategoryOrdering(ctx context.Context, names []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := formatTime(time.Now())

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE categories SET sort_order = ?, updated_at = ? WHERE name = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, name := range names {
		if _, err := stmt.ExecContext(ctx, i, now, name); err != nil {
			return err
		}
	}

	return tx.Commit()
}
