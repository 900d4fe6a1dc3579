package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	"github.com/launchdeckapp/launchdeck-server/internal/store"
)

// scanTodo scans a row into a domain.Todo.
func scanTodo(scanner interface{ Scan(dest ...any) error }) (*domain.Todo, error) {
	var t domain.Todo

	var (
		done      int
		createdAt string
	)

	err := scanner.Scan(&t.ID, &t.Text, &done, &createdAt)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.Done = done != 0
	return &t, nil
}

// CreateTodo inserts a todo entry.
func (s *Store) CreateTodo(ctx context.Context, todo *domain.Todo) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO todos (id, text, done, created_at) VALUES (?, ?, ?, ?)`,
		todo.ID,
		todo.Text,
		boolToInt(todo.Done),
		formatTime(todo.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// UpsertTodo inserts or replaces a todo by ID. Used by backup import.
func (s *Store) UpsertTodo(ctx context.Context, todo *domain.Todo) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO todos (id, text, done, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			done = excluded.done`,
		todo.ID,
		todo.Text,
		boolToInt(todo.Done),
		formatTime(todo.CreatedAt),
	)
	return err
}

// UpdateTodo rewrites a todo's text and done flag.
func (s *Store) UpdateTodo(ctx context.Context, todo *domain.Todo) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE todos SET text = ?, done = ? WHERE id = ?`,
		todo.Text, boolToInt(todo.Done), todo.ID)
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

// GetTodo retrieves a todo by ID.
func (s *Store) GetTodo(ctx context.Context, id string) (*domain.Todo, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, text, done, created_at FROM todos WHERE id = ?`, id)

	todo, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return todo, nil
}

// DeleteTodo removes a todo entry.
func (s *Store) DeleteTodo(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
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

// ListTodos returns every todo, oldest first.
func (s *Store) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, done, created_at FROM todos ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []domain.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}
	return todos, rows.Err()
}

// scanCountdown scans a row into a domain.Countdown.
func scanCountdown(scanner interface{ Scan(dest ...any) error }) (*domain.Countdown, error) {
	var c domain.Countdown

	var (
		date      string
		color     sql.NullString
		createdAt string
	)

	err := scanner.Scan(&c.ID, &c.Label, &date, &color, &createdAt)
	if err != nil {
		return nil, err
	}

	c.Date, err = parseTime(date)
	if err != nil {
		return nil, err
	}
	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	if color.Valid {
		c.Color = color.String
	}
	return &c, nil
}

// CreateCountdown inserts a countdown entry.
func (s *Store) CreateCountdown(ctx context.Context, cd *domain.Countdown) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO countdowns (id, label, date, color, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		cd.ID,
		cd.Label,
		formatTime(cd.Date),
		nullString(cd.Color),
		formatTime(cd.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// UpsertCountdown inserts or replaces a countdown by ID. Used by backup import.
func (s *Store) UpsertCountdown(ctx context.Context, cd *domain.Countdown) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO countdowns (id, label, date, color, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			label = excluded.label,
			date = excluded.date,
			color = excluded.color`,
		cd.ID,
		cd.Label,
		formatTime(cd.Date),
		nullString(cd.Color),
		formatTime(cd.CreatedAt),
	)
	return err
}

// GetCountdown retrieves a countdown by ID.
func (s *Store) GetCountdown(ctx context.Context, id string) (*domain.Countdown, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, label, date, color, created_at FROM countdowns WHERE id = ?`, id)

	cd, err := scanCountdown(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return cd, nil
}

// DeleteCountdown removes a countdown entry.
func (s *Store) DeleteCountdown(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM countdowns WHERE id = ?`, id)
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

// ListCountdowns returns every countdown ordered by target date.
func (s *Store) ListCountdowns(ctx context.Context) ([]domain.Countdown, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, label, date, color, created_at FROM countdowns ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cds []domain.Countdown
	for rows.Next() {
		cd, err := scanCountdown(rows)
		if err != nil {
			return nil, err
		}
		cds = append(cds, *cd)
	}
	return cds, rows.Err()
}
