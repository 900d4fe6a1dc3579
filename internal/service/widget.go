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

// WidgetService manages the todo and countdown widget entries.
type WidgetService struct {
	store  store.Store
	logger *slog.Logger
}

// NewWidgetService creates a widget service.
func NewWidgetService(s store.Store, logger *slog.Logger) *WidgetService {
	return &WidgetService{store: s, logger: logger}
}

// CreateTodoRequest adds a todo entry.
type CreateTodoRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

// TodoUpdate contains the patchable todo fields. Nil means unchanged.
type TodoUpdate struct {
	Text *string `json:"text,omitempty" validate:"omitempty,max=500"`
	Done *bool   `json:"done,omitempty"`
}

// CreateCountdownRequest adds a countdown entry.
type CreateCountdownRequest struct {
	Label string    `json:"label" validate:"required,max=200"`
	Date  time.Time `json:"date" validate:"required"`
	Color string    `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// ListTodos returns all todo entries, oldest first.
func (s *WidgetService) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	return s.store.ListTodos(ctx)
}

// CreateTodo adds a todo entry.
func (s *WidgetService) CreateTodo(ctx context.Context, req CreateTodoRequest) (*domain.Todo, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	todoID, err := id.Generate("todo")
	if err != nil {
		return nil, fmt.Errorf("generate todo ID: %w", err)
	}
	todo := &domain.Todo{ID: todoID, Text: req.Text, CreatedAt: time.Now()}

	if err := s.store.CreateTodo(ctx, todo); err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return todo, nil
}

// UpdateTodo applies a partial update (text edit or done toggle).
func (s *WidgetService) UpdateTodo(ctx context.Context, todoID string, update TodoUpdate) (*domain.Todo, error) {
	if err := validate.Validate(update); err != nil {
		return nil, err
	}

	todo, err := s.store.GetTodo(ctx, todoID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domainerrors.NotFound("todo not found")
		}
		return nil, fmt.Errorf("get todo: %w", err)
	}

	if update.Text != nil {
		if *update.Text == "" {
			return nil, domainerrors.Validation("text cannot be empty")
		}
		todo.Text = *update.Text
	}
	if update.Done != nil {
		todo.Done = *update.Done
	}

	if err := s.store.UpdateTodo(ctx, todo); err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return todo, nil
}

// DeleteTodo removes a todo entry.
func (s *WidgetService) DeleteTodo(ctx context.Context, todoID string) error {
	if err := s.store.DeleteTodo(ctx, todoID); err != nil {
		if store.IsNotFound(err) {
			return domainerrors.NotFound("todo not found")
		}
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}

// ListCountdowns returns all countdown entries by target date.
func (s *WidgetService) ListCountdowns(ctx context.Context) ([]domain.Countdown, error) {
	return s.store.ListCountdowns(ctx)
}

// CreateCountdown adds a countdown entry.
func (s *WidgetService) CreateCountdown(ctx context.Context, req CreateCountdownRequest) (*domain.Countdown, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	cdID, err := id.Generate("cd")
	if err != nil {
		return nil, fmt.Errorf("generate countdown ID: %w", err)
	}
	cd := &domain.Countdown{
		ID:        cdID,
		Label:     req.Label,
		Date:      req.Date,
		Color:     req.Color,
		CreatedAt: time.Now(),
	}

	if err := s.store.CreateCountdown(ctx, cd); err != nil {
		return nil, fmt.Errorf("create countdown: %w", err)
	}
	return cd, nil
}

// DeleteCountdown removes a countdown entry.
func (s *WidgetService) DeleteCountdown(ctx context.Context, cdID string) error {
	if err := s.store.DeleteCountdown(ctx, cdID); err != nil {
		if store.IsNotFound(err) {
			return domainerrors.NotFound("countdown not found")
		}
		return fmt.Errorf("delete countdown: %w", err)
	}
	return nil
}
