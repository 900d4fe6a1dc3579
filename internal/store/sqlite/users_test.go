package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	"github.com/launchdeckapp/launchdeck-server/internal/store"
)

func TestUserLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if n != 0 {
		t.Errorf("fresh store: got %d users", n)
	}

	user := &domain.User{
		ID:           "user-1",
		Email:        "op@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		CreatedAt:    time.Now(),
	}
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := s.GetUserByEmail(ctx, "op@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got.ID != "user-1" || got.PasswordHash != user.PasswordHash {
		t.Errorf("got %+v", got)
	}

	dup := &domain.User{ID: "user-2", Email: "op@example.com", PasswordHash: "x", CreatedAt: time.Now()}
	if err := s.CreateUser(ctx, dup); !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("duplicate email: expected ErrAlreadyExists, got %v", err)
	}

	n, _ = s.CountUsers(ctx)
	if n != 1 {
		t.Errorf("got %d users, want 1", n)
	}
}

func TestWidgetLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	todo := &domain.Todo{ID: "todo-1", Text: "water plants", CreatedAt: time.Now()}
	if err := s.CreateTodo(ctx, todo); err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}
	todo.Done = true
	if err := s.UpdateTodo(ctx, todo); err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}
	got, err := s.GetTodo(ctx, "todo-1")
	if err != nil {
		t.Fatalf("GetTodo: %v", err)
	}
	if !got.Done {
		t.Error("Done not persisted")
	}

	cd := &domain.Countdown{
		ID:        "cd-1",
		Label:     "Launch day",
		Date:      time.Now().Add(30 * 24 * time.Hour),
		Color:     "#00FF00",
		CreatedAt: time.Now(),
	}
	if err := s.CreateCountdown(ctx, cd); err != nil {
		t.Fatalf("CreateCountdown: %v", err)
	}
	cds, err := s.ListCountdowns(ctx)
	if err != nil {
		t.Fatalf("ListCountdowns: %v", err)
	}
	if len(cds) != 1 || cds[0].Color != "#00FF00" {
		t.Errorf("got %+v", cds)
	}

	if err := s.DeleteCountdown(ctx, "cd-1"); err != nil {
		t.Fatalf("DeleteCountdown: %v", err)
	}
	if err := s.DeleteTodo(ctx, "todo-1"); err != nil {
		t.Fatalf("DeleteTodo: %v", err)
	}
	if err := s.DeleteTodo(ctx, "todo-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
