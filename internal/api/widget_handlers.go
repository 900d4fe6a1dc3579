package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	"github.com/launchdeckapp/launchdeck-server/internal/service"
)

func (s *Server) registerWidgetRoutes() {
	security := []map[string][]string{{"bearer": {}}}

	huma.Register(s.api, huma.Operation{
		OperationID: "list-todos",
		Method:      http.MethodGet,
		Path:        "/api/v1/todos",
		Summary:     "List todos",
		Tags:        []string{"Widgets"},
		Security:    security,
	}, s.handleListTodos)

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-todo",
		Method:        http.MethodPost,
		Path:          "/api/v1/todos",
		Summary:       "Create a todo",
		Tags:        []string{"Widgets"},
		Security:    security,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateTodo)

	huma.Register(s.api, huma.Operation{
		OperationID: "update-todo",
		Method:      http.MethodPatch,
		Path:        "/api/v1/todos/{id}",
		Summary:     "Update a todo",
		Tags:        []string{"Widgets"},
		Security:    security,
	}, s.handleUpdateTodo)

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-todo",
		Method:      http.MethodDelete,
		Path:        "/api/v1/todos/{id}",
		Summary:     "Delete a todo",
		Tags:        []string{"Widgets"},
		Security:    security,
	}, s.handleDeleteTodo)

	huma.Register(s.api, huma.Operation{
		OperationID: "list-countdowns",
		Method:      http.MethodGet,
		Path:        "/api/v1/countdowns",
		Summary:     "List countdowns",
		Tags:        []string{"Widgets"},
		Security:    security,
	}, s.handleListCountdowns)

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-countdown",
		Method:        http.MethodPost,
		Path:          "/api/v1/countdowns",
		Summary:       "Create a countdown",
		Tags:        []string{"Widgets"},
		Security:    security,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateCountdown)

	huma.Register(s.api, huma.Operation{
		OperationID: "delete-countdown",
		Method:      http.MethodDelete,
		Path:        "/api/v1/countdowns/{id}",
		Summary:     "Delete a countdown",
		Tags:        []string{"Widgets"},
		Security:    security,
	}, s.handleDeleteCountdown)
}

type listTodosInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

type todosOutput struct {
	Body struct {
		Todos []domain.Todo `json:"todos"`
	}
}

func (s *Server) handleListTodos(ctx context.Context, input *listTodosInput) (*todosOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	todos, err := s.services.Widget.ListTodos(ctx)
	if err != nil {
		return nil, err
	}

	resp := &todosOutput{}
	resp.Body.Todos = todos
	return resp, nil
}

type createTodoInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          service.CreateTodoRequest
}

type todoOutput struct {
	Body domain.Todo
}

func (s *Server) handleCreateTodo(ctx context.Context, input *createTodoInput) (*todoOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	todo, err := s.services.Widget.CreateTodo(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &todoOutput{Body: *todo}, nil
}

type updateTodoInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            string `path:"id" doc:"Todo ID"`
	Body          service.TodoUpdate
}

func (s *Server) handleUpdateTodo(ctx context.Context, input *updateTodoInput) (*todoOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	todo, err := s.services.Widget.UpdateTodo(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &todoOutput{Body: *todo}, nil
}

type deleteTodoInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            string `path:"id" doc:"Todo ID"`
}

func (s *Server) handleDeleteTodo(ctx context.Context, input *deleteTodoInput) (*MessageOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Widget.DeleteTodo(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Todo deleted"}}, nil
}

type listCountdownsInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

type countdownsOutput struct {
	Body struct {
		Countdowns []domain.Countdown `json:"countdowns"`
	}
}

func (s *Server) handleListCountdowns(ctx context.Context, input *listCountdownsInput) (*countdownsOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	countdowns, err := s.services.Widget.ListCountdowns(ctx)
	if err != nil {
		return nil, err
	}

	resp := &countdownsOutput{}
	resp.Body.Countdowns = countdowns
	return resp, nil
}

type createCountdownInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	Body          service.CreateCountdownRequest
}

type countdownOutput struct {
	Body domain.Countdown
}

func (s *Server) handleCreateCountdown(ctx context.Context, input *createCountdownInput) (*countdownOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	countdown, err := s.services.Widget.CreateCountdown(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &countdownOutput{Body: *countdown}, nil
}

type deleteCountdownInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
	ID            string `path:"id" doc:"Countdown ID"`
}

func (s *Server) handleDeleteCountdown(ctx context.Context, input *deleteCountdownInput) (*MessageOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Widget.DeleteCountdown(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Countdown deleted"}}, nil
}
