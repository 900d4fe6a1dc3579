package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	"github.com/launchdeckapp/launchdeck-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-auth-status",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/status",
		Summary:     "Check setup status",
		Description: "Reports whether the operator account has been created yet.",
		Tags:        []string{"Auth"},
	}, s.handleAuthStatus)

	huma.Register(s.api, huma.Operation{
		OperationID:   "post-auth-setup",
		Method:        http.MethodPost,
		Path:          "/api/v1/auth/setup",
		Summary:       "Create the operator account",
		Description:   "First-run setup. Fails once an account exists.",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, s.handleAuthSetup)

	huma.Register(s.api, huma.Operation{
		OperationID: "post-auth-login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Log in",
		Tags:        []string{"Auth"},
	}, s.handleAuthLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-auth-me",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/me",
		Summary:     "Get the authenticated user",
		Tags:        []string{"Auth"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAuthMe)
}

type authStatusOutput struct {
	Body struct {
		Configured bool `json:"configured" doc:"True when the operator account exists"`
	}
}

func (s *Server) handleAuthStatus(ctx context.Context, _ *struct{}) (*authStatusOutput, error) {
	configured, err := s.services.Auth.IsConfigured(ctx)
	if err != nil {
		return nil, err
	}
	resp := &authStatusOutput{}
	resp.Body.Configured = configured
	return resp, nil
}

type authSetupInput struct {
	Body service.SetupRequest
}

type authOutput struct {
	Body service.AuthResponse
}

func (s *Server) handleAuthSetup(ctx context.Context, input *authSetupInput) (*authOutput, error) {
	resp, err := s.services.Auth.Setup(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &authOutput{Body: *resp}, nil
}

type authLoginInput struct {
	Body service.LoginRequest
}

func (s *Server) handleAuthLogin(ctx context.Context, input *authLoginInput) (*authOutput, error) {
	req := input.Body
	req.IPAddress = clientIP(ctx)
	resp, err := s.services.Auth.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	return &authOutput{Body: *resp}, nil
}

type authMeInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

type authMeOutput struct {
	Body struct {
		User *domain.User `json:"user"`
	}
}

func (s *Server) handleAuthMe(ctx context.Context, input *authMeInput) (*authMeOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, huma.Error404NotFound("User not found")
	}

	resp := &authMeOutput{}
	resp.Body.User = user
	return resp, nil
}
