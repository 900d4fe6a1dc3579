package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

type healthOutput struct {
	Body struct {
		Status  string `json:"status" doc:"Server status"`
		Version string `json:"version" doc:"API version"`
	}
}

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-health",
		Method:      http.MethodGet,
		Path:        "/api/v1/health",
		Summary:     "Health check",
		Tags:        []string{"System"},
	}, s.handleHealth)
}

func (s *Server) handleHealth(_ context.Context, _ *struct{}) (*healthOutput, error) {
	resp := &healthOutput{}
	resp.Body.Status = "ok"
	resp.Body.Version = apiVersion
	return resp, nil
}
