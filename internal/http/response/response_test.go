package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "github.com/launchdeckapp/launchdeck-server/internal/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"hello": "world"}, nil)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d", rec.Code)
	}
	env := decode(t, rec)
	if !env.Success {
		t.Error("expected success=true")
	}
}

func TestHandleErrorDomain(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, domainerrors.NotFound("no such wallpaper"), nil)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
	env := decode(t, rec)
	if env.Error != "no such wallpaper" {
		t.Errorf("error: got %q", env.Error)
	}
	if env.Code != "NOT_FOUND" {
		t.Errorf("code: got %q", env.Code)
	}
}

func TestHandleErrorUnknown(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, http.ErrBodyNotAllowed, nil)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
}
