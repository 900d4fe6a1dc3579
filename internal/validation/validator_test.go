package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	domainerrors "github.com/launchdeckapp/launchdeck-server/internal/errors"
	"github.com/launchdeckapp/launchdeck-server/internal/validation"
)

type testRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Color    string `json:"color" validate:"omitempty,hexcolor"`
}

func TestValidateSuccess(t *testing.T) {
	v := validation.New()

	err := v.Validate(testRequest{
		Email:    "op@example.com",
		Password: "password123",
		Color:    "#FF6600",
	})
	assert.NoError(t, err)
}

func TestValidateErrors(t *testing.T) {
	v := validation.New()

	err := v.Validate(testRequest{Email: "not-an-email", Password: "short", Color: "red"})
	assert.Error(t, err)

	var domainErr *domainerrors.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected domain error, got %T", err)
	}
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	// Field names come from JSON tags.
	assert.Contains(t, domainErr.Details, "email")
	assert.Contains(t, domainErr.Details, "password")
	assert.Contains(t, domainErr.Details, "color")
}

func TestValidatePathSafe(t *testing.T) {
	v := validation.New()

	type req struct {
		Name string `json:"name" validate:"required,pathsafe"`
	}

	assert.NoError(t, v.Validate(req{Name: "Dev Tools"}))

	for _, bad := range []string{"a/b", `a\b`, ".", ".."} {
		err := v.Validate(req{Name: bad})
		if assert.Error(t, err, "name %q should be rejected", bad) {
			var domainErr *domainerrors.Error
			assert.ErrorAs(t, err, &domainErr)
			assert.Contains(t, domainErr.Details, "name")
		}
	}
}
