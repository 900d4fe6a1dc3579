// Package validation wraps go-playground/validator for request structs,
// translating field failures into coded domain errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/launchdeckapp/launchdeck-server/internal/errors"
)

// Validator validates request structs and reports failures keyed by the
// field's JSON name.
type Validator struct {
	v *validator.Validate
}

// New builds a validator with the custom rules the API relies on.
func New() *Validator {
	v := validator.New()

	// Report fields under their JSON names so clients can match failures
	// to the payload they sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" {
			return fld.Name
		}
		return name
	})

	// Category names travel as URL path segments; a separator or traversal
	// sequence would change the route.
	if err := v.RegisterValidation("pathsafe", pathSafe); err != nil {
		panic(err)
	}

	return &Validator{v: v}
}

func pathSafe(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return !strings.ContainsAny(s, "/\\") && s != "." && s != ".."
}

// Validate checks a struct. Failures come back as a single validation
// error carrying per-field messages in its details.
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = message(fe)
	}
	return domainerrors.ValidationWithDetails("validation failed", details)
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + e.Param()
	case "hexcolor":
		return "must be a hex color like #1a2b3c"
	case "pathsafe":
		return "must not contain path separators"
	case "gte":
		return "must be at least " + e.Param()
	case "lte":
		return "must be at most " + e.Param()
	default:
		return "is invalid"
	}
}
