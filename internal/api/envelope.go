package api

import "github.com/danielgtaylor/huma/v2"

// envelope is the uniform success wrapper every 2xx body is placed in.
// Errors bypass the transformer; APIError writes its own shape.
type envelope struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// EnvelopeTransformer wraps successful response bodies in the versioned
// envelope the client expects.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if len(status) > 0 && status[0] != '2' {
		return v, nil
	}
	if _, isErr := v.(*APIError); isErr {
		return v, nil
	}
	return &envelope{V: 1, Success: true, Data: v}, nil
}
