package api

// MessageResponse is a simple confirmation message body.
type MessageResponse struct {
	Message string `json:"message" doc:"Confirmation message"`
}

// MessageOutput wraps a confirmation message.
type MessageOutput struct {
	Body MessageResponse
}
