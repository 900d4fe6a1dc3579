package domain

import "time"

// CustomFont is a user-registered font. Deleting one resets any settings
// reference to the default font.
type CustomFont struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Family    string    `json:"family"`
	URL       string    `json:"url,omitempty"`
	Provider  string    `json:"provider,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
