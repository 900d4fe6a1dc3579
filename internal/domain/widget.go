package domain

import "time"

// Todo is a todo-widget entry.
type Todo struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"createdAt"`
}

// Countdown is a countdown-widget entry.
type Countdown struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Date      time.Time `json:"date"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
