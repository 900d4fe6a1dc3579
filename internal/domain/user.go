package domain

import "time"

// User is the single operator account. LaunchDeck is a personal dashboard;
// exactly one user is created through the setup endpoint.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
