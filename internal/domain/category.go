package domain

import "time"

// Category is a named, ordered, colored, optionally hidden grouping of sites.
//
// The name doubles as the key sites reference; renaming a category therefore
// cascades through every member site (see store.RenameCategory).
type Category struct {
	Name      string    `json:"name"`
	Order     int       `json:"order"`
	Color     string    `json:"color,omitempty"`
	IsHidden  bool      `json:"isHidden"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
func (c *Category) InitTimestamps() {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
}

// Touch updates the UpdatedAt timestamp.
func (c *Category) Touch() {
	c.UpdatedAt = time.Now()
}
