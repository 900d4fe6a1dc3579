package domain

import (
	"encoding/json"
	"time"
)

// GlobalSettingsID is the fixed primary key of the singleton settings row.
const GlobalSettingsID = "global"

// GlobalSettings is the singleton document of client-shaped configuration
// blobs. The server stores them opaquely and replaces the whole document on
// every write; the client owns their internal shape.
type GlobalSettings struct {
	ID           string          `json:"-"`
	Layout       json.RawMessage `json:"layout,omitempty"`
	Config       json.RawMessage `json:"config,omitempty"`
	Theme        json.RawMessage `json:"theme,omitempty"`
	SearchEngine string          `json:"searchEngine,omitempty"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// NewGlobalSettings creates an empty settings document.
func NewGlobalSettings() *GlobalSettings {
	return &GlobalSettings{
		ID:        GlobalSettingsID,
		UpdatedAt: time.Now(),
	}
}
