// Package backup implements whole-dashboard export and import as a single
// JSON document whose key layout matches what clients store locally, so a
// file exported here can be imported by the web client and vice versa.
package backup

import (
	"encoding/json"

	"github.com/launchdeckapp/launchdeck-server/internal/domain"
)

// Document is the backup file format. Top-level keys are fixed; the client
// depends on them.
type Document struct {
	Sites            []domain.Site       `json:"sites"`
	Categories       []string            `json:"categories"`
	CategoryColors   map[string]string   `json:"categoryColors"`
	Layout           json.RawMessage     `json:"layout,omitempty"`
	Config           json.RawMessage     `json:"config,omitempty"`
	HiddenCategories []string            `json:"hiddenCategories"`
	Theme            json.RawMessage     `json:"theme,omitempty"`
	SearchEngine     string              `json:"searchEngine,omitempty"`
	CustomFonts      []domain.CustomFont `json:"customFonts"`
	Todos            []domain.Todo       `json:"todos"`
	Countdowns       []domain.Countdown  `json:"countdowns"`

	// Wallpaper carries the active custom wallpaper inline, best-effort.
	Wallpaper *InlineWallpaper `json:"wallpaper,omitempty"`
}

// InlineWallpaper is a base64-inlined wallpaper file.
type InlineWallpaper struct {
	Filename string `json:"filename"`
	Data     string `json:"data"` // base64
	Blurhash string `json:"blurhash,omitempty"`
}

// ItemFailure records one item that could not be imported.
type ItemFailure struct {
	Section string `json:"section"`
	ID      string `json:"id,omitempty"`
	Reason  string `json:"reason"`
}

// Result aggregates the outcome of a lenient import: every importable item
// is attempted, failures are collected instead of aborting.
type Result struct {
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Failures  []ItemFailure `json:"failures,omitempty"`
}

func (r *Result) ok(n int) {
	r.Succeeded += n
}

func (r *Result) fail(section, id string, err error) {
	r.Failed++
	r.Failures = append(r.Failures, ItemFailure{
		Section: section,
		ID:      id,
		Reason:  err.Error(),
	})
}
