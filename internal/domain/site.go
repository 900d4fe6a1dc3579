// Package domain defines the core entities of the LaunchDeck dashboard and the
// reconciliation rules that keep site/folder/category relationships consistent.
package domain

import "time"

// SiteType discriminates bookmarks from folders.
type SiteType string

// Site types.
const (
	SiteTypeLink   SiteType = "site"
	SiteTypeFolder SiteType = "folder"
)

// IconMode describes where a site's icon comes from.
type IconMode string

// Icon source modes.
const (
	IconModeAuto    IconMode = "auto"    // favicon fetched from the site
	IconModeUpload  IconMode = "upload"  // uploaded or locally cached file
	IconModeLibrary IconMode = "library" // icon picked from the built-in library
)

// FontOverrides holds optional per-site typography overrides.
// Stored as a JSON blob column; nil means "use the global settings".
type FontOverrides struct {
	TitleFamily       string `json:"titleFamily,omitempty"`
	TitleColor        string `json:"titleColor,omitempty"`
	TitleSize         int    `json:"titleSize,omitempty"`
	DescriptionFamily string `json:"descriptionFamily,omitempty"`
	DescriptionColor  string `json:"descriptionColor,omitempty"`
	DescriptionSize   int    `json:"descriptionSize,omitempty"`
}

// Site is a bookmark or folder on the dashboard grid.
//
// Categories are referenced by name, not by a numeric key: Category holds the
// name of the owning Category row. ParentID, when non-empty, references a Site
// of type folder in the same category; folders never nest. Order is unique only
// within the (Category, ParentID) sibling scope.
type Site struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	URL         string         `json:"url,omitempty"`
	Description string         `json:"description,omitempty"`
	Category    string         `json:"category"`
	Color       string         `json:"color,omitempty"`
	Icon        string         `json:"icon,omitempty"`
	IconMode    IconMode       `json:"iconMode,omitempty"`
	Fonts       *FontOverrides `json:"fonts,omitempty"`
	Order       int            `json:"order"`
	IsHidden    bool           `json:"isHidden"`
	Type        SiteType       `json:"type"`
	ParentID    string         `json:"parentId,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// IsFolder reports whether the site is a folder.
func (s *Site) IsFolder() bool {
	return s.Type == SiteTypeFolder
}

// IsRoot reports whether the site sits directly under its category (no folder).
func (s *Site) IsRoot() bool {
	return s.ParentID == ""
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
func (s *Site) InitTimestamps() {
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
}

// Touch updates the UpdatedAt timestamp.
func (s *Site) Touch() {
	s.UpdatedAt = time.Now()
}
