// Package search provides full-text search over dashboard sites using Bleve.
package search

import (
	"github.com/launchdeckapp/launchdeck-server/internal/domain"
)

// SiteDocument is the document shape stored in the Bleve index.
type SiteDocument struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	CreatedAt   int64  `json:"created_at"` // Unix millis
}

// DocumentFor builds a search document from a site.
func DocumentFor(site *domain.Site) *SiteDocument {
	return &SiteDocument{
		ID:          site.ID,
		Name:        site.Name,
		URL:         site.URL,
		Description: site.Description,
		Category:    site.Category,
		Type:        string(site.Type),
		CreatedAt:   site.CreatedAt.UnixMilli(),
	}
}

// ToMap converts the document to a map with lowercase field names so they
// match the index mapping. Bleve defaults to Go field names otherwise.
func (d *SiteDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"name":       d.Name,
		"category":   d.Category,
		"type":       d.Type,
		"created_at": d.CreatedAt,
	}
	if d.URL != "" {
		m["url"] = d.URL
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	return m
}
