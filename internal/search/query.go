package search

import (
	"context"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a search query.
type Params struct {
	Query    string // User's search query
	Category string // Restrict to one category ("" = all)
	Limit    int
	Offset   int
}

// DefaultParams returns sensible defaults.
func DefaultParams() Params {
	return Params{Limit: 20}
}

// Result represents the search results.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"tookMs"`
	Hits   []Hit  `json:"hits"`
}

// Hit represents a single matched site.
type Hit struct {
	ID          string            `json:"id"`
	Score       float64           `json:"score"`
	Name        string            `json:"name"`
	URL         string            `json:"url,omitempty"`
	Description string            `json:"description,omitempty"`
	Category    string            `json:"category"`
	Type        string            `json:"type"`
	Highlights  map[string]string `json:"highlights,omitempty"`
}

// Search executes a query against the site index.
func (s *SiteIndex) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if params.Limit <= 0 {
		params.Limit = 20
	}

	searchQuery := buildSearchQuery(params)
	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)

	searchRequest.Highlight = bleve.NewHighlight()
	searchRequest.Highlight.AddField("name")
	searchRequest.Highlight.AddField("description")

	searchRequest.Fields = []string{"name", "url", "description", "category", "type"}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		h := Hit{
			ID:          hit.ID,
			Score:       hit.Score,
			Name:        fieldString(hit.Fields, "name"),
			URL:         fieldString(hit.Fields, "url"),
			Description: fieldString(hit.Fields, "description"),
			Category:    fieldString(hit.Fields, "category"),
			Type:        fieldString(hit.Fields, "type"),
		}
		if len(hit.Fragments) > 0 {
			h.Highlights = make(map[string]string, len(hit.Fragments))
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					h.Highlights[field] = fragments[0]
				}
			}
		}
		result.Hits = append(result.Hits, h)
	}

	return result, nil
}

// buildSearchQuery combines match, prefix, and fuzzy queries over the
// searchable fields so both exact and approximate input score hits.
func buildSearchQuery(params Params) query.Query {
	folded := foldQuery(params.Query)
	if folded == "" {
		return bleve.NewMatchNoneQuery()
	}

	var parts []query.Query

	// Exact term matches on the name weigh heaviest.
	nameMatch := bleve.NewMatchQuery(folded)
	nameMatch.SetField("name")
	nameMatch.SetBoost(3.0)
	parts = append(parts, nameMatch)

	namePrefix := bleve.NewPrefixQuery(folded)
	namePrefix.SetField("name")
	namePrefix.SetBoost(2.0)
	parts = append(parts, namePrefix)

	nameFuzzy := bleve.NewFuzzyQuery(folded)
	nameFuzzy.SetField("name")
	nameFuzzy.SetFuzziness(1)
	parts = append(parts, nameFuzzy)

	descMatch := bleve.NewMatchQuery(folded)
	descMatch.SetField("description")
	parts = append(parts, descMatch)

	urlMatch := bleve.NewMatchQuery(folded)
	urlMatch.SetField("url")
	parts = append(parts, urlMatch)

	categoryMatch := bleve.NewMatchQuery(folded)
	categoryMatch.SetField("category")
	parts = append(parts, categoryMatch)

	combined := bleve.NewDisjunctionQuery(parts...)

	if params.Category == "" {
		return combined
	}

	// Category filter narrows the disjunction.
	filter := bleve.NewMatchQuery(foldQuery(params.Category))
	filter.SetField("category")
	return bleve.NewConjunctionQuery(combined, filter)
}

func fieldString(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}
