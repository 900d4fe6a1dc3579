package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/launchdeckapp/launchdeck-server/internal/search"
	"github.com/launchdeckapp/launchdeck-server/internal/store"
)

const maxSearchLimit = 100

// SearchService runs full-text queries over the site index and rebuilds it
// from sqlite when needed.
type SearchService struct {
	store  store.Store
	index  *search.SiteIndex
	logger *slog.Logger
}

// NewSearchService creates a search service.
func NewSearchService(s store.Store, index *search.SiteIndex, logger *slog.Logger) *SearchService {
	return &SearchService{store: s, index: index, logger: logger}
}

// Search runs a query. Limits are clamped to sane bounds.
func (s *SearchService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	if params.Limit <= 0 {
		params.Limit = search.DefaultParams().Limit
	}
	if params.Limit > maxSearchLimit {
		params.Limit = maxSearchLimit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	return s.index.Search(ctx, params)
}

// RebuildFromStore drops the index contents and reindexes every site.
// Called at startup when the index is fresh and after a bulk import.
func (s *SearchService) RebuildFromStore(ctx context.Context) error {
	sites, err := s.store.ListSites(ctx)
	if err != nil {
		return fmt.Errorf("list sites: %w", err)
	}

	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	docs := make([]*search.SiteDocument, len(sites))
	for i := range sites {
		docs[i] = search.DocumentFor(&sites[i])
	}
	if err := s.index.IndexAll(docs); err != nil {
		return fmt.Errorf("index sites: %w", err)
	}

	s.logger.Info("search index rebuilt", "sites", len(sites))
	return nil
}
