package providers

import (
	"context"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/launchdeckapp/launchdeck-server/internal/config"
	"github.com/launchdeckapp/launchdeck-server/internal/logger"
	"github.com/launchdeckapp/launchdeck-server/internal/pagemeta"
	"github.com/launchdeckapp/launchdeck-server/internal/search"
	"github.com/launchdeckapp/launchdeck-server/internal/service"
)

// SearchIndexHandle wraps the bleve index with shutdown capability.
type SearchIndexHandle struct {
	*search.SiteIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the full-text site index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewSiteIndex(search.Options{
		DataPath: filepath.Join(cfg.Storage.DataPath, "search"),
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &SearchIndexHandle{SiteIndex: index}, nil
}

// ProvideSearchService provides the search service and reconciles the index
// with the database at startup.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewSearchService(storeHandle.Store, indexHandle.SiteIndex, log.Logger)

	if err := svc.RebuildFromStore(context.Background()); err != nil {
		log.Warn("Startup search rebuild failed", "error", err)
	}

	return svc, nil
}

// PageMetaHandle wraps the page-metadata service with shutdown capability.
type PageMetaHandle struct {
	*pagemeta.Service
}

// Shutdown implements do.Shutdownable.
func (h *PageMetaHandle) Shutdown() error {
	return h.Close()
}

// ProvidePageMetaService provides the cached page-metadata lookup service.
func ProvidePageMetaService(i do.Injector) (*PageMetaHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc, err := pagemeta.NewService(
		filepath.Join(cfg.Storage.DataPath, "pagemeta"),
		pagemeta.NewScraper(log.Logger),
		log.Logger,
	)
	if err != nil {
		return nil, err
	}

	return &PageMetaHandle{Service: svc}, nil
}
