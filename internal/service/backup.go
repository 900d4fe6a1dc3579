package service

import (
	"context"
	"log/slog"

	"github.com/launchdeckapp/launchdeck-server/internal/backup"
	"github.com/launchdeckapp/launchdeck-server/internal/media/wallpapers"
	"github.com/launchdeckapp/launchdeck-server/internal/store"
)

// BackupService exposes configuration export and import.
type BackupService struct {
	exporter      *backup.Exporter
	importer      *backup.Importer
	searchService *SearchService
	logger        *slog.Logger
}

// NewBackupService creates a backup service.
func NewBackupService(
	s store.Store,
	wpStorage *wallpapers.Storage,
	searchService *SearchService,
	logger *slog.Logger,
) *BackupService {
	return &BackupService{
		exporter:      backup.NewExporter(s, wpStorage, logger),
		importer:      backup.NewImporter(s, wpStorage, logger),
		searchService: searchService,
		logger:        logger,
	}
}

// Export assembles the full backup document. Section failures are reported
// as warnings, not errors.
func (s *BackupService) Export(ctx context.Context) (*backup.Document, []string) {
	return s.exporter.Export(ctx)
}

// Import applies a backup document with per-item leniency, then rebuilds
// the search index to cover the imported sites.
func (s *BackupService) Import(ctx context.Context, doc *backup.Document) *backup.Result {
	result := s.importer.Import(ctx, doc)

	if err := s.searchService.RebuildFromStore(ctx); err != nil {
		s.logger.Warn("post-import search rebuild failed", "error", err)
	}

	return result
}
