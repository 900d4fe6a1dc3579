package pagemeta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// defaultTTL is how long a scraped result stays fresh.
const defaultTTL = 24 * time.Hour

// Service wraps the scraper with a badger-backed TTL cache.
type Service struct {
	scraper *Scraper
	db      *badger.DB
	ttl     time.Duration
	logger  *slog.Logger
}

// NewService opens a badger cache at cachePath and wraps the scraper.
func NewService(cachePath string, scraper *Scraper, logger *slog.Logger) (*Service, error) {
	opts := badger.DefaultOptions(cachePath)
	opts.Logger = nil // Badger's own logging is noisy at default levels

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open pagemeta cache: %w", err)
	}

	return &Service{
		scraper: scraper,
		db:      db,
		ttl:     defaultTTL,
		logger:  logger,
	}, nil
}

// Lookup returns metadata for the URL, from cache when fresh.
func (s *Service) Lookup(ctx context.Context, pageURL string) (*Metadata, error) {
	key := []byte(normalizeKey(pageURL))

	if meta := s.cached(key); meta != nil {
		return meta, nil
	}

	meta := s.scraper.Scrape(ctx, pageURL)

	if err := s.put(key, meta); err != nil {
		s.logger.Warn("pagemeta cache write failed", "url", pageURL, "error", err)
	}
	return meta, nil
}

// cached returns the cached entry or nil on miss/decode failure.
func (s *Service) cached(key []byte) *Metadata {
	var meta *Metadata
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var m Metadata
			if err := json.Unmarshal(val, &m); err != nil {
				return err
			}
			meta = &m
			return nil
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			s.logger.Warn("pagemeta cache read failed", "error", err)
		}
		return nil
	}
	return meta
}

func (s *Service) put(key []byte, meta *Metadata) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(key, data).WithTTL(s.ttl)
		return txn.SetEntry(entry)
	})
}

// Close closes the underlying cache database.
func (s *Service) Close() error {
	return s.db.Close()
}
