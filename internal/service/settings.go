package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/launchdeckapp/launchdeck-server/internal/coalesce"
	"github.com/launchdeckapp/launchdeck-server/internal/domain"
	"github.com/launchdeckapp/launchdeck-server/internal/store"
)

// settingsFlushDelay is how long a settings write sits in memory waiting for
// more edits before it is flushed to sqlite. Clients send a PUT per keystroke
// while the user drags sliders around; bursts collapse into one write.
const settingsFlushDelay = 500 * time.Millisecond

// SettingsService owns the singleton settings document. Writes go through a
// depth-1 coalescing queue: at most one flush runs at a time, and an update
// arriving during an in-flight flush triggers exactly one follow-up flush.
type SettingsService struct {
	store  store.Store
	logger *slog.Logger

	mu      sync.Mutex
	pending *domain.GlobalSettings
	flusher *coalesce.Flusher
}

// SettingsUpdateRequest replaces the whole settings document. The blobs are
// client-owned; the server stores them opaquely.
type SettingsUpdateRequest struct {
	Layout       json.RawMessage `json:"layout,omitempty"`
	Config       json.RawMessage `json:"config,omitempty"`
	Theme        json.RawMessage `json:"theme,omitempty"`
	SearchEngine string          `json:"searchEngine,omitempty"`
}

// NewSettingsService creates a settings service.
func NewSettingsService(s store.Store, logger *slog.Logger) *SettingsService {
	svc := &SettingsService{store: s, logger: logger}
	svc.flusher = coalesce.New(svc.flush, settingsFlushDelay, logger)
	return svc
}

// Get returns the current settings document, including a pending write that
// has not been flushed yet.
func (s *SettingsService) Get(ctx context.Context) (*domain.GlobalSettings, error) {
	s.mu.Lock()
	if s.pending != nil {
		snapshot := *s.pending
		s.mu.Unlock()
		return &snapshot, nil
	}
	s.mu.Unlock()

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

// Replace stages a whole-document replacement and schedules a flush.
func (s *SettingsService) Replace(ctx context.Context, req SettingsUpdateRequest) (*domain.GlobalSettings, error) {
	settings := &domain.GlobalSettings{
		ID:           domain.GlobalSettingsID,
		Layout:       req.Layout,
		Config:       req.Config,
		Theme:        req.Theme,
		SearchEngine: req.SearchEngine,
		UpdatedAt:    time.Now(),
	}

	s.mu.Lock()
	s.pending = settings
	s.mu.Unlock()
	s.flusher.Mark()

	snapshot := *settings
	return &snapshot, nil
}

// ResetFontReferences replaces every string equal to the given font family in
// the settings blobs with an empty string, falling back to the client's
// default font. Called when a custom font is deleted.
func (s *SettingsService) ResetFontReferences(ctx context.Context, family string) error {
	if family == "" {
		return nil
	}

	current, err := s.Get(ctx)
	if err != nil {
		return err
	}

	config, configChanged := replaceJSONString(current.Config, family, "")
	theme, themeChanged := replaceJSONString(current.Theme, family, "")
	if !configChanged && !themeChanged {
		return nil
	}

	s.mu.Lock()
	current.Config = config
	current.Theme = theme
	current.UpdatedAt = time.Now()
	s.pending = current
	s.mu.Unlock()
	s.flusher.Mark()

	s.logger.Info("font references reset in settings", "family", family)
	return nil
}

// Close drains any pending write to sqlite. Called on shutdown.
func (s *SettingsService) Close() error {
	return s.flusher.Close()
}

// flush writes the staged document. Runs on the coalescer's goroutine.
func (s *SettingsService) flush(ctx context.Context) error {
	s.mu.Lock()
	settings := s.pending
	s.pending = nil
	s.mu.Unlock()

	if settings == nil {
		return nil
	}
	if err := s.store.ReplaceSettings(ctx, settings); err != nil {
		// Restage so the write is retried on the next mark rather than lost.
		s.mu.Lock()
		if s.pending == nil {
			s.pending = settings
		}
		s.mu.Unlock()
		return fmt.Errorf("flush settings: %w", err)
	}
	s.logger.Debug("settings flushed")
	return nil
}

// replaceJSONString walks an opaque JSON blob and replaces string values
// equal to match. Returns the (possibly rewritten) blob and whether anything
// changed. Invalid or empty blobs are returned unchanged.
func replaceJSONString(raw json.RawMessage, match, replacement string) (json.RawMessage, bool) {
	if len(raw) == 0 || !bytes.Contains(raw, []byte(match)) {
		return raw, false
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return raw, false
	}

	doc, changed := replaceStringValues(doc, match, replacement)
	if !changed {
		return raw, false
	}

	rewritten, err := json.Marshal(doc)
	if err != nil {
		return raw, false
	}
	return rewritten, true
}

func replaceStringValues(v any, match, replacement string) (any, bool) {
	switch val := v.(type) {
	case string:
		if val == match {
			return replacement, true
		}
	case map[string]any:
		changed := false
		for k, item := range val {
			rewritten, c := replaceStringValues(item, match, replacement)
			if c {
				val[k] = rewritten
				changed = true
			}
		}
		return val, changed
	case []any:
		changed := false
		for i, item := range val {
			rewritten, c := replaceStringValues(item, match, replacement)
			if c {
				val[i] = rewritten
				changed = true
			}
		}
		return val, changed
	}
	return v, false
}
