// Package coalesce provides a debounced write scheduler. Bursts of changes
// collapse into one flush; a change arriving while a flush is running queues
// exactly one follow-up flush, so a trailing edit is never dropped.
package coalesce

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// FlushFunc performs the actual write. It receives a context bounded by the
// flusher's timeout.
type FlushFunc func(ctx context.Context) error

// Flusher debounces calls to Mark into flushes of the underlying FlushFunc.
//
// State machine: idle -> debouncing -> flushing (-> debouncing again when
// marked mid-flush). The dirty flag holds at most one pending re-flush no
// matter how many marks arrive during a flush.
type Flusher struct {
	flush   FlushFunc
	delay   time.Duration
	timeout time.Duration
	logger  *slog.Logger

	mu       sync.Mutex
	timer    *time.Timer
	flushing bool
	dirty    bool
	closed   bool

	wg sync.WaitGroup
}

// Option configures a Flusher.
type Option func(*Flusher)

// WithTimeout bounds each flush call. Default is 10 seconds.
func WithTimeout(d time.Duration) Option {
	return func(f *Flusher) { f.timeout = d }
}

// New creates a Flusher that runs flush after delay has elapsed since the
// first un-flushed Mark.
func New(flush FlushFunc, delay time.Duration, logger *slog.Logger, opts ...Option) *Flusher {
	f := &Flusher{
		flush:   flush,
		delay:   delay,
		timeout: 10 * time.Second,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Mark records that state changed and a flush is needed. Safe for concurrent
// use. Marks during an in-flight flush coalesce into a single follow-up.
func (f *Flusher) Mark() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	if f.flushing {
		f.dirty = true
		return
	}
	if f.timer != nil {
		// Already debouncing; the scheduled flush will pick this change up.
		return
	}
	f.timer = time.AfterFunc(f.delay, f.run)
}

// run executes one flush and schedules a follow-up if marks arrived meanwhile.
func (f *Flusher) run() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.timer = nil
	f.flushing = true
	f.wg.Add(1)
	f.mu.Unlock()

	f.doFlush()

	f.mu.Lock()
	f.flushing = false
	again := f.dirty && !f.closed
	f.dirty = false
	if again {
		f.timer = time.AfterFunc(f.delay, f.run)
	}
	f.mu.Unlock()
	f.wg.Done()
}

func (f *Flusher) doFlush() {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	if err := f.flush(ctx); err != nil {
		f.logger.Error("coalesced flush failed", "error", err)
	}
}

// Close flushes any pending change synchronously and stops the flusher.
// Subsequent Marks are ignored.
func (f *Flusher) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	pending := f.dirty
	f.dirty = false
	if f.timer != nil {
		// Stop's return value doesn't matter here. A non-nil timer means
		// run hasn't claimed the change yet; if the timer already fired,
		// run observes closed and returns without flushing, so the change
		// is still ours to drain.
		f.timer.Stop()
		f.timer = nil
		pending = true
	}
	f.mu.Unlock()

	// Wait for an in-flight flush, then drain anything still pending.
	f.wg.Wait()
	if pending {
		f.doFlush()
	}
	return nil
}
