// Package search implements debounced search-as-you-type over the client
// directory.
//
// Each keystroke replaces the pending timer. Every scheduled query carries a
// generation number and its response is applied only while that generation
// is still the latest, so a slow response to a superseded query can never
// overwrite a newer one.
package search

import (
	"context"
	"sync"
	"time"

	"github.com/andy/salesdesk/internal/domain"
	"github.com/andy/salesdesk/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultDelay is the quiescence window before a query fires
const DefaultDelay = 300 * time.Millisecond

// Searcher is the directory lookup the session drives
type Searcher interface {
	Search(ctx context.Context, term string) ([]*domain.Client, error)
}

// Snapshot is the observable state of a session
type Snapshot struct {
	Generation uint64
	Query      string
	Results    []*domain.Client
	Loading    bool
	Err        error // Last failure, cleared by the next successful query
}

// Session debounces query updates from one input field
type Session struct {
	searcher Searcher
	delay    time.Duration
	logger   *zap.Logger
	notify   func(Snapshot)
	group    singleflight.Group

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	query   string
	results []*domain.Client
	loading bool
	err     error
	closed  bool
}

// Option configures a Session
type Option func(*Session)

// WithDelay overrides DefaultDelay
func WithDelay(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithLogger sets the session logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithNotify registers a callback invoked with each state change.
// It runs outside the session lock, possibly on a timer goroutine.
func WithNotify(fn func(Snapshot)) Option {
	return func(s *Session) { s.notify = fn }
}

// New creates a session over searcher
func New(searcher Searcher, opts ...Option) *Session {
	s := &Session{
		searcher: searcher,
		delay:    DefaultDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNop(s.logger).Named("search")
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s
}

// Update handles a new value of the query string
func (s *Session) Update(query string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	gen := s.gen
	s.query = query

	if query == "" {
		s.results = nil
		s.loading = false
		s.err = nil
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.emit(snap)
		return
	}

	s.timer = time.AfterFunc(s.delay, func() { s.fire(gen, query) })
	s.mu.Unlock()
}

func (s *Session) fire(gen uint64, query string) {
	s.mu.Lock()
	if gen != s.gen || s.closed {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.loading = true
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.emit(snap)

	v, err, _ := s.group.Do(query, func() (any, error) {
		return s.searcher.Search(s.ctx, query)
	})

	s.mu.Lock()
	if gen != s.gen || s.closed {
		s.mu.Unlock()
		s.logger.Debug("discarding stale search response",
			zap.String("query", query),
			zap.Uint64("generation", gen))
		return
	}
	s.loading = false
	if err != nil {
		s.logger.Warn("client search failed", zap.String("query", query), zap.Error(err))
		s.results = nil
		s.err = err
	} else {
		s.results, _ = v.([]*domain.Client)
		s.err = nil
	}
	snap = s.snapshotLocked()
	s.mu.Unlock()
	s.emit(snap)
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Generation: s.gen,
		Query:      s.query,
		Results:    s.results,
		Loading:    s.loading,
		Err:        s.err,
	}
}

func (s *Session) emit(snap Snapshot) {
	if s.notify != nil {
		s.notify(snap)
	}
}

// Snapshot returns the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close stops any pending query and cancels in-flight lookups
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.cancel()
}
