// Package session holds the per-client dashboard state: each session owns its own
// dataset registry, loaded once on creation and replaced wholesale on reload.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KaramelBytes/odpanel/internal/dataset"
	"github.com/KaramelBytes/odpanel/internal/metrics"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned for an unknown or expired session id.
	ErrNotFound = errors.New("session not found")
	// ErrNotLoaded is returned when a session has no registry, usually after a failed load.
	ErrNotLoaded = errors.New("datasets not loaded")
)

// LoadFunc builds a fresh registry.
type LoadFunc func(ctx context.Context) (*dataset.Registry, error)

// Session is one client's view of the survey data.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.RWMutex
	registry *dataset.Registry
	loadErr  error
	loadedAt time.Time
}

// New returns an empty session; call Load before rendering views.
func New(id string) *Session {
	return &Session{ID: id, CreatedAt: time.Now()}
}

// FromRegistry wraps an already loaded registry, as the CLI does for its single session.
func FromRegistry(id string, reg *dataset.Registry) *Session {
	s := New(id)
	s.registry = reg
	s.loadedAt = s.CreatedAt
	return s
}

// Load runs fn and publishes its registry. A failed load leaves the session without
// a registry and remembers the error; nothing is partially published.
func (s *Session) Load(ctx context.Context, fn LoadFunc) error {
	start := time.Now()
	reg, err := fn(ctx)
	dur := time.Since(start)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadedAt = time.Now()
	if err != nil {
		s.registry = nil
		s.loadErr = err
		outcome := "error"
		if errors.Is(err, dataset.ErrMissingFile) {
			outcome = "missing_file"
		}
		metrics.RecordLoad(outcome, dur)
		zap.L().Warn("dataset load failed", zap.String("session", s.ID), zap.Error(err))
		return err
	}
	s.registry = reg
	s.loadErr = nil
	metrics.RecordLoad("ok", dur)
	zap.L().Info("datasets loaded",
		zap.String("session", s.ID),
		zap.Int("tables", reg.Len()),
		zap.Duration("took", dur))
	return nil
}

// Registry returns the loaded registry or an error matching ErrNotLoaded and, after a
// failed load, the load error.
func (s *Session) Registry() (*dataset.Registry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.registry != nil {
		return s.registry, nil
	}
	if s.loadErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotLoaded, s.loadErr)
	}
	return nil, ErrNotLoaded
}

// LoadedAt returns the time of the last load attempt.
func (s *Session) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
