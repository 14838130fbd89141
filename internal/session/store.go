package session

import (
	"context"
	"errors"
	"time"

	"github.com/KaramelBytes/odpanel/internal/metrics"
	"github.com/bluele/gcache"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Store keeps sessions in an LRU cache. A session expires ttl after its last access.
type Store struct {
	cache gcache.Cache
	load  LoadFunc
}

// NewStore creates a store holding at most size sessions.
func NewStore(load LoadFunc, size int, ttl time.Duration) *Store {
	if size <= 0 {
		size = 64
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	st := &Store{load: load}
	st.cache = gcache.New(size).
		LRU().
		Expiration(ttl).
		EvictedFunc(func(key, _ interface{}) {
			zap.L().Debug("session evicted", zap.Any("session", key))
		}).
		Build()
	return st
}

// Create registers a new session and loads its datasets. A load failure does not fail
// creation: the session is returned with the error recorded so callers can report it.
func (st *Store) Create(ctx context.Context) (*Session, error) {
	s := New(uuid.NewString())
	_ = s.Load(ctx, st.load)
	if err := st.cache.Set(s.ID, s); err != nil {
		return nil, eris.Wrap(err, "store session")
	}
	st.updateGauge()
	return s, nil
}

// Get returns the session and refreshes its expiry.
func (st *Store) Get(id string) (*Session, error) {
	v, err := st.cache.Get(id)
	if err != nil {
		if errors.Is(err, gcache.KeyNotFoundError) {
			st.updateGauge()
			return nil, ErrNotFound
		}
		return nil, eris.Wrap(err, "lookup session")
	}
	s, ok := v.(*Session)
	if !ok {
		return nil, ErrNotFound
	}
	_ = st.cache.Set(id, s)
	return s, nil
}

// Reload replaces the session's registry with a freshly loaded one.
func (st *Store) Reload(ctx context.Context, id string) (*Session, error) {
	s, err := st.Get(id)
	if err != nil {
		return nil, err
	}
	return s, s.Load(ctx, st.load)
}

// Delete drops a session; it reports whether the session existed.
func (st *Store) Delete(id string) bool {
	ok := st.cache.Remove(id)
	st.updateGauge()
	return ok
}

// Len counts live sessions.
func (st *Store) Len() int { return st.cache.Len(true) }

func (st *Store) updateGauge() {
	metrics.ActiveSessions.Set(float64(st.cache.Len(true)))
}
