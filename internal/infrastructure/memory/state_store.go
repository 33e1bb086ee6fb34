// Package memory keeps visitor state in process memory.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/laserstudio/storefront/internal/core/domain"
	"github.com/laserstudio/storefront/internal/core/ports"
)

const defaultIdleTTL = 2 * time.Hour

type visitor struct {
	mu    sync.Mutex
	state domain.AppState
	// lastSeen is guarded by StateStore.mu.
	lastSeen time.Time
}

// StateStore holds one AppState per visitor. Transitions on the same visitor
// are serialized; different visitors never contend beyond the index lock.
type StateStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	idleTTL  time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// NewStateStore returns an empty store. Visitors idle for longer than idleTTL
// are dropped by Sweep; idleTTL <= 0 selects defaultIdleTTL.
func NewStateStore(idleTTL time.Duration, log zerolog.Logger) *StateStore {
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}
	return &StateStore{
		visitors: make(map[string]*visitor),
		idleTTL:  idleTTL,
		now:      time.Now,
		log:      log,
	}
}

var _ ports.StateStore = (*StateStore)(nil)

func (s *StateStore) Get(_ context.Context, visitorID string) domain.AppState {
	v := s.visitor(visitorID)
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (s *StateStore) Update(_ context.Context, visitorID string, fn func(domain.AppState) (domain.AppState, error)) (domain.AppState, error) {
	v := s.visitor(visitorID)
	v.mu.Lock()
	defer v.mu.Unlock()

	next, err := fn(v.state)
	if err != nil {
		return v.state, err
	}
	v.state = next
	return next, nil
}

// Len is the number of tracked visitors.
func (s *StateStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visitors)
}

// Sweep drops visitors idle for longer than the store's TTL and returns how
// many were removed.
func (s *StateStore) Sweep() int {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, v := range s.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(s.visitors, id)
			removed++
		}
	}
	return removed
}

// RunJanitor calls Sweep every interval until ctx is cancelled.
func (s *StateStore) RunJanitor(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Sweep(); n > 0 {
				s.log.Debug().Int("removed", n).Msg("idle visitors swept")
			}
		}
	}
}

func (s *StateStore) visitor(id string) *visitor {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.visitors[id]
	if !ok {
		v = &visitor{state: domain.NewAppState()}
		s.visitors[id] = v
	}
	v.lastSeen = s.now()
	return v
}
