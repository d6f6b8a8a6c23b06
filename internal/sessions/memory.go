package sessions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/shared/telemetry"
)

// MemoryStore is the in-process Store implementation. Growth is unbounded
// unless a TTL is configured; with ttl == 0 entries live for the process
// lifetime, matching the documented cache semantics.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]Session
	ttl  time.Duration
}

// NewMemoryStore constructs a MemoryStore. ttl == 0 disables eviction.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		data: make(map[string]Session),
		ttl:  ttl,
	}
}

// Get returns the session for guid or ErrNotFound.
func (m *MemoryStore) Get(ctx context.Context, guid string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.data[guid]
	if !ok {
		return Session{}, fmt.Errorf("session %s: %w", guid, ErrNotFound)
	}
	return s, nil
}

// Put commits a new session. Writing an existing GUID is rejected so the
// store stays append-only by construction.
func (m *MemoryStore) Put(ctx context.Context, s Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[s.GUID]; ok {
		return fmt.Errorf("session %s: %w", s.GUID, ErrDuplicate)
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	m.data[s.GUID] = s
	return nil
}

// Contains reports whether guid is present.
func (m *MemoryStore) Contains(ctx context.Context, guid string) bool {
	if ctx.Err() != nil {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[guid]
	return ok
}

// Len returns the number of stored sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// StartJanitor evicts expired sessions on a fixed interval until ctx is
// cancelled. It is a no-op when the store has no TTL.
func (m *MemoryStore) StartJanitor(ctx context.Context, interval time.Duration) {
	if m.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sweep(time.Now())
		}
	}
}

func (m *MemoryStore) sweep(now time.Time) {
	cutoff := now.Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for guid, s := range m.data {
		if s.CreatedAt.Before(cutoff) {
			delete(m.data, guid)
			evicted++
		}
	}
	if evicted > 0 {
		telemetry.Info("sessions.evicted", map[string]any{
			"count":     evicted,
			"remaining": len(m.data),
		})
	}
}
