package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-process Store used when Redis is not configured.
// Limits are then per-instance, which is acceptable for single-node
// deployments and tests.
type MemoryStore struct {
	mu          sync.Mutex
	windows     map[string][]time.Time
	stopCleanup chan struct{}
	cleanupOnce sync.Once
}

// NewMemoryStore creates an in-memory store with a background cleanup loop.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		windows:     make(map[string][]time.Time),
		stopCleanup: make(chan struct{}),
	}
	go s.cleanupLoop(time.Minute)
	return s
}

// RecordIfAllowed implements Store.
func (s *MemoryStore) RecordIfAllowed(ctx context.Context, key string, now time.Time, window time.Duration, limit int) (bool, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.pruneLocked(key, now.Add(-window))
	if len(live) >= limit {
		return false, int64(len(live)), nil
	}

	live = append(live, now)
	s.windows[key] = live
	return true, int64(len(live)), nil
}

// CountInWindow implements Store.
func (s *MemoryStore) CountInWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.pruneLocked(key, time.Now().Add(-window)))), nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, key)
	return nil
}

// Close stops the cleanup loop. Safe for repeated calls.
func (s *MemoryStore) Close() {
	s.cleanupOnce.Do(func() { close(s.stopCleanup) })
}

// pruneLocked drops timestamps at or before cutoff. Caller holds s.mu.
func (s *MemoryStore) pruneLocked(key string, cutoff time.Time) []time.Time {
	live := s.windows[key][:0]
	for _, ts := range s.windows[key] {
		if ts.After(cutoff) {
			live = append(live, ts)
		}
	}
	if len(live) == 0 {
		delete(s.windows, key)
		return nil
	}
	s.windows[key] = live
	return live
}

func (s *MemoryStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			// A generous cutoff; per-key windows prune precisely on access.
			cutoff := time.Now().Add(-time.Hour)
			for key := range s.windows {
				s.pruneLocked(key, cutoff)
			}
			s.mu.Unlock()
		case <-s.stopCleanup:
			return
		}
	}
}
