// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type memoryKey struct {
	tag string
	key string
}

type memoryEntry struct {
	entry     Entry
	expiresAt time.Time
}

// MemoryStore is an in-process Store for development and single-instance
// deployments. Expired entries are dropped lazily on read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[memoryKey]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[memoryKey]memoryEntry),
		now:     time.Now,
	}
}

// Get returns a live entry for key under tag.
func (s *MemoryStore) Get(_ context.Context, tag, key string) (*Entry, bool) {
	k := memoryKey{tag: tag, key: key}

	s.mu.RLock()
	e, ok := s.entries[k]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		// Re-check: a concurrent Set may have refreshed the entry.
		if cur, ok := s.entries[k]; ok && !s.now().Before(cur.expiresAt) {
			delete(s.entries, k)
		}
		s.mu.Unlock()
		return nil, false
	}

	entry := e.entry
	return &entry, true
}

// Set stores entry until ttl elapses. A non-positive ttl stores nothing.
func (s *MemoryStore) Set(_ context.Context, tag, key string, entry Entry, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[memoryKey{tag: tag, key: key}] = memoryEntry{entry: entry, expiresAt: s.now().Add(ttl)}
}

// InvalidateTag removes all entries under tag.
func (s *MemoryStore) InvalidateTag(_ context.Context, tag string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int
	for k := range s.entries {
		if k.tag == tag {
			delete(s.entries, k)
			deleted++
		}
	}
	slog.Info("revalidation tag invalidated", "tag", tag, "deleted", deleted)
	return deleted
}

// Len returns the number of stored entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
