// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cache provides the time-boxed revalidation store used by the
// upstream clients. Callers declare a TTL and a tag on every write; a tag
// groups every response from one upstream so a single signal can drop them
// all. Eviction is purely TTL-driven.
package cache

import (
	"context"
	"time"
)

// Entry is a cached upstream response: the raw body plus the pagination
// headers that accompanied it (empty when absent).
type Entry struct {
	Body       []byte `json:"body"`
	Total      string `json:"total,omitempty"`
	TotalPages string `json:"total_pages,omitempty"`
}

// Store is a tag-aware TTL cache. Implementations must be safe for
// concurrent use and must treat backend failures as misses.
type Store interface {
	Get(ctx context.Context, tag, key string) (*Entry, bool)
	Set(ctx context.Context, tag, key string, entry Entry, ttl time.Duration)
	InvalidateTag(ctx context.Context, tag string) int
}
