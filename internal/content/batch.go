// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Batch runs independent queries concurrently. A failed member never aborts
// the others: its destination receives the member's fallback and the
// failure is recorded.
type Batch struct {
	ctx context.Context
	g   errgroup.Group

	mu     sync.Mutex
	failed []string
}

// NewBatch creates a batch whose members receive ctx.
func NewBatch(ctx context.Context) *Batch {
	return &Batch{ctx: ctx}
}

// Go schedules fn as a member of b. Its result is written to dst, or fallback
// when fn fails. dst must not be shared with another member.
func Go[T any](b *Batch, name string, dst *T, fallback T, fn func(context.Context) (T, error)) {
	b.g.Go(func() error {
		v, err := fn(b.ctx)
		if err != nil {
			slog.Warn("batch member failed", "member", name, "error", err)
			b.mu.Lock()
			b.failed = append(b.failed, name)
			b.mu.Unlock()
			*dst = fallback
			return nil
		}
		*dst = v
		return nil
	})
}

// Wait blocks until every member has finished and returns the names of the
// members that fell back, in completion order.
func (b *Batch) Wait() []string {
	_ = b.g.Wait()
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.failed...)
}
