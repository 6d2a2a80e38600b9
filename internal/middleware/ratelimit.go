// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter caps requests per client over a sliding window. It guards the
// revalidation webhook, where every attempt (accepted or not) counts.
type RateLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time // ascending per client
	limit  int
	window time.Duration
	now    func() time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a rate limiter that allows limit requests per window.
// A background goroutine drops idle clients until Stop is called.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	go rl.sweepLoop(max(window, time.Minute))
	return rl
}

// Stop terminates the background sweep. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

func (rl *RateLimiter) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stopCh:
			return
		}
	}
}

// take records a hit for key. Over the limit it records nothing and returns
// the time until the oldest hit leaves the window.
func (rl *RateLimiter) take(key string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	hits := inWindow(rl.hits[key], now.Add(-rl.window))
	if len(hits) >= rl.limit {
		rl.hits[key] = hits
		return false, hits[0].Add(rl.window).Sub(now)
	}
	rl.hits[key] = append(hits, now)
	return true, 0
}

// sweep forgets clients with no hit inside the window.
func (rl *RateLimiter) sweep() {
	cutoff := rl.now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, hits := range rl.hits {
		if len(inWindow(hits, cutoff)) == 0 {
			delete(rl.hits, key)
		}
	}
}

func inWindow(hits []time.Time, cutoff time.Time) []time.Time {
	i := sort.Search(len(hits), func(i int) bool { return hits[i].After(cutoff) })
	return hits[i:]
}

// Middleware returns an HTTP middleware that rate-limits by client IP.
// Rejected requests get a JSON 429 whose Retry-After says when the client's
// next attempt will fit in the window.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		ok, wait := rl.take(ip)
		if !ok {
			slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path, "retry_after", wait)
			w.Header().Set("Retry-After", retryAfterSeconds(wait))
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// retryAfterSeconds rounds wait up to whole seconds, never below one.
func retryAfterSeconds(wait time.Duration) string {
	secs := int((wait + time.Second - 1) / time.Second)
	return strconv.Itoa(max(secs, 1))
}

// clientIP returns the originating client address: the leftmost
// X-Forwarded-For entry, then X-Real-IP, then the connection's host.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
