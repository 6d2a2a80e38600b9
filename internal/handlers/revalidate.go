// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"golang.org/x/crypto/bcrypt"

	"newsfront/internal/cache"
)

// RevalidateSecretHeader carries the webhook secret.
const RevalidateSecretHeader = "X-Revalidate-Secret"

// Revalidate handles the out-of-band invalidation webhook the CMS calls
// after publishing. It drops every cached response under a tag.
type Revalidate struct {
	secretHash []byte
	store      cache.Store
	tags       []string
}

// NewRevalidate creates the webhook handler. secretHash is a bcrypt hash;
// an empty hash disables the webhook. tags lists the tags the webhook may
// invalidate.
func NewRevalidate(secretHash string, store cache.Store, tags ...string) *Revalidate {
	return &Revalidate{secretHash: []byte(secretHash), store: store, tags: tags}
}

// ServeHTTP invalidates the tag named in the "tag" query parameter, or every
// known tag when none is given.
func (h *Revalidate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if len(h.secretHash) == 0 || h.store == nil {
		writeError(w, http.StatusNotFound, "revalidation disabled")
		return
	}

	secret := r.Header.Get(RevalidateSecretHeader)
	if secret == "" || bcrypt.CompareHashAndPassword(h.secretHash, []byte(secret)) != nil {
		slog.Warn("revalidate rejected", "remote", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, "invalid secret")
		return
	}

	tags := h.tags
	if tag := r.URL.Query().Get("tag"); tag != "" {
		if !slices.Contains(h.tags, tag) {
			writeError(w, http.StatusBadRequest, "unknown tag")
			return
		}
		tags = []string{tag}
	}

	removed := make(map[string]int, len(tags))
	for _, tag := range tags {
		removed[tag] = h.store.InvalidateTag(r.Context(), tag)
	}
	slog.Info("cache revalidated", "tags", removed)

	writeJSON(w, http.StatusOK, map[string]any{
		"revalidated": true,
		"removed":     removed,
		"now":         time.Now().UnixMilli(),
	})
}
