// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"newsfront/internal/cache"
)

func revalidateFixture(t *testing.T) (*Revalidate, *cache.MemoryStore) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hook-secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword: %v", err)
	}
	store := cache.NewMemoryStore()
	ctx := context.Background()
	store.Set(ctx, "content-api", "/posts?a", cache.Entry{Body: []byte("[]")}, time.Minute)
	store.Set(ctx, "content-api", "/posts?b", cache.Entry{Body: []byte("[]")}, time.Minute)
	store.Set(ctx, "videos", "feed", cache.Entry{Body: []byte("<feed/>")}, time.Minute)
	return NewRevalidate(string(hash), store, "content-api", "videos"), store
}

func postRevalidate(h http.Handler, target, secret string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, nil)
	if secret != "" {
		req.Header.Set(RevalidateSecretHeader, secret)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRevalidateRejectsBadSecret(t *testing.T) {
	h, store := revalidateFixture(t)

	for _, secret := range []string{"", "wrong"} {
		rec := postRevalidate(h, "/api/revalidate", secret)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("secret %q: got %d, want 401", secret, rec.Code)
		}
	}
	if store.Len() != 3 {
		t.Errorf("entries: got %d, want 3 untouched", store.Len())
	}
}

func TestRevalidateSingleTag(t *testing.T) {
	h, store := revalidateFixture(t)

	rec := postRevalidate(h, "/api/revalidate?tag=content-api", "hook-secret")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	if store.Len() != 1 {
		t.Errorf("entries: got %d, want 1 (videos kept)", store.Len())
	}
	if _, ok := store.Get(context.Background(), "videos", "feed"); !ok {
		t.Error("videos entry should survive")
	}
}

func TestRevalidateAllTags(t *testing.T) {
	h, store := revalidateFixture(t)

	rec := postRevalidate(h, "/api/revalidate", "hook-secret")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if store.Len() != 0 {
		t.Errorf("entries: got %d, want 0", store.Len())
	}
}

func TestRevalidateUnknownTag(t *testing.T) {
	h, _ := revalidateFixture(t)

	rec := postRevalidate(h, "/api/revalidate?tag=pages", "hook-secret")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestRevalidateDisabled(t *testing.T) {
	h := NewRevalidate("", cache.NewMemoryStore(), "content-api")

	rec := postRevalidate(h, "/api/revalidate", "anything")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}
