// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"newsfront/internal/cache"
	"newsfront/internal/content"
	"newsfront/internal/handlers"
	"newsfront/internal/middleware"
	"newsfront/internal/seo"
	"newsfront/internal/taxonomy"
	"newsfront/internal/upstream"
)

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func TestHealthHandlerMethods(t *testing.T) {
	// Health endpoint only accepts GET.
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("GET /health: got %d, want 200", w.Code)
	}
}

func newTestRouter(t *testing.T, limit int) http.Handler {
	t.Helper()
	client := upstream.New(upstream.Config{BaseURL: "http://127.0.0.1:1"}, nil)
	svc := content.NewService(client, taxonomy.NewResolver(client), nil, content.Options{})
	public := handlers.NewPublic(svc, seo.New(seo.Site{Name: "Test", URL: "https://news.example.com"}))

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword: %v", err)
	}
	revalidate := handlers.NewRevalidate(string(hash), cache.NewMemoryStore(), upstream.DefaultTag)

	limiter := middleware.NewRateLimiter(limit, time.Minute)
	t.Cleanup(limiter.Stop)
	return New(public, revalidate, limiter)
}

func TestRouterGlobalMiddleware(t *testing.T) {
	h := newTestRouter(t, 5)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("X-Request-ID should be set")
	}
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options: got %q", got)
	}
}

func TestRouterJSONErrors(t *testing.T) {
	h := newTestRouter(t, 5)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/nope", http.StatusNotFound},
		{"GET", "/api/unknown", http.StatusNotFound},
		{"DELETE", "/api/home", http.StatusMethodNotAllowed},
		{"GET", "/api/revalidate", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			if w.Code != tt.want {
				t.Errorf("status: got %d, want %d", w.Code, tt.want)
			}
			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["error"] == "" {
				t.Error("error field should be set")
			}
		})
	}
}

func TestRouterVideosWithoutChannel(t *testing.T) {
	h := newTestRouter(t, 5)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/videos?limit=3", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	var body struct {
		Videos []any `json:"videos"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Videos == nil || len(body.Videos) != 0 {
		t.Errorf("videos: got %v, want empty list", body.Videos)
	}
}

func TestRouterUpstreamDown(t *testing.T) {
	h := newTestRouter(t, 5)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/posts/anything", nil))

	if w.Code != http.StatusBadGateway {
		t.Errorf("status: got %d, want 502", w.Code)
	}
}

func TestRouterRevalidateRateLimited(t *testing.T) {
	h := newTestRouter(t, 2)

	post := func(secret string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/revalidate", nil)
		req.RemoteAddr = "203.0.113.9:4000"
		req.Header.Set(handlers.RevalidateSecretHeader, secret)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	if w := post("s3cret"); w.Code != http.StatusOK {
		t.Fatalf("first: got %d, want 200", w.Code)
	}
	// Rejected secrets use up the allowance too.
	if w := post("guess"); w.Code != http.StatusUnauthorized {
		t.Fatalf("second: got %d, want 401", w.Code)
	}

	w := post("s3cret")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("third: got %d, want 429", w.Code)
	}
	secs, err := strconv.Atoi(w.Header().Get("Retry-After"))
	if err != nil || secs < 1 || secs > 60 {
		t.Errorf("Retry-After: got %q, want 1..60", w.Header().Get("Retry-After"))
	}
	if !strings.Contains(w.Body.String(), "too many requests") {
		t.Errorf("body: got %q", w.Body.String())
	}

	// Page routes are not limited.
	for i := 0; i < 3; i++ {
		r := httptest.NewRequest("GET", "/health", nil)
		r.RemoteAddr = "203.0.113.9:4000"
		rw := httptest.NewRecorder()
		h.ServeHTTP(rw, r)
		if rw.Code != http.StatusOK {
			t.Errorf("health #%d: got %d, want 200", i+1, rw.Code)
		}
	}
}
