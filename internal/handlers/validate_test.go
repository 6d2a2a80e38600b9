package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name      string
		slug      string
		wantError bool
	}{
		{"valid", "budget-vote", false},
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"at limit", strings.Repeat("a", 200), false},
		{"too long", strings.Repeat("a", 201), true},
		{"multibyte at limit", strings.Repeat("é", 200), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validateSlug(tt.slug)
			if tt.wantError && result == "" {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && result != "" {
				t.Errorf("unexpected error: %s", result)
			}
		})
	}
}

func TestValidateSearch(t *testing.T) {
	if msg := validateSearch(""); msg != "" {
		t.Errorf("empty query: unexpected error %s", msg)
	}
	if msg := validateSearch(strings.Repeat("q", 201)); msg == "" {
		t.Error("long query: expected an error")
	}
}

func TestPageParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"?page=3", 3},
		{"?page=0", 1},
		{"?page=-2", 1},
		{"?page=abc", 1},
		{"?page=5000", maxPage},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/search"+tt.query, nil)
			if got := pageParam(r); got != tt.want {
				t.Errorf("pageParam(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestLimitParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", defaultVideos},
		{"?limit=3", 3},
		{"?limit=0", defaultVideos},
		{"?limit=999", maxVideos},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/videos"+tt.query, nil)
			if got := limitParam(r, defaultVideos, maxVideos); got != tt.want {
				t.Errorf("limitParam(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}
