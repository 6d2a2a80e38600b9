package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Validation limits for path and query inputs.
const (
	maxSlugLen   = 200
	maxSearchLen = 200
	maxPage      = 1_000
	maxVideos    = 50

	defaultVideos = 12
)

// validateSlug checks a slug path parameter and returns the first error found.
func validateSlug(slug string) string {
	if strings.TrimSpace(slug) == "" {
		return "Slug is required."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "Slug is too long (max 200 characters)."
	}
	return ""
}

// validateSearch checks a search query. An empty query is allowed and yields
// no results.
func validateSearch(q string) string {
	if utf8.RuneCountInString(q) > maxSearchLen {
		return "Search query is too long (max 200 characters)."
	}
	return ""
}

// pageParam reads the "page" query parameter. Missing, malformed or
// non-positive values mean page 1; values above maxPage are clamped.
func pageParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	if n > maxPage {
		return maxPage
	}
	return n
}

// limitParam reads the "limit" query parameter, clamped to [1, max].
func limitParam(r *http.Request, fallback, max int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n < 1 {
		return fallback
	}
	if n > max {
		return max
	}
	return n
}
