// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models holds the read-only projections of records served by the
// upstream content API and the video feed. Nothing here is persisted; every
// value is rebuilt from an upstream response on each resolved query.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PostStatusPublished is the only status the public site ever requests.
const PostStatusPublished = "publish"

// Rendered wraps markup fields the content API returns as {"rendered": "..."}.
type Rendered struct {
	Rendered string `json:"rendered"`
}

// Timestamp accepts both RFC 3339 values and the zone-less
// "2006-01-02T15:04:05" form the content API uses for local dates.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// UnmarshalJSON parses any of the supported layouts. Empty strings and null
// leave the zero time.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp: unrecognised value %q", s)
}

// MarshalJSON writes RFC 3339, or null for the zero time.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// Post is a single content item ("post") as served by the content API.
// Categories and Tags carry ids only; names come from the embedded bundle
// or a separate taxonomy lookup.
type Post struct {
	ID            int          `json:"id"`
	Date          Timestamp    `json:"date"`
	Modified      Timestamp    `json:"modified"`
	Slug          string       `json:"slug"`
	Status        string       `json:"status"`
	Link          string       `json:"link"`
	Title         Rendered     `json:"title"`
	Content       Rendered     `json:"content"`
	Excerpt       Rendered     `json:"excerpt"`
	Author        int          `json:"author"`
	FeaturedMedia int          `json:"featured_media"`
	Categories    []int        `json:"categories"`
	Tags          []int        `json:"tags"`
	SEO           *SEOPayload  `json:"yoast_head_json,omitempty"`
	Fields        CustomFields `json:"acf,omitempty"`
	Embedded      *Embedded    `json:"_embedded,omitempty"`
}

// IsPublished reports whether the post is publicly visible.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// EmbeddedAuthor returns the first embedded native author record, or nil.
func (p *Post) EmbeddedAuthor() *Author {
	if p.Embedded == nil || len(p.Embedded.Author) == 0 {
		return nil
	}
	return &p.Embedded.Author[0]
}

// EmbeddedMedia returns the embedded featured media record, or nil.
func (p *Post) EmbeddedMedia() *Media {
	if p.Embedded == nil || len(p.Embedded.FeaturedMedia) == 0 {
		return nil
	}
	return &p.Embedded.FeaturedMedia[0]
}

// GuestAuthors returns the guest-author terms attached to the post.
func (p *Post) GuestAuthors() []GuestAuthor {
	if p.Embedded == nil {
		return nil
	}
	return p.Embedded.GuestAuthors
}

// CategoryTerms returns the embedded category terms in upstream order.
func (p *Post) CategoryTerms() []Term {
	if p.Embedded == nil {
		return nil
	}
	return p.Embedded.Categories
}

// HasCategory reports whether id is among the post's category ids.
func (p *Post) HasCategory(id int) bool {
	for _, c := range p.Categories {
		if c == id {
			return true
		}
	}
	return false
}
