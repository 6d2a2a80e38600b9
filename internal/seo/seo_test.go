// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package seo

import (
	"encoding/json"
	"strings"
	"testing"

	"newsfront/internal/models"
)

var testSite = Site{
	Name:        "Daily Ledger",
	URL:         "https://news.example.com/",
	Description: "Local news.",
	Image:       "https://news.example.com/og.png",
}

func decodePost(t *testing.T, raw string) *models.Post {
	t.Helper()
	var p models.Post
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal post: %v", err)
	}
	return &p
}

func TestPostPrefersSEOPayload(t *testing.T) {
	p := decodePost(t, `{
		"slug": "budget-vote",
		"title": {"rendered": "Budget vote"},
		"excerpt": {"rendered": "<p>Council votes.</p>"},
		"yoast_head_json": {
			"title": "Budget vote passes &#8211; Daily Ledger",
			"description": "The council approved it.",
			"canonical": "https://news.example.com/politics/budget-vote",
			"og_image": [{"url": "https://cdn.example.com/seo.jpg"}]
		}
	}`)

	m := New(testSite).Post(p)
	if m.Title != "Budget vote passes – Daily Ledger" {
		t.Errorf("title = %q", m.Title)
	}
	if m.Description != "The council approved it." {
		t.Errorf("description = %q", m.Description)
	}
	if m.Canonical != "https://news.example.com/politics/budget-vote" {
		t.Errorf("canonical = %q", m.Canonical)
	}
	if m.OpenGraph.Image != "https://cdn.example.com/seo.jpg" {
		t.Errorf("og image = %q", m.OpenGraph.Image)
	}
	if m.OpenGraph.Type != "article" {
		t.Errorf("og type = %q", m.OpenGraph.Type)
	}
	if m.Twitter.Card != "summary_large_image" {
		t.Errorf("twitter card = %q", m.Twitter.Card)
	}
}

func TestPostDerivesFromRecord(t *testing.T) {
	long := strings.Repeat("word ", 60)
	p := decodePost(t, `{
		"slug": "storm",
		"date": "2026-03-01T10:00:00",
		"title": {"rendered": "Storm &amp; floods"},
		"excerpt": {"rendered": "<p>`+long+`</p>"},
		"_embedded": {"wp:featuredmedia": [{"source_url": "https://cdn.example.com/storm.jpg"}]}
	}`)

	m := New(testSite).Post(p)
	if m.Title != "Storm & floods | Daily Ledger" {
		t.Errorf("title = %q", m.Title)
	}
	if n := len([]rune(m.Description)); n > descriptionLength+1 {
		t.Errorf("description has %d runes", n)
	}
	if !strings.HasSuffix(m.Description, "…") {
		t.Errorf("description not truncated: %q", m.Description)
	}
	if m.Canonical != "https://news.example.com/storm" {
		t.Errorf("canonical = %q", m.Canonical)
	}
	if m.OpenGraph.Image != "https://cdn.example.com/storm.jpg" {
		t.Errorf("og image = %q", m.OpenGraph.Image)
	}
	if m.OpenGraph.PublishedTime == nil || m.OpenGraph.PublishedTime.Day() != 1 {
		t.Errorf("published time = %v", m.OpenGraph.PublishedTime)
	}
	if m.OpenGraph.ModifiedTime != nil {
		t.Errorf("modified time = %v, want nil", m.OpenGraph.ModifiedTime)
	}
}

func TestPostFallsBackToSiteDefaults(t *testing.T) {
	m := New(testSite).Post(&models.Post{})
	if m.Title != testSite.Name {
		t.Errorf("title = %q", m.Title)
	}
	if m.Description != testSite.Description {
		t.Errorf("description = %q", m.Description)
	}
	if m.Canonical != "https://news.example.com" {
		t.Errorf("canonical = %q", m.Canonical)
	}
	if m.OpenGraph.Image != testSite.Image {
		t.Errorf("og image = %q", m.OpenGraph.Image)
	}
	if m.OpenGraph.Author != "Staff" {
		t.Errorf("og author = %q", m.OpenGraph.Author)
	}
}

func TestPostQuoteWinsOverExcerpt(t *testing.T) {
	p := decodePost(t, `{
		"slug": "q",
		"excerpt": {"rendered": "<p>Excerpt text.</p>"},
		"acf": {"quote": "A sharp quote."}
	}`)
	if got := New(testSite).Post(p).Description; got != "A sharp quote." {
		t.Errorf("description = %q", got)
	}
}

func TestTwitterFieldsFromPayload(t *testing.T) {
	p := decodePost(t, `{
		"slug": "x",
		"yoast_head_json": {
			"og_title": "OG title",
			"twitter_title": "Tweet title",
			"twitter_image": "https://cdn.example.com/tw.jpg"
		}
	}`)
	m := New(testSite).Post(p)
	if m.OpenGraph.Title != "OG title" {
		t.Errorf("og title = %q", m.OpenGraph.Title)
	}
	if m.Twitter.Title != "Tweet title" {
		t.Errorf("twitter title = %q", m.Twitter.Title)
	}
	if m.Twitter.Image != "https://cdn.example.com/tw.jpg" {
		t.Errorf("twitter image = %q", m.Twitter.Image)
	}
}

func TestCategoryPagination(t *testing.T) {
	s := New(testSite)
	c := &models.Category{Name: "Sports", Slug: "sports"}

	first := s.Category(c, 1)
	if first.Title != "Sports | Daily Ledger" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Canonical != "https://news.example.com/category/sports" {
		t.Errorf("canonical = %q", first.Canonical)
	}

	third := s.Category(c, 3)
	if third.Title != "Sports | Daily Ledger - Page 3" {
		t.Errorf("title = %q", third.Title)
	}
	if third.Canonical != "https://news.example.com/category/sports/page/3" {
		t.Errorf("canonical = %q", third.Canonical)
	}
	if third.OpenGraph.URL != third.Canonical {
		t.Errorf("og url = %q, want %q", third.OpenGraph.URL, third.Canonical)
	}

	// Same input, same output.
	if again := s.Category(c, 3); again.Title != third.Title || again.Canonical != third.Canonical {
		t.Error("pagination is not deterministic")
	}
}

func TestAuthorMetadata(t *testing.T) {
	a := &models.Author{
		Name:        "Ana Ruiz",
		Slug:        "ana-ruiz",
		Description: "<p>Covers city hall.</p>",
		AvatarURLs:  map[string]string{"96": "https://cdn.example.com/a96.jpg"},
	}
	m := New(testSite).Author(a, 2)
	if m.Title != "Ana Ruiz | Daily Ledger - Page 2" {
		t.Errorf("title = %q", m.Title)
	}
	if m.Description != "Covers city hall." {
		t.Errorf("description = %q", m.Description)
	}
	if m.Canonical != "https://news.example.com/author/ana-ruiz/page/2" {
		t.Errorf("canonical = %q", m.Canonical)
	}
	if m.OpenGraph.Type != "profile" {
		t.Errorf("og type = %q", m.OpenGraph.Type)
	}
	if m.OpenGraph.Image != "https://cdn.example.com/a96.jpg" {
		t.Errorf("og image = %q", m.OpenGraph.Image)
	}
}

func TestTagAndStaticPage(t *testing.T) {
	s := New(testSite)

	tag := s.Tag(&models.Tag{Name: "Elections", Slug: "elections"}, 1)
	if tag.Canonical != "https://news.example.com/tag/elections" {
		t.Errorf("tag canonical = %q", tag.Canonical)
	}
	if tag.Description != testSite.Description {
		t.Errorf("tag description = %q", tag.Description)
	}

	page := s.Page("About", "", "/about/")
	if page.Title != "About | Daily Ledger" {
		t.Errorf("page title = %q", page.Title)
	}
	if page.Canonical != "https://news.example.com/about" {
		t.Errorf("page canonical = %q", page.Canonical)
	}
}

func TestHome(t *testing.T) {
	s := New(testSite)
	if m := s.Home(1); m.Title != "Daily Ledger" || m.Canonical != "https://news.example.com" {
		t.Errorf("home = %q %q", m.Title, m.Canonical)
	}
	if m := s.Home(2); m.Canonical != "https://news.example.com/page/2" {
		t.Errorf("home page 2 canonical = %q", m.Canonical)
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		page          int
		wantTitle     string
		wantCanonical string
	}{
		{0, "T", "https://x.test/a/"},
		{1, "T", "https://x.test/a/"},
		{2, "T - Page 2", "https://x.test/a/page/2"},
	}
	for _, tt := range tests {
		title, canonical := Paginate("T", "https://x.test/a/", tt.page)
		if title != tt.wantTitle || canonical != tt.wantCanonical {
			t.Errorf("Paginate(%d) = %q, %q", tt.page, title, canonical)
		}
	}
}
