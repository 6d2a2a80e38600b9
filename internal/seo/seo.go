// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package seo builds page metadata (title, description, canonical URL and
// social preview fields). Each field prefers the upstream SEO payload, then
// a value derived from the record itself, then the site default.
package seo

import (
	"strconv"
	"strings"
	"time"

	"newsfront/internal/identity"
	"newsfront/internal/models"
	"newsfront/internal/sanitize"
)

// descriptionLength bounds derived descriptions, in runes.
const descriptionLength = 160

// Site holds the site-level defaults.
type Site struct {
	Name        string
	URL         string // absolute, without trailing slash
	Description string
	Image       string
	TwitterSite string
}

// Metadata is the descriptive record for one rendered page.
type Metadata struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Canonical   string    `json:"canonical"`
	OpenGraph   OpenGraph `json:"open_graph"`
	Twitter     Twitter   `json:"twitter"`
}

// OpenGraph holds the og:* preview fields.
type OpenGraph struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	URL           string     `json:"url"`
	Type          string     `json:"type"`
	Image         string     `json:"image,omitempty"`
	SiteName      string     `json:"site_name"`
	PublishedTime *time.Time `json:"published_time,omitempty"`
	ModifiedTime  *time.Time `json:"modified_time,omitempty"`
	Author        string     `json:"author,omitempty"`
}

// Twitter holds the twitter:* card fields.
type Twitter struct {
	Card        string `json:"card"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	Site        string `json:"site,omitempty"`
}

// Synthesizer builds Metadata for each page type.
type Synthesizer struct {
	site Site
}

// New creates a Synthesizer with the given site defaults.
func New(site Site) *Synthesizer {
	site.URL = strings.TrimRight(site.URL, "/")
	return &Synthesizer{site: site}
}

// Site returns the configured site defaults.
func (s *Synthesizer) Site() Site {
	return s.site
}

// Home builds metadata for the home page or one of its archive pages.
func (s *Synthesizer) Home(page int) Metadata {
	return s.build(fields{
		title:       s.site.Name,
		description: s.site.Description,
		canonical:   s.site.URL,
		ogType:      "website",
	}, page)
}

// Post builds metadata for an article page.
func (s *Synthesizer) Post(p *models.Post) Metadata {
	seo := p.SEO
	if seo == nil {
		seo = &models.SEOPayload{}
	}

	derivedTitle := ""
	if t := sanitize.PlainText(p.Title.Rendered); t != "" {
		derivedTitle = s.withSiteName(t)
	}
	derivedImage := ""
	if m := p.EmbeddedMedia(); m != nil {
		derivedImage = m.SourceURL
	}
	derivedCanonical := ""
	if p.Slug != "" {
		derivedCanonical = s.site.URL + "/" + p.Slug
	}

	f := fields{
		title:       pick(decode(seo.Title), derivedTitle, s.site.Name),
		description: pick(decode(seo.Description), sanitize.Truncate(sanitize.Excerpt(p.Fields.String("quote"), p.Excerpt.Rendered), descriptionLength), s.site.Description),
		canonical:   pick(seo.Canonical, derivedCanonical, s.site.URL),
		ogTitle:     decode(seo.OGTitle),
		ogDesc:      decode(seo.OGDescription),
		ogType:      pick(seo.OGType, "article"),
		image:       pick(seo.FirstImage(), derivedImage, s.site.Image),
		twitterCard: seo.TwitterCard,
		twTitle:     decode(seo.TwitterTitle),
		twDesc:      decode(seo.TwitterDescription),
		twImage:     seo.TwitterImage,
		author:      identity.AuthorName(p),
	}
	if !p.Date.IsZero() {
		t := p.Date.Time
		f.published = &t
	}
	if !p.Modified.IsZero() {
		t := p.Modified.Time
		f.modified = &t
	}
	return s.build(f, 1)
}

// Category builds metadata for a category archive page.
func (s *Synthesizer) Category(c *models.Category, page int) Metadata {
	seo := c.SEO
	if seo == nil {
		seo = &models.SEOPayload{}
	}
	return s.build(fields{
		title:       pick(decode(seo.Title), s.withSiteName(decode(c.Name)), s.site.Name),
		description: pick(decode(seo.Description), sanitize.Truncate(sanitize.PlainText(c.Description), descriptionLength), s.site.Description),
		canonical:   pick(seo.Canonical, s.site.URL+"/category/"+c.Slug),
		ogTitle:     decode(seo.OGTitle),
		ogDesc:      decode(seo.OGDescription),
		ogType:      "website",
		image:       pick(seo.FirstImage(), s.site.Image),
	}, page)
}

// Tag builds metadata for a tag archive page.
func (s *Synthesizer) Tag(t *models.Tag, page int) Metadata {
	return s.build(fields{
		title:       pick(s.withSiteName(decode(t.Name)), s.site.Name),
		description: pick(sanitize.Truncate(sanitize.PlainText(t.Description), descriptionLength), s.site.Description),
		canonical:   s.site.URL + "/tag/" + t.Slug,
		ogType:      "website",
		image:       s.site.Image,
	}, page)
}

// Author builds metadata for an author profile page.
func (s *Synthesizer) Author(a *models.Author, page int) Metadata {
	seo := a.SEO
	if seo == nil {
		seo = &models.SEOPayload{}
	}
	return s.build(fields{
		title:       pick(decode(seo.Title), s.withSiteName(a.Name), s.site.Name),
		description: pick(decode(seo.Description), sanitize.Truncate(sanitize.PlainText(a.Description), descriptionLength), s.site.Description),
		canonical:   pick(seo.Canonical, s.site.URL+"/author/"+a.Slug),
		ogTitle:     decode(seo.OGTitle),
		ogDesc:      decode(seo.OGDescription),
		ogType:      "profile",
		image:       pick(seo.FirstImage(), identity.ProfileAvatar(a), s.site.Image),
	}, page)
}

// Page builds metadata for a static page identified by its path.
func (s *Synthesizer) Page(title, description, path string) Metadata {
	canonical := s.site.URL
	if path = strings.Trim(path, "/"); path != "" {
		canonical += "/" + path
	}
	derived := ""
	if title != "" {
		derived = s.withSiteName(title)
	}
	return s.build(fields{
		title:       pick(derived, s.site.Name),
		description: pick(description, s.site.Description),
		canonical:   canonical,
		ogType:      "website",
		image:       s.site.Image,
	}, 1)
}

type fields struct {
	title, description, canonical string
	ogTitle, ogDesc, ogType       string
	image, twitterCard, author    string
	twTitle, twDesc, twImage      string
	published, modified           *time.Time
}

func (s *Synthesizer) build(f fields, page int) Metadata {
	title, canonical := Paginate(f.title, f.canonical, page)
	return Metadata{
		Title:       title,
		Description: f.description,
		Canonical:   canonical,
		OpenGraph: OpenGraph{
			Title:         pick(f.ogTitle, title),
			Description:   pick(f.ogDesc, f.description),
			URL:           canonical,
			Type:          f.ogType,
			Image:         f.image,
			SiteName:      s.site.Name,
			PublishedTime: f.published,
			ModifiedTime:  f.modified,
			Author:        f.author,
		},
		Twitter: Twitter{
			Card:        pick(f.twitterCard, "summary_large_image"),
			Title:       pick(f.twTitle, f.ogTitle, title),
			Description: pick(f.twDesc, f.ogDesc, f.description),
			Image:       pick(f.twImage, f.image),
			Site:        s.site.TwitterSite,
		},
	}
}

// Paginate appends the page suffix to a title and canonical URL for pages
// after the first.
func Paginate(title, canonical string, page int) (string, string) {
	if page <= 1 {
		return title, canonical
	}
	n := strconv.Itoa(page)
	return title + " - Page " + n, strings.TrimRight(canonical, "/") + "/page/" + n
}

func (s *Synthesizer) withSiteName(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	if s.site.Name == "" {
		return title
	}
	return title + " | " + s.site.Name
}

func decode(s string) string {
	return strings.TrimSpace(sanitize.DecodeEntities(s))
}

// pick returns the first non-blank value.
func pick(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
