// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"newsfront/internal/content"
	"newsfront/internal/identity"
	"newsfront/internal/models"
	"newsfront/internal/sanitize"
	"newsfront/internal/seo"
)

// relatedCount is how many related articles accompany a single post.
const relatedCount = 3

// Public groups the read-only JSON handlers for the site frontend. Every
// page response carries its synthesized metadata.
type Public struct {
	content *content.Service
	seo     *seo.Synthesizer
}

// NewPublic creates a new Public handler group.
func NewPublic(svc *content.Service, syn *seo.Synthesizer) *Public {
	return &Public{content: svc, seo: syn}
}

// Pagination describes the position of a listing page. Totals are absent
// when the upstream did not report them.
type Pagination struct {
	Page       int  `json:"page"`
	Total      *int `json:"total"`
	TotalPages *int `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// AuthorProfile is the public view of an author.
type AuthorProfile struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description,omitempty"`
	JobTitle    string            `json:"job_title,omitempty"`
	Avatar      string            `json:"avatar,omitempty"`
	Social      map[string]string `json:"social,omitempty"`
}

var socialNetworks = []string{"twitter", "facebook", "instagram", "linkedin"}

// Home returns the homepage sections. Failing sections are empty rather
// than failing the response.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	home := p.content.Homepage(r.Context())
	if len(home.Degraded) > 0 {
		slog.Warn("homepage served degraded", "sections", home.Degraded)
	}
	writeJSON(w, http.StatusOK, struct {
		Metadata seo.Metadata `json:"metadata"`
		*content.Homepage
	}{p.seo.Home(1), home})
}

// Post returns a single article with related articles.
func (p *Public) Post(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")
	if msg := validateSlug(slug); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	post, err := p.content.PostBySlug(ctx, slug)
	if err != nil {
		upstreamError(w, err, "slug", slug)
		return
	}
	if post == nil || !post.IsPublished() {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}

	related := p.content.RelatedPosts(ctx, post, relatedCount)
	writeJSON(w, http.StatusOK, map[string]any{
		"metadata": p.seo.Post(post),
		"article":  content.Normalize(post, p.content.Policies()),
		"related":  content.SummarizeAll(related, p.content.Policies()),
	})
}

// Category returns one page of a category archive, including posts in
// direct child categories.
func (p *Public) Category(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if msg := validateSlug(slug); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	page := pageParam(r)

	cat, res, err := p.content.PostsByCategorySlug(r.Context(), slug, page, content.DefaultPerPage)
	if err != nil {
		upstreamError(w, err, "category", slug)
		return
	}
	if cat == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"metadata": p.seo.Category(cat, page),
		"category": map[string]any{
			"id":          cat.ID,
			"name":        sanitize.DecodeEntities(cat.Name),
			"slug":        cat.Slug,
			"description": sanitize.PlainText(cat.Description),
		},
		"articles":   content.SummarizeAll(res.Items, p.content.Policies()),
		"pagination": pagination(res, page),
	})
}

// Author returns an author profile with one page of their posts.
func (p *Public) Author(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if msg := validateSlug(slug); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	page := pageParam(r)

	author := p.content.AuthorBySlug(r.Context(), slug)
	if author == nil {
		writeError(w, http.StatusNotFound, "author not found")
		return
	}
	res, err := p.content.PostsByAuthor(r.Context(), author.ID, page, content.DefaultPerPage)
	if err != nil {
		upstreamError(w, err, "author", slug)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"metadata":   p.seo.Author(author, page),
		"author":     profile(author),
		"articles":   content.SummarizeAll(res.Items, p.content.Policies()),
		"pagination": pagination(res, page),
	})
}

// Tag returns one page of posts carrying a tag.
func (p *Public) Tag(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, "tag not found")
		return
	}
	page := pageParam(r)

	tag := p.content.Taxonomy().TagByID(r.Context(), id)
	if tag == nil {
		writeError(w, http.StatusNotFound, "tag not found")
		return
	}
	res, err := p.content.PostsByTag(r.Context(), id, page, content.DefaultPerPage)
	if err != nil {
		upstreamError(w, err, "tag", id)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"metadata":   p.seo.Tag(tag, page),
		"tag":        map[string]any{"id": tag.ID, "name": sanitize.DecodeEntities(tag.Name), "slug": tag.Slug},
		"articles":   content.SummarizeAll(res.Items, p.content.Policies()),
		"pagination": pagination(res, page),
	})
}

// Search returns one page of posts matching the "q" query parameter.
func (p *Public) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if msg := validateSearch(q); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	page := pageParam(r)

	res, err := p.content.SearchPosts(r.Context(), q, page, content.DefaultPerPage)
	if err != nil {
		upstreamError(w, err, "query", q)
		return
	}

	meta := p.seo.Page("Search", "", "search")
	meta.Title, meta.Canonical = seo.Paginate(meta.Title, meta.Canonical, page)
	writeJSON(w, http.StatusOK, map[string]any{
		"metadata":   meta,
		"query":      q,
		"articles":   content.SummarizeAll(res.Items, p.content.Policies()),
		"pagination": pagination(res, page),
	})
}

// Videos returns the latest channel videos. The list is empty when the feed
// is unavailable.
func (p *Public) Videos(w http.ResponseWriter, r *http.Request) {
	n := limitParam(r, defaultVideos, maxVideos)
	writeJSON(w, http.StatusOK, map[string]any{
		"videos": p.content.Videos(r.Context(), n),
	})
}

func pagination(res *models.PagedResult[models.Post], page int) Pagination {
	return Pagination{
		Page:       page,
		Total:      res.Total,
		TotalPages: res.TotalPages,
		HasNext:    res.HasNext(page),
	}
}

func profile(a *models.Author) AuthorProfile {
	prof := AuthorProfile{
		ID:          a.ID,
		Name:        a.Name,
		Slug:        a.Slug,
		Description: sanitize.PlainText(a.Description),
		JobTitle:    a.JobTitle(),
		Avatar:      identity.ProfileAvatar(a),
	}
	for _, network := range socialNetworks {
		if handle := a.Social(network); handle != "" {
			if prof.Social == nil {
				prof.Social = make(map[string]string)
			}
			prof.Social[network] = handle
		}
	}
	return prof
}

// upstreamError logs a failed content query and answers 502.
func upstreamError(w http.ResponseWriter, err error, key string, value any) {
	slog.Error("content query failed", key, value, "error", err)
	writeError(w, http.StatusBadGateway, "content service unavailable")
}

// writeJSON sends data as JSON with the given status.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError sends {"error": msg} with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
