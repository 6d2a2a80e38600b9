// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content answers the page-level queries of the site: single posts,
// listings, author lookups and the homepage batch. Listings the page cannot
// render without return errors; auxiliary lookups degrade to nil or empty.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"newsfront/internal/models"
	"newsfront/internal/taxonomy"
	"newsfront/internal/upstream"
	"newsfront/internal/video"
)

const (
	// DefaultPerPage is the listing size when the caller passes zero.
	DefaultPerPage = 10

	// MaxPerPage is the largest page the content API accepts.
	MaxPerPage = 100
)

// Options configures a Service.
type Options struct {
	Policies DisplayPolicies
	Home     HomeLayout
}

// Service answers content queries against the upstream API.
type Service struct {
	client   *upstream.Client
	taxonomy *taxonomy.Resolver
	videos   *video.Feed // may be nil
	policies DisplayPolicies
	home     HomeLayout
}

// NewService creates a Service. videos may be nil when no video channel is
// configured.
func NewService(client *upstream.Client, tax *taxonomy.Resolver, videos *video.Feed, opts Options) *Service {
	return &Service{
		client:   client,
		taxonomy: tax,
		videos:   videos,
		policies: opts.Policies,
		home:     opts.Home.withDefaults(),
	}
}

// Policies returns the display policies used by Normalize.
func (s *Service) Policies() DisplayPolicies {
	return s.policies
}

// Taxonomy returns the category resolver.
func (s *Service) Taxonomy() *taxonomy.Resolver {
	return s.taxonomy
}

// PostBySlug returns the post with slug, or nil when none matches.
func (s *Service) PostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	posts, err := upstream.Fetch[[]models.Post](ctx, s.client, "/posts", upstream.Params{
		Slug:  slug,
		Embed: true,
	})
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("post by slug %q: %w", slug, err)
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return &posts[0], nil
}

// LatestPosts returns one page of the newest posts.
func (s *Service) LatestPosts(ctx context.Context, page, perPage int) (*models.PagedResult[models.Post], error) {
	res, err := s.listPosts(ctx, listParams(page, perPage))
	if err != nil {
		return nil, fmt.Errorf("latest posts: %w", err)
	}
	return res, nil
}

// PostsByCategorySlug resolves a category by slug and returns one page of
// posts filed under it or its direct children. The category is nil when no
// category matches, in which case the result is nil too.
func (s *Service) PostsByCategorySlug(ctx context.Context, slug string, page, perPage int) (*models.Category, *models.PagedResult[models.Post], error) {
	cat, err := s.taxonomy.CategoryBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	if cat == nil {
		return nil, nil, nil
	}
	res, err := s.taxonomy.PostsInCategoryWithDescendants(ctx, cat.ID, listParams(page, perPage))
	if err != nil {
		return cat, nil, err
	}
	return cat, res, nil
}

// PostsByAuthor returns one page of posts by the native author id.
func (s *Service) PostsByAuthor(ctx context.Context, authorID, page, perPage int) (*models.PagedResult[models.Post], error) {
	p := listParams(page, perPage)
	p.Author = authorID
	res, err := s.listPosts(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("posts by author %d: %w", authorID, err)
	}
	return res, nil
}

// PostsByTag returns one page of posts carrying the tag.
func (s *Service) PostsByTag(ctx context.Context, tagID, page, perPage int) (*models.PagedResult[models.Post], error) {
	p := listParams(page, perPage)
	p.Tags = []int{tagID}
	res, err := s.listPosts(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("posts by tag %d: %w", tagID, err)
	}
	return res, nil
}

// SearchPosts returns one page of posts matching the query. A blank query
// yields an empty result without calling upstream.
func (s *Service) SearchPosts(ctx context.Context, query string, page, perPage int) (*models.PagedResult[models.Post], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.Empty[models.Post](), nil
	}
	p := listParams(page, perPage)
	p.Search = query
	res, err := s.listPosts(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return res, nil
}

// AuthorBySlug returns the native author with slug, or nil if none matches
// or the lookup failed.
func (s *Service) AuthorBySlug(ctx context.Context, slug string) *models.Author {
	authors, err := upstream.Fetch[[]models.Author](ctx, s.client, "/users", upstream.Params{Slug: slug})
	if err != nil {
		slog.Warn("author lookup failed", "slug", slug, "error", err)
		return nil
	}
	if len(authors) == 0 || authors[0].IsError() {
		return nil
	}
	return &authors[0]
}

// AuthorByID returns the native author with id, or nil if it does not exist
// or the lookup failed.
func (s *Service) AuthorByID(ctx context.Context, id int) *models.Author {
	a, err := upstream.Fetch[models.Author](ctx, s.client, "/users/"+strconv.Itoa(id), upstream.Params{})
	if err != nil {
		if !upstream.IsNotFound(err) {
			slog.Warn("author lookup failed", "id", id, "error", err)
		}
		return nil
	}
	if a.IsError() {
		return nil
	}
	return &a
}

// RelatedPosts returns up to n posts sharing the post's primary category,
// excluding the post itself. Failures degrade to an empty list.
func (s *Service) RelatedPosts(ctx context.Context, p *models.Post, n int) []models.Post {
	cat := PrimaryCategory(p)
	if cat == nil || n <= 0 {
		return []models.Post{}
	}
	res, err := s.listPosts(ctx, upstream.Params{
		PerPage:    n,
		Categories: []int{cat.ID},
		Exclude:    []int{p.ID},
		Embed:      true,
	})
	if err != nil {
		slog.Warn("related posts lookup failed", "post", p.ID, "category", cat.ID, "error", err)
		return []models.Post{}
	}
	return res.Items
}

// Videos returns up to n recent videos, or an empty list when no channel is
// configured.
func (s *Service) Videos(ctx context.Context, n int) []models.Video {
	if s.videos == nil {
		return []models.Video{}
	}
	return s.videos.LatestVideos(ctx, n)
}

func (s *Service) listPosts(ctx context.Context, p upstream.Params) (*models.PagedResult[models.Post], error) {
	return upstream.FetchPaged[models.Post](ctx, s.client, "/posts", p)
}

func listParams(page, perPage int) upstream.Params {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return upstream.Params{Page: page, PerPage: perPage, Embed: true}
}
