// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package taxonomy resolves categories and parent/child relations against
// the content API. Category lookups never fail outward: a missing or
// unreachable category is reported as not found. Post listings, which the
// page needs, propagate errors.
package taxonomy

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"newsfront/internal/models"
	"newsfront/internal/upstream"
)

// childrenPageSize is large enough that one page holds every child of a
// category on this site.
const childrenPageSize = 100

// Resolver looks up categories and category-scoped post listings.
type Resolver struct {
	client *upstream.Client
}

// NewResolver creates a Resolver on top of the given client.
func NewResolver(client *upstream.Client) *Resolver {
	return &Resolver{client: client}
}

// CategoryBySlug returns the first category matching slug, or nil when none
// matches. Transport and upstream errors are returned.
func (r *Resolver) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	cats, err := upstream.Fetch[[]models.Category](ctx, r.client, "/categories", upstream.Params{Slug: slug})
	if err != nil {
		return nil, fmt.Errorf("category by slug %q: %w", slug, err)
	}
	if len(cats) == 0 {
		return nil, nil
	}
	return &cats[0], nil
}

// CategoryByID returns the category with id, or nil if it does not exist or
// could not be fetched.
func (r *Resolver) CategoryByID(ctx context.Context, id int) *models.Category {
	cat, err := upstream.Fetch[models.Category](ctx, r.client, "/categories/"+strconv.Itoa(id), upstream.Params{})
	if err != nil {
		if !upstream.IsNotFound(err) {
			slog.Warn("category lookup failed", "id", id, "error", err)
		}
		return nil
	}
	return &cat
}

// ChildrenOf returns the direct children of parentID. Failures degrade to
// an empty list.
func (r *Resolver) ChildrenOf(ctx context.Context, parentID int) []models.Category {
	cats, err := upstream.Fetch[[]models.Category](ctx, r.client, "/categories", upstream.Params{
		Parent:  upstream.IntPtr(parentID),
		PerPage: childrenPageSize,
	})
	if err != nil {
		slog.Warn("category children lookup failed", "parent", parentID, "error", err)
		return []models.Category{}
	}
	return cats
}

// DescendantIDs returns categoryID together with the ids of its children,
// deduplicated. The order is not significant.
func (r *Resolver) DescendantIDs(ctx context.Context, categoryID int) []int {
	return unionIDs(categoryID, r.ChildrenOf(ctx, categoryID))
}

// PostsInCategoryWithDescendants returns one page of posts filed under
// categoryID or any of its children, using a single filtered query.
// p.Categories is replaced by the computed id set.
func (r *Resolver) PostsInCategoryWithDescendants(ctx context.Context, categoryID int, p upstream.Params) (*models.PagedResult[models.Post], error) {
	p.Categories = r.DescendantIDs(ctx, categoryID)
	res, err := upstream.FetchPaged[models.Post](ctx, r.client, "/posts", p)
	if err != nil {
		return nil, fmt.Errorf("posts in category %d: %w", categoryID, err)
	}
	return res, nil
}

// TagByID returns the tag with id, or nil if it does not exist or could not
// be fetched.
func (r *Resolver) TagByID(ctx context.Context, id int) *models.Tag {
	tag, err := upstream.Fetch[models.Tag](ctx, r.client, "/tags/"+strconv.Itoa(id), upstream.Params{})
	if err != nil {
		if !upstream.IsNotFound(err) {
			slog.Warn("tag lookup failed", "id", id, "error", err)
		}
		return nil
	}
	return &tag
}

func unionIDs(root int, children []models.Category) []int {
	seen := map[int]bool{root: true}
	ids := []int{root}
	for _, c := range children {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		ids = append(ids, c.ID)
	}
	return ids
}
