// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package upstream

import (
	"net/url"
	"strconv"
	"strings"
)

// Params is the query parameter set for a content API call. Zero values
// are omitted from the request.
type Params struct {
	PerPage    int
	Page       int
	Categories []int
	Tags       []int
	Exclude    []int
	Include    []int
	Author     int
	Parent     *int
	Slug       string
	Search     string
	OrderBy    string
	Order      string // "asc" or "desc"
	Status     string
	Embed      bool
}

// Values serializes the parameters. Id lists are comma-joined.
func (p Params) Values() url.Values {
	v := url.Values{}
	if p.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if len(p.Categories) > 0 {
		v.Set("categories", JoinIDs(p.Categories))
	}
	if len(p.Tags) > 0 {
		v.Set("tags", JoinIDs(p.Tags))
	}
	if len(p.Exclude) > 0 {
		v.Set("exclude", JoinIDs(p.Exclude))
	}
	if len(p.Include) > 0 {
		v.Set("include", JoinIDs(p.Include))
	}
	if p.Author > 0 {
		v.Set("author", strconv.Itoa(p.Author))
	}
	if p.Parent != nil {
		v.Set("parent", strconv.Itoa(*p.Parent))
	}
	if p.Slug != "" {
		v.Set("slug", p.Slug)
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.OrderBy != "" {
		v.Set("orderby", p.OrderBy)
	}
	if p.Order != "" {
		v.Set("order", p.Order)
	}
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	if p.Embed {
		v.Set("_embed", "1")
	}
	return v
}

// JoinIDs renders ids as "1,2,3".
func JoinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// ParseIDs is the inverse of JoinIDs. Blank and non-numeric parts are skipped.
func ParseIDs(s string) []int {
	var ids []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.Atoi(part); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// IntPtr returns a pointer to n, for optional parameters such as Parent.
func IntPtr(n int) *int {
	return &n
}
