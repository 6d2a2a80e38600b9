// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Category is a post category. Only the parent link is stored; children are
// found by querying for categories whose Parent equals an id.
type Category struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Slug        string      `json:"slug"`
	Count       int         `json:"count"`
	Description string      `json:"description,omitempty"`
	Link        string      `json:"link,omitempty"`
	Parent      int         `json:"parent"` // 0 for top-level categories
	SEO         *SEOPayload `json:"yoast_head_json,omitempty"`
}

// HasParent reports whether the category is nested under another.
func (c *Category) HasParent() bool {
	return c.Parent != 0
}

// Tag is a post tag.
type Tag struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Count       int    `json:"count"`
	Description string `json:"description,omitempty"`
}
