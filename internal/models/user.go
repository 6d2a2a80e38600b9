// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "encoding/json"

// Author is a native user record from the content API. When a post has no
// real user attached, the embedded author comes back error-shaped with Code
// set (e.g. "rest_user_invalid_id") and must not be used for display.
type Author struct {
	ID          int               `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	Link        string            `json:"link"`
	AvatarURLs  map[string]string `json:"avatar_urls,omitempty"`
	Fields      CustomFields      `json:"acf,omitempty"`
	SEO         *SEOPayload       `json:"yoast_head_json,omitempty"`

	// Code is only present on error-shaped placeholder records.
	Code string `json:"code,omitempty"`
}

// IsError reports whether the record is an upstream error placeholder.
func (a *Author) IsError() bool {
	return a.Code != ""
}

// JobTitle returns the custom "title" field.
func (a *Author) JobTitle() string {
	return a.Fields.String("title")
}

// Social returns the custom social handle for a network such as "twitter".
func (a *Author) Social(network string) string {
	return a.Fields.String(network)
}

// GuestAuthor is an author identity stored as a taxonomy term by the
// authorship plugin. It is attached to posts through the embedded term
// arrays, never through the post's numeric author reference.
type GuestAuthor struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Taxonomy    string          `json:"taxonomy"`
	Avatar      json.RawMessage `json:"avatar,omitempty"`
	Fields      CustomFields    `json:"acf,omitempty"`
}
