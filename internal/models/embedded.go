// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"fmt"
)

// Positions of each taxonomy inside the embedded "wp:term" array. The API
// returns these positionally with no key; they are read only in
// Embedded.UnmarshalJSON.
const (
	categoryTermIndex    = 0
	tagTermIndex         = 1
	guestAuthorTermIndex = 2
)

// Term is a taxonomy term as embedded in a post response.
type Term struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Taxonomy string `json:"taxonomy"`
	Link     string `json:"link"`
}

// Embedded is the bundle of related records inlined into a post when the
// request asks for embedding. The positional term arrays are split into
// named fields at decode time.
type Embedded struct {
	Author        []Author
	FeaturedMedia []Media
	Categories    []Term
	Tags          []Term
	GuestAuthors  []GuestAuthor
}

type rawEmbedded struct {
	Author        []Author        `json:"author"`
	FeaturedMedia []Media         `json:"wp:featuredmedia"`
	Terms         json.RawMessage `json:"wp:term"`
}

// UnmarshalJSON decodes the upstream "_embedded" object.
func (e *Embedded) UnmarshalJSON(b []byte) error {
	var raw rawEmbedded
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("embedded: %w", err)
	}
	e.Author = raw.Author
	e.FeaturedMedia = raw.FeaturedMedia

	groups := termGroups(raw.Terms)
	e.Categories = decodeTerms[Term](groups, categoryTermIndex)
	e.Tags = decodeTerms[Term](groups, tagTermIndex)
	e.GuestAuthors = decodeTerms[GuestAuthor](groups, guestAuthorTermIndex)
	return nil
}

// MarshalJSON restores the positional layout so a decoded bundle can be
// re-encoded losslessly.
func (e Embedded) MarshalJSON() ([]byte, error) {
	terms := make([]any, guestAuthorTermIndex+1)
	terms[categoryTermIndex] = nonNil(e.Categories)
	terms[tagTermIndex] = nonNil(e.Tags)
	terms[guestAuthorTermIndex] = nonNil(e.GuestAuthors)
	return json.Marshal(map[string]any{
		"author":           nonNil(e.Author),
		"wp:featuredmedia": nonNil(e.FeaturedMedia),
		"wp:term":          terms,
	})
}

// termGroups splits "wp:term" into its positional groups. A value that is
// not an array yields no groups.
func termGroups(b json.RawMessage) []json.RawMessage {
	var groups []json.RawMessage
	if err := json.Unmarshal(b, &groups); err != nil {
		return nil
	}
	return groups
}

// decodeTerms decodes the group at index. The API puts an error object in
// place of a group it refused to embed; such a group, and any element that
// does not decode, is treated as empty.
func decodeTerms[T any](groups []json.RawMessage, index int) []T {
	if index >= len(groups) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(groups[index], &items); err != nil {
		return nil
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
