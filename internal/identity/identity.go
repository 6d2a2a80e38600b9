// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package identity resolves the display name, avatar and slug of a post's
// author from the several places the content API may carry them: the SEO
// plugin payload, guest-author terms from the authorship plugin, and the
// native author embed. All functions are pure.
package identity

import (
	"strings"

	"newsfront/internal/models"
	"newsfront/internal/slug"
)

// DefaultAuthorName is shown when no source yields a name.
const DefaultAuthorName = "Staff"

// Avatar size keys on the native author record, largest first.
var avatarSizes = []string{"96", "48", "24"}

// AuthorName resolves the display name. Guest-author terms outrank the
// native embed, which is often a placeholder account.
//
//  1. SEO payload author string
//  2. first guest-author term name
//  3. native embedded author name, unless the record is error-shaped
//  4. DefaultAuthorName
func AuthorName(p *models.Post) string {
	if p == nil {
		return DefaultAuthorName
	}
	if p.SEO != nil {
		if name := strings.TrimSpace(p.SEO.Author); name != "" {
			return name
		}
	}
	if guest := firstGuest(p); guest != nil {
		if name := strings.TrimSpace(guest.Name); name != "" {
			return name
		}
	}
	if a := p.EmbeddedAuthor(); a != nil && !a.IsError() {
		if name := strings.TrimSpace(a.Name); name != "" {
			return name
		}
	}
	return DefaultAuthorName
}

// AuthorSlug returns the slug for the author profile link, following the
// same source order as AuthorName minus the SEO string. Guest authors
// without a slug get one generated from their name. Returns "" when there
// is no linkable author.
func AuthorSlug(p *models.Post) string {
	if p == nil {
		return ""
	}
	if guest := firstGuest(p); guest != nil {
		if guest.Slug != "" {
			return guest.Slug
		}
		if s := slug.Generate(guest.Name); s != "" {
			return s
		}
	}
	if a := p.EmbeddedAuthor(); a != nil && !a.IsError() {
		return a.Slug
	}
	return ""
}

// AuthorAvatar resolves an avatar URL through five independent tiers and
// returns "" when none applies.
//
//  1. Person node with an image in the SEO structured-data graph
//  2. native author custom "photo" field
//  3. native author custom "image" field
//  4. guest-author avatar metadata, then its custom "photo" field
//  5. native author sized avatar map, largest size first
func AuthorAvatar(p *models.Post) string {
	if p == nil {
		return ""
	}
	if p.SEO != nil {
		if url := PersonImage(p.SEO.Schema); url != "" {
			return url
		}
	}

	native := p.EmbeddedAuthor()
	if native != nil && native.IsError() {
		native = nil
	}
	if native != nil {
		if url := native.Fields.URL("photo"); url != "" {
			return url
		}
		if url := native.Fields.URL("image"); url != "" {
			return url
		}
	}
	if guest := firstGuest(p); guest != nil {
		if url := models.NormalizeURL(guest.Avatar); url != "" {
			return url
		}
		if url := guest.Fields.URL("photo"); url != "" {
			return url
		}
	}
	if native != nil {
		return SizedAvatar(native.AvatarURLs)
	}
	return ""
}

// SizedAvatar picks the largest known size from an avatar URL map.
func SizedAvatar(urls map[string]string) string {
	for _, size := range avatarSizes {
		if url := strings.TrimSpace(urls[size]); url != "" {
			return url
		}
	}
	return ""
}

// ProfileAvatar resolves the avatar for an author profile page, where only
// the native record is available.
func ProfileAvatar(a *models.Author) string {
	if a == nil || a.IsError() {
		return ""
	}
	if a.SEO != nil {
		if url := PersonImage(a.SEO.Schema); url != "" {
			return url
		}
	}
	if url := a.Fields.URL("photo"); url != "" {
		return url
	}
	if url := a.Fields.URL("image"); url != "" {
		return url
	}
	return SizedAvatar(a.AvatarURLs)
}

func firstGuest(p *models.Post) *models.GuestAuthor {
	guests := p.GuestAuthors()
	if len(guests) == 0 {
		return nil
	}
	return &guests[0]
}
