// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import "newsfront/internal/models"

// DisplayPolicy adjusts how posts in a category are presented.
type DisplayPolicy struct {
	HideFeaturedImage bool
}

// DisplayPolicies maps category ids to their display policy.
type DisplayPolicies map[int]DisplayPolicy

// HideFeaturedImageIn builds policies that hide the featured image for posts
// in any of the given categories.
func HideFeaturedImageIn(categoryIDs []int) DisplayPolicies {
	d := make(DisplayPolicies, len(categoryIDs))
	for _, id := range categoryIDs {
		pol := d[id]
		pol.HideFeaturedImage = true
		d[id] = pol
	}
	return d
}

// HidesFeaturedImage reports whether any of the post's categories hides the
// featured image.
func (d DisplayPolicies) HidesFeaturedImage(p *models.Post) bool {
	for id, pol := range d {
		if pol.HideFeaturedImage && p.HasCategory(id) {
			return true
		}
	}
	return false
}
