// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "encoding/json"

// SEOPayload is the structured metadata the SEO plugin attaches to posts,
// categories and authors. Every field is optional.
type SEOPayload struct {
	Title              string          `json:"title,omitempty"`
	Description        string          `json:"description,omitempty"`
	Canonical          string          `json:"canonical,omitempty"`
	OGTitle            string          `json:"og_title,omitempty"`
	OGDescription      string          `json:"og_description,omitempty"`
	OGURL              string          `json:"og_url,omitempty"`
	OGType             string          `json:"og_type,omitempty"`
	OGSiteName         string          `json:"og_site_name,omitempty"`
	OGImage            []SEOImage      `json:"og_image,omitempty"`
	TwitterCard        string          `json:"twitter_card,omitempty"`
	TwitterTitle       string          `json:"twitter_title,omitempty"`
	TwitterDescription string          `json:"twitter_description,omitempty"`
	TwitterImage       string          `json:"twitter_image,omitempty"`
	Author             string          `json:"author,omitempty"`
	Schema             json.RawMessage `json:"schema,omitempty"`
}

// SEOImage is one social preview image.
type SEOImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Type   string `json:"type,omitempty"`
}

// FirstImage returns the first social preview image URL, or "".
func (s *SEOPayload) FirstImage() string {
	if s == nil {
		return ""
	}
	for _, img := range s.OGImage {
		if img.URL != "" {
			return img.URL
		}
	}
	return s.TwitterImage
}
