// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Media is an attachment record, usually a post's featured image.
type Media struct {
	ID           int          `json:"id"`
	SourceURL    string       `json:"source_url"`
	AltText      string       `json:"alt_text"`
	MimeType     string       `json:"mime_type"`
	Caption      Rendered     `json:"caption"`
	MediaDetails MediaDetails `json:"media_details"`
}

// MediaDetails carries the original dimensions and generated sizes.
type MediaDetails struct {
	Width  int                  `json:"width"`
	Height int                  `json:"height"`
	Sizes  map[string]MediaSize `json:"sizes,omitempty"`
}

// MediaSize is one generated rendition of an image.
type MediaSize struct {
	SourceURL string `json:"source_url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// SizeURL returns the URL of the named rendition, falling back to the
// original upload.
func (m *Media) SizeURL(name string) string {
	if s, ok := m.MediaDetails.Sizes[name]; ok && s.SourceURL != "" {
		return s.SourceURL
	}
	return m.SourceURL
}
