// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"time"

	"newsfront/internal/identity"
	"newsfront/internal/models"
	"newsfront/internal/sanitize"
)

// DateLayout is the display format for publication dates.
const DateLayout = "January 2, 2006"

// audioFieldKeys are the custom field names an audio attachment may use, in
// lookup order.
var audioFieldKeys = []string{"audio_url", "audio", "podcast_url", "audio_file"}

// Article is the presentation record for a post.
type Article struct {
	ID            int       `json:"id"`
	Slug          string    `json:"slug"`
	Link          string    `json:"link,omitempty"`
	Title         string    `json:"title"`
	Date          string    `json:"date"`
	Published     time.Time `json:"published"`
	Modified      time.Time `json:"modified"`
	Excerpt       string    `json:"excerpt"`
	Body          string    `json:"body,omitempty"`
	AuthorName    string    `json:"author_name"`
	AuthorSlug    string    `json:"author_slug,omitempty"`
	AuthorAvatar  string    `json:"author_avatar,omitempty"`
	CategoryName  string    `json:"category_name,omitempty"`
	CategorySlug  string    `json:"category_slug,omitempty"`
	FeaturedImage *Image    `json:"featured_image,omitempty"`
	AudioURL      string    `json:"audio_url,omitempty"`
	PullQuote     string    `json:"pull_quote,omitempty"`
}

// Image is a featured image ready for display.
type Image struct {
	URL     string `json:"url"`
	Alt     string `json:"alt"`
	Caption string `json:"caption,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// Normalize converts a post into its full presentation record, body
// included.
func Normalize(p *models.Post, policies DisplayPolicies) Article {
	a := Summarize(p, policies)
	a.Body = sanitize.ProcessContent(p.Content.Rendered)
	return a
}

// Summarize converts a post into a listing record without the body.
func Summarize(p *models.Post, policies DisplayPolicies) Article {
	quote := PullQuote(p)
	a := Article{
		ID:           p.ID,
		Slug:         p.Slug,
		Link:         p.Link,
		Title:        sanitize.PlainText(p.Title.Rendered),
		Date:         FormatDate(p.Date.Time),
		Published:    p.Date.Time,
		Modified:     p.Modified.Time,
		Excerpt:      sanitize.Excerpt(quote, p.Excerpt.Rendered),
		AuthorName:   identity.AuthorName(p),
		AuthorSlug:   identity.AuthorSlug(p),
		AuthorAvatar: identity.AuthorAvatar(p),
		AudioURL:     AudioURL(p),
		PullQuote:    quote,
	}
	if cat := PrimaryCategory(p); cat != nil {
		a.CategoryName = sanitize.DecodeEntities(cat.Name)
		a.CategorySlug = cat.Slug
	}
	if !policies.HidesFeaturedImage(p) {
		a.FeaturedImage = featuredImage(p)
	}
	return a
}

// SummarizeAll converts a listing page.
func SummarizeAll(posts []models.Post, policies DisplayPolicies) []Article {
	out := make([]Article, 0, len(posts))
	for i := range posts {
		out = append(out, Summarize(&posts[i], policies))
	}
	return out
}

// FormatDate renders t with DateLayout. The zero time renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// PrimaryCategory returns the first embedded category term, skipping the
// "uncategorized" placeholder when another term is present. Returns nil when
// the post has no embedded categories.
func PrimaryCategory(p *models.Post) *models.Term {
	terms := p.CategoryTerms()
	if len(terms) == 0 {
		return nil
	}
	for i := range terms {
		if terms[i].Slug != "uncategorized" {
			return &terms[i]
		}
	}
	return &terms[0]
}

// AudioURL returns the first audio attachment URL found in the post's custom
// fields, or "".
func AudioURL(p *models.Post) string {
	for _, key := range audioFieldKeys {
		if url := p.Fields.URL(key); url != "" {
			return url
		}
	}
	return ""
}

// PullQuote returns the post's pull quote as plain text, or "".
func PullQuote(p *models.Post) string {
	return sanitize.PlainText(p.Fields.String("quote"))
}

func featuredImage(p *models.Post) *Image {
	m := p.EmbeddedMedia()
	if m == nil || m.SourceURL == "" {
		return nil
	}
	return &Image{
		URL:     m.SourceURL,
		Alt:     sanitize.DecodeEntities(m.AltText),
		Caption: sanitize.PlainText(m.Caption.Rendered),
		Width:   m.MediaDetails.Width,
		Height:  m.MediaDetails.Height,
	}
}
