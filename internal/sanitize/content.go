// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sanitize

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Named artifacts removed before the generic shortcode pass. The generic
// pass would unwrap the embed directive and keep its URL as text, and it
// does not know about the widget markup at all.
var (
	embedPlaceholder = regexp.MustCompile(`(?is)\[embed[^\]]*\].*?\[/embed\]`)
	audioWidgetDiv   = regexp.MustCompile(`(?is)<div[^>]*id="buzzsprout-player-[^"]*"[^>]*>.*?</div>`)
	audioWidgetJS    = regexp.MustCompile(`(?is)<script[^>]*buzzsprout\.com[^>]*>.*?</script>`)
	videoPlacement   = regexp.MustCompile(`(?is)<div[^>]*class="[^"]*\bvideo-placement\b[^"]*"[^>]*>.*?</div>`)

	// excerptMore is the "[…]" marker the API appends to generated excerpts.
	excerptMore = regexp.MustCompile(`\s*\[(&hellip;|…|\.\.\.)\]\s*$`)
)

var (
	// bodyPolicy keeps ordinary article markup plus embedded players.
	bodyPolicy = newBodyPolicy()
	// textPolicy strips every tag.
	textPolicy = bluemonday.StrictPolicy()
)

func newBodyPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("figure", "figcaption")
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("src", "width", "height", "title", "allow", "allowfullscreen", "frameborder").OnElements("iframe")
	return p
}

// ProcessContent prepares a post body for display: known artifacts are
// removed first, then shortcodes, then the markup is sanitized.
func ProcessContent(markup string) string {
	out := embedPlaceholder.ReplaceAllString(markup, "")
	out = audioWidgetDiv.ReplaceAllString(out, "")
	out = audioWidgetJS.ReplaceAllString(out, "")
	out = videoPlacement.ReplaceAllString(out, "")
	out = StripShortcodes(out)
	return strings.TrimSpace(bodyPolicy.Sanitize(out))
}

// DecodeEntities decodes HTML character references, named and numeric.
func DecodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return html.UnescapeString(s)
}

// EncodeEntities escapes the characters DecodeEntities restores.
func EncodeEntities(s string) string {
	return html.EscapeString(s)
}

// StripHTMLTags removes all markup and collapses whitespace. Character
// references in the result stay encoded.
func StripHTMLTags(markup string) string {
	return strings.Join(strings.Fields(textPolicy.Sanitize(markup)), " ")
}

// PlainText turns markup into display text: tags stripped, entities decoded.
func PlainText(markup string) string {
	return DecodeEntities(StripHTMLTags(markup))
}

// ExcerptText derives display text from an upstream excerpt, dropping the
// trailing read-more marker.
func ExcerptText(markup string) string {
	text := PlainText(StripShortcodes(markup))
	return strings.TrimSpace(excerptMore.ReplaceAllString(text, ""))
}

// Excerpt prefers a pull quote when one is set, otherwise the upstream
// excerpt.
func Excerpt(quote, excerptMarkup string) string {
	if q := PlainText(quote); q != "" {
		return q
	}
	return ExcerptText(excerptMarkup)
}

// Truncate shortens s to at most max runes, cutting at a word boundary and
// appending an ellipsis when anything was removed.
func Truncate(s string, max int) string {
	r := []rune(strings.TrimSpace(s))
	if max <= 0 || len(r) <= max {
		return string(r)
	}
	cut := string(r[:max])
	if i := strings.LastIndexAny(cut, " \n\t"); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,;:.-") + "…"
}
