// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives URL path segments from display names, matching the
// slugs the CMS assigns to terms and users.
package slug

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, space or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// separators collapses whitespace and hyphen runs into one hyphen.
	separators = regexp.MustCompile(`[\s-]+`)
)

// foldMarks removes combining marks after canonical decomposition, so "é"
// becomes "e".
func foldMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Generate creates a URL-friendly slug from the given name. Character
// references are decoded and accents folded before anything else is removed.
// Example: "Ana María &amp; Co." → "ana-maria-co"
func Generate(s string) string {
	result := foldMarks(html.UnescapeString(s))
	result = strings.ToLower(strings.TrimSpace(result))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = separators.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
