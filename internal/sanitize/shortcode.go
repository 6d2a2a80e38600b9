// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sanitize cleans upstream rich-text bodies and excerpts for
// display: shortcode removal, removal of known third-party artifacts, HTML
// sanitization, tag stripping and entity decoding. Everything here is pure.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	// openingShortcode matches "[name]", "[name attr=...]" and "[name ... /]".
	openingShortcode = regexp.MustCompile(`\[([A-Za-z][\w-]*)(\s[^\[\]]*?)?(/)?\]`)
	// closingShortcode matches any leftover "[/name]".
	closingShortcode = regexp.MustCompile(`\[/[A-Za-z][\w-]*\]`)
)

// StripShortcodes removes bracket-delimited directives from markup. A
// paired directive "[x ...]inner[/x]" is replaced by inner, matching the
// nearest closing tag of the same name even across lines. Self-closing and
// unpaired directives are removed, as is any unmatched closing tag.
func StripShortcodes(markup string) string {
	if !strings.Contains(markup, "[") {
		return markup
	}

	var b strings.Builder
	rest := markup
	for {
		loc := openingShortcode.FindStringSubmatchIndex(rest)
		if loc == nil {
			b.WriteString(rest)
			break
		}
		start, end := loc[0], loc[1]
		name := rest[loc[2]:loc[3]]
		selfClosing := loc[6] >= 0

		b.WriteString(rest[:start])

		if !selfClosing {
			closing := "[/" + name + "]"
			if idx := strings.Index(rest[end:], closing); idx >= 0 {
				// Unwrap and rescan the inner content so nested directives
				// are handled too.
				inner := rest[end : end+idx]
				rest = inner + rest[end+idx+len(closing):]
				continue
			}
		}
		rest = rest[end:]
	}

	return closingShortcode.ReplaceAllString(b.String(), "")
}
