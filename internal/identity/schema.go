// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package identity

import (
	"encoding/json"
	"log/slog"
	"strings"
)

type schemaGraph struct {
	Graph []json.RawMessage `json:"@graph"`
}

type schemaNode struct {
	Type  json.RawMessage `json:"@type"`
	Image json.RawMessage `json:"image"`
}

// PersonImage returns the image URL of the first Person node in a JSON-LD
// graph. Malformed graphs and nodes yield "" rather than an error.
func PersonImage(raw json.RawMessage) (url string) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Warn("structured data probe panicked", "error", rec)
			url = ""
		}
	}()

	if len(raw) == 0 {
		return ""
	}
	var g schemaGraph
	if err := json.Unmarshal(raw, &g); err != nil {
		return ""
	}
	for _, item := range g.Graph {
		var node schemaNode
		if err := json.Unmarshal(item, &node); err != nil {
			continue
		}
		if !isPerson(node.Type) {
			continue
		}
		if u := imageURL(node.Image); u != "" {
			return u
		}
	}
	return ""
}

// isPerson accepts "@type": "Person" or "@type": ["Person", ...].
func isPerson(raw json.RawMessage) bool {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single == "Person"
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		for _, t := range many {
			if t == "Person" {
				return true
			}
		}
	}
	return false
}

// imageURL reads an ImageObject ({"url"} or {"contentUrl"}) or a bare string.
func imageURL(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj struct {
		URL        string `json:"url"`
		ContentURL string `json:"contentUrl"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	if u := strings.TrimSpace(obj.URL); u != "" {
		return u
	}
	return strings.TrimSpace(obj.ContentURL)
}
