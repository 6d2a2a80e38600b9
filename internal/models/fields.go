// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// CustomFields holds free-form custom field values keyed by field name.
// Values stay raw until read because the same field can arrive as a bare
// string, an object, or false depending on how it was configured upstream.
type CustomFields map[string]json.RawMessage

// UnmarshalJSON accepts an object, or the empty array the content API sends
// when a record has no custom fields.
func (f *CustomFields) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		*f = nil
		return nil
	}
	m := make(map[string]json.RawMessage)
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return err
	}
	*f = m
	return nil
}

// String returns the field as a trimmed string, or "" when it is absent or
// not a string.
func (f CustomFields) String(key string) string {
	raw, ok := f[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// URL returns the field normalized by NormalizeURL.
func (f CustomFields) URL(key string) string {
	return NormalizeURL(f[key])
}

// NormalizeURL reduces a loosely typed URL field to a plain string. It
// accepts a bare string or an object carrying a "url" property; anything
// else (false, null, numbers, malformed JSON) yields "".
func NormalizeURL(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	case '{':
		var obj struct {
			URL json.RawMessage `json:"url"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return ""
		}
		var s string
		if err := json.Unmarshal(obj.URL, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	}
	return ""
}
