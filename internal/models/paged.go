// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// PagedResult is one page of a listing. Total and TotalPages come from
// response headers and are nil when the upstream did not send them; nil
// means unknown, not zero.
type PagedResult[T any] struct {
	Items      []T  `json:"items"`
	Total      *int `json:"total,omitempty"`
	TotalPages *int `json:"total_pages,omitempty"`
}

// Empty returns a result with no items and unknown totals.
func Empty[T any]() *PagedResult[T] {
	return &PagedResult[T]{Items: []T{}}
}

// HasNext reports whether a page after page is known to exist.
func (r *PagedResult[T]) HasNext(page int) bool {
	return r.TotalPages != nil && page < *r.TotalPages
}
