// Copyright (c) 2026 Quill. All rights reserved.
// Author: dev@quillhq.io

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting window is computed against a counted collection. The
// same engine serves every list endpoint so that clamping behaves identically
// for posts and comments.
package pagination

import (
	"net/http"
	"strconv"
)

// Bounds defines the per-endpoint limits for the "limit" query parameter.
//
// Each list endpoint declares its own Bounds (posts allow larger pages than
// comments); requests outside [Min, Max] fall back to Default.
type Bounds struct {
	Default int
	Min     int
	Max     int
}

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Result is the validated pagination window produced by [Paginate].
//
// Page is the effective page after clamping, which may be lower than the
// page the client requested.
type Result struct {
	Page       int
	Limit      int
	Offset     int
	TotalPages int
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
	Total       int `json:"total"`
	TotalPages  int `json:"totalPages"`
}

// Paginate turns a requested page, a page size, and a total item count into a
// consistent query window.
//
// # Algorithm
//
//  1. TotalPages = ceil(max(total, 1) / limit). An empty collection still has
//     one page, so a page-1 request against zero rows is valid and yields an
//     empty list rather than an error.
//  2. Page = min(requested, TotalPages). Overshooting clients are silently
//     clamped down to the last page instead of receiving an empty trailing page.
//  3. Offset = (Page - 1) * Limit.
//
// The function is pure: identical inputs always produce identical output.
// Out-of-range inputs are clamped, never rejected: a page or limit below 1
// is treated as 1, so the window stays well-defined for any caller.
func Paginate(requestedPage, limit, total int) Result {
	if requestedPage < 1 {
		requestedPage = 1
	}
	if limit < 1 {
		limit = 1
	}

	countable := total
	if countable < 1 {
		countable = 1
	}
	totalPages := (countable + limit - 1) / limit

	effectivePage := requestedPage
	if effectivePage > totalPages {
		effectivePage = totalPages
	}

	return Result{
		Page:       effectivePage,
		Limit:      limit,
		Offset:     (effectivePage - 1) * limit,
		TotalPages: totalPages,
	}
}

// Meta converts the result into response metadata for a counted collection.
func (r Result) Meta(total int) Meta {
	return Meta{
		CurrentPage: r.Page,
		Limit:       r.Limit,
		Total:       total,
		TotalPages:  r.TotalPages,
	}
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid or negative pages fall back to 1. Limits outside the endpoint's
// [Bounds] fall back to the endpoint default.
func FromRequest(r *http.Request, bounds Bounds) Params {
	page := parseIntParam(r, "page", 1)
	limit := parseIntParam(r, "limit", bounds.Default)

	if page < 1 {
		page = 1
	}

	if limit < bounds.Min || limit > bounds.Max {
		limit = bounds.Default
	}

	return Params{Page: page, Limit: limit}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
