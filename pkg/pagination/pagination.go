// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// (pageNumber / pageSize / sortBy / sortDirection) and how the resulting
// metadata is delivered in the API response envelope.
package pagination

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize is the number of items per page if not specified.
	DefaultPageSize = 10
	// MaxPageSize is the upper bound for items per page to prevent system abuse.
	MaxPageSize = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
	// DefaultSortBy is the sort field applied when none is requested.
	DefaultSortBy = "createdAt"
	// SortAsc and SortDesc are the two accepted sort directions.
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Params holds the parsed paging and sorting values from a request's query string.
type Params struct {
	PageNumber    int
	PageSize      int
	SortBy        string
	SortDirection string
}

// Offset returns the SQL OFFSET value derived from [PageNumber] and [PageSize].
func (p Params) Offset() int {
	if p.PageNumber <= 1 {
		return 0
	}
	return (p.PageNumber - 1) * p.PageSize
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	PagesCount int `json:"pagesCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the PagesCount based on the total count and page size.
func NewMeta(page, pageSize, totalCount int) Meta {
	pagesCount := 0
	if pageSize > 0 {
		pagesCount = (totalCount + pageSize - 1) / pageSize
	}

	return Meta{
		PagesCount: pagesCount,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}
}

// FromRequest parses paging and sorting query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultPageSize], or [MaxPageSize]. The sort direction
// falls back to descending, matching how feeds are usually consumed.
func FromRequest(r *http.Request) Params {
	page := parseIntParam(r, "pageNumber", DefaultPage)
	size := parseIntParam(r, "pageSize", DefaultPageSize)

	if page < 1 {
		page = DefaultPage
	}

	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}

	sortBy := r.URL.Query().Get("sortBy")
	if sortBy == "" {
		sortBy = DefaultSortBy
	}

	direction := strings.ToLower(r.URL.Query().Get("sortDirection"))
	if direction != SortAsc && direction != SortDesc {
		direction = SortDesc
	}

	return Params{
		PageNumber:    page,
		PageSize:      size,
		SortBy:        sortBy,
		SortDirection: direction,
	}
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
