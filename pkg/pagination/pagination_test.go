// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: d.kravets.dev@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkravets/inkwell/pkg/pagination"
)

/*
TestFromRequest_Defaults verifies clamping and fallback behavior for the
pageNumber / pageSize / sortBy / sortDirection query parameters.
*/
func TestFromRequest_Defaults(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected pagination.Params
	}{
		{
			"empty_query",
			"",
			pagination.Params{PageNumber: 1, PageSize: 10, SortBy: "createdAt", SortDirection: "desc"},
		},
		{
			"explicit_values",
			"pageNumber=3&pageSize=25&sortBy=name&sortDirection=asc",
			pagination.Params{PageNumber: 3, PageSize: 25, SortBy: "name", SortDirection: "asc"},
		},
		{
			"negative_page_clamped",
			"pageNumber=-2&pageSize=0",
			pagination.Params{PageNumber: 1, PageSize: 10, SortBy: "createdAt", SortDirection: "desc"},
		},
		{
			"oversized_page_size_clamped",
			"pageSize=5000",
			pagination.Params{PageNumber: 1, PageSize: 10, SortBy: "createdAt", SortDirection: "desc"},
		},
		{
			"garbage_values_fall_back",
			"pageNumber=abc&sortDirection=sideways",
			pagination.Params{PageNumber: 1, PageSize: 10, SortBy: "createdAt", SortDirection: "desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/blogs?"+tt.query, nil)
			assert.Equal(t, tt.expected, pagination.FromRequest(r))
		})
	}
}

/*
TestOffset verifies the SQL offset derivation from page number and size.
*/
func TestOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{PageNumber: 1, PageSize: 10}.Offset())
	assert.Equal(t, 0, pagination.Params{PageNumber: 0, PageSize: 10}.Offset())
	assert.Equal(t, 20, pagination.Params{PageNumber: 3, PageSize: 10}.Offset())
}

/*
TestNewMeta verifies pages count math, including partial last pages.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 10, 31)
	assert.Equal(t, 4, meta.PagesCount)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.PageSize)
	assert.Equal(t, 31, meta.TotalCount)

	empty := pagination.NewMeta(1, 10, 0)
	assert.Equal(t, 0, empty.PagesCount)
}
