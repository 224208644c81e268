package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func paginationContext(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{name: "defaults", query: "", wantPage: 1, wantPageSize: 10},
		{name: "explicit values", query: "page=2&pageSize=25", wantPage: 2, wantPageSize: 25},
		{name: "junk silently defaults", query: "page=abc&pageSize=xyz", wantPage: 1, wantPageSize: 10},
		{name: "zero silently defaults", query: "page=0&pageSize=0", wantPage: 1, wantPageSize: 10},
		{name: "negative silently defaults", query: "page=-3&pageSize=-1", wantPage: 1, wantPageSize: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := parsePagination(paginationContext(tt.query))
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPageSize, pageSize)
		})
	}
}

func TestNewPagedResponse_TotalPages(t *testing.T) {
	tests := []struct {
		name           string
		total          int64
		pageSize       int
		wantTotalPages int64
	}{
		{name: "exact multiple", total: 30, pageSize: 10, wantTotalPages: 3},
		{name: "partial last page", total: 25, pageSize: 10, wantTotalPages: 3},
		{name: "single item", total: 1, pageSize: 10, wantTotalPages: 1},
		{name: "empty", total: 0, pageSize: 10, wantTotalPages: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := newPagedResponse(nil, 1, tt.pageSize, tt.total)
			assert.Equal(t, tt.wantTotalPages, resp.TotalPages)
			assert.Equal(t, tt.total, resp.Total)
			assert.Equal(t, tt.pageSize, resp.PageSize)
		})
	}
}
