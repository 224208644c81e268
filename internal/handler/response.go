package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "blogapi/internal/errors"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// PagedResponse is the envelope for every paginated listing.
type PagedResponse struct {
	Data       interface{} `json:"data"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	Total      int64       `json:"total"`
	TotalPages int64       `json:"totalPages"`
}

func newPagedResponse(data interface{}, page, pageSize int, total int64) PagedResponse {
	return PagedResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: (total + int64(pageSize) - 1) / int64(pageSize),
	}
}

// parsePagination reads page and pageSize query parameters. Missing, junk,
// zero and negative values silently fall back to the defaults rather than
// erroring.
func parsePagination(c echo.Context) (page, pageSize int) {
	page = atoiOrDefault(c.QueryParam("page"), defaultPage)
	pageSize = atoiOrDefault(c.QueryParam("pageSize"), defaultPageSize)
	return page, pageSize
}

func atoiOrDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// writeError maps a domain error to its HTTP status and uniform {error} body.
// Unrecognized errors collapse to 500; the cause is logged server-side only.
func writeError(c echo.Context, err error) error {
	he := apperrors.MapErrorToHTTP(err)
	if he.StatusCode >= 500 {
		c.Logger().Error(err)
	}
	return c.JSON(he.StatusCode, he.ToErrorResponse())
}
