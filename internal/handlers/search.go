package handlers

import (
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/pharmacare/storefront/internal/service/search"
	"github.com/pharmacare/storefront/internal/util"
)

// SearchHandler fronts the Elasticsearch product index.
type SearchHandler struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return errorResponse(c, http.StatusBadRequest, fmt.Errorf("query parameter q is required"))
	}
	if h.ES == nil {
		return errorResponse(c, http.StatusServiceUnavailable, fmt.Errorf("search is not configured"))
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, products, err := search.Search(c.Request().Context(), h.ES, h.Index, query, offset, limit)
	if err != nil {
		return errorResponse(c, http.StatusBadGateway, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": products,
		"meta": map[string]any{
			"total": total,
			"page":  page,
			"size":  limit,
		},
	})
}
