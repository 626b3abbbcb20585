package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pharmacare/storefront/internal/geo"
	"github.com/pharmacare/storefront/internal/models"
	"github.com/pharmacare/storefront/internal/notify"
	"github.com/pharmacare/storefront/internal/repository"
)

// CategoryHandler covers the admin category CRUD plus the public listing.
type CategoryHandler struct {
	Catalog repository.CatalogRepository
	Toasts  *notify.Hub
}

func (h *CategoryHandler) List(c echo.Context) error {
	items, err := h.Catalog.Categories(c.Request().Context())
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CategoryHandler) Save(c echo.Context) error {
	var cat models.Category
	if err := c.Bind(&cat); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if cat.Name == "" || cat.Slug == "" {
		return errorResponse(c, http.StatusBadRequest, fmt.Errorf("name and slug required"))
	}

	if err := h.Catalog.SaveCategory(c.Request().Context(), &cat); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	showToast(c, h.Toasts, "Category saved", notify.KindSuccess)
	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return errorResponse(c, http.StatusBadRequest, fmt.Errorf("invalid id"))
	}
	if err := h.Catalog.DeleteCategory(c.Request().Context(), uint(id)); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	showToast(c, h.Toasts, "Category deleted", notify.KindInfo)
	return c.JSON(http.StatusOK, map[string]any{"deleted": id})
}

// StoreHandler lists pharmacy branches and resolves the nearest one to a
// customer location.
type StoreHandler struct {
	Catalog repository.CatalogRepository
	Toasts  *notify.Hub
}

func (h *StoreHandler) List(c echo.Context) error {
	items, err := h.Catalog.Stores(c.Request().Context())
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *StoreHandler) Save(c echo.Context) error {
	var st models.Store
	if err := c.Bind(&st); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if st.Name == "" {
		return errorResponse(c, http.StatusBadRequest, fmt.Errorf("name required"))
	}

	if err := h.Catalog.SaveStore(c.Request().Context(), &st); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	showToast(c, h.Toasts, "Store saved", notify.KindSuccess)
	return c.JSON(http.StatusOK, st)
}

func (h *StoreHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return errorResponse(c, http.StatusBadRequest, fmt.Errorf("invalid id"))
	}
	if err := h.Catalog.DeleteStore(c.Request().Context(), uint(id)); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	showToast(c, h.Toasts, "Store deleted", notify.KindInfo)
	return c.JSON(http.StatusOK, map[string]any{"deleted": id})
}

// Nearest returns the branch closest to the posted coordinates. Location is
// optional for checkout, so a missing store list is a 404, never a failure
// that blocks ordering.
func (h *StoreHandler) Nearest(c echo.Context) error {
	var req struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	stores, err := h.Catalog.Stores(c.Request().Context())
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	nearest := geo.NearestStore(req.Lat, req.Lng, stores)
	if nearest == nil {
		return errorResponse(c, http.StatusNotFound, fmt.Errorf("no stores"))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"store":       nearest,
		"distance_km": geo.DistanceKm(req.Lat, req.Lng, nearest.Lat, nearest.Lng),
	})
}

// PageHandler serves the info pages and their admin CRUD.
type PageHandler struct {
	Catalog repository.CatalogRepository
	Toasts  *notify.Hub
}

func (h *PageHandler) List(c echo.Context) error {
	items, err := h.Catalog.Pages(c.Request().Context())
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *PageHandler) BySlug(c echo.Context) error {
	page, err := h.Catalog.PageBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errorResponse(c, http.StatusNotFound, fmt.Errorf("page not found"))
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *PageHandler) Save(c echo.Context) error {
	var p models.Page
	if err := c.Bind(&p); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if p.Title == "" || p.Slug == "" {
		return errorResponse(c, http.StatusBadRequest, fmt.Errorf("title and slug required"))
	}
	p.LastUpdated = time.Now().UTC()

	if err := h.Catalog.SavePage(c.Request().Context(), &p); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	showToast(c, h.Toasts, "Page saved", notify.KindSuccess)
	return c.JSON(http.StatusOK, p)
}

func (h *PageHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return errorResponse(c, http.StatusBadRequest, fmt.Errorf("invalid id"))
	}
	if err := h.Catalog.DeletePage(c.Request().Context(), uint(id)); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	showToast(c, h.Toasts, "Page deleted", notify.KindInfo)
	return c.JSON(http.StatusOK, map[string]any{"deleted": id})
}
