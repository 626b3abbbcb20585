package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/pharmacare/storefront/internal/models"
	"github.com/pharmacare/storefront/internal/mykafka"
	"github.com/pharmacare/storefront/internal/notify"
	"github.com/pharmacare/storefront/internal/repository"
	"github.com/pharmacare/storefront/internal/service/search"
	"github.com/pharmacare/storefront/internal/util"
)

type ProductHandler struct {
	Catalog  repository.CatalogRepository
	Producer *mykafka.Producer
	Toasts   *notify.Hub
	ES       *elasticsearch.Client
	Index    string
}

func (h *ProductHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "product_events", fmt.Sprint(event["productID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *ProductHandler) toast(c echo.Context, message, kind string) {
	showToast(c, h.Toasts, message, kind)
}

func (h *ProductHandler) index(c echo.Context, p models.Product) {
	if err := search.IndexProduct(c.Request().Context(), h.ES, h.Index, p); err != nil {
		c.Logger().Errorf("ES index error: %v", err)
	}
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return errorResponse(c, http.StatusBadRequest, fmt.Errorf("invalid id"))
	}

	product, err := h.Catalog.ProductByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errorResponse(c, http.StatusNotFound, fmt.Errorf("product not found"))
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	category := c.QueryParam("category")

	offset, limit := util.Calculate(page, size)

	items, err := h.Catalog.Products(c.Request().Context())
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	if category != "" && category != "All" {
		filtered := items[:0]
		for _, p := range items {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		items = filtered
	}

	total := len(items)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items[offset:end],
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + limit - 1) / limit,
			"has_prev":    page > 1,
			"has_next":    end < total,
		},
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req struct {
		Name                 string   `json:"name"`
		Description          string   `json:"description"`
		Price                float64  `json:"price"`
		Category             string   `json:"category"`
		Images               []string `json:"images"`
		Stock                uint     `json:"stock"`
		RequiresPrescription bool     `json:"requires_prescription"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if req.Name == "" || req.Price < 0 || len(req.Images) == 0 {
		return errorResponse(c, http.StatusBadRequest, fmt.Errorf("name, non-negative price and at least one image required"))
	}

	prod := models.Product{
		Name:                 req.Name,
		Description:          req.Description,
		Price:                req.Price,
		Category:             req.Category,
		Images:               req.Images,
		Stock:                req.Stock,
		RequiresPrescription: req.RequiresPrescription,
	}

	if err := h.Catalog.SaveProduct(c.Request().Context(), &prod); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	h.index(c, prod)
	h.publish(c, map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	h.toast(c, "Product saved to database", notify.KindSuccess)

	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return errorResponse(c, http.StatusBadRequest, fmt.Errorf("invalid id"))
	}

	prod, err := h.Catalog.ProductByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errorResponse(c, http.StatusNotFound, fmt.Errorf("product not found"))
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	var req struct {
		Name                 *string   `json:"name"`
		Description          *string   `json:"description"`
		Price                *float64  `json:"price"`
		Category             *string   `json:"category"`
		Images               *[]string `json:"images"`
		Stock                *uint     `json:"stock"`
		RequiresPrescription *bool     `json:"requires_prescription"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return errorResponse(c, http.StatusBadRequest, fmt.Errorf("price must be >= 0"))
		}
		prod.Price = *req.Price
	}
	if req.Category != nil {
		prod.Category = *req.Category
	}
	if req.Images != nil {
		prod.Images = *req.Images
	}
	if req.Stock != nil {
		prod.Stock = *req.Stock
	}
	if req.RequiresPrescription != nil {
		prod.RequiresPrescription = *req.RequiresPrescription
	}

	if err := h.Catalog.SaveProduct(c.Request().Context(), &prod); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	h.index(c, prod)
	h.publish(c, map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
	})
	h.toast(c, "Product updated", notify.KindSuccess)

	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return errorResponse(c, http.StatusBadRequest, fmt.Errorf("invalid id"))
	}

	if err := h.Catalog.DeleteProduct(c.Request().Context(), uint(id)); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	if err := search.RemoveProduct(c.Request().Context(), h.ES, h.Index, uint(id)); err != nil {
		c.Logger().Errorf("ES delete error: %v", err)
	}
	h.publish(c, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	h.toast(c, "Product deleted", notify.KindInfo)

	return c.JSON(http.StatusOK, map[string]any{"deleted": id})
}
