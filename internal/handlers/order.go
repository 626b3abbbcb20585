package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pharmacare/storefront/internal/models"
	"github.com/pharmacare/storefront/internal/mykafka"
	"github.com/pharmacare/storefront/internal/notify"
	"github.com/pharmacare/storefront/internal/repository"
)

// OrderHandler serves the back-office order list, the customer's own history
// and the public tracking lookup. Orders are immutable snapshots; only the
// status field ever changes, and only forwards.
type OrderHandler struct {
	Orders   repository.OrderRepository
	Producer *mykafka.Producer
	Toasts   *notify.Hub
}

func (h *OrderHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "order_events", fmt.Sprint(event["orderID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *OrderHandler) GetAll(c echo.Context) error {
	orders, err := h.Orders.GetAll(c.Request().Context())
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// MyOrders lists the signed-in customer's orders, newest first.
func (h *OrderHandler) MyOrders(c echo.Context) error {
	userID, _, err := CurrentUser(c)
	if err != nil {
		return err
	}
	orders, err := h.Orders.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// Track looks an order up by its public id.
func (h *OrderHandler) Track(c echo.Context) error {
	order, err := h.Orders.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errorResponse(c, http.StatusNotFound, fmt.Errorf("order not found"))
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateStatus advances an order along Processing -> Shipped -> Delivered.
// Repeating the current status is accepted and does nothing; moving backwards
// is rejected.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	orderID := c.Param("id")

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if !req.Status.Valid() {
		return errorResponse(c, http.StatusBadRequest, fmt.Errorf("unknown status %q", req.Status))
	}

	if err := h.Orders.UpdateStatus(c.Request().Context(), orderID, req.Status); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return errorResponse(c, http.StatusNotFound, fmt.Errorf("order not found"))
		case errors.Is(err, repository.ErrStatusRegression):
			return errorResponse(c, http.StatusConflict, err)
		default:
			return errorResponse(c, http.StatusInternalServerError, err)
		}
	}

	showToast(c, h.Toasts, fmt.Sprintf("Order status updated to %s", req.Status), notify.KindSuccess)
	h.publish(c, map[string]any{
		"type":    "status_updated",
		"orderID": orderID,
		"status":  req.Status,
	})
	return c.JSON(http.StatusOK, Response{Status: "success", Message: "order status updated"})
}
