package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/pharmacare/storefront/internal/cart"
	"github.com/pharmacare/storefront/internal/checkout"
	"github.com/pharmacare/storefront/internal/models"
	"github.com/pharmacare/storefront/internal/mykafka"
	"github.com/pharmacare/storefront/internal/repository"
)

// CartHandler exposes the per-user cart and the checkout flow built on it.
// Carts live in memory; products are re-read from the catalog on every add so
// the cart line snapshots the price at add time.
type CartHandler struct {
	DB        *gorm.DB
	Carts     *cart.Store
	Checkouts *checkout.Store
	Catalog   repository.CatalogRepository
	Settings  repository.SettingsRepository
	Producer  *mykafka.Producer
}

func (h *CartHandler) publish(c echo.Context, topic string, userID uint, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, topic, fmt.Sprint(userID), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *CartHandler) taxRate(c echo.Context) (float64, error) {
	settings, err := h.Settings.Get(c.Request().Context())
	if err != nil {
		return 0, err
	}
	return settings.TaxRate, nil
}

func cartView(userCart *cart.Cart, taxRate float64) map[string]any {
	return map[string]any{
		"items":                 userCart.Items(),
		"subtotal":              userCart.Subtotal(),
		"tax":                   userCart.Tax(taxRate),
		"total":                 userCart.Total(taxRate),
		"pending_prescriptions": userCart.PendingPrescriptions(),
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID, _, err := CurrentUser(c)
	if err != nil {
		return err
	}
	rate, err := h.taxRate(c)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, cartView(h.Carts.Get(userID), rate))
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	userID, _, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  uint `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	product, err := h.Catalog.ProductByID(c.Request().Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errorResponse(c, http.StatusNotFound, fmt.Errorf("product not found"))
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	if product.Stock == 0 {
		return errorResponse(c, http.StatusConflict, fmt.Errorf("product is out of stock"))
	}

	userCart := h.Carts.Get(userID)
	userCart.AddItem(product, req.Quantity)

	h.publish(c, "cart_events", userID, map[string]any{
		"type":      "item_added",
		"userID":    userID,
		"productID": product.ID,
		"quantity":  req.Quantity,
	})
	rate, err := h.taxRate(c)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, cartView(userCart, rate))
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	userID, _, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	userCart := h.Carts.Get(userID)
	userCart.UpdateQuantity(req.ProductID, req.Quantity)

	h.publish(c, "cart_events", userID, map[string]any{
		"type":      "quantity_updated",
		"userID":    userID,
		"productID": req.ProductID,
		"quantity":  req.Quantity,
	})
	rate, err := h.taxRate(c)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, cartView(userCart, rate))
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	userID, _, err := CurrentUser(c)
	if err != nil {
		return err
	}

	id := parseIntDefault(c.Param("id"), 0)
	if id <= 0 {
		return errorResponse(c, http.StatusBadRequest, fmt.Errorf("invalid id"))
	}

	userCart := h.Carts.Get(userID)
	userCart.RemoveItem(uint(id))

	h.publish(c, "cart_events", userID, map[string]any{
		"type":      "item_removed",
		"userID":    userID,
		"productID": id,
	})
	rate, err := h.taxRate(c)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, cartView(userCart, rate))
}

// AttachPrescription binds an uploaded proof reference to a regulated cart
// line. An empty proof detaches it again.
func (h *CartHandler) AttachPrescription(c echo.Context) error {
	userID, _, err := CurrentUser(c)
	if err != nil {
		return err
	}

	id := parseIntDefault(c.Param("id"), 0)
	if id <= 0 {
		return errorResponse(c, http.StatusBadRequest, fmt.Errorf("invalid id"))
	}

	var req struct {
		Proof string `json:"proof"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	userCart := h.Carts.Get(userID)
	userCart.AttachPrescription(uint(id), req.Proof)

	rate, err := h.taxRate(c)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, cartView(userCart, rate))
}

func (h *CartHandler) machine(c echo.Context) (*checkout.Machine, uint, error) {
	userID, _, err := CurrentUser(c)
	if err != nil {
		return nil, 0, err
	}
	var user models.User
	if err := h.DB.WithContext(c.Request().Context()).First(&user, userID).Error; err != nil {
		return nil, 0, echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
	}
	return h.Checkouts.Get(userID, user.Name), userID, nil
}

func checkoutView(m *checkout.Machine) map[string]any {
	view := map[string]any{
		"state": m.State(),
		"form":  m.Form(),
	}
	if order := m.PlacedOrder(); order != nil {
		view["order"] = order
	}
	return view
}

func (h *CartHandler) GetCheckout(c echo.Context) error {
	m, _, err := h.machine(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, checkoutView(m))
}

func (h *CartHandler) ProceedToDetails(c echo.Context) error {
	m, _, err := h.machine(c)
	if err != nil {
		return err
	}

	if err := m.ProceedToDetails(); err != nil {
		var rx *checkout.RxPendingError
		switch {
		case errors.As(err, &rx):
			return c.JSON(http.StatusConflict, map[string]any{
				"status":        "error",
				"message":       err.Error(),
				"pending_items": rx.Items,
			})
		case errors.Is(err, checkout.ErrEmptyCart):
			return errorResponse(c, http.StatusBadRequest, err)
		case errors.Is(err, checkout.ErrNotSignedIn):
			return errorResponse(c, http.StatusUnauthorized, err)
		default:
			return errorResponse(c, http.StatusConflict, err)
		}
	}
	return c.JSON(http.StatusOK, checkoutView(m))
}

func (h *CartHandler) BackToCart(c echo.Context) error {
	m, _, err := h.machine(c)
	if err != nil {
		return err
	}
	if err := m.BackToCart(); err != nil {
		return errorResponse(c, http.StatusConflict, err)
	}
	return c.JSON(http.StatusOK, checkoutView(m))
}

// PlaceOrder runs the final transition. Validation problems come back as a
// per-field 422 so the client can highlight inputs; persistence failures are a
// 502 and leave both the cart and the checkout state untouched.
func (h *CartHandler) PlaceOrder(c echo.Context) error {
	m, userID, err := h.machine(c)
	if err != nil {
		return err
	}

	var form checkout.DetailsForm
	if err := c.Bind(&form); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	settings, err := h.Settings.Get(c.Request().Context())
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	order, err := m.PlaceOrder(c.Request().Context(), form, settings)
	if err != nil {
		var fieldErrs checkout.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{
				"status": "error",
				"errors": fieldErrs,
			})
		case errors.Is(err, checkout.ErrInvalidState), errors.Is(err, checkout.ErrInFlight):
			return errorResponse(c, http.StatusConflict, err)
		default:
			return errorResponse(c, http.StatusBadGateway, err)
		}
	}

	h.publish(c, "order_events", userID, map[string]any{
		"type":    "order_placed",
		"userID":  userID,
		"orderID": order.ID,
		"total":   order.Total,
		"status":  models.OrderStatusProcessing,
	})
	return c.JSON(http.StatusCreated, checkoutView(m))
}
