package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pharmacare/storefront/internal/models"
	"github.com/pharmacare/storefront/internal/notify"
	"github.com/pharmacare/storefront/internal/repository"
)

// SettingsHandler reads and writes the storefront configuration singleton.
type SettingsHandler struct {
	Settings repository.SettingsRepository
	Toasts   *notify.Hub
}

func (h *SettingsHandler) Get(c echo.Context) error {
	settings, err := h.Settings.Get(c.Request().Context())
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// Save replaces the whole settings object. Missing or out-of-range fields are
// normalized before persisting so the stored row is always complete.
func (h *SettingsHandler) Save(c echo.Context) error {
	var settings models.AppSettings
	if err := c.Bind(&settings); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	if err := h.Settings.Save(c.Request().Context(), settings); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	showToast(c, h.Toasts, "Settings saved", notify.KindSuccess)

	saved, err := h.Settings.Get(c.Request().Context())
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, saved)
}

// TogglePaymentMethod flips the enabled flag of one configured method.
func (h *SettingsHandler) TogglePaymentMethod(c echo.Context) error {
	methodID := c.Param("id")

	settings, err := h.Settings.Get(c.Request().Context())
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	found := false
	for i := range settings.PaymentMethods {
		if settings.PaymentMethods[i].ID == methodID {
			settings.PaymentMethods[i].Enabled = !settings.PaymentMethods[i].Enabled
			found = true
			break
		}
	}
	if !found {
		return errorResponse(c, http.StatusNotFound, fmt.Errorf("payment method not found"))
	}

	if err := h.Settings.Save(c.Request().Context(), settings); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	showToast(c, h.Toasts, "Payment methods updated", notify.KindInfo)
	return c.JSON(http.StatusOK, settings)
}
