package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/pharmacare/storefront/internal/models"
	"github.com/pharmacare/storefront/internal/notify"
)

// AccountHandler manages the signed-in user's address book. Checkout reads the
// list to prefill the shipping form.
type AccountHandler struct {
	DB     *gorm.DB
	Toasts *notify.Hub
}

func (h *AccountHandler) currentUser(c echo.Context) (models.User, error) {
	userID, _, err := CurrentUser(c)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	if err := h.DB.WithContext(c.Request().Context()).First(&user, userID).Error; err != nil {
		return models.User{}, echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
	}
	return user, nil
}

func (h *AccountHandler) ListAddresses(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}
	if user.SavedAddresses == nil {
		user.SavedAddresses = []string{}
	}
	return c.JSON(http.StatusOK, user.SavedAddresses)
}

func (h *AccountHandler) AddAddress(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var req struct {
		Address string `json:"address"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	address := strings.TrimSpace(req.Address)
	if address == "" {
		return errorResponse(c, http.StatusBadRequest, fmt.Errorf("address required"))
	}

	user.SavedAddresses = append(user.SavedAddresses, address)
	if err := h.DB.WithContext(c.Request().Context()).Save(&user).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	showToast(c, h.Toasts, "Address saved", notify.KindSuccess)
	return c.JSON(http.StatusOK, user.SavedAddresses)
}

// DeleteAddress removes every saved entry matching the posted address; an
// unknown address is a no-op, mirroring the rest of the cart surface.
func (h *AccountHandler) DeleteAddress(c echo.Context) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var req struct {
		Address string `json:"address"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	kept := make([]string, 0, len(user.SavedAddresses))
	for _, a := range user.SavedAddresses {
		if a != req.Address {
			kept = append(kept, a)
		}
	}
	user.SavedAddresses = kept

	if err := h.DB.WithContext(c.Request().Context()).Save(&user).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	showToast(c, h.Toasts, "Address removed", notify.KindInfo)
	return c.JSON(http.StatusOK, user.SavedAddresses)
}
