package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pharmacare/storefront/internal/notify"
)

// ToastHandler lets a signed-in user poll and dismiss their own notifications.
// Toasts are per-user feedback; nobody sees another session's queue.
type ToastHandler struct {
	Toasts *notify.Hub
}

func (h *ToastHandler) List(c echo.Context) error {
	userID, _, err := CurrentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.Toasts.ActiveFor(userID))
}

func (h *ToastHandler) Dismiss(c echo.Context) error {
	userID, _, err := CurrentUser(c)
	if err != nil {
		return err
	}
	h.Toasts.RemoveFor(c.Param("id"), userID)
	return c.NoContent(http.StatusNoContent)
}
