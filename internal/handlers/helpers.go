package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pharmacare/storefront/internal/notify"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func errorResponse(c echo.Context, code int, err error) error {
	return c.JSON(code, Response{
		Status:  "error",
		Message: err.Error(),
	})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// CurrentUser reads the identity the token middleware put on the context.
func CurrentUser(c echo.Context) (uint, string, error) {
	id, ok := c.Get("userID").(uint)
	if !ok || id == 0 {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "not signed in")
	}
	role, _ := c.Get("role").(string)
	return id, role, nil
}

// showToast emits feedback into the acting user's queue. Requests without an
// authenticated user get no toast; there is nobody to show it to.
func showToast(c echo.Context, hub *notify.Hub, message, kind string) {
	if id, ok := c.Get("userID").(uint); ok && id != 0 {
		hub.ShowFor(id, message, kind)
	}
}
