package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pharmacare/storefront/internal/handlers"
	"github.com/pharmacare/storefront/internal/service/token"
)

type Deps struct {
	AuthHandler     *handlers.AuthHandler
	AccountHandler  *handlers.AccountHandler
	ProductHandler  *handlers.ProductHandler
	CategoryHandler *handlers.CategoryHandler
	StoreHandler    *handlers.StoreHandler
	PageHandler     *handlers.PageHandler
	CartHandler     *handlers.CartHandler
	OrderHandler    *handlers.OrderHandler
	SettingsHandler *handlers.SettingsHandler
	SearchHandler   *handlers.SearchHandler
	ToastHandler    *handlers.ToastHandler
	TokenService    *token.Service
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	// Public surface.
	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.Logout)

	v1.GET("/products", d.ProductHandler.GetProducts)
	v1.GET("/products/:id", d.ProductHandler.GetProduct)
	v1.GET("/categories", d.CategoryHandler.List)
	v1.GET("/stores", d.StoreHandler.List)
	v1.POST("/stores/nearest", d.StoreHandler.Nearest)
	v1.GET("/pages", d.PageHandler.List)
	v1.GET("/pages/:slug", d.PageHandler.BySlug)
	v1.GET("/settings", d.SettingsHandler.Get)
	v1.GET("/search", d.SearchHandler.Search)
	v1.GET("/orders/track/:id", d.OrderHandler.Track)

	// Signed-in customers.
	private := v1.Group("", d.TokenService.AutoRefreshMiddleware)

	private.GET("/toasts", d.ToastHandler.List)
	private.DELETE("/toasts/:id", d.ToastHandler.Dismiss)

	private.GET("/cart", d.CartHandler.GetCart)
	private.POST("/cart", d.CartHandler.AddToCart)
	private.PATCH("/cart", d.CartHandler.UpdateQuantity)
	private.DELETE("/cart/:id", d.CartHandler.RemoveFromCart)
	private.POST("/cart/:id/prescription", d.CartHandler.AttachPrescription)

	private.GET("/checkout", d.CartHandler.GetCheckout)
	private.POST("/checkout/details", d.CartHandler.ProceedToDetails)
	private.POST("/checkout/back", d.CartHandler.BackToCart)
	private.POST("/checkout/order", d.CartHandler.PlaceOrder)

	private.GET("/me/orders", d.OrderHandler.MyOrders)

	private.GET("/me/addresses", d.AccountHandler.ListAddresses)
	private.POST("/me/addresses", d.AccountHandler.AddAddress)
	private.DELETE("/me/addresses", d.AccountHandler.DeleteAddress)

	// Back office.
	admin := v1.Group("/admin", d.TokenService.AutoRefreshMiddlewareAdmin)

	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)

	admin.POST("/categories", d.CategoryHandler.Save)
	admin.DELETE("/categories/:id", d.CategoryHandler.Delete)

	admin.POST("/stores", d.StoreHandler.Save)
	admin.DELETE("/stores/:id", d.StoreHandler.Delete)

	admin.POST("/pages", d.PageHandler.Save)
	admin.DELETE("/pages/:id", d.PageHandler.Delete)

	admin.GET("/orders", d.OrderHandler.GetAll)
	admin.PATCH("/orders/:id/status", d.OrderHandler.UpdateStatus)

	admin.PUT("/settings", d.SettingsHandler.Save)
	admin.PATCH("/settings/payment-methods/:id", d.SettingsHandler.TogglePaymentMethod)
}
