package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pharmacare/storefront/internal/cart"
	"github.com/pharmacare/storefront/internal/checkout"
	"github.com/pharmacare/storefront/internal/config"
	"github.com/pharmacare/storefront/internal/hash"
	"github.com/pharmacare/storefront/internal/models"
	"github.com/pharmacare/storefront/internal/notify"
	"github.com/pharmacare/storefront/internal/orderid"
	"github.com/pharmacare/storefront/internal/repository"
	"github.com/pharmacare/storefront/internal/seed"
)

type testEnv struct {
	DB     *gorm.DB
	E      *echo.Echo
	Toasts *notify.Hub

	Auth     *AuthHandler
	Account  *AccountHandler
	Cart     *CartHandler
	Orders   *OrderHandler
	Products *ProductHandler
	Settings *SettingsHandler
	Stores   *StoreHandler
	ToastAPI *ToastHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	require.NoError(t, seed.Run(db))

	adminHash, err := hash.HashPassword("admin123")
	require.NoError(t, err)

	toasts := notify.NewHubTTL(time.Minute)
	repo := repository.NewGormRepo(db)
	carts := cart.NewStore(toasts)
	checkouts := checkout.NewStore(carts, repo, orderid.New(), toasts)

	return &testEnv{
		DB:     db,
		E:      echo.New(),
		Toasts: toasts,
		Auth: &AuthHandler{
			DB:                db,
			JWTSecret:         []byte("test-jwt-secret"),
			RefreshSecret:     []byte("test-refresh-secret"),
			Toasts:            toasts,
			AdminEmail:        "admin@pharmacareplus.com",
			AdminPasswordHash: adminHash,
		},
		Account: &AccountHandler{DB: db, Toasts: toasts},
		Cart: &CartHandler{
			DB:        db,
			Carts:     carts,
			Checkouts: checkouts,
			Catalog:   repo,
			Settings:  repo,
		},
		Orders:   &OrderHandler{Orders: repo, Toasts: toasts},
		Products: &ProductHandler{Catalog: repo, Toasts: toasts, Index: "products"},
		Settings: &SettingsHandler{Settings: repo, Toasts: toasts},
		Stores:   &StoreHandler{Catalog: repo, Toasts: toasts},
		ToastAPI: &ToastHandler{Toasts: toasts},
	}
}

// doJSONRequest builds an echo context carrying the optional body; callers
// invoke the handler under test directly with it.
func (env *testEnv) doJSONRequest(t *testing.T, method, target string, body any) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

// asUser marks the context as an authenticated session the way the token
// middleware would.
func asUser(c echo.Context, userID uint, role string) {
	c.Set("userID", userID)
	c.Set("role", role)
}

// signIn creates a customer row through the login handler and returns it.
func (env *testEnv) signIn(t *testing.T, email string) models.User {
	t.Helper()

	rec, c := env.doJSONRequest(t, http.MethodPost, "/api/v1/login", map[string]string{
		"email":    email,
		"password": "whatever",
	})
	require.NoError(t, env.Auth.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	return user
}
