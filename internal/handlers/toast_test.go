package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/pharmacare/storefront/internal/notify"
)

func listToasts(t *testing.T, env *testEnv, userID uint) []notify.Toast {
	t.Helper()

	rec, c := env.doJSONRequest(t, http.MethodGet, "/api/v1/toasts", nil)
	asUser(c, userID, "customer")
	require.NoError(t, env.ToastAPI.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var toasts []notify.Toast
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &toasts))
	return toasts
}

func TestToastsAreScopedToTheirUser(t *testing.T) {
	env := newTestEnv(t)

	alice := env.signIn(t, "alice@example.com")
	bob := env.signIn(t, "bob@example.com")

	addToCart(t, env, alice.ID, 2, 1)

	aliceToasts := listToasts(t, env, alice.ID)
	require.Len(t, aliceToasts, 2)
	require.Equal(t, "Welcome back, alice", aliceToasts[0].Message)
	require.Contains(t, aliceToasts[1].Message, "Multi-Vitamin Complex")

	// Bob only sees his own welcome toast, nothing of Alice's.
	bobToasts := listToasts(t, env, bob.ID)
	require.Len(t, bobToasts, 1)
	require.Equal(t, "Welcome back, bob", bobToasts[0].Message)
}

func TestDismissIgnoresOtherUsersToasts(t *testing.T) {
	env := newTestEnv(t)

	alice := env.signIn(t, "alice@example.com")
	bob := env.signIn(t, "bob@example.com")

	target := listToasts(t, env, alice.ID)[0]

	rec, c := env.doJSONRequest(t, http.MethodDelete, "/api/v1/toasts/"+target.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(target.ID)
	asUser(c, bob.ID, "customer")
	require.NoError(t, env.ToastAPI.Dismiss(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Alice's toast survives a dismissal attempt by someone else.
	require.Len(t, listToasts(t, env, alice.ID), 1)

	rec, c = env.doJSONRequest(t, http.MethodDelete, "/api/v1/toasts/"+target.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(target.ID)
	asUser(c, alice.ID, "customer")
	require.NoError(t, env.ToastAPI.Dismiss(c))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, listToasts(t, env, alice.ID))
}

func TestToastListRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(t, http.MethodGet, "/api/v1/toasts", nil)
	err := env.ToastAPI.List(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
