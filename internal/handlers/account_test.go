package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pharmacare/storefront/internal/models"
)

func listAddresses(t *testing.T, env *testEnv, userID uint) []string {
	t.Helper()

	rec, c := env.doJSONRequest(t, http.MethodGet, "/api/v1/me/addresses", nil)
	asUser(c, userID, "customer")
	require.NoError(t, env.Account.ListAddresses(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var addresses []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &addresses))
	return addresses
}

func TestNewCustomerStartsWithEmptyAddressBook(t *testing.T) {
	env := newTestEnv(t)
	user := env.signIn(t, "carol@example.com")

	require.Empty(t, listAddresses(t, env, user.ID))
}

func TestAddAndDeleteAddress(t *testing.T) {
	env := newTestEnv(t)
	user := env.signIn(t, "carol@example.com")

	rec, c := env.doJSONRequest(t, http.MethodPost, "/api/v1/me/addresses", map[string]string{
		"address": "42 Elm St, Cityville, 10001",
	})
	asUser(c, user.ID, "customer")
	require.NoError(t, env.Account.AddAddress(c))
	require.Equal(t, http.StatusOK, rec.Code)

	rec, c = env.doJSONRequest(t, http.MethodPost, "/api/v1/me/addresses", map[string]string{
		"address": "9 Birch Ln, Westtown",
	})
	asUser(c, user.ID, "customer")
	require.NoError(t, env.Account.AddAddress(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t,
		[]string{"42 Elm St, Cityville, 10001", "9 Birch Ln, Westtown"},
		listAddresses(t, env, user.ID))

	rec, c = env.doJSONRequest(t, http.MethodDelete, "/api/v1/me/addresses", map[string]string{
		"address": "42 Elm St, Cityville, 10001",
	})
	asUser(c, user.ID, "customer")
	require.NoError(t, env.Account.DeleteAddress(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, []string{"9 Birch Ln, Westtown"}, listAddresses(t, env, user.ID))

	// The address book survives a reload from the database.
	var stored models.User
	require.NoError(t, env.DB.First(&stored, user.ID).Error)
	require.Equal(t, []string{"9 Birch Ln, Westtown"}, stored.SavedAddresses)

	messages := make([]string, 0)
	for _, toast := range env.Toasts.ActiveFor(user.ID) {
		messages = append(messages, toast.Message)
	}
	require.Contains(t, messages, "Address saved")
	require.Contains(t, messages, "Address removed")
}

func TestAddAddressRejectsBlank(t *testing.T) {
	env := newTestEnv(t)
	user := env.signIn(t, "carol@example.com")

	rec, c := env.doJSONRequest(t, http.MethodPost, "/api/v1/me/addresses", map[string]string{
		"address": "   ",
	})
	asUser(c, user.ID, "customer")
	require.NoError(t, env.Account.AddAddress(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteUnknownAddressIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	user := env.signIn(t, "carol@example.com")

	rec, c := env.doJSONRequest(t, http.MethodPost, "/api/v1/me/addresses", map[string]string{
		"address": "42 Elm St",
	})
	asUser(c, user.ID, "customer")
	require.NoError(t, env.Account.AddAddress(c))
	require.Equal(t, http.StatusOK, rec.Code)

	rec, c = env.doJSONRequest(t, http.MethodDelete, "/api/v1/me/addresses", map[string]string{
		"address": "nowhere",
	})
	asUser(c, user.ID, "customer")
	require.NoError(t, env.Account.DeleteAddress(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, []string{"42 Elm St"}, listAddresses(t, env, user.ID))
}
