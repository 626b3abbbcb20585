package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigRequiresAdminPassword(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")

	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "ADMIN_PASSWORD")
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "admin123")
	t.Setenv("PORT", "")
	t.Setenv("ADMIN_EMAIL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.PORT)
	require.Equal(t, "admin@pharmacareplus.com", cfg.ADMIN_EMAIL)
	require.Equal(t, "admin123", cfg.ADMIN_PASSWORD)
}
