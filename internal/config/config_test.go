package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("requires DATABASE_URL", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("reads environment", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/booking")
		t.Setenv("PORT", "9090")
		t.Setenv("STATIC_TOKENS", " tok1, tok2 ,")
		t.Setenv("JWT_HMAC_SECRET", " secret ")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, []string{"tok1", "tok2"}, cfg.StaticTokens)
		assert.Equal(t, "secret", cfg.JWTSecret)
	})
}
