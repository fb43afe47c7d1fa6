package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glnc_delivery/internal/models"
	"glnc_delivery/internal/testutil"
)

func TestAuthenticate(t *testing.T) {
	h := newHarness(t, testutil.At(2024, 1, 10, 9, 0, 0))
	ctx := context.Background()
	admin := testutil.CreateUser(t, h.db, "Alice", "11111", models.RoleAdmin)
	driver := testutil.CreateUser(t, h.db, "Bob", "22222", models.RoleDriver)

	t.Run("rejects malformed codes", func(t *testing.T) {
		for _, code := range []string{"", "1234", "123456", "12a45", " 1234"} {
			_, err := h.svc.Auth.Authenticate(ctx, code)
			assert.ErrorIs(t, err, ErrValidation, code)
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := h.svc.Auth.Authenticate(ctx, "99999")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("matches the right user", func(t *testing.T) {
		u, err := h.svc.Auth.Authenticate(ctx, "22222")
		require.NoError(t, err)
		assert.Equal(t, driver.ID, u.ID)
	})

	t.Run("role gates", func(t *testing.T) {
		u, err := h.svc.Auth.LoginAdmin(ctx, "11111")
		require.NoError(t, err)
		assert.Equal(t, admin.ID, u.ID)

		_, err = h.svc.Auth.LoginAdmin(ctx, "22222")
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)

		_, err = h.svc.Auth.LoginDriver(ctx, "11111")
		assert.ErrorIs(t, err, ErrAccessDenied)

		_, err = h.svc.Auth.LoginDriver(ctx, "33333")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = h.svc.Auth.LoginAdmin(ctx, "33333")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthenticateLegacyHashes(t *testing.T) {
	h := newHarness(t, testutil.At(2024, 1, 10, 9, 0, 0))
	ctx := context.Background()

	salted := sha256.Sum256([]byte("44444test-salt"))
	plain := sha256.Sum256([]byte("55555"))
	require.NoError(t, h.db.Create(&models.User{Name: "Salted", Password: hex.EncodeToString(salted[:]), Role: models.RoleDriver}).Error)
	require.NoError(t, h.db.Create(&models.User{Name: "Plain", Password: hex.EncodeToString(plain[:]), Role: models.RoleDriver}).Error)

	u, err := h.svc.Auth.LoginDriver(ctx, "44444")
	require.NoError(t, err)
	assert.Equal(t, "Salted", u.Name)

	u, err = h.svc.Auth.LoginDriver(ctx, "55555")
	require.NoError(t, err)
	assert.Equal(t, "Plain", u.Name)
}
