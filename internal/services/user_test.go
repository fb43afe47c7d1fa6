package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glnc_delivery/internal/models"
	"glnc_delivery/internal/testutil"
)

func TestUserCreate(t *testing.T) {
	h := newHarness(t, testutil.At(2024, 1, 10, 9, 0, 0))
	ctx := context.Background()

	u, err := h.svc.Users.Create(ctx, UserInput{Name: " Carol ", Role: models.RoleDriver, Password: PasswordInput{Value: "12345"}})
	require.NoError(t, err)
	assert.Equal(t, "Carol", u.Name)
	assert.NotEqual(t, "12345", u.Password)
	assert.True(t, testutil.Hasher().Verify("12345", u.Password))

	_, err = h.svc.Users.Create(ctx, UserInput{Name: "Dave", Role: 3, Password: PasswordInput{Value: "54321"}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = h.svc.Users.Create(ctx, UserInput{Name: "Dave", Role: models.RoleDriver, Password: PasswordInput{Value: "abc"}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = h.svc.Users.Create(ctx, UserInput{Name: "Dave", Role: models.RoleDriver})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = h.svc.Users.Create(ctx, UserInput{Name: "Dave", Role: models.RoleAdmin, Password: PasswordInput{Value: "12345"}})
	assert.ErrorIs(t, err, ErrConflict, "code already used by Carol")
}

func TestUserUpdatePasswordHandling(t *testing.T) {
	h := newHarness(t, testutil.At(2024, 1, 10, 9, 0, 0))
	ctx := context.Background()
	u := testutil.CreateUser(t, h.db, "Erin", "11111", models.RoleDriver)
	original := u.Password

	t.Run("empty keeps the stored hash", func(t *testing.T) {
		got, err := h.svc.Users.Update(ctx, u.ID, UserInput{Name: "Erin B", Role: models.RoleAdmin})
		require.NoError(t, err)
		assert.Equal(t, original, got.Password)
		assert.Equal(t, models.RoleAdmin, got.Role)
	})

	t.Run("own code may be re-entered", func(t *testing.T) {
		got, err := h.svc.Users.Update(ctx, u.ID, UserInput{Name: "Erin", Role: models.RoleDriver, Password: PasswordInput{Value: "11111"}})
		require.NoError(t, err)
		assert.True(t, testutil.Hasher().Verify("11111", got.Password))
	})

	t.Run("hashed values are stored verbatim", func(t *testing.T) {
		sum := sha256.Sum256([]byte("77777"))
		digest := hex.EncodeToString(sum[:])
		got, err := h.svc.Users.Update(ctx, u.ID, UserInput{Name: "Erin", Role: models.RoleDriver, Password: PasswordInput{Value: digest, Hashed: true}})
		require.NoError(t, err)
		assert.Equal(t, digest, got.Password)
	})

	t.Run("hashed flag requires a known format", func(t *testing.T) {
		_, err := h.svc.Users.Update(ctx, u.ID, UserInput{Name: "Erin", Role: models.RoleDriver, Password: PasswordInput{Value: "12345", Hashed: true}})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := h.svc.Users.Update(ctx, 999, UserInput{Name: "X", Role: models.RoleDriver})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserDelete(t *testing.T) {
	h := newHarness(t, testutil.At(2024, 1, 10, 9, 0, 0))
	ctx := context.Background()
	u := testutil.CreateUser(t, h.db, "Fay", "11111", models.RoleDriver)

	require.NoError(t, h.svc.Users.Delete(ctx, u.ID))
	assert.ErrorIs(t, h.svc.Users.Delete(ctx, u.ID), ErrNotFound)
}

func TestUserNameLimitCountsCharacters(t *testing.T) {
	h := newHarness(t, testutil.At(2024, 1, 10, 9, 0, 0))
	ctx := context.Background()

	u, err := h.svc.Users.Create(ctx, UserInput{Name: strings.Repeat("é", 30), Role: models.RoleDriver, Password: PasswordInput{Value: "12345"}})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", 30), u.Name)

	_, err = h.svc.Users.Create(ctx, UserInput{Name: strings.Repeat("é", 31), Role: models.RoleDriver, Password: PasswordInput{Value: "54321"}})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "name must be at most 30 characters")
}
