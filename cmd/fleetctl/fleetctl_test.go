package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glnc_delivery/internal/models"
	"glnc_delivery/internal/notify"
	"glnc_delivery/internal/security"
	"glnc_delivery/internal/services"
	"glnc_delivery/internal/testutil"
)

func newTestApp(t *testing.T) (*app, *bytes.Buffer, *services.Services) {
	t.Helper()
	db := testutil.NewDB(t)
	svc := services.New(services.Deps{
		DB:     db,
		Hasher: testutil.Hasher(),
		Clock:  services.NewClock(testutil.Loc),
		Mailer: notify.LogMailer{},
		Events: notify.NopPublisher{},
	})
	out := &bytes.Buffer{}
	return &app{out: out, hasher: testutil.Hasher(), svc: svc}, out, svc
}

func run(t *testing.T, a *app, args ...string) error {
	t.Helper()
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestApiKeyLifecycle(t *testing.T) {
	a, out, svc := newTestApp(t)

	require.NoError(t, run(t, a, "apikey", "generate"))
	keys, err := svc.ApiKeys.List(t.Context())
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Contains(t, out.String(), keys[0].Value)

	out.Reset()
	require.NoError(t, run(t, a, "apikey", "list"))
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))

	require.NoError(t, run(t, a, "apikey", "delete", "1"))
	keys, err = svc.ApiKeys.List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, keys)

	assert.Error(t, run(t, a, "apikey", "delete", "abc"))
}

func TestUserCreate(t *testing.T) {
	a, out, svc := newTestApp(t)

	require.NoError(t, run(t, a, "user", "create", "--name", "Alice", "--code", "12345"))
	assert.Contains(t, out.String(), "Alice")

	user, err := svc.Auth.LoginAdmin(t.Context(), "12345")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	assert.Error(t, run(t, a, "user", "create", "--name", "Bob", "--code", "12345"), "code already in use")
	assert.Error(t, run(t, a, "user", "create", "--name", "Carl", "--code", "abc"))
}

func TestHash(t *testing.T) {
	a, out, _ := newTestApp(t)

	require.NoError(t, run(t, a, "hash", "54321"))
	hashed := strings.TrimSpace(out.String())
	assert.True(t, security.IsSupportedHash(hashed))
	assert.True(t, a.hasher.Verify("54321", hashed))

	assert.Error(t, run(t, a, "hash", "5432"))
}
