package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/jrsteele09/go-api-skeleton/internal/config"
	apperrors "github.com/jrsteele09/go-api-skeleton/internal/errors"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	cfg, err := config.Parse(env.Options{Environment: map[string]string{
		"SECRET_KEY":         "s3cr3t",
		"PASSWORD_HASH_COST": "4",
		"DATABASE_URL":       "sqlite://" + filepath.Join(t.TempDir(), "manage.db"),
	}})
	require.NoError(t, err)
	out := &bytes.Buffer{}
	return newApp(cfg, out), out
}

func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func() ([]byte, error) {
		next := answers[0]
		answers = answers[1:]
		return []byte(next), nil
	}
}

func TestRun_Usage(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	require.ErrorContains(t, a.run(ctx, nil), "usage")
	require.ErrorContains(t, a.run(ctx, []string{"frobnicate"}), "unknown command")
}

func TestUserLifecycle(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.run(ctx, []string{"migrate"}))
	require.Contains(t, out.String(), "migrations applied")

	require.NoError(t, a.run(ctx, []string{"createuser",
		"--email", "alice@acid.net", "--name", "Alice", "--password", "bar",
		"--scopes", "users/whoami,logs/read"}))
	require.Contains(t, out.String(), "created user alice@acid.net")

	err := a.run(ctx, []string{"createuser", "--email", "alice@acid.net", "--password", "other"})
	require.ErrorContains(t, err, "already exists")

	out.Reset()
	require.NoError(t, a.run(ctx, []string{"listusers"}))
	require.Contains(t, out.String(), "alice@acid.net")
	require.Contains(t, out.String(), "logs/read,users/whoami")

	require.NoError(t, a.run(ctx, []string{"deleteuser", "--email", "alice@acid.net"}))
	err = a.run(ctx, []string{"deleteuser", "--email", "alice@acid.net"})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateUser_PromptsForPassword(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()

	stubPasswords(t, "bar", "bar")
	require.NoError(t, a.run(ctx, []string{"createuser", "--email", "foo@bar.baz"}))
	require.Contains(t, out.String(), "Enter password")

	stubPasswords(t, "bar", "baz")
	err := a.run(ctx, []string{"createuser", "--email", "other@bar.baz"})
	require.ErrorIs(t, err, apperrors.ErrPasswordMismatch)
}

func TestCreateUser_Validation(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	require.ErrorIs(t, a.run(ctx, []string{"createuser"}), apperrors.ErrInvalidInput)

	err := a.run(ctx, []string{"createuser", "--email", "foo@bar.baz", "--password", "bar", "--scopes", "root"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSettings_HidesSecret(t *testing.T) {
	a, out := newTestApp(t)
	require.NoError(t, a.run(context.Background(), []string{"settings"}))
	require.Contains(t, out.String(), "JWT_ALGORITHM")
	require.NotContains(t, out.String(), "s3cr3t")
}
