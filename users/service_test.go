package users_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	apperrors "github.com/jrsteele09/go-api-skeleton/internal/errors"
	"github.com/jrsteele09/go-api-skeleton/internal/utils"
	"github.com/jrsteele09/go-api-skeleton/users"
	fakeuserrepo "github.com/jrsteele09/go-api-skeleton/users/repofake"
	"github.com/stretchr/testify/require"
)

var validScopes = users.NewScopes("unauthorized", "users/whoami", "logs/read")

type serviceFixture struct {
	repo    *fakeuserrepo.FakeUserRepo
	hasher  *users.Hasher
	service *users.Service
}

func setupService(t *testing.T) *serviceFixture {
	t.Helper()
	repo := fakeuserrepo.NewFakeUserRepo()
	hasher := newHasher(t)
	svc, err := users.NewService(repo, hasher, validScopes)
	require.NoError(t, err)
	return &serviceFixture{repo: repo, hasher: hasher, service: svc}
}

func TestNewService_RequiresDependencies(t *testing.T) {
	hasher := newHasher(t)
	repo := fakeuserrepo.NewFakeUserRepo()

	_, err := users.NewService(nil, hasher, validScopes)
	require.Error(t, err)
	_, err = users.NewService(repo, nil, validScopes)
	require.Error(t, err)
	_, err = users.NewService(repo, hasher, nil)
	require.Error(t, err)
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password and applies defaults", func(t *testing.T) {
		f := setupService(t)

		u, err := f.service.CreateUser(ctx, users.UserCreate{Email: "foo@bar.baz", Password: "bar"})
		require.NoError(t, err)
		require.NotEmpty(t, u.ID)
		require.NotEqual(t, "bar", u.PasswordHash)
		require.True(t, f.hasher.Verify("bar", u.PasswordHash))
		require.True(t, u.Disabled)
		require.False(t, u.Superuser)
		require.Equal(t, users.Scopes{users.ScopeUnauthorized}, u.Scopes)
	})

	t.Run("password longer than 72 bytes", func(t *testing.T) {
		f := setupService(t)
		long := strings.Repeat("p", 80)

		u, err := f.service.CreateUser(ctx, users.UserCreate{Email: "long@bar.baz", Password: long})
		require.NoError(t, err)
		require.True(t, f.hasher.Verify(long, u.PasswordHash))
	})

	t.Run("explicit fields", func(t *testing.T) {
		f := setupService(t)

		u, err := f.service.CreateUser(ctx, users.UserCreate{
			Email:    "alice@acid.net",
			Name:     "Alice",
			Password: "bar",
			Scopes:   users.NewScopes("users/whoami", "logs/read"),
			Disabled: utils.Ptr(false),
		})
		require.NoError(t, err)
		require.False(t, u.Disabled)
		require.True(t, u.HasScopes("users/whoami", "logs/read"))
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := setupService(t)

		_, err := f.service.CreateUser(ctx, users.UserCreate{Email: "foo@bar.baz", Password: "bar"})
		require.NoError(t, err)
		_, err = f.service.CreateUser(ctx, users.UserCreate{Email: "foo@bar.baz", Password: "other"})
		require.ErrorIs(t, err, apperrors.ErrDuplicateEmail)

		list, err := f.service.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	t.Run("invalid input", func(t *testing.T) {
		f := setupService(t)

		for name, in := range map[string]users.UserCreate{
			"bad email":     {Email: "not-an-email", Password: "bar"},
			"no password":   {Email: "foo@bar.baz"},
			"unknown scope": {Email: "foo@bar.baz", Password: "bar", Scopes: users.NewScopes("admin")},
		} {
			_, err := f.service.CreateUser(ctx, in)
			require.ErrorIs(t, err, apperrors.ErrInvalidInput, name)
		}
	})
}

func TestCreateUser_ConcurrentSameEmail(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	const workers = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		duplicates int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.CreateUser(ctx, users.UserCreate{Email: "race@bar.baz", Password: "bar"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if apperrors.Is(err, apperrors.ErrDuplicateEmail) {
				duplicates++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, successes)
	require.Equal(t, workers-1, duplicates)
}

func TestGetOrCreateUser(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()
	in := users.UserCreate{Email: "admin@bar.baz", Password: "bar", Superuser: true}

	first, created, err := f.service.GetOrCreateUser(ctx, in)
	require.NoError(t, err)
	require.True(t, created)
	require.NotNil(t, first)

	second, created, err := f.service.GetOrCreateUser(ctx, in)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.ID, second.ID)
}

func TestUpdateUser(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	orig, err := f.service.CreateUser(ctx, users.UserCreate{Email: "foo@bar.baz", Name: "Foo", Password: "bar"})
	require.NoError(t, err)

	t.Run("only provided fields change", func(t *testing.T) {
		u, err := f.service.UpdateUser(ctx, users.UserUpdate{Email: "foo@bar.baz", Disabled: utils.Ptr(false)})
		require.NoError(t, err)
		require.False(t, u.Disabled)
		require.Equal(t, "Foo", u.Name)
		require.Equal(t, orig.PasswordHash, u.PasswordHash)
		require.Equal(t, orig.Scopes, u.Scopes)
	})

	t.Run("password is hashed", func(t *testing.T) {
		u, err := f.service.UpdateUser(ctx, users.UserUpdate{Email: "foo@bar.baz", Password: utils.Ptr("new")})
		require.NoError(t, err)
		require.True(t, f.hasher.Verify("new", u.PasswordHash))
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := f.service.UpdateUser(ctx, users.UserUpdate{Email: "ghost@bar.baz", Name: utils.Ptr("x")})
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("nothing to change", func(t *testing.T) {
		before, err := f.repo.GetByEmail(ctx, "foo@bar.baz")
		require.NoError(t, err)

		u, err := f.service.UpdateUser(ctx, users.UserUpdate{Email: "foo@bar.baz"})
		require.NoError(t, err)
		require.Equal(t, before, u)

		_, err = f.service.UpdateUser(ctx, users.UserUpdate{Email: "ghost@bar.baz"})
		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("empty password rejected", func(t *testing.T) {
		_, err := f.service.UpdateUser(ctx, users.UserUpdate{Email: "foo@bar.baz", Password: utils.Ptr("")})
		require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestUpdateUserPassword(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	u, err := f.service.CreateUser(ctx, users.UserCreate{Email: "foo@bar.baz", Password: "bar"})
	require.NoError(t, err)

	updated, err := f.service.UpdateUserPassword(ctx, u, "baz")
	require.NoError(t, err)
	require.True(t, f.hasher.Verify("baz", updated.PasswordHash))
	require.False(t, f.hasher.Verify("bar", updated.PasswordHash))

	stored, err := f.service.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, updated.PasswordHash, stored.PasswordHash)
}

func TestDeleteUser(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	_, err := f.service.CreateUser(ctx, users.UserCreate{Email: "foo@bar.baz", Password: "bar"})
	require.NoError(t, err)

	deleted, err := f.service.DeleteUser(ctx, "foo@bar.baz")
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = f.service.DeleteUser(ctx, "foo@bar.baz")
	require.NoError(t, err)
	require.False(t, deleted)

	_, err = f.service.GetUserByEmail(ctx, "foo@bar.baz")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
