package users_test

import (
	"strings"
	"testing"

	apperrors "github.com/jrsteele09/go-api-skeleton/internal/errors"
	"github.com/jrsteele09/go-api-skeleton/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newHasher(t *testing.T) *users.Hasher {
	t.Helper()
	h, err := users.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestNewHasher_CostRange(t *testing.T) {
	_, err := users.NewHasher(bcrypt.MinCost - 1)
	require.ErrorIs(t, err, apperrors.ErrInvalidConfig)

	_, err = users.NewHasher(bcrypt.MaxCost + 1)
	require.ErrorIs(t, err, apperrors.ErrInvalidConfig)
}

func TestHasher_HashAndVerify(t *testing.T) {
	h := newHasher(t)

	hash, err := h.Hash("bar")
	require.NoError(t, err)
	require.NotEqual(t, "bar", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, h.Cost(), cost)

	require.True(t, h.Verify("bar", hash))
	require.False(t, h.Verify("baz", hash))
	require.False(t, h.Verify("", hash))
}

func TestHasher_FreshSaltPerCall(t *testing.T) {
	h := newHasher(t)

	first, err := h.Hash("bar")
	require.NoError(t, err)
	second, err := h.Hash("bar")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.True(t, h.Verify("bar", first))
	require.True(t, h.Verify("bar", second))
}

func TestHasher_MalformedHashNeverMatches(t *testing.T) {
	h := newHasher(t)

	for _, hash := range []string{"", "not-a-hash", "$2a$04$short", "5f4dcc3b5aa765d61d8327deb882cf99"} {
		require.False(t, h.Verify("bar", hash), hash)
	}
}

func TestHasher_RejectsEmptyPassword(t *testing.T) {
	_, err := newHasher(t).Hash("")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestHasher_DummyVerify(t *testing.T) {
	require.NotPanics(t, newHasher(t).DummyVerify)
}

func TestHasher_LongPasswords(t *testing.T) {
	h := newHasher(t)

	long := strings.Repeat("a", 80)
	hash, err := h.Hash(long)
	require.NoError(t, err)
	require.True(t, h.Verify(long, hash))

	// Bytes past the 72nd still matter.
	require.False(t, h.Verify(strings.Repeat("a", 72)+"bbbbbbbb", hash))
	require.False(t, h.Verify(strings.Repeat("a", 72), hash))

	atLimit := strings.Repeat("x", 72)
	hash, err = h.Hash(atLimit)
	require.NoError(t, err)
	require.True(t, h.Verify(atLimit, hash))
}
