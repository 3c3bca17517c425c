package errors_test

import (
	"testing"

	apperrors "github.com/jrsteele09/go-api-skeleton/internal/errors"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapf(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		require.NoError(t, apperrors.Wrapf(nil, "lookup %s", "alice"))
	})

	t.Run("keeps the chain", func(t *testing.T) {
		err := apperrors.Wrapf(apperrors.ErrNotFound, "lookup %s", "alice")
		require.True(t, apperrors.Is(err, apperrors.ErrNotFound))
		require.Equal(t, "lookup alice: not found", err.Error())
	})
}

func TestMissingHeaderIsMalformed(t *testing.T) {
	require.True(t, apperrors.Is(apperrors.ErrMissingHeader, apperrors.ErrMalformedHeader))
	require.False(t, apperrors.Is(apperrors.ErrMalformedHeader, apperrors.ErrMissingHeader))
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"bare kind", apperrors.ErrInvalidInput, "invalid input"},
		{"wrapped once", errors.Wrap(apperrors.ErrInvalidInput, "password is required"), "password is required"},
		{"caller context dropped", errors.Wrap(errors.Wrap(apperrors.ErrInvalidInput, "email: must be a valid email address."), "Service.CreateUser"), "email: must be a valid email address."},
		{"fmt wrapping", apperrors.Wrapf(apperrors.ErrInvalidInput, "scope %q", "root"), `scope "root"`},
		{"kind absent", errors.New("boom"), "invalid input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, apperrors.Message(tt.err, apperrors.ErrInvalidInput))
		})
	}
}
