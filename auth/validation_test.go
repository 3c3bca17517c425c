package auth_test

import (
	"testing"

	"github.com/jrsteele09/go-api-skeleton/auth"
	"github.com/jrsteele09/go-api-skeleton/token"
	"github.com/stretchr/testify/require"
)

func TestClaimsValidator(t *testing.T) {
	v := auth.NewClaimsValidator(validScopes)

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, v.Validate(token.Claims{Subject: aliceEmail, Scopes: []string{"users/whoami", "logs/read"}}))
	})

	t.Run("no scopes", func(t *testing.T) {
		require.NoError(t, v.Validate(token.Claims{Subject: aliceEmail}))
	})

	t.Run("missing subject", func(t *testing.T) {
		err := v.Validate(token.Claims{Scopes: []string{"users/whoami"}})
		require.Error(t, err)
		require.Contains(t, err.Error(), "Subject")
	})

	t.Run("subject is not an email", func(t *testing.T) {
		err := v.Validate(token.Claims{Subject: "alice"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "valid email")
	})

	t.Run("unknown scope", func(t *testing.T) {
		err := v.Validate(token.Claims{Subject: aliceEmail, Scopes: []string{"users/whoami", "root"}})
		require.Error(t, err)
		require.Contains(t, err.Error(), "root")
	})
}

func TestValidateCredentials(t *testing.T) {
	require.NoError(t, auth.ValidateCredentials(aliceEmail, testPassword))

	err := auth.ValidateCredentials("", testPassword)
	require.Error(t, err)
	require.Contains(t, err.Error(), "username")

	err = auth.ValidateCredentials(aliceEmail, "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "password")
}
