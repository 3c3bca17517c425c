package token_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-api-skeleton/token"
	"github.com/stretchr/testify/require"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", "aaa.bbb.ccc", false},
		{"surrounding space", "  aaa.bbb.ccc ", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"two parts", "aaa.bbb", true},
		{"four parts", "a.b.c.d", true},
		{"empty signature", "aaa.bbb.", true},
		{"empty header", ".bbb.ccc", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := token.ValidateFormat(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestToAccessToken(t *testing.T) {
	at, err := token.ToAccessToken("aaa.bbb.ccc", 90*time.Second)
	require.NoError(t, err)
	require.Equal(t, &token.AccessToken{AccessToken: "aaa.bbb.ccc", TokenType: "bearer", ExpiresIn: 90}, at)

	_, err = token.ToAccessToken("aaa", time.Minute)
	require.Error(t, err)
}
