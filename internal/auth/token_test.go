package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/libry/internal/auth"
)

func TestTokens_RoundTrip(t *testing.T) {
	tokens := auth.NewTokens("s3cret", time.Hour)

	raw, err := tokens.Issue("librarian")
	require.NoError(t, err)

	claims, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "librarian", claims.Subject)
	assert.Equal(t, "libry", claims.Issuer)
}

func TestTokens_Rejects(t *testing.T) {
	tokens := auth.NewTokens("s3cret", time.Hour)

	other, err := auth.NewTokens("other", time.Hour).Issue("librarian")
	require.NoError(t, err)

	expired, err := auth.NewTokens("s3cret", -time.Minute).Issue("librarian")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Issuer: "libry"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"WrongSecret": other,
		"Expired":     expired,
		"Unsigned":    none,
		"Garbage":     "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.Parse(raw)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}
