package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	t.Parallel()

	token, err := IssueToken("s3cret", "field-team", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "field-team", claims.Subject)
	assert.Equal(t, Issuer, claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)

	_, err = ParseToken("other", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejects(t *testing.T) {
	t.Parallel()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    Issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	expiredToken, err := expired.SignedString([]byte("k"))
	require.NoError(t, err)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Issuer: "someone-else"})
	foreignToken, err := foreign.SignedString([]byte("k"))
	require.NoError(t, err)

	noExpiry, err := IssueToken("k", "cli", 0)
	require.NoError(t, err)
	_, err = ParseToken("k", noExpiry)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":        expiredToken,
		"foreign issuer": foreignToken,
		"garbage":        "not.a.token",
	} {
		_, err := ParseToken("k", token)
		assert.ErrorIs(t, err, ErrInvalidToken, name)
	}

	_, err = IssueToken("", "x", 0)
	assert.Error(t, err)
}
