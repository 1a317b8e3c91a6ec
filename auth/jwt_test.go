package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestAccessToken(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		token, err := GenerateAccessToken("alice", secret, time.Hour)
		require.NoError(t, err)
		claims, err := ValidateAccessToken(token, secret)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.UserId)
		assert.Equal(t, ISSUER, claims.Issuer)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, err := GenerateAccessToken("alice", secret, time.Hour)
		require.NoError(t, err)
		_, err = ValidateAccessToken(token, "other")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		token, err := GenerateAccessToken("alice", secret, -time.Minute)
		require.NoError(t, err)
		_, err = ValidateAccessToken(token, secret)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("ForeignIssuer", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
			UserId:           "alice",
			RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else"},
		})
		signed, err := token.SignedString([]byte(secret))
		require.NoError(t, err)
		_, err = ValidateAccessToken(signed, secret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("RequiresUserAndSecret", func(t *testing.T) {
		_, err := GenerateAccessToken(" ", secret, time.Hour)
		assert.Error(t, err)
		_, err = GenerateAccessToken("alice", "", time.Hour)
		assert.Error(t, err)
	})
}

func TestBearerToken(t *testing.T) {
	token, err := BearerToken("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	token, err = BearerToken("bearer   xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)

	_, err = BearerToken("")
	assert.ErrorIs(t, err, ErrMissingToken)
	_, err = BearerToken("Basic abc")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = BearerToken("Bearer")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
