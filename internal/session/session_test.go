package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestFromToken(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		token := signToken(t, Claims{
			UserID: 7,
			Email:  "customer@refnet.test",
			Role:   "user",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})

		s, err := FromToken(token)
		require.NoError(t, err)
		assert.Equal(t, "customer@refnet.test", s.Email)
		assert.Equal(t, token, s.Token)
		assert.True(t, s.SignedIn())
	})

	t.Run("MissingEmail", func(t *testing.T) {
		token := signToken(t, Claims{UserID: 7})

		_, err := FromToken(token)
		assert.ErrorIs(t, err, ErrNoIdentity)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := FromToken("not-a-jwt")
		assert.Error(t, err)
	})
}

func TestZeroSession(t *testing.T) {
	assert.False(t, Session{}.SignedIn())
}

func TestContextRoundTrip(t *testing.T) {
	s := Session{Email: "customer@refnet.test", Token: "tok"}
	ctx := NewContext(context.Background(), s)

	got, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, s, got)

	_, ok = FromContext(context.Background())
	assert.False(t, ok)
}
