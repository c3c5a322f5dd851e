package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, h.Check(hash, "correct horse"))
	assert.False(t, h.Check(hash, "wrong horse"))
	assert.False(t, h.Check("not-a-hash", "correct horse"))

	_, err = h.Hash(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestNewPasswordHasher_CostFallback(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(99).cost)
	assert.Equal(t, 12, NewPasswordHasher(12).cost)
}

func TestTokenManager(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	t.Run("round trip", func(t *testing.T) {
		token, claims, err := m.Generate("u1", "a@b.co", "admin")
		require.NoError(t, err)
		assert.NotEmpty(t, claims.ID)

		parsed, err := m.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "u1", parsed.UserID)
		assert.Equal(t, "admin", parsed.Role)
		assert.Equal(t, claims.ID, parsed.ID)
	})

	t.Run("unique token ids", func(t *testing.T) {
		_, c1, err := m.Generate("u1", "a@b.co", "user")
		require.NoError(t, err)
		_, c2, err := m.Generate("u1", "a@b.co", "user")
		require.NoError(t, err)
		assert.NotEqual(t, c1.ID, c2.ID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, _, err := NewTokenManager("other", time.Hour).Generate("u1", "a@b.co", "user")
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewTokenManager("secret", time.Minute)
		past.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, _, err := past.Generate("u1", "a@b.co", "user")
		require.NoError(t, err)

		_, err = m.Parse(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.Parse(unsigned)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
