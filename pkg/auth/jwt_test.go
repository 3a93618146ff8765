package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = "5c8a1d5b0190b214360dc057"

func TestJWTManager_GenerateToken(t *testing.T) {
	manager := NewJWTManager("my-ultra-secure-and-ultra-long-secret", 90*24*time.Hour)

	t.Run("generates three-part token", func(t *testing.T) {
		token, err := manager.GenerateToken(testUserID)

		require.NoError(t, err)
		assert.Regexp(t, `^[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+$`, token)
	})

	t.Run("round trips the user id", func(t *testing.T) {
		token, _ := manager.GenerateToken(testUserID)

		claims, err := manager.ValidateToken(token)

		require.NoError(t, err)
		assert.Equal(t, testUserID, claims.ID)
	})

	t.Run("sets issued at and expiry", func(t *testing.T) {
		before := time.Now()
		token, _ := manager.GenerateToken(testUserID)

		claims, err := manager.ValidateToken(token)

		require.NoError(t, err)
		assert.WithinDuration(t, before, claims.IssuedAtTime(), 2*time.Second)
		assert.WithinDuration(t, before.Add(90*24*time.Hour), claims.ExpiresAt.Time, 2*time.Second)
	})
}

func TestJWTManager_ValidateToken(t *testing.T) {
	manager := NewJWTManager("secret-one", 15*time.Minute)

	t.Run("rejects expired token", func(t *testing.T) {
		expired := NewJWTManager("secret-one", -time.Minute)
		token, _ := expired.GenerateToken(testUserID)

		claims, err := manager.ValidateToken(token)

		assert.Nil(t, claims)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := NewJWTManager("secret-two", 15*time.Minute)
		token, _ := other.GenerateToken(testUserID)

		claims, err := manager.ValidateToken(token)

		assert.Nil(t, claims)
		assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("rejects unexpected signing method", func(t *testing.T) {
		claims := &Claims{ID: testUserID}
		token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
		signed, err := token.SignedString([]byte("secret-one"))
		require.NoError(t, err)

		got, err := manager.ValidateToken(signed)

		assert.Nil(t, got)
		assert.Error(t, err)
	})

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.valid.token"},
		{"missing signature", "eyJhbGciOiJIUzI1NiJ9.eyJpZCI6IjEifQ"},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name+" token", func(t *testing.T) {
			claims, err := manager.ValidateToken(tt.token)

			assert.Nil(t, claims)
			assert.Error(t, err)
		})
	}
}

func TestJWTManager_MaxAge(t *testing.T) {
	manager := NewJWTManager("secret", 2*time.Hour)

	assert.Equal(t, 7200, manager.MaxAge())
}

func TestClaims_IssuedAtTime(t *testing.T) {
	t.Run("zero when claim missing", func(t *testing.T) {
		claims := &Claims{}

		assert.True(t, claims.IssuedAtTime().IsZero())
	})

	t.Run("returns claim value", func(t *testing.T) {
		at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(at)}}

		assert.True(t, at.Equal(claims.IssuedAtTime()))
	})
}

func BenchmarkJWTManager_ValidateToken(b *testing.B) {
	manager := NewJWTManager("benchmarksecret", 15*time.Minute)
	token, _ := manager.GenerateToken(testUserID)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = manager.ValidateToken(token)
	}
}
