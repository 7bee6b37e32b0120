package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/expenseflow/internal/models"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	user := models.NewUser("alice@example.com", "Alice", "")

	token, err := m.Generate(user)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID())
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "expenseflow", claims.Issuer)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("secret", time.Minute)
	issued := time.Now()
	m.now = func() time.Time { return issued }

	token, err := m.Generate(models.NewUser("a@example.com", "A", ""))
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	now := time.Now()

	sign := func(method jwt.SigningMethod, key any, claims *Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	claims := func(subject, iss string) *Claims {
		return &Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    iss,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}}
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", sign(jwt.SigningMethodHS256, []byte("other"), claims("u1", issuer))},
		{"wrong issuer", sign(jwt.SigningMethodHS256, []byte("secret"), claims("u1", "someone-else"))},
		{"no subject", sign(jwt.SigningMethodHS256, []byte("secret"), claims("", issuer))},
		{"other method", sign(jwt.SigningMethodHS512, []byte("secret"), claims("u1", issuer))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Validate(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
