package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lorekeeper/internal/domain"
	"lorekeeper/internal/domain/models"
)

func testVerifier(t *testing.T) (*SupabaseJWTVerifier, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	keyFunc := func(*jwt.Token) (any, error) { return &key.PublicKey, nil }
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewKeyfuncVerifier(keyFunc, logger), key
}

func claimsFor(subject, role string, exp time.Time) *models.SupabaseClaims {
	return &models.SupabaseClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Role:         role,
		Email:        "strahd@barovia.test",
		UserMetadata: map[string]any{"full_name": "Strahd von Zarovich"},
	}
}

func sign(t *testing.T, key *rsa.PrivateKey, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestVerifyToken(t *testing.T) {
	v, key := testVerifier(t)
	future := time.Now().Add(time.Hour)

	t.Run("valid token", func(t *testing.T) {
		claims, err := v.VerifyToken(sign(t, key, claimsFor("user-1", "authenticated", future)))
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.GetUserID())
		assert.Equal(t, "Strahd von Zarovich", claims.DisplayName())
	})

	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	hmacToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claimsFor("user-1", "authenticated", future)).
		SignedString([]byte("shared-secret-shared-secret-1234"))
	require.NoError(t, err)

	rejected := []struct {
		name  string
		token string
	}{
		{"expired", sign(t, key, claimsFor("user-1", "authenticated", time.Now().Add(-time.Minute)))},
		{"anonymous role", sign(t, key, claimsFor("user-1", "anon", future))},
		{"missing subject", sign(t, key, claimsFor("", "authenticated", future))},
		{"missing expiry", sign(t, key, &models.SupabaseClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
			Role:             "authenticated",
		})},
		{"wrong key", sign(t, otherKey, claimsFor("user-1", "authenticated", future))},
		{"hmac algorithm", hmacToken},
		{"garbage", "not.a.token"},
	}

	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := v.VerifyToken(tt.token)
			assert.Nil(t, claims)
			assert.True(t, errors.Is(err, domain.ErrUnauthorized))
		})
	}
}

func TestNewJWTVerifierRequiresURL(t *testing.T) {
	_, err := NewJWTVerifier(t.Context(), "", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
