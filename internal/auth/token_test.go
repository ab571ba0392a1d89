package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shop-service/internal/config"
	"github.com/spec-kit/shop-service/internal/domain"
)

func testTokenConfig() config.AuthConfig {
	return config.AuthConfig{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    7 * 24 * time.Hour,
	}
}

func TestNewTokenManagerRejectsSharedSecret(t *testing.T) {
	cfg := testTokenConfig()
	cfg.RefreshTokenSecret = cfg.AccessTokenSecret

	_, err := NewTokenManager(cfg)
	assert.Error(t, err)
}

func TestNewTokenManagerRejectsEmptySecret(t *testing.T) {
	cfg := testTokenConfig()
	cfg.AccessTokenSecret = ""

	_, err := NewTokenManager(cfg)
	assert.Error(t, err)
}

func TestTokenRoundtrip(t *testing.T) {
	tm, err := NewTokenManager(testTokenConfig())
	require.NoError(t, err)

	for _, kind := range []domain.TokenKind{domain.TokenKindAccess, domain.TokenKindRefresh} {
		signed, expiresAt, err := tm.Issue("user-1", domain.RoleAdmin, kind)
		require.NoError(t, err)
		assert.True(t, expiresAt.After(time.Now()))

		claims, err := tm.Parse(signed, kind)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, domain.RoleAdmin, claims.Role)
		assert.Equal(t, kind, claims.Kind)
	}
}

func TestTokenCrossKindRejected(t *testing.T) {
	tm, err := NewTokenManager(testTokenConfig())
	require.NoError(t, err)

	access, _, err := tm.Issue("user-1", domain.RoleUser, domain.TokenKindAccess)
	require.NoError(t, err)
	refresh, _, err := tm.Issue("user-1", domain.RoleUser, domain.TokenKindRefresh)
	require.NoError(t, err)

	_, err = tm.Parse(access, domain.TokenKindRefresh)
	assert.Error(t, err)
	_, err = tm.Parse(refresh, domain.TokenKindAccess)
	assert.Error(t, err)
}

func TestTokenExpiredMapsToSentinel(t *testing.T) {
	tm, err := NewTokenManager(testTokenConfig())
	require.NoError(t, err)

	claims := &Claims{
		UserID: "user-1",
		Role:   domain.RoleUser,
		Kind:   domain.TokenKindAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("access-secret"))
	require.NoError(t, err)

	_, err = tm.Parse(signed, domain.TokenKindAccess)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenExpiredWithinLeewayAccepted(t *testing.T) {
	cfg := testTokenConfig()
	cfg.ClockSkewLeeway = 2 * time.Hour
	tm, err := NewTokenManager(cfg)
	require.NoError(t, err)

	claims := &Claims{
		UserID: "user-1",
		Role:   domain.RoleUser,
		Kind:   domain.TokenKindAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("access-secret"))
	require.NoError(t, err)

	parsed, err := tm.Parse(signed, domain.TokenKindAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", parsed.UserID)
}

func TestTokenTamperedSignatureRejected(t *testing.T) {
	tm, err := NewTokenManager(testTokenConfig())
	require.NoError(t, err)

	signed, _, err := tm.Issue("user-1", domain.RoleUser, domain.TokenKindAccess)
	require.NoError(t, err)

	tampered := signed + "x"
	_, err = tm.Parse(tampered, domain.TokenKindAccess)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenGarbageRejected(t *testing.T) {
	tm, err := NewTokenManager(testTokenConfig())
	require.NoError(t, err)

	_, err = tm.Parse("not-a-jwt", domain.TokenKindAccess)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
