package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/shop-service/internal/config"
	"github.com/spec-kit/shop-service/internal/domain"
)

var (
	// ErrTokenExpired is returned for a well-signed token past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for malformed tokens and bad signatures.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenWrongKind is returned when a token of one kind is presented
	// where the other kind is expected.
	ErrTokenWrongKind = errors.New("wrong token kind")
)

// Claims describes the signed JWT payload.
type Claims struct {
	UserID string           `json:"uid"`
	Role   domain.Role      `json:"role"`
	Kind   domain.TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies access and refresh tokens. The two
// kinds are signed with distinct secrets so each can be rotated without
// voiding the other, and a compromised access secret cannot mint
// refresh tokens.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	leeway        time.Duration
}

// NewTokenManager builds a manager from auth configuration.
func NewTokenManager(cfg config.AuthConfig) (*TokenManager, error) {
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return nil, errors.New("token secrets must not be empty")
	}
	if cfg.AccessTokenSecret == cfg.RefreshTokenSecret {
		return nil, errors.New("access and refresh token secrets must differ")
	}
	accessTTL := cfg.AccessTokenTTL
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	refreshTTL := cfg.RefreshTokenTTL
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		leeway:        cfg.ClockSkewLeeway,
	}, nil
}

// AccessTTL reports the access token lifetime.
func (tm *TokenManager) AccessTTL() time.Duration { return tm.accessTTL }

// RefreshTTL reports the refresh token lifetime.
func (tm *TokenManager) RefreshTTL() time.Duration { return tm.refreshTTL }

// Issue signs a token of the given kind for the user. The kind selects
// both the secret and the TTL.
func (tm *TokenManager) Issue(userID string, role domain.Role, kind domain.TokenKind) (string, time.Time, error) {
	secret, ttl, err := tm.material(kind)
	if err != nil {
		return "", time.Time{}, err
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		UserID: userID,
		Role:   role,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			// Unique ID so two tokens minted within the same second
			// still differ.
			ID:        uuid.NewString(),
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse validates signature, expiry and kind. Cross-kind presentation
// fails even when the signature would verify, because each kind has its
// own secret; the kind claim is checked as well in case secrets are
// ever misconfigured to the same value upstream.
func (tm *TokenManager) Parse(tokenStr string, expectedKind domain.TokenKind) (*Claims, error) {
	secret, _, err := tm.material(expectedKind)
	if err != nil {
		return nil, err
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if tm.leeway > 0 {
		options = append(options, jwt.WithLeeway(tm.leeway))
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, options...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Kind != expectedKind {
		return nil, ErrTokenWrongKind
	}
	return claims, nil
}

func (tm *TokenManager) material(kind domain.TokenKind) ([]byte, time.Duration, error) {
	switch kind {
	case domain.TokenKindAccess:
		return tm.accessSecret, tm.accessTTL, nil
	case domain.TokenKindRefresh:
		return tm.refreshSecret, tm.refreshTTL, nil
	default:
		return nil, 0, ErrTokenWrongKind
	}
}
