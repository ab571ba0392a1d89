package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/config"
)

const (
	accessCookieName  = "access_token"
	refreshCookieName = "refresh_token"
)

// TokenPair bundles a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// CookieManager binds session tokens to HTTP-only cookies. Tokens never
// appear in response bodies or URLs, which keeps them out of reach of
// page scripts.
type CookieManager struct {
	secure bool
	domain string
}

// NewCookieManager builds a manager from auth configuration.
func NewCookieManager(cfg config.AuthConfig) *CookieManager {
	return &CookieManager{secure: cfg.CookieSecure, domain: cfg.CookieDomain}
}

// Attach places both tokens into cookies with max-age matching each
// token's expiry.
func (cm *CookieManager) Attach(c *fiber.Ctx, pair TokenPair) {
	cm.set(c, accessCookieName, pair.AccessToken, pair.AccessExpiresAt)
	cm.set(c, refreshCookieName, pair.RefreshToken, pair.RefreshExpiresAt)
}

// ReadAccess returns the access token carried by the request, or empty.
func (cm *CookieManager) ReadAccess(c *fiber.Ctx) string {
	return c.Cookies(accessCookieName)
}

// ReadRefresh returns the refresh token carried by the request, or empty.
func (cm *CookieManager) ReadRefresh(c *fiber.Ctx) string {
	return c.Cookies(refreshCookieName)
}

// Clear expires both cookies immediately. Safe to call when no cookies
// are present.
func (cm *CookieManager) Clear(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	cm.set(c, accessCookieName, "", expired)
	cm.set(c, refreshCookieName, "", expired)
}

func (cm *CookieManager) set(c *fiber.Ctx, name, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Expires:  expires,
		Domain:   cm.domain,
		Path:     "/",
		Secure:   cm.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
