package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shop-service/internal/config"
)

func testCookieManager() *CookieManager {
	return NewCookieManager(config.AuthConfig{CookieSecure: true})
}

func findCookie(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestCookieManagerAttach(t *testing.T) {
	cm := testCookieManager()

	app := fiber.New()
	app.Post("/login", func(c *fiber.Ctx) error {
		cm.Attach(c, TokenPair{
			AccessToken:      "access-value",
			AccessExpiresAt:  time.Now().Add(15 * time.Minute),
			RefreshToken:     "refresh-value",
			RefreshExpiresAt: time.Now().Add(7 * 24 * time.Hour),
		})
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)

	access := findCookie(t, resp, "access_token")
	require.NotNil(t, access)
	assert.Equal(t, "access-value", access.Value)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)

	refresh := findCookie(t, resp, "refresh_token")
	require.NotNil(t, refresh)
	assert.Equal(t, "refresh-value", refresh.Value)
	assert.True(t, refresh.HttpOnly)
}

func TestCookieManagerRead(t *testing.T) {
	cm := testCookieManager()

	var gotAccess, gotRefresh string
	app := fiber.New()
	app.Get("/read", func(c *fiber.Ctx) error {
		gotAccess = cm.ReadAccess(c)
		gotRefresh = cm.ReadRefresh(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/read", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "access-value"})
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "refresh-value"})

	_, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "access-value", gotAccess)
	assert.Equal(t, "refresh-value", gotRefresh)
}

func TestCookieManagerReadMissing(t *testing.T) {
	cm := testCookieManager()

	var gotAccess string
	app := fiber.New()
	app.Get("/read", func(c *fiber.Ctx) error {
		gotAccess = cm.ReadAccess(c)
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/read", nil))
	require.NoError(t, err)
	assert.Empty(t, gotAccess)
}

func TestCookieManagerClear(t *testing.T) {
	cm := testCookieManager()

	app := fiber.New()
	app.Post("/logout", func(c *fiber.Ctx) error {
		cm.Clear(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.NoError(t, err)

	for _, name := range []string{"access_token", "refresh_token"} {
		cookie := findCookie(t, resp, name)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
		assert.True(t, cookie.Expires.Before(time.Now()))
	}
}
