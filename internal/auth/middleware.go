package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. Role comes from the
// signed claim, not the freshly loaded record: a role change takes
// effect only after outstanding access tokens expire.
type Principal struct {
	User *domain.User
	Role domain.Role
}

// Middleware resolves identities from transport-held access tokens.
type Middleware struct {
	tokens  *TokenManager
	cookies *CookieManager
	users   repository.UserRepository
}

// NewMiddleware constructs the middleware.
func NewMiddleware(tokens *TokenManager, cookies *CookieManager, users repository.UserRepository) *Middleware {
	return &Middleware{tokens: tokens, cookies: cookies, users: users}
}

// Protect rejects the request with 401 unless a valid access token is
// present and resolves to an existing user.
func (m *Middleware) Protect(c *fiber.Ctx) error {
	token := m.cookies.ReadAccess(c)
	if token == "" {
		return apperrors.NewUnauthorized("Not authorized to access this route")
	}

	claims, err := m.tokens.Parse(token, domain.TokenKindAccess)
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenExpired):
			return apperrors.NewUnauthorized("Access token expired")
		default:
			return apperrors.NewUnauthorized("Invalid access token")
		}
	}

	user, err := m.users.GetByID(c.UserContext(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("Not authorized to access this route")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{User: user, Role: claims.Role})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
