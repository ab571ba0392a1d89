package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/domain"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// RequireAdmin gates admin-only routes. Usable only after Protect has
// resolved a principal.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Not authorized to access this route")
		}
		if principal.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("Not authorized as admin")
		}
		return c.Next()
	}
}
