package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// AuthHandler exposes the credential and session lifecycle endpoints.
// Tokens travel only in cookies, never in response bodies.
type AuthHandler struct {
	service *service.AuthService
	cookies *auth.CookieManager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookies *auth.CookieManager) *AuthHandler {
	return &AuthHandler{service: authService, cookies: cookies}
}

// Register POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	user, pair, err := h.service.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	h.cookies.Attach(c, pair)
	return respond(c, fiber.StatusCreated, "User registered successfully", dto.NewUserResponse(user))
}

// Login POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email, password required", nil)
	}

	user, pair, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	h.cookies.Attach(c, pair)
	return respond(c, fiber.StatusOK, "Logged in successfully", dto.NewUserResponse(user))
}

// Logout POST /api/auth/logout. Idempotent; clearing cookies is the
// whole operation.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.cookies.Clear(c)
	return respond(c, fiber.StatusOK, "Logged out successfully", nil)
}

// Refresh POST /api/auth/refresh. Every successful call rotates both
// tokens.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	pair, err := h.service.Refresh(c.UserContext(), h.cookies.ReadRefresh(c))
	if err != nil {
		return err
	}
	h.cookies.Attach(c, pair)
	return respond(c, fiber.StatusOK, "Token refreshed", nil)
}

// ForgotPassword POST /api/auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	if err := h.service.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Email sent", nil)
}

// ResetPassword POST /api/auth/reset-password/:token.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Password == "" {
		return apperrors.NewValidationError("password required", nil)
	}

	if err := h.service.ResetPassword(c.UserContext(), c.Params("token"), req.Password); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Password reset successful", nil)
}

// UpdatePassword PUT /api/auth/update-password.
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Not authorized to access this route")
	}
	var req dto.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("current_password, new_password required", nil)
	}

	if err := h.service.UpdatePassword(c.UserContext(), principal.User.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Password updated successfully", nil)
}

// VerifyEmail GET /api/auth/verify-email/:token.
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	if err := h.service.VerifyEmail(c.UserContext(), c.Params("token")); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Email verified successfully", nil)
}
