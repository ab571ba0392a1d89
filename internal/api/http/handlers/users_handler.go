package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// UsersHandler manages profile and account-administration endpoints.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// GetProfile GET /api/users/profile.
func (h *UsersHandler) GetProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Not authorized to access this route")
	}
	user, err := h.service.GetProfile(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", dto.NewUserResponse(user))
}

// UpdateProfile PUT /api/users/profile.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Not authorized to access this route")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.service.UpdateProfile(c.UserContext(), principal.User.ID,
		strValue(req.Name), strValue(req.Email), strValue(req.Phone))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Profile updated successfully", dto.NewUserResponse(user))
}

// UpsertAddress PUT /api/users/address.
func (h *UsersHandler) UpsertAddress(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Not authorized to access this route")
	}
	var req dto.UpsertAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Street == "" || req.City == "" || req.ZipCode == "" {
		return apperrors.NewValidationError("street, city, zip_code required", nil)
	}

	addresses, err := h.service.UpsertAddress(c.UserContext(), principal.User.ID, req.ToDomain())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Address saved", addresses)
}

// ListUsers GET /api/users/admin/all.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	var role *domain.Role
	if raw := c.Query("role"); raw != "" {
		r := domain.Role(raw)
		if !r.Valid() {
			return apperrors.NewValidationError("unknown role filter", nil)
		}
		role = &r
	}
	limit, offset := parsePagination(c)

	users, err := h.service.ListUsers(c.UserContext(), role, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return respond(c, fiber.StatusOK, "", dto.UserListResponse{Users: items, Total: len(items)})
}

// UpdateRole PUT /api/users/:id/role. The target's live sessions keep
// their old role until the access token expires.
func (h *UsersHandler) UpdateRole(c *fiber.Ctx) error {
	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.service.UpdateRole(c.UserContext(), c.Params("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Role updated successfully", dto.NewUserResponse(user))
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func parsePagination(c *fiber.Ctx) (limit, offset int) {
	limit = 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
