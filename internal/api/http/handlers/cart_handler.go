package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// CartHandler manages the authenticated user's shopping cart.
type CartHandler struct {
	service *service.CartService
}

// NewCartHandler constructs handler.
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{service: cartService}
}

// GetCart GET /api/cart.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Not authorized to access this route")
	}
	cart, err := h.service.GetCart(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", dto.NewCartResponse(cart))
}

// AddItem POST /api/cart.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Not authorized to access this route")
	}
	var req dto.AddCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ProductID == "" || req.Quantity <= 0 {
		return apperrors.NewValidationError("product_id and a positive quantity required", nil)
	}

	cart, err := h.service.AddItem(c.UserContext(), principal.User.ID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Item added to cart", dto.NewCartResponse(cart))
}

// UpdateItem PUT /api/cart/:itemId.
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Not authorized to access this route")
	}
	var req dto.UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Quantity <= 0 {
		return apperrors.NewValidationError("a positive quantity required", nil)
	}

	cart, err := h.service.UpdateItem(c.UserContext(), principal.User.ID, c.Params("itemId"), req.Quantity)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Cart item updated", dto.NewCartResponse(cart))
}

// RemoveItem DELETE /api/cart/:itemId.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Not authorized to access this route")
	}
	cart, err := h.service.RemoveItem(c.UserContext(), principal.User.ID, c.Params("itemId"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Item removed from cart", dto.NewCartResponse(cart))
}

// ClearCart DELETE /api/cart.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Not authorized to access this route")
	}
	if err := h.service.ClearCart(c.UserContext(), principal.User.ID); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Cart cleared", nil)
}
