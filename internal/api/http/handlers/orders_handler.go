package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// OrdersHandler manages checkout and order tracking endpoints.
type OrdersHandler struct {
	service *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{service: orderService}
}

// CreateOrder POST /api/orders. Builds the order from the caller's
// cart.
func (h *OrdersHandler) CreateOrder(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Not authorized to access this route")
	}
	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ShippingAddress.Street == "" || req.ShippingAddress.City == "" {
		return apperrors.NewValidationError("shipping_address required", nil)
	}
	if req.PaymentMethod == "" {
		return apperrors.NewValidationError("payment_method required", nil)
	}

	order, err := h.service.CreateOrder(c.UserContext(), principal.User.ID, req.ShippingAddress.ToDomain(), req.PaymentMethod)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Order placed successfully", dto.NewOrderResponse(order))
}

// ListOrders GET /api/orders. The caller's own orders only.
func (h *OrdersHandler) ListOrders(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Not authorized to access this route")
	}
	orders, err := h.service.ListOrders(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", dto.NewOrderListResponse(orders))
}

// GetOrder GET /api/orders/:id. Owner or admin.
func (h *OrdersHandler) GetOrder(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Not authorized to access this route")
	}
	order, err := h.service.GetOrder(c.UserContext(), c.Params("id"), principal.User.ID, principal.Role)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", dto.NewOrderResponse(order))
}

// ListAllOrders GET /api/orders/admin/all.
func (h *OrdersHandler) ListAllOrders(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	orders, total, totalSales, err := h.service.ListAllOrders(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", dto.OrderListResponse{
		Orders:     dto.NewOrderListResponse(orders),
		Total:      total,
		TotalSales: totalSales,
	})
}

// UpdateStatus PUT /api/orders/:id/status.
func (h *OrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	order, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Order status updated", dto.NewOrderResponse(order))
}
