package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/repository"
)

const (
	recentOrderCount     = 5
	topRatedProductCount = 5
)

// AdminHandler serves the dashboard overview.
type AdminHandler struct {
	users    repository.UserRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
}

// NewAdminHandler constructs handler.
func NewAdminHandler(users repository.UserRepository, products repository.ProductRepository, orders repository.OrderRepository) *AdminHandler {
	return &AdminHandler{users: users, products: products, orders: orders}
}

// Stats GET /api/admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userCount, err := h.users.Count(ctx)
	if err != nil {
		return err
	}
	productCount, err := h.products.Count(ctx)
	if err != nil {
		return err
	}
	orderCount, err := h.orders.Count(ctx)
	if err != nil {
		return err
	}
	totalSales, err := h.orders.TotalSales(ctx)
	if err != nil {
		return err
	}
	recent, err := h.orders.Recent(ctx, recentOrderCount)
	if err != nil {
		return err
	}
	topRated, err := h.products.TopRated(ctx, topRatedProductCount)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, "", dto.DashboardStatsResponse{
		TotalUsers:       userCount,
		TotalProducts:    productCount,
		TotalOrders:      orderCount,
		TotalSales:       totalSales,
		RecentOrders:     dto.NewOrderListResponse(recent),
		TopRatedProducts: dto.NewProductListResponse(topRated),
	})
}
