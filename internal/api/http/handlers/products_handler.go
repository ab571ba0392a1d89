package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/repository"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// ProductsHandler serves the public catalog plus the admin CRUD
// endpoints.
type ProductsHandler struct {
	service *service.CatalogService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(catalogService *service.CatalogService) *ProductsHandler {
	return &ProductsHandler{service: catalogService}
}

// ListProducts GET /api/products.
func (h *ProductsHandler) ListProducts(c *fiber.Ctx) error {
	filter := parseProductQuery(c)
	products, total, err := h.service.ListProducts(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", dto.ProductListResponse{
		Products: dto.NewProductListResponse(products),
		Total:    total,
	})
}

// GetProduct GET /api/products/:id.
func (h *ProductsHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", dto.NewProductResponse(product))
}

// ListCategories GET /api/products/categories.
func (h *ProductsHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", categories)
}

// CreateProduct POST /api/products.
func (h *ProductsHandler) CreateProduct(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Brand:       req.Brand,
		Stock:       req.Stock,
		Images:      req.Images,
		Features:    req.Features,
	}
	if err := h.service.CreateProduct(c.UserContext(), product); err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Product created successfully", dto.NewProductResponse(product))
}

// UpdateProduct PUT /api/products/:id.
func (h *ProductsHandler) UpdateProduct(c *fiber.Ctx) error {
	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	// Stock -1 means not supplied; the service keeps the stored value.
	patch := &domain.Product{ID: c.Params("id"), Stock: -1}
	if req.Name != nil {
		patch.Name = *req.Name
	}
	if req.Description != nil {
		patch.Description = *req.Description
	}
	if req.Price != nil {
		patch.Price = *req.Price
	}
	if req.Category != nil {
		patch.Category = *req.Category
	}
	if req.Brand != nil {
		patch.Brand = *req.Brand
	}
	if req.Stock != nil {
		patch.Stock = *req.Stock
	}
	patch.Images = req.Images
	patch.Features = req.Features

	product, err := h.service.UpdateProduct(c.UserContext(), patch)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Product updated successfully", dto.NewProductResponse(product))
}

// DeleteProduct DELETE /api/products/:id.
func (h *ProductsHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Product deleted successfully", nil)
}

func parseProductQuery(c *fiber.Ctx) repository.ProductFilter {
	filter := repository.ProductFilter{SortBy: c.Query("sort")}
	filter.Limit, filter.Offset = parsePagination(c)

	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := c.Query("brand"); v != "" {
		filter.Brand = &v
	}
	if v := c.Query("search"); v != "" {
		filter.SearchTerm = &v
	}
	if raw := c.Query("min_price"); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &f
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &f
		}
	}
	return filter
}
