package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// CatalogService handles product catalog reads and admin edits.
type CatalogService struct {
	products repository.ProductRepository
}

// NewCatalogService builds the service.
func NewCatalogService(products repository.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

// ListProducts returns a filtered catalog page plus the total match count.
func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.products.List(ctx, filter)
}

// GetProduct loads a single product.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Product")
		}
		return nil, err
	}
	return product, nil
}

// ListCategories returns the distinct categories in the catalog.
func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	return s.products.ListCategories(ctx)
}

// CreateProduct adds a catalog entry.
func (s *CatalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if product.Name == "" || product.Description == "" || product.Category == "" {
		return apperrors.NewValidationError("name, description and category are required", nil)
	}
	if product.Price < 0 {
		return apperrors.NewValidationError("price cannot be negative", nil)
	}
	if product.Stock < 0 {
		return apperrors.NewValidationError("stock cannot be negative", nil)
	}
	return s.products.Create(ctx, product)
}

// UpdateProduct replaces the mutable fields of a catalog entry.
func (s *CatalogService) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	existing, err := s.GetProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	if product.Name != "" {
		existing.Name = product.Name
	}
	if product.Description != "" {
		existing.Description = product.Description
	}
	if product.Price > 0 {
		existing.Price = product.Price
	}
	if product.Category != "" {
		existing.Category = product.Category
	}
	if len(product.Images) > 0 {
		existing.Images = append(existing.Images, product.Images...)
	}
	if product.Stock >= 0 {
		existing.Stock = product.Stock
	}
	if len(product.Features) > 0 {
		existing.Features = product.Features
	}
	if product.Brand != "" {
		existing.Brand = product.Brand
	}

	if err := s.products.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteProduct removes a catalog entry.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Product")
		}
		return err
	}
	return nil
}
