package dto

import (
	"time"

	"github.com/spec-kit/shop-service/internal/domain"
)

// ProductResponse is the public view of a catalog entry.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Brand       string    `json:"brand,omitempty"`
	Stock       int       `json:"stock"`
	Rating      float64   `json:"rating"`
	NumReviews  int       `json:"num_reviews"`
	Images      []string  `json:"images,omitempty"`
	Features    []string  `json:"features,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Brand:       product.Brand,
		Stock:       product.Stock,
		Rating:      product.Rating,
		NumReviews:  product.NumReviews,
		Images:      product.Images,
		Features:    product.Features,
		CreatedAt:   product.CreatedAt,
	}
}

func NewProductListResponse(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, NewProductResponse(&products[i]))
	}
	return out
}

// ProductListResponse is the paginated catalog listing.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
}
