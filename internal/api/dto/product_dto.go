package dto

// CreateProductRequest payload for new catalog entries.
type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Brand       string   `json:"brand"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
	Features    []string `json:"features"`
}

// UpdateProductRequest carries partial updates. Nil means keep.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Brand       *string  `json:"brand"`
	Stock       *int     `json:"stock"`
	Images      []string `json:"images"`
	Features    []string `json:"features"`
}
