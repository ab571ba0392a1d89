package domain

import "time"

// Product is the catalog entry for a sellable item.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Category    string
	Images      []string
	Stock       int
	Rating      float64
	NumReviews  int
	Features    []string
	Brand       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
