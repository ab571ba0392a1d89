package domain

import "time"

// Review is a customer rating for a product. A user may review a
// product at most once.
type Review struct {
	ID         string
	UserID     string
	ProductID  string
	AuthorName string
	Rating     int
	Comment    string
	Images     []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
