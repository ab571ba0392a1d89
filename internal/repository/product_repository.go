package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shop-service/internal/domain"
)

// ProductFilter captures catalog search parameters.
type ProductFilter struct {
	Category   *string
	Brand      *string
	MinPrice   *float64
	MaxPrice   *float64
	SearchTerm *string
	SortBy     string
	Limit      int
	Offset     int
}

// ProductRepository encapsulates catalog persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int64, error)
	ListCategories(ctx context.Context) ([]string, error)
	TopRated(ctx context.Context, limit int) ([]domain.Product, error)
	AdjustStock(ctx context.Context, id string, delta int) error
	SetRating(ctx context.Context, id string, rating float64, numReviews int) error
	Count(ctx context.Context) (int64, error)
}

type productRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository instantiates repository.
func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = `id, name, description, price, category, images, stock, rating, num_reviews, features, brand, created_at, updated_at`

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	const query = `
        INSERT INTO products (name, description, price, category, images, stock, features, brand)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.Category,
		product.Images,
		product.Stock,
		product.Features,
		product.Brand,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	const query = `
        UPDATE products SET name=$1, description=$2, price=$3, category=$4, images=$5,
            stock=$6, features=$7, brand=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.Category,
		product.Images,
		product.Stock,
		product.Features,
		product.Brand,
		product.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	var product domain.Product
	if err := r.pool.QueryRow(ctx, query, id).Scan(scanTargets(&product)...); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]domain.Product, int64, error) {
	conditions := []string{}
	args := []any{}

	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.Category != nil {
		addCondition("category=$%d", *filter.Category)
	}
	if filter.Brand != nil {
		addCondition("brand=$%d", *filter.Brand)
	}
	if filter.MinPrice != nil {
		addCondition("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		addCondition("price <= $%d", *filter.MaxPrice)
	}
	if filter.SearchTerm != nil {
		args = append(args, "%"+*filter.SearchTerm+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", n, n))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := " ORDER BY created_at DESC"
	switch filter.SortBy {
	case "price":
		orderBy = " ORDER BY price ASC"
	case "-price":
		orderBy = " ORDER BY price DESC"
	case "rating":
		orderBy = " ORDER BY rating DESC"
	case "name":
		orderBy = " ORDER BY name ASC"
	}

	query := `SELECT ` + productColumns + ` FROM products` + where + orderBy
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *productRepository) TopRated(ctx context.Context, limit int) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY rating DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

// AdjustStock applies a relative stock change, refusing to go negative.
func (r *productRepository) AdjustStock(ctx context.Context, id string, delta int) error {
	const query = `
        UPDATE products SET stock = stock + $1, updated_at=NOW()
        WHERE id=$2 AND stock + $1 >= 0`
	cmd, err := r.pool.Exec(ctx, query, delta, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *productRepository) SetRating(ctx context.Context, id string, rating float64, numReviews int) error {
	const query = `
        UPDATE products SET rating=$1, num_reviews=$2, updated_at=NOW()
        WHERE id=$3`
	_, err := r.pool.Exec(ctx, query, rating, numReviews, id)
	return err
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}

func scanTargets(p *domain.Product) []any {
	return []any{
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.Images,
		&p.Stock,
		&p.Rating,
		&p.NumReviews,
		&p.Features,
		&p.Brand,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(scanTargets(&product)...); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
