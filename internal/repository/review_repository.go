package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shop-service/internal/domain"
)

// ReviewRepository encapsulates review persistence.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	GetByUserAndProduct(ctx context.Context, userID, productID string) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
	RatingSummary(ctx context.Context, productID string) (avg float64, count int, err error)
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository instantiates repository.
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	const query = `
        INSERT INTO reviews (user_id, product_id, rating, comment, images)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		review.UserID,
		review.ProductID,
		review.Rating,
		review.Comment,
		review.Images,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
}

func (r *reviewRepository) Update(ctx context.Context, review *domain.Review) error {
	const query = `
        UPDATE reviews SET rating=$1, comment=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, review.Rating, review.Comment, review.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	const query = `
        SELECT r.id, r.user_id, r.product_id, u.name, r.rating, r.comment, r.images, r.created_at, r.updated_at
        FROM reviews r JOIN users u ON u.id = r.user_id
        WHERE r.id=$1`
	var review domain.Review
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.UserID,
		&review.ProductID,
		&review.AuthorName,
		&review.Rating,
		&review.Comment,
		&review.Images,
		&review.CreatedAt,
		&review.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetByUserAndProduct(ctx context.Context, userID, productID string) (*domain.Review, error) {
	const query = `
        SELECT r.id, r.user_id, r.product_id, u.name, r.rating, r.comment, r.images, r.created_at, r.updated_at
        FROM reviews r JOIN users u ON u.id = r.user_id
        WHERE r.user_id=$1 AND r.product_id=$2`
	var review domain.Review
	if err := r.pool.QueryRow(ctx, query, userID, productID).Scan(
		&review.ID,
		&review.UserID,
		&review.ProductID,
		&review.AuthorName,
		&review.Rating,
		&review.Comment,
		&review.Images,
		&review.CreatedAt,
		&review.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	const query = `
        SELECT r.id, r.user_id, r.product_id, u.name, r.rating, r.comment, r.images, r.created_at, r.updated_at
        FROM reviews r JOIN users u ON u.id = r.user_id
        WHERE r.product_id=$1
        ORDER BY r.created_at DESC`
	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var review domain.Review
		if err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.ProductID,
			&review.AuthorName,
			&review.Rating,
			&review.Comment,
			&review.Images,
			&review.CreatedAt,
			&review.UpdatedAt,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

// RatingSummary recomputes the aggregate used on the product record.
func (r *reviewRepository) RatingSummary(ctx context.Context, productID string) (float64, int, error) {
	const query = `
        SELECT COALESCE(AVG(rating), 0), COUNT(*)
        FROM reviews WHERE product_id=$1`
	var avg float64
	var count int
	if err := r.pool.QueryRow(ctx, query, productID).Scan(&avg, &count); err != nil {
		return 0, 0, err
	}
	return avg, count, nil
}
