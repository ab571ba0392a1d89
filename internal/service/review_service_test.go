package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/domain"
)

type fakeReviewRepo struct {
	reviews map[string]*domain.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[string]*domain.Review{}}
}

func (r *fakeReviewRepo) Create(_ context.Context, review *domain.Review) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	review.CreatedAt = time.Now()
	r.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) Update(_ context.Context, review *domain.Review) error {
	if _, ok := r.reviews[review.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.reviews[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) GetByID(_ context.Context, id string) (*domain.Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *review
	return &clone, nil
}

func (r *fakeReviewRepo) GetByUserAndProduct(_ context.Context, userID, productID string) (*domain.Review, error) {
	for _, review := range r.reviews {
		if review.UserID == userID && review.ProductID == productID {
			clone := *review
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeReviewRepo) ListByProduct(_ context.Context, productID string) ([]domain.Review, error) {
	var out []domain.Review
	for _, review := range r.reviews {
		if review.ProductID == productID {
			out = append(out, *review)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) RatingSummary(_ context.Context, productID string) (float64, int, error) {
	var sum, count int
	for _, review := range r.reviews {
		if review.ProductID == productID {
			sum += review.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

type reviewFixture struct {
	service  *ReviewService
	reviews  *fakeReviewRepo
	products *fakeProductRepo
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	reviews := newFakeReviewRepo()
	products := newFakeProductRepo()
	return &reviewFixture{
		service:  NewReviewService(reviews, products, zap.NewNop()),
		reviews:  reviews,
		products: products,
	}
}

func (f *reviewFixture) seedProduct(t *testing.T) *domain.Product {
	t.Helper()
	product := &domain.Product{Name: "Widget", Description: "d", Category: "c", Price: 10, Stock: 5}
	require.NoError(t, f.products.Create(context.Background(), product))
	return product
}

func TestAddReviewUpdatesProductRating(t *testing.T) {
	f := newReviewFixture(t)
	product := f.seedProduct(t)

	_, err := f.service.AddReview(context.Background(), "user-1", product.ID, 4, "solid", nil)
	require.NoError(t, err)
	_, err = f.service.AddReview(context.Background(), "user-2", product.ID, 2, "meh", nil)
	require.NoError(t, err)

	stored, err := f.products.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, stored.Rating, 0.001)
	assert.Equal(t, 2, stored.NumReviews)
}

func TestAddReviewDuplicateRejected(t *testing.T) {
	f := newReviewFixture(t)
	product := f.seedProduct(t)

	_, err := f.service.AddReview(context.Background(), "user-1", product.ID, 4, "solid", nil)
	require.NoError(t, err)

	_, err = f.service.AddReview(context.Background(), "user-1", product.ID, 5, "again", nil)
	assertStatus(t, err, 409)
}

func TestAddReviewUnknownProduct(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.service.AddReview(context.Background(), "user-1", "no-such-product", 4, "solid", nil)
	assertStatus(t, err, 404)
}

func TestAddReviewRatingBounds(t *testing.T) {
	f := newReviewFixture(t)
	product := f.seedProduct(t)

	_, err := f.service.AddReview(context.Background(), "user-1", product.ID, 0, "x", nil)
	assertStatus(t, err, 400)
	_, err = f.service.AddReview(context.Background(), "user-1", product.ID, 6, "x", nil)
	assertStatus(t, err, 400)
}

func TestUpdateReviewOwnerOnly(t *testing.T) {
	f := newReviewFixture(t)
	product := f.seedProduct(t)

	review, err := f.service.AddReview(context.Background(), "user-1", product.ID, 4, "solid", nil)
	require.NoError(t, err)

	_, err = f.service.UpdateReview(context.Background(), review.ID, "user-2", 1, "hijack")
	assertStatus(t, err, 403)

	updated, err := f.service.UpdateReview(context.Background(), review.ID, "user-1", 5, "even better")
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
}

func TestDeleteReviewAdminOverride(t *testing.T) {
	f := newReviewFixture(t)
	product := f.seedProduct(t)

	review, err := f.service.AddReview(context.Background(), "user-1", product.ID, 4, "solid", nil)
	require.NoError(t, err)

	err = f.service.DeleteReview(context.Background(), review.ID, "user-2", domain.RoleUser)
	assertStatus(t, err, 403)

	require.NoError(t, f.service.DeleteReview(context.Background(), review.ID, "user-2", domain.RoleAdmin))

	stored, err := f.products.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.NumReviews)
}
