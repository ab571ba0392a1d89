package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// ReviewService manages product reviews and keeps the product rating
// aggregate in sync.
type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewReviewService builds the service.
func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository, logger *zap.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, products: products, logger: logger}
}

// AddReview creates a review; a second review for the same product by
// the same user is rejected.
func (s *ReviewService) AddReview(ctx context.Context, userID, productID string, rating int, comment string, images []string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5", nil)
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Product")
		}
		return nil, err
	}

	if _, err := s.reviews.GetByUserAndProduct(ctx, userID, productID); err == nil {
		return nil, apperrors.NewConflict("You have already reviewed this product")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	review := &domain.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
		Images:    images,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	s.refreshRating(ctx, productID)
	return review, nil
}

// ListByProduct returns all reviews for a product, newest first.
func (s *ReviewService) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	return s.reviews.ListByProduct(ctx, productID)
}

// UpdateReview edits a review owned by the caller.
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID, callerID string, rating int, comment string) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Review")
		}
		return nil, err
	}
	if review.UserID != callerID {
		return nil, apperrors.NewForbidden("Not authorized to update this review")
	}

	if rating != 0 {
		if rating < 1 || rating > 5 {
			return nil, apperrors.NewValidationError("rating must be between 1 and 5", nil)
		}
		review.Rating = rating
	}
	if comment != "" {
		review.Comment = comment
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}

	s.refreshRating(ctx, review.ProductID)
	return review, nil
}

// DeleteReview removes a review; allowed for its owner or an admin.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID, callerID string, callerRole domain.Role) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Review")
		}
		return err
	}
	if review.UserID != callerID && callerRole != domain.RoleAdmin {
		return apperrors.NewForbidden("Not authorized to delete this review")
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}

	s.refreshRating(ctx, review.ProductID)
	return nil
}

// refreshRating recomputes the denormalized rating on the product. A
// failure leaves the aggregate stale until the next review mutation.
func (s *ReviewService) refreshRating(ctx context.Context, productID string) {
	avg, count, err := s.reviews.RatingSummary(ctx, productID)
	if err != nil {
		s.logger.Warn("failed to compute rating summary", zap.String("product_id", productID), zap.Error(err))
		return
	}
	if err := s.products.SetRating(ctx, productID, avg, count); err != nil {
		s.logger.Warn("failed to store rating summary", zap.String("product_id", productID), zap.Error(err))
	}
}
