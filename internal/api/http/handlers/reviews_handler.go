package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// ReviewsHandler manages product review endpoints.
type ReviewsHandler struct {
	service *service.ReviewService
}

// NewReviewsHandler constructs handler.
func NewReviewsHandler(reviewService *service.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{service: reviewService}
}

// AddReview POST /api/products/:id/reviews.
func (h *ReviewsHandler) AddReview(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Not authorized to access this route")
	}
	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	review, err := h.service.AddReview(c.UserContext(), principal.User.ID, c.Params("id"), req.Rating, req.Comment, req.Images)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "Review added successfully", dto.NewReviewResponse(review))
}

// ListByProduct GET /api/products/:id/reviews. Public.
func (h *ReviewsHandler) ListByProduct(c *fiber.Ctx) error {
	reviews, err := h.service.ListByProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", dto.NewReviewListResponse(reviews))
}

// UpdateReview PUT /api/reviews/:id. Owner only.
func (h *ReviewsHandler) UpdateReview(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Not authorized to access this route")
	}
	var req dto.UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	review, err := h.service.UpdateReview(c.UserContext(), c.Params("id"), principal.User.ID, req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Review updated successfully", dto.NewReviewResponse(review))
}

// DeleteReview DELETE /api/reviews/:id. Owner or admin.
func (h *ReviewsHandler) DeleteReview(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Not authorized to access this route")
	}
	if err := h.service.DeleteReview(c.UserContext(), c.Params("id"), principal.User.ID, principal.Role); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Review deleted successfully", nil)
}
