package reviews

import (
	reviewsvc "roomstay-backend/internal/application/reviews"
	"roomstay-backend/internal/middleware"
	"roomstay-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *reviewsvc.Service
}

type upsertReviewRequest struct {
	ListingID string `json:"listing_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

type deleteReviewRequest struct {
	ListingID string `json:"listing_id"`
	ReviewID  string `json:"review_id"`
}

// UpsertReview creates or replaces the caller's review for a listing.
func (h *Handlers) UpsertReview(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var req upsertReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest, nil)
	}
	review, err := h.Service.Upsert(c.Context(), reviewsvc.UpsertInput{
		ListingID: listingID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		switch err {
		case reviewsvc.ErrInvalidRating:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case reviewsvc.ErrListingNotFound:
			return response.NotFound(c, err.Error())
		case reviewsvc.ErrOwnListingReview:
			return response.Forbidden(c, err.Error())
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Review saved successfully", review, nil)
}

// DeleteReview removes a review, author or admin only.
func (h *Handlers) DeleteReview(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var req deleteReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest, nil)
	}
	reviewID, err := uuid.Parse(req.ReviewID)
	if err != nil {
		return response.Error(c, "Invalid review id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), listingID, reviewID, userID, middleware.IsAdmin(c)); err != nil {
		switch err {
		case reviewsvc.ErrReviewNotFound:
			return response.NotFound(c, err.Error())
		case reviewsvc.ErrNotReviewAuthor:
			return response.Forbidden(c, err.Error())
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Review deleted successfully", nil, nil)
}

// ListingReviews returns a listing's reviews, public.
func (h *Handlers) ListingReviews(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest, nil)
	}
	out, err := h.Service.ListForListing(c.Context(), listingID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Reviews retrieved successfully", out, fiber.Map{"count": len(out)})
}
