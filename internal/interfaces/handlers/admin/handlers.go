package admin

import (
	activitysvc "roomstay-backend/internal/application/activity"
	"roomstay-backend/internal/application/lifecycle"
	listingsvc "roomstay-backend/internal/application/listings"
	"roomstay-backend/internal/middleware"
	"roomstay-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers covers the moderation surface. All routes here sit behind the
// moderate-listing permission.
type Handlers struct {
	Listings  *listingsvc.Service
	Lifecycle *lifecycle.Service
	Activity  *activitysvc.Service
}

type approveListingRequest struct {
	ListingID string `json:"listing_id"`
}

type rejectListingRequest struct {
	ListingID string `json:"listing_id"`
	Reason    string `json:"reason"`
}

// PendingListings returns the moderation queue, oldest first.
func (h *Handlers) PendingListings(c *fiber.Ctx) error {
	listings, err := h.Listings.GetPending(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Pending listings retrieved successfully", listings, fiber.Map{"count": len(listings)})
}

// ApproveListing approves a listing and stamps its expiry window.
func (h *Handlers) ApproveListing(c *fiber.Ctx) error {
	var req approveListingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest, nil)
	}
	actorID := actor(c)
	listing, err := h.Lifecycle.Approve(c.Context(), listingID, actorID)
	if err != nil {
		if err == lifecycle.ErrListingNotFound {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Listing approved successfully", listing, nil)
}

// RejectListing rejects a listing with a reason.
func (h *Handlers) RejectListing(c *fiber.Ctx) error {
	var req rejectListingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest, nil)
	}
	actorID := actor(c)
	listing, err := h.Lifecycle.Reject(c.Context(), listingID, actorID, req.Reason)
	if err != nil {
		if err == lifecycle.ErrListingNotFound {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Listing rejected successfully", listing, nil)
}

// RecentActivity returns the newest activity-log entries.
func (h *Handlers) RecentActivity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	entries, err := h.Activity.Recent(c.Context(), limit)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Activity retrieved successfully", entries, fiber.Map{"count": len(entries)})
}

// ListingActivity returns one listing's activity-log entries.
func (h *Handlers) ListingActivity(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest, nil)
	}
	entries, err := h.Activity.ForListing(c.Context(), listingID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Activity retrieved successfully", entries, fiber.Map{"count": len(entries)})
}

func actor(c *fiber.Ctx) *uuid.UUID {
	if id, ok := middleware.GetUserID(c); ok {
		return &id
	}
	return nil
}
