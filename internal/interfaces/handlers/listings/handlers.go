package listings

import (
	"roomstay-backend/internal/application/lifecycle"
	listingsvc "roomstay-backend/internal/application/listings"
	"roomstay-backend/internal/middleware"
	"roomstay-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service   *listingsvc.Service
	Lifecycle *lifecycle.Service
}

type createListingRequest struct {
	Title       string  `json:"title"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

type renewListingRequest struct {
	ListingID string `json:"listing_id"`
}

// CreateListing creates a listing in pending state for the session user.
func (h *Handlers) CreateListing(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var req createListingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	listing, err := h.Service.CreateListing(c.Context(), listingsvc.CreateListingInput{
		OwnerID:     userID,
		Title:       req.Title,
		Location:    req.Location,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		switch err {
		case listingsvc.ErrMissingTitle, listingsvc.ErrMissingLocation, listingsvc.ErrInvalidPrice:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Listing created successfully", listing, nil)
}

// GetApprovedListings returns all active listings, public.
func (h *Handlers) GetApprovedListings(c *fiber.Ctx) error {
	listings, err := h.Service.GetApproved(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Listings retrieved successfully", listings, fiber.Map{"count": len(listings)})
}

// GetListing returns one listing by id, public.
func (h *Handlers) GetListing(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest, nil)
	}
	listing, err := h.Service.GetByID(c.Context(), listingID)
	if err != nil {
		if err == listingsvc.ErrListingNotFound {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Listing retrieved successfully", listing, nil)
}

// GetMyListings returns the session user's listings.
func (h *Handlers) GetMyListings(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	listings, err := h.Service.GetByOwner(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Listings retrieved successfully", listings, fiber.Map{"count": len(listings)})
}

// RenewListing extends the caller's listing for a fresh approval window.
func (h *Handlers) RenewListing(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var req renewListingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest, nil)
	}
	listing, err := h.Lifecycle.Renew(c.Context(), listingID, userID)
	if err != nil {
		switch err {
		case lifecycle.ErrListingNotFound:
			return response.NotFound(c, err.Error())
		case lifecycle.ErrNotListingOwner:
			return response.Forbidden(c, err.Error())
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Listing renewed successfully", listing, nil)
}

// DeleteListing removes a listing, owner or admin only.
func (h *Handlers) DeleteListing(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), listingID, userID, middleware.IsAdmin(c)); err != nil {
		switch err {
		case listingsvc.ErrListingNotFound:
			return response.NotFound(c, err.Error())
		case listingsvc.ErrNotListingOwner:
			return response.Forbidden(c, err.Error())
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Listing deleted successfully", nil, nil)
}
