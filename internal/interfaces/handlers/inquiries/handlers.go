package inquiries

import (
	inquirysvc "roomstay-backend/internal/application/inquiries"
	listingsvc "roomstay-backend/internal/application/listings"
	"roomstay-backend/internal/middleware"
	"roomstay-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service  *inquirysvc.Service
	Listings *listingsvc.Service
}

type createInquiryRequest struct {
	ListingID string `json:"listing_id"`
	Message   string `json:"message"`
}

// CreateInquiry sends a message about a listing to its owner.
func (h *Handlers) CreateInquiry(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var req createInquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest, nil)
	}
	inquiry, err := h.Service.CreateInquiry(c.Context(), inquirysvc.CreateInquiryInput{
		ListingID: listingID,
		SenderID:  userID,
		Message:   req.Message,
	})
	if err != nil {
		switch err {
		case inquirysvc.ErrMissingMessage:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case inquirysvc.ErrListingNotFound:
			return response.NotFound(c, err.Error())
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Inquiry sent successfully", inquiry, nil)
}

// ListingInquiries returns a listing's inquiries, owner or admin only.
func (h *Handlers) ListingInquiries(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing id", fiber.StatusBadRequest, nil)
	}
	listing, err := h.Listings.GetByID(c.Context(), listingID)
	if err != nil {
		if err == listingsvc.ErrListingNotFound {
			return response.NotFound(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	if !middleware.IsAdmin(c) && (listing.OwnerID == nil || *listing.OwnerID != userID) {
		return response.Forbidden(c, "Unauthorized listing access")
	}
	out, err := h.Service.ForListing(c.Context(), listingID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Inquiries retrieved successfully", out, fiber.Map{"count": len(out)})
}
