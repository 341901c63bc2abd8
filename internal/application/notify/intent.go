package notify

import (
	"context"
	"fmt"

	"roomstay-backend/internal/domain"

	"github.com/google/uuid"
)

// Intent types produced by lifecycle transitions and inquiries.
const (
	TypeListingApproved = "listing_approved"
	TypeListingRejected = "listing_rejected"
	TypeNewInquiry      = "new_inquiry"
)

// Intent is an ephemeral notification request. It is constructed at the moment
// of a transition, handed to the gateway once and discarded regardless of the
// delivery outcome. Never persisted.
type Intent struct {
	Type      string
	UserID    uuid.UUID
	Email     string
	Fullname  string
	Subject   string
	Body      string
	LinkURL   string
	ListingID *uuid.UUID
	InquiryID *uuid.UUID
}

// Gateway attempts delivery of one intent (e.g. email). Fire-once, best-effort:
// no retry, no queue.
type Gateway interface {
	Send(ctx context.Context, intent Intent) error
}

// ListingApproved builds the owner notification for an approved listing.
func ListingApproved(owner *domain.User, listing *domain.Listing, baseURL string) Intent {
	id := listing.ListingID
	return Intent{
		Type:      TypeListingApproved,
		UserID:    owner.UserID,
		Email:     owner.Email,
		Fullname:  owner.Fullname,
		Subject:   "Your listing is now live",
		Body:      fmt.Sprintf("Good news! Your listing %q has been approved and is now visible to tenants.", listing.Title),
		LinkURL:   fmt.Sprintf("%s/listings/%s", baseURL, id),
		ListingID: &id,
	}
}

// ListingRejected builds the owner notification for a rejected listing. The
// moderation reason is carried in the body.
func ListingRejected(owner *domain.User, listing *domain.Listing, reason, baseURL string) Intent {
	id := listing.ListingID
	body := fmt.Sprintf("Unfortunately your listing %q was not approved.", listing.Title)
	if reason != "" {
		body = fmt.Sprintf("%s Reason: %s", body, reason)
	}
	return Intent{
		Type:      TypeListingRejected,
		UserID:    owner.UserID,
		Email:     owner.Email,
		Fullname:  owner.Fullname,
		Subject:   "Your listing was not approved",
		Body:      body,
		LinkURL:   fmt.Sprintf("%s/listings/%s/edit", baseURL, id),
		ListingID: &id,
	}
}

// NewInquiry builds the owner notification for a fresh tenant inquiry.
func NewInquiry(owner *domain.User, listing *domain.Listing, inquiry *domain.Inquiry, baseURL string) Intent {
	lid := listing.ListingID
	iid := inquiry.InquiryID
	return Intent{
		Type:      TypeNewInquiry,
		UserID:    owner.UserID,
		Email:     owner.Email,
		Fullname:  owner.Fullname,
		Subject:   "New inquiry about your listing",
		Body:      fmt.Sprintf("A tenant sent a message about %q: %s", listing.Title, inquiry.Message),
		LinkURL:   fmt.Sprintf("%s/inquiries/%s", baseURL, iid),
		ListingID: &lid,
		InquiryID: &iid,
	}
}
