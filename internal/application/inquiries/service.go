package inquiries

import (
	"context"

	"roomstay-backend/internal/application/notify"
	"roomstay-backend/internal/domain"
	"roomstay-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service creates tenant inquiries. Each inquiry commits together with its
// activity-log entry; the owner notification is dispatched after commit,
// best-effort.
type Service struct {
	DB      *gorm.DB
	Gateway notify.Gateway
	BaseURL string
}

type CreateInquiryInput struct {
	ListingID uuid.UUID
	SenderID  uuid.UUID
	Message   string
}

func (s *Service) CreateInquiry(ctx context.Context, in CreateInquiryInput) (*domain.Inquiry, error) {
	if validation.IsBlank(in.Message) {
		return nil, ErrMissingMessage
	}
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", in.ListingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	inquiry := &domain.Inquiry{
		ListingID: in.ListingID,
		SenderID:  in.SenderID,
		Message:   in.Message,
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Create(inquiry).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Create(&domain.ActivityLog{
		Kind:      domain.ActivityInquiryCreate,
		ActorID:   &inquiry.SenderID,
		ListingID: &inquiry.ListingID,
		InquiryID: &inquiry.InquiryID,
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if listing.OwnerID != nil {
		var owner domain.User
		if err := s.DB.WithContext(ctx).Where("user_id = ?", *listing.OwnerID).First(&owner).Error; err == nil {
			notify.Dispatch(ctx, s.Gateway, notify.NewInquiry(&owner, &listing, inquiry, s.BaseURL))
		}
	}
	return inquiry, nil
}

// ForListing returns a listing's inquiries, newest first.
func (s *Service) ForListing(ctx context.Context, listingID uuid.UUID) ([]domain.Inquiry, error) {
	var out []domain.Inquiry
	if err := s.DB.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order(`"createdAt" DESC`).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
