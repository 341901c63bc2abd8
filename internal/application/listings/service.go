package listings

import (
	"context"

	"roomstay-backend/internal/application/lifecycle"
	"roomstay-backend/internal/domain"
	"roomstay-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is the thin CRUD/browse layer over the listing store. Every read
// path that reports listing status goes through lifecycle.Freshen so stale
// approved listings are persisted as expired before being returned.
type Service struct {
	DB        *gorm.DB
	Lifecycle *lifecycle.Service
}

type CreateListingInput struct {
	OwnerID     uuid.UUID
	Title       string
	Location    string
	Price       float64
	Description string
}

// CreateListing inserts a new listing in pending state. Initial status is the
// only status write outside the lifecycle service.
func (s *Service) CreateListing(ctx context.Context, in CreateListingInput) (*domain.Listing, error) {
	if validation.IsBlank(in.Title) {
		return nil, ErrMissingTitle
	}
	if validation.IsBlank(in.Location) {
		return nil, ErrMissingLocation
	}
	if in.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	owner := in.OwnerID
	listing := &domain.Listing{
		OwnerID:     &owner,
		Title:       in.Title,
		Location:    in.Location,
		Price:       in.Price,
		Description: in.Description,
		Status:      domain.ListingStatusPending,
	}
	if err := s.DB.WithContext(ctx).Create(listing).Error; err != nil {
		return nil, err
	}
	return listing, nil
}

// GetByID returns one listing with lazy expiry applied.
func (s *Service) GetByID(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if _, err := s.Lifecycle.Freshen(ctx, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// GetApproved returns all currently active listings, newest first. Listings
// whose expiry passed are flipped to expired and filtered out.
func (s *Service) GetApproved(ctx context.Context) ([]domain.Listing, error) {
	var listings []domain.Listing
	if err := s.DB.WithContext(ctx).
		Where("status = ?", domain.ListingStatusApproved).
		Order(`"createdAt" DESC`).
		Find(&listings).Error; err != nil {
		return nil, err
	}
	if err := s.Lifecycle.FreshenAll(ctx, listings); err != nil {
		return nil, err
	}
	active := listings[:0]
	for _, l := range listings {
		if l.Status == domain.ListingStatusApproved {
			active = append(active, l)
		}
	}
	return active, nil
}

// GetByOwner returns one owner's listings, newest first, freshened.
func (s *Service) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Listing, error) {
	var listings []domain.Listing
	if err := s.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order(`"createdAt" DESC`).
		Find(&listings).Error; err != nil {
		return nil, err
	}
	if err := s.Lifecycle.FreshenAll(ctx, listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// GetPending returns the moderation queue, oldest first.
func (s *Service) GetPending(ctx context.Context) ([]domain.Listing, error) {
	var listings []domain.Listing
	if err := s.DB.WithContext(ctx).
		Where("status = ?", domain.ListingStatusPending).
		Order(`"createdAt" ASC`).
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// Delete removes a listing. Owners may delete their own; admins may delete any.
func (s *Service) Delete(ctx context.Context, listingID, actingUserID uuid.UUID, isAdmin bool) error {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrListingNotFound
		}
		return err
	}
	if !isAdmin && (listing.OwnerID == nil || *listing.OwnerID != actingUserID) {
		return ErrNotListingOwner
	}
	return s.DB.WithContext(ctx).Delete(&listing).Error
}
