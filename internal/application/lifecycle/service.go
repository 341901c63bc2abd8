package lifecycle

import (
	"context"
	"encoding/json"
	"time"

	"roomstay-backend/internal/application/notify"
	"roomstay-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service owns the listing moderation state machine. It is the sole writer of
// Listing.status and Listing.expires_at. Every transition commits the status
// mutation together with an activity-log row in one transaction; the owner
// notification is dispatched after commit and can never fail the transition.
type Service struct {
	DB      *gorm.DB
	Gateway notify.Gateway
	BaseURL string
	Now     func() time.Time // nil = time.Now
}

// approvalWindow is how long an approved listing stays visible before it must
// be renewed.
const approvalWindowMonths = 6

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Approve sets the listing to approved and stamps a fresh expiry window.
// Deliberately no guard on prior state: re-approving an already approved or
// expired listing applies the same effect and appends a fresh activity row.
func (s *Service) Approve(ctx context.Context, listingID uuid.UUID, actorID *uuid.UUID) (*domain.Listing, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	expiry := s.now().AddDate(0, approvalWindowMonths, 0)
	meta, _ := json.Marshal(map[string]interface{}{"expires_at": expiry})

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Model(&listing).Updates(map[string]interface{}{
		"status":     domain.ListingStatusApproved,
		"expires_at": expiry,
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Create(&domain.ActivityLog{
		Kind:      domain.ActivityListingApprove,
		ActorID:   actorID,
		ListingID: &listing.ListingID,
		Meta:      datatypes.JSON(meta),
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	listing.Status = domain.ListingStatusApproved
	listing.ExpiresAt = &expiry
	s.notifyOwner(ctx, &listing, func(owner *domain.User) notify.Intent {
		return notify.ListingApproved(owner, &listing, s.BaseURL)
	})
	return &listing, nil
}

// Reject sets the listing to rejected. The reason travels both in the activity
// meta and in the owner notification body.
func (s *Service) Reject(ctx context.Context, listingID uuid.UUID, actorID *uuid.UUID, reason string) (*domain.Listing, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	meta, _ := json.Marshal(map[string]interface{}{"reason": reason})

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Model(&listing).Update("status", domain.ListingStatusRejected).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Create(&domain.ActivityLog{
		Kind:      domain.ActivityListingReject,
		ActorID:   actorID,
		ListingID: &listing.ListingID,
		Meta:      datatypes.JSON(meta),
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	listing.Status = domain.ListingStatusRejected
	s.notifyOwner(ctx, &listing, func(owner *domain.User) notify.Intent {
		return notify.ListingRejected(owner, &listing, reason, s.BaseURL)
	})
	return &listing, nil
}

// Renew extends the expiry window and re-approves unconditionally, even from
// rejected or expired. Only the owner may renew.
func (s *Service) Renew(ctx context.Context, listingID, actingUserID uuid.UUID) (*domain.Listing, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if listing.OwnerID == nil || *listing.OwnerID != actingUserID {
		return nil, ErrNotListingOwner
	}

	expiry := s.now().AddDate(0, approvalWindowMonths, 0)
	meta, _ := json.Marshal(map[string]interface{}{"expires_at": expiry})

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Model(&listing).Updates(map[string]interface{}{
		"status":     domain.ListingStatusApproved,
		"expires_at": expiry,
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Create(&domain.ActivityLog{
		Kind:      domain.ActivityListingRenew,
		ActorID:   &actingUserID,
		ListingID: &listing.ListingID,
		Meta:      datatypes.JSON(meta),
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	listing.Status = domain.ListingStatusApproved
	listing.ExpiresAt = &expiry
	return &listing, nil
}

// Freshen applies lazy expiry on read: an approved listing whose expiry has
// passed is persisted as expired before being reported. Every query surface
// that returns listing status must go through here so stale approved listings
// never show as active. Returns true if the listing flipped to expired.
func (s *Service) Freshen(ctx context.Context, listing *domain.Listing) (bool, error) {
	if listing.Status != domain.ListingStatusApproved || listing.ExpiresAt == nil {
		return false, nil
	}
	if !listing.ExpiresAt.Before(s.now()) {
		return false, nil
	}

	tx := s.DB.WithContext(ctx).Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if err := tx.Model(listing).Update("status", domain.ListingStatusExpired).Error; err != nil {
		tx.Rollback()
		return false, err
	}
	if err := tx.Create(&domain.ActivityLog{
		Kind:      domain.ActivityListingExpire,
		ListingID: &listing.ListingID,
	}).Error; err != nil {
		tx.Rollback()
		return false, err
	}
	if err := tx.Commit().Error; err != nil {
		return false, err
	}
	listing.Status = domain.ListingStatusExpired
	return true, nil
}

// FreshenAll applies Freshen to each listing in place.
func (s *Service) FreshenAll(ctx context.Context, listings []domain.Listing) error {
	for i := range listings {
		if _, err := s.Freshen(ctx, &listings[i]); err != nil {
			return err
		}
	}
	return nil
}

// notifyOwner loads the owner (if any) and dispatches the built intent.
// Orphaned listings and missing owner rows skip notification silently.
func (s *Service) notifyOwner(ctx context.Context, listing *domain.Listing, build func(*domain.User) notify.Intent) {
	if listing.OwnerID == nil {
		return
	}
	var owner domain.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", *listing.OwnerID).First(&owner).Error; err != nil {
		return
	}
	notify.Dispatch(ctx, s.Gateway, build(&owner))
}
