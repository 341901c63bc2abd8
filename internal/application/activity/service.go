package activity

import (
	"context"

	"roomstay-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultRecentLimit = 20
const maxRecentLimit = 100

// Service reads the append-only activity log. Writes happen inside the
// lifecycle/inquiry transactions; nothing here ever mutates or deletes a row.
type Service struct {
	DB *gorm.DB
}

// Recent returns the newest entries first. limit <= 0 falls back to the
// default; oversized limits are capped.
func (s *Service) Recent(ctx context.Context, limit int) ([]domain.ActivityLog, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	var entries []domain.ActivityLog
	if err := s.DB.WithContext(ctx).
		Order(`"createdAt" DESC`).
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ForListing returns a listing's entries, newest first.
func (s *Service) ForListing(ctx context.Context, listingID uuid.UUID) ([]domain.ActivityLog, error) {
	var entries []domain.ActivityLog
	if err := s.DB.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order(`"createdAt" DESC`).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
