package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Listing moderation statuses. Status is only ever written by the lifecycle service.
const (
	ListingStatusPending  = "pending"
	ListingStatusApproved = "approved"
	ListingStatusRejected = "rejected"
	ListingStatusExpired  = "expired"
)

// Listing is a boarding-house unit offered by an owner, subject to moderation.
// Rating and ReviewCount are denormalized from Reviews and only written by the
// review service. OwnerID is nullable: orphaned listings are legal.
type Listing struct {
	ListingID   uuid.UUID      `gorm:"column:listing_id;type:uuid;primaryKey" json:"listing_id"`
	OwnerID     *uuid.UUID     `gorm:"column:owner_id;type:uuid;index" json:"owner_id"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Location    string         `gorm:"column:location;not null" json:"location"`
	Price       float64        `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	Description string         `gorm:"column:description" json:"description"`
	Status      string         `gorm:"column:status;type:varchar(20);default:'pending'" json:"status"`
	ExpiresAt   *time.Time     `gorm:"column:expires_at" json:"expires_at"`
	Rating      float64        `gorm:"column:rating;type:decimal(3,2);default:0" json:"rating"`
	ReviewCount int            `gorm:"column:review_count;default:0" json:"review_count"`
	CreatedAt   time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Listing) TableName() string {
	return "Listings"
}

// BeforeCreate sets listing_id if not already set (DBs without default uuid).
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ListingID == uuid.Nil {
		l.ListingID = uuid.New()
	}
	return nil
}
