package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inquiry is a tenant's message about a listing.
type Inquiry struct {
	InquiryID uuid.UUID `gorm:"column:inquiry_id;type:uuid;primaryKey" json:"inquiry_id"`
	ListingID uuid.UUID `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	SenderID  uuid.UUID `gorm:"column:sender_id;type:uuid;not null" json:"sender_id"`
	Message   string    `gorm:"column:message;not null" json:"message"`
	CreatedAt time.Time `gorm:"column:createdAt" json:"createdAt"`
}

func (Inquiry) TableName() string {
	return "Inquiries"
}

func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.InquiryID == uuid.Nil {
		i.InquiryID = uuid.New()
	}
	return nil
}
