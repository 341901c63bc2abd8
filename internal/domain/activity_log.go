package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity kinds recorded by the lifecycle and inquiry flows.
const (
	ActivityListingApprove = "listing_approve"
	ActivityListingReject  = "listing_reject"
	ActivityListingRenew   = "listing_renew"
	ActivityListingExpire  = "listing_expire"
	ActivityInquiryCreate  = "inquiry_create"
)

// ActivityLog is an append-only audit row. Rows are never mutated or deleted;
// there is deliberately no UpdatedAt or soft delete.
type ActivityLog struct {
	LogID     uuid.UUID      `gorm:"column:log_id;type:uuid;primaryKey" json:"log_id"`
	Kind      string         `gorm:"column:kind;type:varchar(30);not null;index" json:"kind"`
	ActorID   *uuid.UUID     `gorm:"column:actor_id;type:uuid" json:"actor_id"`
	ListingID *uuid.UUID     `gorm:"column:listing_id;type:uuid;index" json:"listing_id"`
	InquiryID *uuid.UUID     `gorm:"column:inquiry_id;type:uuid" json:"inquiry_id"`
	Meta      datatypes.JSON `gorm:"column:meta;type:jsonb" json:"meta"`
	CreatedAt time.Time      `gorm:"column:createdAt" json:"createdAt"`
}

func (ActivityLog) TableName() string {
	return "ActivityLogs"
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.LogID == uuid.Nil {
		a.LogID = uuid.New()
	}
	return nil
}
