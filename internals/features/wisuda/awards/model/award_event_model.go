package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AwardEventModel adalah acara wisuda yang menaungi kategori & penerima.
type AwardEventModel struct {
	AwardEventID        uuid.UUID      `gorm:"column:award_event_id;type:uuid;primaryKey" json:"award_event_id"`
	AwardEventName      string         `gorm:"column:award_event_name;type:varchar(160);not null" json:"award_event_name"`
	AwardEventDate      *time.Time     `gorm:"column:award_event_date" json:"award_event_date,omitempty"`
	AwardEventIsActive  bool           `gorm:"column:award_event_is_active;not null" json:"award_event_is_active"`
	AwardEventCreatedAt time.Time      `gorm:"column:award_event_created_at;not null;autoCreateTime" json:"award_event_created_at"`
	AwardEventUpdatedAt time.Time      `gorm:"column:award_event_updated_at;not null;autoUpdateTime" json:"award_event_updated_at"`
	AwardEventDeletedAt gorm.DeletedAt `gorm:"column:award_event_deleted_at;index" json:"award_event_deleted_at,omitempty"`
}

func (AwardEventModel) TableName() string {
	return "award_events"
}

func (m *AwardEventModel) BeforeCreate(tx *gorm.DB) error {
	if m.AwardEventID == uuid.Nil {
		m.AwardEventID = uuid.New()
	}
	return nil
}
