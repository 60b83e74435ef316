package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AwardCategoryModel: kategori penghargaan dengan kuota.
// AwardCategoryFilled selalu sama dengan jumlah award_recipients yang
// menunjuk kategori ini; dijaga di transaksi yang sama dengan insert/delete
// penerima, dan tidak pernah melebihi AwardCategoryQuota.
type AwardCategoryModel struct {
	AwardCategoryID                uuid.UUID      `gorm:"column:award_category_id;type:uuid;primaryKey" json:"award_category_id"`
	AwardCategoryEventID           uuid.UUID      `gorm:"column:award_category_event_id;type:uuid;not null;index" json:"award_category_event_id"`
	AwardCategoryGroupName         string         `gorm:"column:award_category_group_name;type:varchar(120);not null" json:"award_category_group_name"`
	AwardCategoryName              string         `gorm:"column:award_category_name;type:varchar(120);not null" json:"award_category_name"`
	AwardCategoryQuota             int            `gorm:"column:award_category_quota;not null" json:"award_category_quota"`
	AwardCategoryFilled            int            `gorm:"column:award_category_filled;not null;default:0" json:"award_category_filled"`
	AwardCategoryRewardDescription *string        `gorm:"column:award_category_reward_description;type:text" json:"award_category_reward_description,omitempty"`
	AwardCategoryTemplateID        *uuid.UUID     `gorm:"column:award_category_template_id;type:uuid" json:"award_category_template_id,omitempty"`
	AwardCategoryIsActive          bool           `gorm:"column:award_category_is_active;not null" json:"award_category_is_active"`
	AwardCategoryCreatedAt         time.Time      `gorm:"column:award_category_created_at;not null;autoCreateTime" json:"award_category_created_at"`
	AwardCategoryUpdatedAt         time.Time      `gorm:"column:award_category_updated_at;not null;autoUpdateTime" json:"award_category_updated_at"`
	AwardCategoryDeletedAt         gorm.DeletedAt `gorm:"column:award_category_deleted_at;index" json:"award_category_deleted_at,omitempty"`
}

func (AwardCategoryModel) TableName() string {
	return "award_categories"
}

func (m *AwardCategoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.AwardCategoryID == uuid.Nil {
		m.AwardCategoryID = uuid.New()
	}
	return nil
}
