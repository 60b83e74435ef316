package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AwardRecipientModel: santri terpilih di satu kategori wisuda.
// Satu ujian tasmi' hanya boleh melahirkan satu penerima (UNIQUE).
type AwardRecipientModel struct {
	AwardRecipientID          uuid.UUID  `gorm:"column:award_recipient_id;type:uuid;primaryKey" json:"award_recipient_id"`
	AwardRecipientEventID     uuid.UUID  `gorm:"column:award_recipient_event_id;type:uuid;not null;index" json:"award_recipient_event_id"`
	AwardRecipientCategoryID  uuid.UUID  `gorm:"column:award_recipient_category_id;type:uuid;not null;index" json:"award_recipient_category_id"`
	AwardRecipientStudentID   uuid.UUID  `gorm:"column:award_recipient_student_id;type:uuid;not null;index" json:"award_recipient_student_id"`
	AwardRecipientTasmiExamID *uuid.UUID `gorm:"column:award_recipient_tasmi_exam_id;type:uuid;uniqueIndex:uq_award_recipients_tasmi_exam" json:"award_recipient_tasmi_exam_id,omitempty"`
	AwardRecipientApprovedAt  *time.Time `gorm:"column:award_recipient_approved_at" json:"award_recipient_approved_at,omitempty"`
	AwardRecipientApprovedBy  *uuid.UUID `gorm:"column:award_recipient_approved_by;type:uuid" json:"award_recipient_approved_by,omitempty"`
	AwardRecipientCreatedAt   time.Time  `gorm:"column:award_recipient_created_at;not null;autoCreateTime" json:"award_recipient_created_at"`
	AwardRecipientUpdatedAt   time.Time  `gorm:"column:award_recipient_updated_at;not null;autoUpdateTime" json:"award_recipient_updated_at"`
}

func (AwardRecipientModel) TableName() string {
	return "award_recipients"
}

func (m *AwardRecipientModel) BeforeCreate(tx *gorm.DB) error {
	if m.AwardRecipientID == uuid.Nil {
		m.AwardRecipientID = uuid.New()
	}
	return nil
}
