package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CertificateTemplateModel hanya dibaca oleh core (pemilihan template).
// Paling banyak satu template default per jenis (partial unique index).
type CertificateTemplateModel struct {
	CertificateTemplateID        uuid.UUID       `gorm:"column:certificate_template_id;type:uuid;primaryKey" json:"certificate_template_id"`
	CertificateTemplateName      string          `gorm:"column:certificate_template_name;type:varchar(120);not null" json:"certificate_template_name"`
	CertificateTemplateType      CertificateType `gorm:"column:certificate_template_type;type:varchar(16);not null;uniqueIndex:uq_certificate_templates_default,where:certificate_template_is_default = true" json:"certificate_template_type"`
	CertificateTemplateContent   string          `gorm:"column:certificate_template_content;type:text" json:"certificate_template_content,omitempty"`
	CertificateTemplateIsDefault bool            `gorm:"column:certificate_template_is_default;not null;default:false;uniqueIndex:uq_certificate_templates_default,where:certificate_template_is_default = true" json:"certificate_template_is_default"`
	CertificateTemplateIsActive  bool            `gorm:"column:certificate_template_is_active;not null" json:"certificate_template_is_active"`
	CertificateTemplateCreatedAt time.Time       `gorm:"column:certificate_template_created_at;not null;autoCreateTime" json:"certificate_template_created_at"`
	CertificateTemplateUpdatedAt time.Time       `gorm:"column:certificate_template_updated_at;not null;autoUpdateTime" json:"certificate_template_updated_at"`
}

func (CertificateTemplateModel) TableName() string {
	return "certificate_templates"
}

func (m *CertificateTemplateModel) BeforeCreate(tx *gorm.DB) error {
	if m.CertificateTemplateID == uuid.Nil {
		m.CertificateTemplateID = uuid.New()
	}
	return nil
}
