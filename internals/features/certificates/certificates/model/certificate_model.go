package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ======================================================
   ENUM: certificate_type & source kind
====================================================== */

type CertificateType string

const (
	CertificateTypeNonAward CertificateType = "NON_AWARD"
	CertificateTypeAward    CertificateType = "AWARD"
)

func (t CertificateType) Valid() bool {
	return t == CertificateTypeNonAward || t == CertificateTypeAward
}

// SourceKind menunjukkan record asal sertifikat.
type SourceKind string

const (
	SourceTasmi          SourceKind = "TASMI"
	SourceAwardRecipient SourceKind = "AWARD_RECIPIENT"
)

// CertificateType mengembalikan jenis sertifikat untuk sumber ini.
func (k SourceKind) CertificateType() CertificateType {
	if k == SourceAwardRecipient {
		return CertificateTypeAward
	}
	return CertificateTypeNonAward
}

/* ======================================================
   Model: certificates
====================================================== */

// CertificateModel tidak pernah diubah setelah dibuat. Tepat satu dari
// CertificateTasmiID / CertificateAwardRecipientID terisi; keduanya UNIQUE.
type CertificateModel struct {
	CertificateID     uuid.UUID       `gorm:"column:certificate_id;type:uuid;primaryKey" json:"certificate_id"`
	CertificateType   CertificateType `gorm:"column:certificate_type;type:varchar(16);not null;index" json:"certificate_type"`
	CertificateNumber string          `gorm:"column:certificate_number;type:varchar(40);not null;uniqueIndex:uq_certificates_number" json:"certificate_number"`

	CertificateTasmiID          *uuid.UUID `gorm:"column:certificate_tasmi_id;type:uuid;uniqueIndex:uq_certificates_tasmi" json:"certificate_tasmi_id,omitempty"`
	CertificateAwardRecipientID *uuid.UUID `gorm:"column:certificate_award_recipient_id;type:uuid;uniqueIndex:uq_certificates_award_recipient" json:"certificate_award_recipient_id,omitempty"`

	CertificateTemplateID *uuid.UUID `gorm:"column:certificate_template_id;type:uuid" json:"certificate_template_id,omitempty"`
	CertificateIssuedBy   uuid.UUID  `gorm:"column:certificate_issued_by;type:uuid;not null" json:"certificate_issued_by"`
	CertificateCreatedAt  time.Time  `gorm:"column:certificate_created_at;not null;autoCreateTime" json:"certificate_created_at"`
}

func (CertificateModel) TableName() string {
	return "certificates"
}

func (m *CertificateModel) BeforeCreate(tx *gorm.DB) error {
	if m.CertificateID == uuid.Nil {
		m.CertificateID = uuid.New()
	}
	return nil
}

// SourceKind & SourceID dari kolom sumber yang terisi.
func (m *CertificateModel) Source() (SourceKind, uuid.UUID) {
	if m.CertificateAwardRecipientID != nil {
		return SourceAwardRecipient, *m.CertificateAwardRecipientID
	}
	if m.CertificateTasmiID != nil {
		return SourceTasmi, *m.CertificateTasmiID
	}
	return "", uuid.Nil
}
