// file: internals/features/certificates/certificates/dto/certificate_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "tahfidz_backend/internals/features/certificates/certificates/model"
)

type CertificateResponse struct {
	CertificateID               uuid.UUID             `json:"certificate_id"`
	CertificateType             model.CertificateType `json:"certificate_type"`
	CertificateNumber           string                `json:"certificate_number"`
	CertificateTasmiID          *uuid.UUID            `json:"certificate_tasmi_id,omitempty"`
	CertificateAwardRecipientID *uuid.UUID            `json:"certificate_award_recipient_id,omitempty"`
	CertificateTemplateID       *uuid.UUID            `json:"certificate_template_id,omitempty"`
	CertificateIssuedBy         uuid.UUID             `json:"certificate_issued_by"`
	CertificateCreatedAt        time.Time             `json:"certificate_created_at"`

	// false = sertifikat sudah ada sebelumnya dan dikembalikan apa adanya
	Created bool `json:"created"`
}

func FromModel(m *model.CertificateModel, created bool) CertificateResponse {
	return CertificateResponse{
		CertificateID:               m.CertificateID,
		CertificateType:             m.CertificateType,
		CertificateNumber:           m.CertificateNumber,
		CertificateTasmiID:          m.CertificateTasmiID,
		CertificateAwardRecipientID: m.CertificateAwardRecipientID,
		CertificateTemplateID:       m.CertificateTemplateID,
		CertificateIssuedBy:         m.CertificateIssuedBy,
		CertificateCreatedAt:        m.CertificateCreatedAt,
		Created:                     created,
	}
}

type CertificateTemplateResponse struct {
	CertificateTemplateID        uuid.UUID             `json:"certificate_template_id"`
	CertificateTemplateName      string                `json:"certificate_template_name"`
	CertificateTemplateType      model.CertificateType `json:"certificate_template_type"`
	CertificateTemplateIsDefault bool                  `json:"certificate_template_is_default"`
	CertificateTemplateIsActive  bool                  `json:"certificate_template_is_active"`
}

func FromTemplates(rows []model.CertificateTemplateModel) []CertificateTemplateResponse {
	out := make([]CertificateTemplateResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, CertificateTemplateResponse{
			CertificateTemplateID:        r.CertificateTemplateID,
			CertificateTemplateName:      r.CertificateTemplateName,
			CertificateTemplateType:      r.CertificateTemplateType,
			CertificateTemplateIsDefault: r.CertificateTemplateIsDefault,
			CertificateTemplateIsActive:  r.CertificateTemplateIsActive,
		})
	}
	return out
}
