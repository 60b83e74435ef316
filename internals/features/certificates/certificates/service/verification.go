package service

import (
	"context"
	"fmt"
	"time"

	certModel "tahfidz_backend/internals/features/certificates/certificates/model"
)

// Verification adalah data yang boleh dilihat publik saat mengecek nomor sertifikat.
type Verification struct {
	Number      string                    `json:"certificate_number"`
	Type        certModel.CertificateType `json:"certificate_type"`
	IssuedAt    time.Time                 `json:"issued_at"`
	StudentName string                    `json:"student_name"`
	Juz         int                       `json:"juz,omitempty"`
	Category    string                    `json:"award_category,omitempty"`
	EventName   string                    `json:"award_event,omitempty"`
}

type verificationRow struct {
	StudentName string
	Juz         int
	Category    *string
	EventName   *string
}

// Verify mencari sertifikat berdasarkan nomor lalu melengkapi nama santri
// dan konteks sumbernya (ujian tasmi' atau kategori wisuda).
func (s *Store) Verify(ctx context.Context, number string) (*Verification, error) {
	cert, err := s.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	out := &Verification{
		Number:   cert.CertificateNumber,
		Type:     cert.CertificateType,
		IssuedAt: cert.CertificateCreatedAt,
	}

	kind, srcID := cert.Source()
	var row verificationRow
	q := s.DB.WithContext(ctx)
	switch kind {
	case certModel.SourceTasmi:
		err = q.Table("tasmi_exams AS te").
			Select("s.student_name AS student_name, te.tasmi_exam_juz AS juz").
			Joins("JOIN students s ON s.student_id = te.tasmi_exam_student_id").
			Where("te.tasmi_exam_id = ?", srcID).
			Scan(&row).Error
	case certModel.SourceAwardRecipient:
		err = q.Table("award_recipients AS ar").
			Select(`s.student_name AS student_name, te.tasmi_exam_juz AS juz,
				ac.award_category_name AS category, ae.award_event_name AS event_name`).
			Joins("JOIN students s ON s.student_id = ar.award_recipient_student_id").
			Joins("JOIN tasmi_exams te ON te.tasmi_exam_id = ar.award_recipient_tasmi_exam_id").
			Joins("LEFT JOIN award_categories ac ON ac.award_category_id = ar.award_recipient_category_id").
			Joins("LEFT JOIN award_events ae ON ae.award_event_id = ar.award_recipient_event_id").
			Where("ar.award_recipient_id = ?", srcID).
			Scan(&row).Error
	}
	if err != nil {
		return nil, fmt.Errorf("load certificate owner: %w", err)
	}

	out.StudentName = row.StudentName
	out.Juz = row.Juz
	if row.Category != nil {
		out.Category = *row.Category
	}
	if row.EventName != nil {
		out.EventName = *row.EventName
	}
	return out, nil
}
