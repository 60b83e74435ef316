package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	certModel "tahfidz_backend/internals/features/certificates/certificates/model"
	certSvc "tahfidz_backend/internals/features/certificates/certificates/service"
	tasmiModel "tahfidz_backend/internals/features/tasmi/exams/model"
	studentModel "tahfidz_backend/internals/features/users/students/model"
	model "tahfidz_backend/internals/features/wisuda/awards/model"
	"tahfidz_backend/internals/helpers/apperror"
	"tahfidz_backend/internals/helpers/queue"
)

const colRecipientID = "award_recipient_id"

type CreateRecipientInput struct {
	EventID      uuid.UUID
	StudentID    uuid.UUID
	CategoryID   uuid.UUID
	SourceExamID *uuid.UUID
	ApproverID   uuid.UUID
}

func (s *Service) GetRecipient(ctx context.Context, id uuid.UUID) (*model.AwardRecipientModel, error) {
	return s.getRecipient(ctx, s.DB, id)
}

func (s *Service) getRecipient(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.AwardRecipientModel, error) {
	var m model.AwardRecipientModel
	if err := db.WithContext(ctx).Where(colRecipientID+" = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("penerima %s tidak ditemukan", id)
		}
		return nil, fmt.Errorf("load award recipient: %w", err)
	}
	return &m, nil
}

// claimSlot menambah filled satu kalau masih di bawah kuota. Ini satu-satunya
// jalan masuk penerima ke kategori.
func claimSlot(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID) error {
	res := tx.WithContext(ctx).Model(&model.AwardCategoryModel{}).
		Where(colCategoryID+" = ?", categoryID).
		Where(colCategoryFilled + " < award_category_quota").
		UpdateColumn(colCategoryFilled, gorm.Expr(colCategoryFilled+" + 1"))
	if res.Error != nil {
		return fmt.Errorf("claim category slot: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.QuotaExceeded("kuota kategori sudah penuh")
	}
	return nil
}

func releaseSlot(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID) error {
	// Unscoped: kategori tidak bisa dihapus selama filled > 0, tapi jangan bergantung pada itu
	res := tx.WithContext(ctx).Unscoped().Model(&model.AwardCategoryModel{}).
		Where(colCategoryID+" = ?", categoryID).
		Where(colCategoryFilled + " > 0").
		UpdateColumn(colCategoryFilled, gorm.Expr(colCategoryFilled+" - 1"))
	if res.Error != nil {
		return fmt.Errorf("release category slot: %w", res.Error)
	}
	return nil
}

func (s *Service) checkCategoryFor(ctx context.Context, tx *gorm.DB, categoryID, eventID uuid.UUID) (*model.AwardCategoryModel, error) {
	cat, err := s.getCategory(ctx, tx, categoryID)
	if err != nil {
		return nil, err
	}
	if cat.AwardCategoryEventID != eventID {
		return nil, apperror.Validation("kategori bukan milik acara ini").WithField("category_id", "belongs to another event")
	}
	if !cat.AwardCategoryIsActive {
		return nil, apperror.Validation("kategori tidak aktif").WithField("category_id", "inactive")
	}
	return cat, nil
}

// CreateRecipient memilih santri ke kategori; persetujuan langsung diberikan.
func (s *Service) CreateRecipient(ctx context.Context, in CreateRecipientInput) (*model.AwardRecipientModel, error) {
	if in.StudentID == uuid.Nil {
		return nil, apperror.Validation("santri wajib diisi").WithField("student_id", "required")
	}
	if in.CategoryID == uuid.Nil {
		return nil, apperror.Validation("kategori wajib diisi").WithField("category_id", "required")
	}
	if in.EventID == uuid.Nil {
		return nil, apperror.Validation("acara wajib diisi").WithField("event_id", "required")
	}
	if in.ApproverID == uuid.Nil {
		return nil, apperror.Validation("penyetuju wajib diisi")
	}

	now := s.Now()
	rec := &model.AwardRecipientModel{
		AwardRecipientEventID:     in.EventID,
		AwardRecipientCategoryID:  in.CategoryID,
		AwardRecipientStudentID:   in.StudentID,
		AwardRecipientTasmiExamID: in.SourceExamID,
		AwardRecipientApprovedAt:  &now,
		AwardRecipientApprovedBy:  &in.ApproverID,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.checkCategoryFor(ctx, tx, in.CategoryID, in.EventID); err != nil {
			return err
		}

		var st studentModel.StudentModel
		if err := tx.WithContext(ctx).Select("student_id").Where("student_id = ?", in.StudentID).Take(&st).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("santri %s tidak ditemukan", in.StudentID)
			}
			return fmt.Errorf("load student: %w", err)
		}

		if in.SourceExamID != nil {
			if err := checkSourceExam(ctx, tx, *in.SourceExamID, in.StudentID); err != nil {
				return err
			}
		}

		if err := claimSlot(ctx, tx, in.CategoryID); err != nil {
			return err
		}

		res := tx.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(rec)
		if res.Error != nil {
			return fmt.Errorf("insert award recipient: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// rollback mengembalikan slot yang tadi diambil
			return apperror.InvalidState("ujian tasmi' ini sudah dipakai penerima lain")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Wisuda.CreateRecipient] recipient_id=%s category_id=%s student_id=%s",
		rec.AwardRecipientID, in.CategoryID, in.StudentID)
	return rec, nil
}

func checkSourceExam(ctx context.Context, tx *gorm.DB, examID, studentID uuid.UUID) error {
	var exam tasmiModel.TasmiExamModel
	if err := tx.WithContext(ctx).Where("tasmi_exam_id = ?", examID).Take(&exam).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("ujian tasmi' %s tidak ditemukan", examID)
		}
		return fmt.Errorf("load tasmi exam: %w", err)
	}
	if exam.TasmiExamStudentID != studentID {
		return apperror.Validation("ujian tasmi' bukan milik santri ini").WithField("source_exam_id", "student mismatch")
	}
	if !exam.IsAssessed() || !exam.TasmiExamPassed {
		return apperror.Validation("ujian tasmi' belum lulus").WithField("source_exam_id", "not passed")
	}
	return nil
}

// touchRecipient mengunci baris penerima untuk sisa transaksi.
func (s *Service) touchRecipient(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	res := tx.WithContext(ctx).Model(&model.AwardRecipientModel{}).
		Where(colRecipientID+" = ?", id).
		UpdateColumn("award_recipient_updated_at", s.Now())
	if res.Error != nil {
		return fmt.Errorf("lock award recipient: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("penerima %s tidak ditemukan", id)
	}
	return nil
}

func (s *Service) ensureNoCertificate(ctx context.Context, tx *gorm.DB, recipientID uuid.UUID, action string) error {
	_, err := s.Certs.Get(ctx, tx, certModel.SourceAwardRecipient, recipientID)
	switch {
	case err == nil:
		return apperror.InvalidState("tidak bisa %s, sertifikat sudah terbit", action)
	case errors.Is(err, certSvc.ErrCertificateNotFound):
		return nil
	default:
		return err
	}
}

// UpdateRecipientCategory memindahkan penerima; kuota tujuan dicek ulang.
func (s *Service) UpdateRecipientCategory(ctx context.Context, recipientID, newCategoryID uuid.UUID) (*model.AwardRecipientModel, error) {
	if newCategoryID == uuid.Nil {
		return nil, apperror.Validation("kategori wajib diisi").WithField("category_id", "required")
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.touchRecipient(ctx, tx, recipientID); err != nil {
			return err
		}
		rec, err := s.getRecipient(ctx, tx, recipientID)
		if err != nil {
			return err
		}
		if rec.AwardRecipientCategoryID == newCategoryID {
			return nil
		}
		if err := s.ensureNoCertificate(ctx, tx, recipientID, "dipindah"); err != nil {
			return err
		}
		if _, err := s.checkCategoryFor(ctx, tx, newCategoryID, rec.AwardRecipientEventID); err != nil {
			return err
		}
		if err := claimSlot(ctx, tx, newCategoryID); err != nil {
			return err
		}
		if err := releaseSlot(ctx, tx, rec.AwardRecipientCategoryID); err != nil {
			return err
		}

		res := tx.WithContext(ctx).Model(&model.AwardRecipientModel{}).
			Where(colRecipientID+" = ?", recipientID).
			Where("award_recipient_category_id = ?", rec.AwardRecipientCategoryID).
			Update("award_recipient_category_id", newCategoryID)
		if res.Error != nil {
			return fmt.Errorf("move award recipient: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperror.InvalidState("penerima sedang diubah oleh proses lain")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Wisuda.UpdateRecipientCategory] recipient_id=%s category_id=%s", recipientID, newCategoryID)
	return s.GetRecipient(ctx, recipientID)
}

// RemoveRecipient gagal kalau sertifikat penghargaan sudah terbit.
func (s *Service) RemoveRecipient(ctx context.Context, recipientID uuid.UUID) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.touchRecipient(ctx, tx, recipientID); err != nil {
			return err
		}
		if err := s.ensureNoCertificate(ctx, tx, recipientID, "dihapus"); err != nil {
			return err
		}
		rec, err := s.getRecipient(ctx, tx, recipientID)
		if err != nil {
			return err
		}
		if err := tx.WithContext(ctx).Where(colRecipientID+" = ?", recipientID).Delete(&model.AwardRecipientModel{}).Error; err != nil {
			return fmt.Errorf("delete award recipient: %w", err)
		}
		return releaseSlot(ctx, tx, rec.AwardRecipientCategoryID)
	})
	if err != nil {
		return err
	}
	log.Printf("[Wisuda.RemoveRecipient] recipient_id=%s", recipientID)
	return nil
}

// IssueAwardCertificate idempoten; template kategori diutamakan.
func (s *Service) IssueAwardCertificate(ctx context.Context, recipientID, actorID uuid.UUID) (*certModel.CertificateModel, bool, error) {
	if actorID == uuid.Nil {
		return nil, false, apperror.Validation("penerbit wajib diisi")
	}
	rec, err := s.GetRecipient(ctx, recipientID)
	if err != nil {
		return nil, false, err
	}
	if rec.AwardRecipientApprovedAt == nil {
		return nil, false, apperror.Validation("penerima belum disetujui")
	}

	// diisi Guard di dalam transaksi; ResolveTemplate membaca setelahnya
	var preferred uuid.UUID
	cert, created, err := s.Certs.Issue(ctx, certSvc.IssueRequest{
		SourceKind:          certModel.SourceAwardRecipient,
		SourceID:            recipientID,
		PreferredTemplateID: &preferred,
		IssuerID:            actorID,
		Guard: func(tx *gorm.DB) error {
			if err := s.touchRecipient(ctx, tx, recipientID); err != nil {
				return err
			}
			cur, err := s.getRecipient(ctx, tx, recipientID)
			if err != nil {
				return err
			}
			var cat model.AwardCategoryModel
			err = tx.WithContext(ctx).Unscoped().
				Select(colCategoryID, "award_category_template_id").
				Where(colCategoryID+" = ?", cur.AwardRecipientCategoryID).
				Take(&cat).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("load award category: %w", err)
			}
			if cat.AwardCategoryTemplateID != nil {
				preferred = *cat.AwardCategoryTemplateID
			}
			return nil
		},
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		queue.Emit(ctx, s.Events, queue.Event{
			Type: queue.EventCertificateIssued,
			Key:  cert.CertificateID.String(),
			Data: map[string]any{
				"certificate_number": cert.CertificateNumber,
				"certificate_type":   string(cert.CertificateType),
				"award_recipient_id": recipientID.String(),
				"student_id":         rec.AwardRecipientStudentID.String(),
			},
		})
	}
	return cert, created, nil
}

type RecipientFilter struct {
	EventID    uuid.UUID
	CategoryID *uuid.UUID
}

// RecipientView: penerima beserta nama santri, kategori, dan nomor sertifikat (kalau ada).
type RecipientView struct {
	AwardRecipientID  uuid.UUID  `json:"award_recipient_id"`
	EventID           uuid.UUID  `json:"award_event_id"`
	CategoryID        uuid.UUID  `json:"award_category_id"`
	CategoryGroupName string     `json:"award_category_group_name"`
	CategoryName      string     `json:"award_category_name"`
	StudentID         uuid.UUID  `json:"student_id"`
	StudentName       string     `json:"student_name"`
	StudentNIS        string     `json:"student_nis"`
	TasmiExamID       *uuid.UUID `json:"tasmi_exam_id,omitempty"`
	ApprovedAt        *time.Time `json:"approved_at,omitempty"`
	CertificateNumber *string    `json:"certificate_number,omitempty"`
}

func (s *Service) ListRecipients(ctx context.Context, f RecipientFilter) ([]RecipientView, error) {
	if f.EventID == uuid.Nil {
		return nil, apperror.Validation("acara wajib diisi").WithField("event_id", "required")
	}
	q := s.DB.WithContext(ctx).
		Table("award_recipients AS ar").
		Select(`ar.award_recipient_id AS award_recipient_id,
			ar.award_recipient_event_id AS event_id,
			ar.award_recipient_category_id AS category_id,
			ac.award_category_group_name AS category_group_name,
			ac.award_category_name AS category_name,
			s.student_id AS student_id,
			s.student_name AS student_name,
			s.student_nis AS student_nis,
			ar.award_recipient_tasmi_exam_id AS tasmi_exam_id,
			ar.award_recipient_approved_at AS approved_at,
			c.certificate_number AS certificate_number`).
		Joins("JOIN award_categories ac ON ac.award_category_id = ar.award_recipient_category_id").
		Joins("JOIN students s ON s.student_id = ar.award_recipient_student_id").
		Joins("LEFT JOIN certificates c ON c.certificate_award_recipient_id = ar.award_recipient_id").
		Where("ar.award_recipient_event_id = ?", f.EventID)
	if f.CategoryID != nil {
		q = q.Where("ar.award_recipient_category_id = ?", *f.CategoryID)
	}

	var out []RecipientView
	if err := q.Order("ac.award_category_group_name ASC, ac.award_category_name ASC, s.student_name ASC").Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("list award recipients: %w", err)
	}
	return out, nil
}
