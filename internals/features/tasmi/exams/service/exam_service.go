// Package service memegang state machine ujian tasmi':
// PENDING → APPROVED | REJECTED, lalu di dalam APPROVED:
// jadwal → penilaian → publikasi → sertifikat.
//
// Setiap transisi adalah satu UPDATE bersyarat; kalau tidak ada baris yang
// berubah, record dibaca ulang untuk membedakan NotFound dan InvalidState.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	certModel "tahfidz_backend/internals/features/certificates/certificates/model"
	certSvc "tahfidz_backend/internals/features/certificates/certificates/service"
	tasmiModel "tahfidz_backend/internals/features/tasmi/exams/model"
	studentModel "tahfidz_backend/internals/features/users/students/model"
	"tahfidz_backend/internals/helpers/apperror"
	"tahfidz_backend/internals/helpers/queue"
)

const (
	colID         = "tasmi_exam_id"
	colStatus     = "tasmi_exam_status"
	colAssessedAt = "tasmi_exam_assessed_at"
)

type Service struct {
	DB           *gorm.DB
	Certs        *certSvc.Store
	Events       queue.Publisher
	PassingScore float64
	Now          func() time.Time
}

func New(db *gorm.DB, certs *certSvc.Store, events queue.Publisher, passingScore float64) *Service {
	return &Service{
		DB:           db,
		Certs:        certs,
		Events:       events,
		PassingScore: passingScore,
		Now:          time.Now,
	}
}

func (s *Service) Get(ctx context.Context, examID uuid.UUID) (*tasmiModel.TasmiExamModel, error) {
	var m tasmiModel.TasmiExamModel
	if err := s.DB.WithContext(ctx).Where(colID+" = ?", examID).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("ujian tasmi' %s tidak ditemukan", examID)
		}
		return nil, fmt.Errorf("load tasmi exam: %w", err)
	}
	return &m, nil
}

// transition menjalankan UPDATE bersyarat. guard menambahkan kondisi WHERE
// state; classify menjelaskan kenapa record saat ini menolak transisi.
func (s *Service) transition(
	ctx context.Context,
	examID uuid.UUID,
	guard func(q *gorm.DB) *gorm.DB,
	updates map[string]any,
	classify func(cur *tasmiModel.TasmiExamModel) error,
) (*tasmiModel.TasmiExamModel, error) {
	q := s.DB.WithContext(ctx).Model(&tasmiModel.TasmiExamModel{}).Where(colID+" = ?", examID)
	res := guard(q).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("update tasmi exam: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		cur, err := s.Get(ctx, examID)
		if err != nil {
			return nil, err
		}
		return nil, classify(cur)
	}
	return s.Get(ctx, examID)
}

func (s *Service) futureOnly(field string, at time.Time) error {
	if !at.After(s.Now()) {
		return apperror.Validation("tanggal ujian harus setelah waktu sekarang").
			WithField(field, "must be in the future")
	}
	return nil
}

/* =========================
   Register
========================= */

type RegisterInput struct {
	StudentID       uuid.UUID
	Juz             int
	MentorTeacherID *uuid.UUID
	PreferredDate   *time.Time
	AcademicPeriod  string
}

// Register membuat pendaftaran PENDING (jalur santri).
func (s *Service) Register(ctx context.Context, in RegisterInput) (*tasmiModel.TasmiExamModel, error) {
	if in.StudentID == uuid.Nil {
		return nil, apperror.Validation("santri wajib diisi").WithField("student_id", "required")
	}
	if in.Juz < 1 || in.Juz > 30 {
		return nil, apperror.Validation("juz harus 1..30").WithField("juz", "between 1 and 30")
	}
	if in.PreferredDate != nil {
		if err := s.futureOnly("exam_date", *in.PreferredDate); err != nil {
			return nil, err
		}
	}

	var st studentModel.StudentModel
	if err := s.DB.WithContext(ctx).Select("student_id").Where("student_id = ?", in.StudentID).Take(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("santri %s tidak ditemukan", in.StudentID)
		}
		return nil, fmt.Errorf("load student: %w", err)
	}

	m := &tasmiModel.TasmiExamModel{
		TasmiExamStudentID:       in.StudentID,
		TasmiExamJuz:             in.Juz,
		TasmiExamAcademicPeriod:  strings.TrimSpace(in.AcademicPeriod),
		TasmiExamRegisteredAt:    s.Now(),
		TasmiExamMentorTeacherID: in.MentorTeacherID,
		TasmiExamStatus:          tasmiModel.TasmiPending,
		TasmiExamDate:            in.PreferredDate,
	}
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("create tasmi exam: %w", err)
	}
	log.Printf("[Tasmi.Register] exam_id=%s student_id=%s juz=%d", m.TasmiExamID, in.StudentID, in.Juz)
	return m, nil
}

/* =========================
   Verify
========================= */

type VerifyInput struct {
	ExamID     uuid.UUID
	Approve    bool
	VerifierID uuid.UUID
	ExamDate   *time.Time
	Note       *string
}

// Verify adalah satu-satunya jalur PENDING → APPROVED/REJECTED.
// Pengiriman ganda gagal dengan InvalidState.
func (s *Service) Verify(ctx context.Context, in VerifyInput) (*tasmiModel.TasmiExamModel, error) {
	if in.VerifierID == uuid.Nil {
		return nil, apperror.Validation("verifikator wajib diisi").WithField("verifier_id", "required")
	}

	now := s.Now()
	updates := map[string]any{
		"tasmi_exam_verifier_teacher_id": in.VerifierID,
		"tasmi_exam_verified_at":         now,
	}
	if in.Approve {
		updates[colStatus] = tasmiModel.TasmiApproved
		if in.ExamDate != nil {
			if err := s.futureOnly("exam_date", *in.ExamDate); err != nil {
				return nil, err
			}
			updates["tasmi_exam_date"] = *in.ExamDate
		}
	} else {
		updates[colStatus] = tasmiModel.TasmiRejected
		var note *string
		if in.Note != nil && strings.TrimSpace(*in.Note) != "" {
			n := strings.TrimSpace(*in.Note)
			note = &n
		}
		updates["tasmi_exam_rejection_note"] = note
	}

	m, err := s.transition(ctx, in.ExamID,
		func(q *gorm.DB) *gorm.DB { return q.Where(colStatus+" = ?", tasmiModel.TasmiPending) },
		updates,
		func(cur *tasmiModel.TasmiExamModel) error {
			return apperror.InvalidState("ujian sudah diverifikasi (status %s)", cur.TasmiExamStatus)
		},
	)
	if err != nil {
		return nil, err
	}

	log.Printf("[Tasmi.Verify] exam_id=%s status=%s verifier=%s", m.TasmiExamID, m.TasmiExamStatus, in.VerifierID)
	queue.Emit(ctx, s.Events, queue.Event{
		Type: queue.EventTasmiVerified,
		Key:  m.TasmiExamID.String(),
		Data: map[string]any{
			"student_id": m.TasmiExamStudentID.String(),
			"status":     string(m.TasmiExamStatus),
		},
	})
	return m, nil
}

/* =========================
   Schedule
========================= */

type ScheduleInput struct {
	ExamID     uuid.UUID
	ExamDate   time.Time
	ExaminerID *uuid.UUID
}

// Schedule boleh diulang selama APPROVED dan belum dinilai; tanggal lama ditimpa.
func (s *Service) Schedule(ctx context.Context, in ScheduleInput) (*tasmiModel.TasmiExamModel, error) {
	if err := s.futureOnly("exam_date", in.ExamDate); err != nil {
		return nil, err
	}
	updates := map[string]any{"tasmi_exam_date": in.ExamDate}
	if in.ExaminerID != nil && *in.ExaminerID != uuid.Nil {
		updates["tasmi_exam_examiner_teacher_id"] = *in.ExaminerID
	}

	m, err := s.transition(ctx, in.ExamID,
		func(q *gorm.DB) *gorm.DB {
			return q.Where(colStatus+" = ?", tasmiModel.TasmiApproved).Where(colAssessedAt + " IS NULL")
		},
		updates,
		func(cur *tasmiModel.TasmiExamModel) error {
			if cur.TasmiExamStatus != tasmiModel.TasmiApproved {
				return apperror.InvalidState("ujian belum disetujui (status %s)", cur.TasmiExamStatus)
			}
			return apperror.InvalidState("ujian sudah dinilai, jadwal tidak bisa diubah")
		},
	)
	if err != nil {
		return nil, err
	}
	log.Printf("[Tasmi.Schedule] exam_id=%s date=%s", m.TasmiExamID, in.ExamDate.Format(time.RFC3339))
	return m, nil
}

/* =========================
   Publish
========================= */

// Publish membuka hasil ke santri/wali; hanya sekali dan hanya setelah dinilai.
func (s *Service) Publish(ctx context.Context, examID uuid.UUID) (*tasmiModel.TasmiExamModel, error) {
	cur, err := s.Get(ctx, examID)
	if err != nil {
		return nil, err
	}
	if !cur.IsAssessed() || cur.TasmiExamFinalScore == nil {
		return nil, apperror.Validation("nilai akhir belum ada, ujian belum bisa dipublikasikan")
	}

	m, err := s.transition(ctx, examID,
		func(q *gorm.DB) *gorm.DB {
			return q.Where("tasmi_exam_published_at IS NULL").
				Where(colAssessedAt + " IS NOT NULL").
				Where("tasmi_exam_final_score IS NOT NULL")
		},
		map[string]any{"tasmi_exam_published_at": s.Now()},
		func(cur *tasmiModel.TasmiExamModel) error {
			return apperror.InvalidState("hasil ujian sudah dipublikasikan")
		},
	)
	if err != nil {
		return nil, err
	}

	log.Printf("[Tasmi.Publish] exam_id=%s passed=%v", m.TasmiExamID, m.TasmiExamPassed)
	queue.Emit(ctx, s.Events, queue.Event{
		Type: queue.EventTasmiPublished,
		Key:  m.TasmiExamID.String(),
		Data: map[string]any{
			"student_id":  m.TasmiExamStudentID.String(),
			"passed":      m.TasmiExamPassed,
			"final_score": *m.TasmiExamFinalScore,
		},
	})
	return m, nil
}

/* =========================
   Certificate (non-award)
========================= */

// IssueNonAwardCertificate idempoten: sertifikat yang sudah ada dikembalikan
// apa adanya dengan created=false.
func (s *Service) IssueNonAwardCertificate(ctx context.Context, examID, actorID uuid.UUID) (*certModel.CertificateModel, bool, error) {
	if actorID == uuid.Nil {
		return nil, false, apperror.Validation("penerbit wajib diisi")
	}
	m, err := s.Get(ctx, examID)
	if err != nil {
		return nil, false, err
	}
	if !m.IsAssessed() {
		return nil, false, apperror.Validation("ujian belum dinilai")
	}
	if !m.TasmiExamPassed {
		return nil, false, apperror.Validation("santri tidak lulus ujian ini")
	}

	cert, created, err := s.Certs.Issue(ctx, certSvc.IssueRequest{
		SourceKind: certModel.SourceTasmi,
		SourceID:   examID,
		IssuerID:   actorID,
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
				"tasmi_exam_id":      examID.String(),
				"student_id":         m.TasmiExamStudentID.String(),
			},
		})
	}
	return cert, created, nil
}
