package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	tasmiModel "tahfidz_backend/internals/features/tasmi/exams/model"
	studentModel "tahfidz_backend/internals/features/users/students/model"
	"tahfidz_backend/internals/helpers/apperror"
)

type CandidateFilter struct {
	Search  string // nama atau NIS
	ClassID *uuid.UUID
	Period  string
	Gender  studentModel.StudentGender
	Limit   int
}

// Candidate adalah ujian lulus yang belum dipakai penerima mana pun.
type Candidate struct {
	TasmiExamID    uuid.UUID                  `json:"tasmi_exam_id"`
	StudentID      uuid.UUID                  `json:"student_id"`
	StudentName    string                     `json:"student_name"`
	StudentNIS     string                     `json:"student_nis"`
	StudentGender  studentModel.StudentGender `json:"student_gender"`
	ClassID        *uuid.UUID                 `json:"class_id,omitempty"`
	ClassName      *string                    `json:"class_name,omitempty"`
	Juz            int                        `json:"juz"`
	AcademicPeriod string                     `json:"academic_period,omitempty"`
	FinalScore     *float64                   `json:"final_score,omitempty"`
	AssessedAt     time.Time                  `json:"assessed_at"`
}

// FindCandidates: hanya ujian lulus, sudah dinilai, dan belum punya penerima.
// Urut dari penilaian terbaru, dibatasi CandidateLimit.
func (s *Service) FindCandidates(ctx context.Context, f CandidateFilter) ([]Candidate, error) {
	limit := s.CandidateLimit
	if f.Limit > 0 && f.Limit < limit {
		limit = f.Limit
	}

	q := s.DB.WithContext(ctx).
		Table("tasmi_exams AS te").
		Select(`te.tasmi_exam_id AS tasmi_exam_id,
			s.student_id AS student_id,
			s.student_name AS student_name,
			s.student_nis AS student_nis,
			s.student_gender AS student_gender,
			s.student_class_id AS class_id,
			s.student_class_name_cache AS class_name,
			te.tasmi_exam_juz AS juz,
			te.tasmi_exam_academic_period AS academic_period,
			te.tasmi_exam_final_score AS final_score,
			te.tasmi_exam_assessed_at AS assessed_at`).
		Joins("JOIN students s ON s.student_id = te.tasmi_exam_student_id").
		Where("te.tasmi_exam_status = ?", tasmiModel.TasmiApproved).
		Where("te.tasmi_exam_passed = ?", true).
		Where("te.tasmi_exam_assessed_at IS NOT NULL").
		Where(`NOT EXISTS (
			SELECT 1 FROM award_recipients ar
			WHERE ar.award_recipient_tasmi_exam_id = te.tasmi_exam_id
		)`)

	if v := strings.ToLower(strings.TrimSpace(f.Search)); v != "" {
		like := "%" + v + "%"
		q = q.Where("(LOWER(s.student_name) LIKE ? OR LOWER(s.student_nis) LIKE ?)", like, like)
	}
	if f.ClassID != nil {
		q = q.Where("s.student_class_id = ?", *f.ClassID)
	}
	if v := strings.TrimSpace(f.Period); v != "" {
		q = q.Where("te.tasmi_exam_academic_period = ?", v)
	}
	switch g := studentModel.StudentGender(strings.ToUpper(string(f.Gender))); g {
	case "":
	case studentModel.GenderMale, studentModel.GenderFemale:
		q = q.Where("s.student_gender = ?", g)
	default:
		return nil, apperror.Validation("gender harus L atau P").WithField("gender", "oneof=L P")
	}

	var out []Candidate
	if err := q.Order("te.tasmi_exam_assessed_at DESC").Order("te.tasmi_exam_id").Limit(limit).Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("find award candidates: %w", err)
	}
	return out, nil
}
