// file: internals/features/tasmi/exams/model/tasmi_exam_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ======================================================
   ENUM: tasmi_status
====================================================== */

type TasmiStatus string

const (
	TasmiPending  TasmiStatus = "PENDING"
	TasmiApproved TasmiStatus = "APPROVED"
	TasmiRejected TasmiStatus = "REJECTED"
)

/* ======================================================
   Model: tasmi_exams
   APPROVED adalah state panjang; progresnya ditandai oleh
   exam_date → assessed_at → published_at.
====================================================== */

type TasmiExamModel struct {
	TasmiExamID        uuid.UUID `gorm:"column:tasmi_exam_id;type:uuid;primaryKey" json:"tasmi_exam_id"`
	TasmiExamStudentID uuid.UUID `gorm:"column:tasmi_exam_student_id;type:uuid;not null;index" json:"tasmi_exam_student_id"`
	TasmiExamJuz       int       `gorm:"column:tasmi_exam_juz;not null" json:"tasmi_exam_juz"`

	// label periode akademik, mis. "2025/2026-GANJIL"
	TasmiExamAcademicPeriod string    `gorm:"column:tasmi_exam_academic_period;type:varchar(40);index" json:"tasmi_exam_academic_period"`
	TasmiExamRegisteredAt   time.Time `gorm:"column:tasmi_exam_registered_at;not null" json:"tasmi_exam_registered_at"`

	// Guru
	TasmiExamMentorTeacherID   *uuid.UUID `gorm:"column:tasmi_exam_mentor_teacher_id;type:uuid;index" json:"tasmi_exam_mentor_teacher_id,omitempty"`
	TasmiExamVerifierTeacherID *uuid.UUID `gorm:"column:tasmi_exam_verifier_teacher_id;type:uuid" json:"tasmi_exam_verifier_teacher_id,omitempty"`
	TasmiExamExaminerTeacherID *uuid.UUID `gorm:"column:tasmi_exam_examiner_teacher_id;type:uuid;index" json:"tasmi_exam_examiner_teacher_id,omitempty"`

	// Verifikasi
	TasmiExamStatus        TasmiStatus `gorm:"column:tasmi_exam_status;type:varchar(16);not null;index" json:"tasmi_exam_status"`
	TasmiExamRejectionNote *string     `gorm:"column:tasmi_exam_rejection_note;type:text" json:"tasmi_exam_rejection_note,omitempty"`
	TasmiExamVerifiedAt    *time.Time  `gorm:"column:tasmi_exam_verified_at" json:"tasmi_exam_verified_at,omitempty"`

	// Jadwal
	TasmiExamDate *time.Time `gorm:"column:tasmi_exam_date" json:"tasmi_exam_date,omitempty"`

	// Penilaian (diisi sekali)
	TasmiExamScores     datatypes.JSON `gorm:"column:tasmi_exam_scores" json:"tasmi_exam_scores,omitempty"`
	TasmiExamFinalScore *float64       `gorm:"column:tasmi_exam_final_score" json:"tasmi_exam_final_score,omitempty"`
	TasmiExamPassed     bool           `gorm:"column:tasmi_exam_passed;not null;default:false;index" json:"tasmi_exam_passed"`
	TasmiExamAssessedAt *time.Time     `gorm:"column:tasmi_exam_assessed_at;index" json:"tasmi_exam_assessed_at,omitempty"`

	// Publikasi
	TasmiExamPublishedAt *time.Time `gorm:"column:tasmi_exam_published_at" json:"tasmi_exam_published_at,omitempty"`

	TasmiExamCreatedAt time.Time `gorm:"column:tasmi_exam_created_at;not null;autoCreateTime" json:"tasmi_exam_created_at"`
	TasmiExamUpdatedAt time.Time `gorm:"column:tasmi_exam_updated_at;not null;autoUpdateTime" json:"tasmi_exam_updated_at"`
}

func (TasmiExamModel) TableName() string {
	return "tasmi_exams"
}

func (m *TasmiExamModel) BeforeCreate(tx *gorm.DB) error {
	if m.TasmiExamID == uuid.Nil {
		m.TasmiExamID = uuid.New()
	}
	if m.TasmiExamStatus == "" {
		m.TasmiExamStatus = TasmiPending
	}
	return nil
}

func (m *TasmiExamModel) IsAssessed() bool { return m.TasmiExamAssessedAt != nil }

func (m *TasmiExamModel) IsPublished() bool { return m.TasmiExamPublishedAt != nil }

// ScoreComponent adalah satu komponen nilai (mis. kelancaran, tajwid, fashohah).
type ScoreComponent struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}
