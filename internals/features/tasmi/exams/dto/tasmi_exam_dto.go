// file: internals/features/tasmi/exams/dto/tasmi_exam_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	model "tahfidz_backend/internals/features/tasmi/exams/model"
	svc "tahfidz_backend/internals/features/tasmi/exams/service"
)

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

/* =========================================================
   Requests
   ========================================================= */

type RegisterTasmiRequest struct {
	StudentID       uuid.UUID  `json:"student_id" validate:"required"`
	Juz             int        `json:"juz" validate:"required,min=1,max=30"`
	MentorTeacherID *uuid.UUID `json:"mentor_teacher_id" validate:"omitempty"`
	PreferredDate   *time.Time `json:"preferred_date" validate:"omitempty"`
	AcademicPeriod  string     `json:"academic_period" validate:"omitempty,max=40"`
}

func (r *RegisterTasmiRequest) ToInput() svc.RegisterInput {
	return svc.RegisterInput{
		StudentID:       r.StudentID,
		Juz:             r.Juz,
		MentorTeacherID: r.MentorTeacherID,
		PreferredDate:   r.PreferredDate,
		AcademicPeriod:  strings.TrimSpace(r.AcademicPeriod),
	}
}

type VerifyTasmiRequest struct {
	Approve  *bool      `json:"approve" validate:"required"`
	ExamDate *time.Time `json:"exam_date" validate:"omitempty"`
	Note     *string    `json:"note" validate:"omitempty,max=1000"`
}

func (r *VerifyTasmiRequest) ToInput(examID, verifierID uuid.UUID) svc.VerifyInput {
	return svc.VerifyInput{
		ExamID:     examID,
		Approve:    *r.Approve,
		VerifierID: verifierID,
		ExamDate:   r.ExamDate,
		Note:       trimPtr(r.Note),
	}
}

type ScheduleTasmiRequest struct {
	ExamDate          time.Time  `json:"exam_date" validate:"required"`
	ExaminerTeacherID *uuid.UUID `json:"examiner_teacher_id" validate:"omitempty"`
}

type ScoreComponentRequest struct {
	Name  string  `json:"name" validate:"required,max=60"`
	Score float64 `json:"score" validate:"gte=0,lte=100"`
}

type AssessmentRequest struct {
	Scores            []ScoreComponentRequest `json:"scores" validate:"omitempty,dive"`
	FinalScore        *float64                `json:"final_score" validate:"omitempty,gte=0,lte=100"`
	Passed            *bool                   `json:"passed"`
	ExaminerTeacherID *uuid.UUID              `json:"examiner_teacher_id" validate:"omitempty"`
}

func (r *AssessmentRequest) ToInput(examID uuid.UUID) svc.AssessmentInput {
	comps := make([]model.ScoreComponent, 0, len(r.Scores))
	for _, s := range r.Scores {
		comps = append(comps, model.ScoreComponent{Name: strings.TrimSpace(s.Name), Score: s.Score})
	}
	return svc.AssessmentInput{
		ExamID:     examID,
		ExaminerID: r.ExaminerTeacherID,
		Components: comps,
		FinalScore: r.FinalScore,
		Passed:     r.Passed,
	}
}

/* =========================================================
   Response
   ========================================================= */

type TasmiExamResponse struct {
	TasmiExamID        uuid.UUID         `json:"tasmi_exam_id"`
	TasmiExamStudentID uuid.UUID         `json:"tasmi_exam_student_id"`
	TasmiExamJuz       int               `json:"tasmi_exam_juz"`
	TasmiExamStatus    model.TasmiStatus `json:"tasmi_exam_status"`

	TasmiExamAcademicPeriod string    `json:"tasmi_exam_academic_period,omitempty"`
	TasmiExamRegisteredAt   time.Time `json:"tasmi_exam_registered_at"`

	TasmiExamMentorTeacherID   *uuid.UUID `json:"tasmi_exam_mentor_teacher_id,omitempty"`
	TasmiExamVerifierTeacherID *uuid.UUID `json:"tasmi_exam_verifier_teacher_id,omitempty"`
	TasmiExamExaminerTeacherID *uuid.UUID `json:"tasmi_exam_examiner_teacher_id,omitempty"`

	TasmiExamRejectionNote *string    `json:"tasmi_exam_rejection_note,omitempty"`
	TasmiExamVerifiedAt    *time.Time `json:"tasmi_exam_verified_at,omitempty"`
	TasmiExamDate          *time.Time `json:"tasmi_exam_date,omitempty"`

	TasmiExamScores      []model.ScoreComponent `json:"tasmi_exam_scores,omitempty"`
	TasmiExamFinalScore  *float64               `json:"tasmi_exam_final_score,omitempty"`
	TasmiExamPassed      bool                   `json:"tasmi_exam_passed"`
	TasmiExamAssessedAt  *time.Time             `json:"tasmi_exam_assessed_at,omitempty"`
	TasmiExamPublishedAt *time.Time             `json:"tasmi_exam_published_at,omitempty"`
}

func FromModel(m *model.TasmiExamModel) TasmiExamResponse {
	out := TasmiExamResponse{
		TasmiExamID:                m.TasmiExamID,
		TasmiExamStudentID:         m.TasmiExamStudentID,
		TasmiExamJuz:               m.TasmiExamJuz,
		TasmiExamStatus:            m.TasmiExamStatus,
		TasmiExamAcademicPeriod:    m.TasmiExamAcademicPeriod,
		TasmiExamRegisteredAt:      m.TasmiExamRegisteredAt,
		TasmiExamMentorTeacherID:   m.TasmiExamMentorTeacherID,
		TasmiExamVerifierTeacherID: m.TasmiExamVerifierTeacherID,
		TasmiExamExaminerTeacherID: m.TasmiExamExaminerTeacherID,
		TasmiExamRejectionNote:     m.TasmiExamRejectionNote,
		TasmiExamVerifiedAt:        m.TasmiExamVerifiedAt,
		TasmiExamDate:              m.TasmiExamDate,
		TasmiExamFinalScore:        m.TasmiExamFinalScore,
		TasmiExamPassed:            m.TasmiExamPassed,
		TasmiExamAssessedAt:        m.TasmiExamAssessedAt,
		TasmiExamPublishedAt:       m.TasmiExamPublishedAt,
	}
	if len(m.TasmiExamScores) > 0 {
		// skor rusak tidak menggagalkan response
		_ = sonic.Unmarshal(m.TasmiExamScores, &out.TasmiExamScores)
	}
	return out
}

func FromModels(rows []model.TasmiExamModel) []TasmiExamResponse {
	out := make([]TasmiExamResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}
