package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	tasmiModel "tahfidz_backend/internals/features/tasmi/exams/model"
	"tahfidz_backend/internals/helpers/apperror"
)

type AssessmentInput struct {
	ExamID     uuid.UUID
	ExaminerID *uuid.UUID
	Components []tasmiModel.ScoreComponent

	// FinalScore kosong = rata-rata komponen
	FinalScore *float64
	// Passed kosong = FinalScore >= PassingScore
	Passed *bool
}

func validScore(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 100
}

// FinalScoreOf menghitung nilai akhir: nilai eksplisit kalau ada,
// kalau tidak rata-rata komponen dibulatkan dua desimal.
func FinalScoreOf(components []tasmiModel.ScoreComponent, explicit *float64) (float64, error) {
	if explicit != nil {
		if !validScore(*explicit) {
			return 0, apperror.Validation("nilai akhir harus 0..100").WithField("final_score", "between 0 and 100")
		}
		return *explicit, nil
	}
	if len(components) == 0 {
		return 0, apperror.Validation("komponen nilai atau nilai akhir wajib diisi").WithField("scores", "required")
	}
	var sum float64
	for _, c := range components {
		sum += c.Score
	}
	return math.Round(sum/float64(len(components))*100) / 100, nil
}

// RecordAssessment mengisi nilai sekali saja; penilaian kedua ditolak.
func (s *Service) RecordAssessment(ctx context.Context, in AssessmentInput) (*tasmiModel.TasmiExamModel, error) {
	for i, c := range in.Components {
		field := fmt.Sprintf("scores[%d]", i)
		if strings.TrimSpace(c.Name) == "" {
			return nil, apperror.Validation("nama komponen nilai wajib diisi").WithField(field+".name", "required")
		}
		if !validScore(c.Score) {
			return nil, apperror.Validation("nilai %q harus 0..100", c.Name).WithField(field+".score", "between 0 and 100")
		}
	}
	final, err := FinalScoreOf(in.Components, in.FinalScore)
	if err != nil {
		return nil, err
	}

	raw, err := sonic.Marshal(in.Components)
	if err != nil {
		return nil, fmt.Errorf("encode scores: %w", err)
	}
	passed := final >= s.PassingScore
	if in.Passed != nil {
		passed = *in.Passed
	}

	updates := map[string]any{
		"tasmi_exam_scores":      datatypes.JSON(raw),
		"tasmi_exam_final_score": final,
		"tasmi_exam_passed":      passed,
		colAssessedAt:            s.Now(),
	}
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
			return apperror.InvalidState("ujian sudah dinilai")
		},
	)
	if err != nil {
		return nil, err
	}
	log.Printf("[Tasmi.Assessment] exam_id=%s final=%.2f passed=%v", m.TasmiExamID, final, passed)
	return m, nil
}
