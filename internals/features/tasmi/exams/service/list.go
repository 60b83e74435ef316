package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	tasmiModel "tahfidz_backend/internals/features/tasmi/exams/model"
)

type ListFilter struct {
	Status         *tasmiModel.TasmiStatus
	StudentID      *uuid.UUID
	TeacherID      *uuid.UUID // mentor atau penguji
	AcademicPeriod string
	Offset         int
	Limit          int
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]tasmiModel.TasmiExamModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&tasmiModel.TasmiExamModel{})
	if f.Status != nil {
		q = q.Where(colStatus+" = ?", *f.Status)
	}
	if f.StudentID != nil {
		q = q.Where("tasmi_exam_student_id = ?", *f.StudentID)
	}
	if f.TeacherID != nil {
		q = q.Where("(tasmi_exam_mentor_teacher_id = ? OR tasmi_exam_examiner_teacher_id = ?)", *f.TeacherID, *f.TeacherID)
	}
	if p := strings.TrimSpace(f.AcademicPeriod); p != "" {
		q = q.Where("tasmi_exam_academic_period = ?", p)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count tasmi exams: %w", err)
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}
	var rows []tasmiModel.TasmiExamModel
	if err := q.Order("tasmi_exam_registered_at DESC").Order(colID).
		Offset(f.Offset).Limit(f.Limit).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list tasmi exams: %w", err)
	}
	return rows, total, nil
}
