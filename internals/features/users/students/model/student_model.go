package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentGender string

const (
	GenderMale   StudentGender = "L"
	GenderFemale StudentGender = "P"
)

// StudentModel dikelola oleh modul data santri; core hanya membacanya
// untuk filter kandidat wisuda (nama/NIS, kelas, gender).
type StudentModel struct {
	StudentID        uuid.UUID     `gorm:"column:student_id;type:uuid;primaryKey" json:"student_id"`
	StudentName      string        `gorm:"column:student_name;type:varchar(120);not null" json:"student_name"`
	StudentNIS       string        `gorm:"column:student_nis;type:varchar(30);not null;uniqueIndex:uq_students_nis" json:"student_nis"`
	StudentGender    StudentGender `gorm:"column:student_gender;type:char(1);not null" json:"student_gender"`
	StudentClassID   *uuid.UUID    `gorm:"column:student_class_id;type:uuid;index" json:"student_class_id,omitempty"`
	StudentClassName *string       `gorm:"column:student_class_name_cache;type:varchar(80)" json:"student_class_name_cache,omitempty"`
	StudentCreatedAt time.Time     `gorm:"column:student_created_at;not null;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time     `gorm:"column:student_updated_at;not null;autoUpdateTime" json:"student_updated_at"`
}

func (StudentModel) TableName() string {
	return "students"
}

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	return nil
}
