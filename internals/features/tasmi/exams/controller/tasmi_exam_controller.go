// file: internals/features/tasmi/exams/controller/tasmi_exam_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	certDTO "tahfidz_backend/internals/features/certificates/certificates/dto"
	dto "tahfidz_backend/internals/features/tasmi/exams/dto"
	model "tahfidz_backend/internals/features/tasmi/exams/model"
	svc "tahfidz_backend/internals/features/tasmi/exams/service"
	helper "tahfidz_backend/internals/helpers"
)

type TasmiExamController struct {
	Svc *svc.Service
}

func NewTasmiExamController(s *svc.Service) *TasmiExamController {
	return &TasmiExamController{Svc: s}
}

/*
=========================================================

	REGISTER
	POST /api/u/tasmi
	=========================================================
*/
func (ctl *TasmiExamController) Register(c *fiber.Ctx) error {
	var req dto.RegisterTasmiRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromAppError(c, err)
	}
	m, err := ctl.Svc.Register(c.Context(), req.ToInput())
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonCreated(c, "Pendaftaran tasmi' berhasil", dto.FromModel(m))
}

/*
=========================================================

	LIST
	GET /api/a/tasmi?status=&student_id=&teacher_id=&academic_period=&page=&per_page=
	=========================================================
*/
func (ctl *TasmiExamController) List(c *fiber.Ctx) error {
	var f svc.ListFilter

	if v := strings.ToUpper(strings.TrimSpace(c.Query("status"))); v != "" {
		st := model.TasmiStatus(v)
		switch st {
		case model.TasmiPending, model.TasmiApproved, model.TasmiRejected:
			f.Status = &st
		default:
			return helper.JsonError(c, fiber.StatusBadRequest, "status tidak dikenal")
		}
	}
	var err error
	if f.StudentID, err = helper.QueryUUIDPtr(c, "student_id"); err != nil {
		return helper.FromAppError(c, err)
	}
	if f.TeacherID, err = helper.QueryUUIDPtr(c, "teacher_id"); err != nil {
		return helper.FromAppError(c, err)
	}
	f.AcademicPeriod = c.Query("academic_period")

	pg := helper.ResolvePaging(c, 20, 100)
	f.Offset, f.Limit = pg.Offset, pg.Limit

	rows, total, err := ctl.Svc.List(c.Context(), f)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	meta := helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage, len(rows))
	return helper.JsonList(c, "OK", dto.FromModels(rows), &meta)
}

// GET /api/a/tasmi/:id
func (ctl *TasmiExamController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	m, err := ctl.Svc.Get(c.Context(), id)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.FromModel(m))
}

// POST /api/a/tasmi/:id/verify
func (ctl *TasmiExamController) Verify(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	verifier, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	var req dto.VerifyTasmiRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromAppError(c, err)
	}

	m, err := ctl.Svc.Verify(c.Context(), req.ToInput(id, verifier))
	if err != nil {
		return helper.FromAppError(c, err)
	}
	msg := "Pendaftaran disetujui"
	if m.TasmiExamStatus == model.TasmiRejected {
		msg = "Pendaftaran ditolak"
	}
	return helper.JsonOK(c, msg, dto.FromModel(m))
}

// POST /api/a/tasmi/:id/schedule
func (ctl *TasmiExamController) Schedule(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	var req dto.ScheduleTasmiRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromAppError(c, err)
	}
	m, err := ctl.Svc.Schedule(c.Context(), svc.ScheduleInput{
		ExamID:     id,
		ExamDate:   req.ExamDate,
		ExaminerID: req.ExaminerTeacherID,
	})
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonOK(c, "Jadwal ujian disimpan", dto.FromModel(m))
}

// POST /api/a/tasmi/:id/assessment
func (ctl *TasmiExamController) RecordAssessment(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	var req dto.AssessmentRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromAppError(c, err)
	}
	in := req.ToInput(id)
	if in.ExaminerID == nil {
		if uid, err := helper.GetUserID(c); err == nil {
			in.ExaminerID = &uid
		}
	}
	m, err := ctl.Svc.RecordAssessment(c.Context(), in)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonOK(c, "Nilai ujian disimpan", dto.FromModel(m))
}

// POST /api/a/tasmi/:id/publish
func (ctl *TasmiExamController) Publish(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	m, err := ctl.Svc.Publish(c.Context(), id)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonOK(c, "Hasil ujian dipublikasikan", dto.FromModel(m))
}

// POST /api/a/tasmi/:id/certificate
func (ctl *TasmiExamController) IssueCertificate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	actor, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	cert, created, err := ctl.Svc.IssueNonAwardCertificate(c.Context(), id, actor)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	if created {
		return helper.JsonCreated(c, "Sertifikat diterbitkan", certDTO.FromModel(cert, true))
	}
	return helper.JsonOK(c, "Sertifikat sudah pernah diterbitkan", certDTO.FromModel(cert, false))
}
