// file: internals/features/wisuda/awards/controller/award_controller.go
package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	certDTO "tahfidz_backend/internals/features/certificates/certificates/dto"
	studentModel "tahfidz_backend/internals/features/users/students/model"
	dto "tahfidz_backend/internals/features/wisuda/awards/dto"
	svc "tahfidz_backend/internals/features/wisuda/awards/service"
	helper "tahfidz_backend/internals/helpers"
)

type AwardController struct {
	Svc *svc.Service
}

func NewAwardController(s *svc.Service) *AwardController {
	return &AwardController{Svc: s}
}

/* =========================
   EVENTS
   ========================= */

// POST /api/a/wisuda/events
func (ctl *AwardController) CreateEvent(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromAppError(c, err)
	}
	ev, err := ctl.Svc.CreateEvent(c.Context(), req.ToInput())
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonCreated(c, "Acara wisuda dibuat", ev)
}

// GET /api/a/wisuda/events?active=true
func (ctl *AwardController) ListEvents(c *fiber.Ctx) error {
	activeOnly := strings.EqualFold(strings.TrimSpace(c.Query("active")), "true")
	rows, err := ctl.Svc.ListEvents(c.Context(), activeOnly)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonOK(c, "OK", rows)
}

// GET /api/a/wisuda/events/:id
func (ctl *AwardController) GetEvent(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	ev, err := ctl.Svc.GetEvent(c.Context(), id)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonOK(c, "OK", ev)
}

// PATCH /api/a/wisuda/events/:id
func (ctl *AwardController) UpdateEvent(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	var req dto.UpdateEventRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromAppError(c, err)
	}
	ev, err := ctl.Svc.UpdateEvent(c.Context(), id, req.ToInput())
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonOK(c, "Acara wisuda diperbarui", ev)
}

/* =========================
   CATEGORIES
   ========================= */

// GET /api/a/wisuda/events/:id/categories
func (ctl *AwardController) ListCategories(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	rows, err := ctl.Svc.ListCategories(c.Context(), id)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.FromCategories(rows))
}

// POST /api/a/wisuda/categories
func (ctl *AwardController) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromAppError(c, err)
	}
	cat, err := ctl.Svc.CreateCategory(c.Context(), req.ToInput())
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonCreated(c, "Kategori dibuat", dto.FromCategory(cat))
}

// PATCH /api/a/wisuda/categories/:id
func (ctl *AwardController) UpdateCategory(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	var req dto.UpdateCategoryRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromAppError(c, err)
	}
	cat, err := ctl.Svc.UpdateCategory(c.Context(), id, req.ToPatch())
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonOK(c, "Kategori diperbarui", dto.FromCategory(cat))
}

// DELETE /api/a/wisuda/categories/:id
func (ctl *AwardController) DeleteCategory(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	if err := ctl.Svc.DeleteCategory(c.Context(), id); err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonDeleted(c, "Kategori dihapus", fiber.Map{"award_category_id": id})
}

/* =========================
   CANDIDATES
   ========================= */

// GET /api/a/wisuda/candidates?q=&class_id=&period=&gender=L|P&limit=
func (ctl *AwardController) FindCandidates(c *fiber.Ctx) error {
	classID, err := helper.QueryUUIDPtr(c, "class_id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	limit, _ := strconv.Atoi(strings.TrimSpace(c.Query("limit")))

	rows, err := ctl.Svc.FindCandidates(c.Context(), svc.CandidateFilter{
		Search:  c.Query("q"),
		ClassID: classID,
		Period:  c.Query("period"),
		Gender:  studentModel.StudentGender(strings.TrimSpace(c.Query("gender"))),
		Limit:   limit,
	})
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonOK(c, "OK", rows)
}

/* =========================
   RECIPIENTS
   ========================= */

// GET /api/a/wisuda/events/:id/recipients?category_id=
func (ctl *AwardController) ListRecipients(c *fiber.Ctx) error {
	eventID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	categoryID, err := helper.QueryUUIDPtr(c, "category_id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	rows, err := ctl.Svc.ListRecipients(c.Context(), svc.RecipientFilter{EventID: eventID, CategoryID: categoryID})
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonOK(c, "OK", rows)
}

// POST /api/a/wisuda/recipients
func (ctl *AwardController) CreateRecipient(c *fiber.Ctx) error {
	approver, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	var req dto.CreateRecipientRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromAppError(c, err)
	}
	rec, err := ctl.Svc.CreateRecipient(c.Context(), req.ToInput(approver))
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonCreated(c, "Penerima ditambahkan", rec)
}

// PATCH /api/a/wisuda/recipients/:id
func (ctl *AwardController) UpdateRecipientCategory(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	var req dto.UpdateRecipientCategoryRequest
	if err := helper.BindAndValidate(c, &req); err != nil {
		return helper.FromAppError(c, err)
	}
	rec, err := ctl.Svc.UpdateRecipientCategory(c.Context(), id, req.CategoryID)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonOK(c, "Kategori penerima diperbarui", rec)
}

// DELETE /api/a/wisuda/recipients/:id
func (ctl *AwardController) RemoveRecipient(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	if err := ctl.Svc.RemoveRecipient(c.Context(), id); err != nil {
		return helper.FromAppError(c, err)
	}
	return helper.JsonDeleted(c, "Penerima dihapus", fiber.Map{"award_recipient_id": id})
}

// POST /api/a/wisuda/recipients/:id/certificate
func (ctl *AwardController) IssueCertificate(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromAppError(c, err)
	}
	actor, err := helper.GetUserID(c)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	cert, created, err := ctl.Svc.IssueAwardCertificate(c.Context(), id, actor)
	if err != nil {
		return helper.FromAppError(c, err)
	}
	if created {
		return helper.JsonCreated(c, "Sertifikat penghargaan diterbitkan", certDTO.FromModel(cert, true))
	}
	return helper.JsonOK(c, "Sertifikat sudah pernah diterbitkan", certDTO.FromModel(cert, false))
}
