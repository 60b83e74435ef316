package route

import (
	"github.com/gofiber/fiber/v2"

	ctl "tahfidz_backend/internals/features/tasmi/exams/controller"
	svc "tahfidz_backend/internals/features/tasmi/exams/service"
)

// /api/u/tasmi (santri/wali)
func TasmiUserRoutes(r fiber.Router, s *svc.Service) {
	h := ctl.NewTasmiExamController(s)
	g := r.Group("/tasmi")
	g.Post("/", h.Register)
	g.Get("/:id", h.GetByID)
}

// /api/a/tasmi (guru/admin)
func TasmiAdminRoutes(r fiber.Router, s *svc.Service) {
	h := ctl.NewTasmiExamController(s)
	g := r.Group("/tasmi")
	g.Get("/", h.List)
	g.Get("/:id", h.GetByID)
	g.Post("/:id/verify", h.Verify)
	g.Post("/:id/schedule", h.Schedule)
	g.Post("/:id/assessment", h.RecordAssessment)
	g.Post("/:id/publish", h.Publish)
	g.Post("/:id/certificate", h.IssueCertificate)
}
