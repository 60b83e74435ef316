package route

import (
	"github.com/gofiber/fiber/v2"

	ctl "tahfidz_backend/internals/features/wisuda/awards/controller"
	svc "tahfidz_backend/internals/features/wisuda/awards/service"
)

// r sudah di-mount di /api/a/wisuda dengan guard role admin.
func AwardAdminRoutes(r fiber.Router, s *svc.Service) {
	h := ctl.NewAwardController(s)
	g := r

	g.Get("/candidates", h.FindCandidates)

	ev := g.Group("/events")
	ev.Get("/", h.ListEvents)
	ev.Post("/", h.CreateEvent)
	ev.Get("/:id", h.GetEvent)
	ev.Patch("/:id", h.UpdateEvent)
	ev.Get("/:id/categories", h.ListCategories)
	ev.Get("/:id/recipients", h.ListRecipients)

	cat := g.Group("/categories")
	cat.Post("/", h.CreateCategory)
	cat.Patch("/:id", h.UpdateCategory)
	cat.Delete("/:id", h.DeleteCategory)

	rec := g.Group("/recipients")
	rec.Post("/", h.CreateRecipient)
	rec.Patch("/:id", h.UpdateRecipientCategory)
	rec.Delete("/:id", h.RemoveRecipient)
	rec.Post("/:id/certificate", h.IssueCertificate)
}
