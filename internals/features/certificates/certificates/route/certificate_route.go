package route

import (
	"github.com/gofiber/fiber/v2"

	ctl "tahfidz_backend/internals/features/certificates/certificates/controller"
	svc "tahfidz_backend/internals/features/certificates/certificates/service"
)

// /api/public/certificates (tanpa auth)
func CertificatePublicRoutes(r fiber.Router, store *svc.Store) {
	h := ctl.NewCertificateController(store)
	r.Get("/certificates/:number", h.VerifyByNumber)
}

// /api/a/certificates (admin/guru)
func CertificateAdminRoutes(r fiber.Router, store *svc.Store) {
	h := ctl.NewCertificateController(store)
	r.Get("/certificates/templates", h.ListTemplates)
}
