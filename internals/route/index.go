// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	certRoute "tahfidz_backend/internals/features/certificates/certificates/route"
	certSvc "tahfidz_backend/internals/features/certificates/certificates/service"
	tasmiRoute "tahfidz_backend/internals/features/tasmi/exams/route"
	tasmiSvc "tahfidz_backend/internals/features/tasmi/exams/service"
	awardRoute "tahfidz_backend/internals/features/wisuda/awards/route"
	awardSvc "tahfidz_backend/internals/features/wisuda/awards/service"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/middlewares"
	authMiddleware "tahfidz_backend/internals/middlewares/auth"
)

var startTime time.Time

// Services adalah service domain yang sudah dirakit di main.go.
type Services struct {
	Tasmi  *tasmiSvc.Service
	Awards *awardSvc.Service
	Certs  *certSvc.Store
}

func SetupRoutes(app *fiber.App, db *gorm.DB, svc Services, jwtSecret string) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	jwt := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              jwtSecret,
		AllowCookieFallback: true,
	})

	// ===================== GROUPS =====================

	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public", middlewares.PublicVerifyRateLimiter())

	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u", jwt)

	log.Println("[INFO] Setting up ADMIN group (Auth + teacher/admin)...")
	admin := app.Group("/api/a", jwt,
		authMiddleware.OnlyRoles(constants.RoleErrorTeacher("tasmi'"), constants.TeacherAndAbove...),
	)
	wisuda := admin.Group("/wisuda",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("wisuda"), constants.AdminAndAbove...),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Certificate routes...")
	certRoute.CertificatePublicRoutes(public, svc.Certs)
	certRoute.CertificateAdminRoutes(admin, svc.Certs)

	log.Println("[INFO] Mounting Tasmi routes...")
	tasmiRoute.TasmiUserRoutes(user, svc.Tasmi)
	tasmiRoute.TasmiAdminRoutes(admin, svc.Tasmi)

	log.Println("[INFO] Mounting Wisuda routes...")
	awardRoute.AwardAdminRoutes(wisuda, svc.Awards)
}
