package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"tahfidz_backend/internals/configs"
	"tahfidz_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global dengan urutan tetap:
// recover → request-id → logger → CORS → rate limit.
func SetupMiddlewares(app *fiber.App, cfg configs.Config) {
	app.Use(RecoveryMiddleware())
	app.Use(requestid.New())
	app.Use(logger.LoggerMiddleware(cfg.SchoolTimezone))
	app.Use(CorsMiddleware(cfg.CorsOrigins))
	app.Use(GlobalRateLimiter())
}
