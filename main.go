package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"tahfidz_backend/internals/configs"
	database "tahfidz_backend/internals/databases"
	numberSvc "tahfidz_backend/internals/features/certificates/certificate_numbers/service"
	certSvc "tahfidz_backend/internals/features/certificates/certificates/service"
	tasmiSvc "tahfidz_backend/internals/features/tasmi/exams/service"
	awardSvc "tahfidz_backend/internals/features/wisuda/awards/service"
	"tahfidz_backend/internals/helpers/dbtime"
	"tahfidz_backend/internals/helpers/queue"
	middlewares "tahfidz_backend/internals/middlewares"
	routes "tahfidz_backend/internals/route"
)

func main() {
	configs.LoadEnv()
	cfg := configs.Cfg

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		ErrorHandler:            errorHandler,
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app, cfg)

	// 🔌 DB connect + pool
	database.ConnectDB(cfg)
	database.TunePool()
	if err := database.Ping(); err != nil {
		log.Fatalf("❌ DB tidak merespons: %v", err)
	}

	// 📣 event lifecycle (Kafka kalau KAFKA_BROKER diset)
	events := queue.New(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaUsername, cfg.KafkaPassword)

	// 🧩 rakit service
	loc := dbtime.LoadLocation(cfg.SchoolTimezone)
	certs := certSvc.NewStore(database.DB, numberSvc.NewAllocator(loc))
	svc := routes.Services{
		Certs:  certs,
		Tasmi:  tasmiSvc.New(database.DB, certs, events, cfg.TasmiPassingScore),
		Awards: awardSvc.New(database.DB, certs, events, cfg.AwardCandidateLimit),
	}

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, svc, cfg.JWTSecret)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: HTTP → producer → pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if c, ok := events.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Printf("close producer err: %v", err)
		}
	}
	database.Close()
}

// errorHandler: *fiber.Error dari middleware (401 dsb.) tetap keluar dengan envelope JSON.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal Server Error"
	if fe, ok := err.(*fiber.Error); ok {
		code, msg = fe.Code, fe.Message
	} else {
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
	}
	return c.Status(code).JSON(fiber.Map{"success": false, "message": msg})
}
