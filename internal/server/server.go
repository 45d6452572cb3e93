package server

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"hotel-rooms-be/internal/bootstrap"
	"hotel-rooms-be/internal/config"
	"hotel-rooms-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:    10 * 1024 * 1024, // 10MB, uploads are capped lower per file
		ErrorHandler: serverutils.ErrorHandler(container.Logger),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(corsConfig(cfg.App.CorsAllowedOrigins)))

	// OpenTelemetry tracing middleware (no-op unless a tracer provider is installed)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.RequestLogger(container.Logger))

	if cfg.Storage.Driver == "" || cfg.Storage.Driver == "local" {
		registerStatic(app, cfg.Storage.UploadDir)
	}

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// corsConfig allows credentials only for an explicit origin list. Fiber
// refuses a wildcard origin combined with credentials.
func corsConfig(origins string) cors.Config {
	c := cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Conversation-ID, X-Request-ID",
		AllowMethods:     "GET, POST, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, X-Conversation-ID, X-Request-ID",
	}

	wildcard := strings.TrimSpace(origins) == ""
	for _, origin := range strings.Split(origins, ",") {
		if strings.TrimSpace(origin) == "*" {
			wildcard = true
		}
	}
	if wildcard {
		c.AllowOrigins = "*"
		c.AllowCredentials = false
	}
	return c
}

// registerStatic serves the parent of the room upload dir so URLs read
// /uploads/rooms/<file>. Dot segments such as the staging area are skipped.
func registerStatic(app *fiber.App, uploadDir string) {
	app.Static("/uploads", filepath.Dir(filepath.Clean(uploadDir)), fiber.Static{
		Next: hasHiddenSegment,
	})
}

func hasHiddenSegment(c *fiber.Ctx) bool {
	for _, p := range []string{c.Path(), string(c.Context().URI().Path())} {
		for _, segment := range strings.Split(p, "/") {
			if strings.HasPrefix(segment, ".") {
				return true
			}
		}
	}
	return false
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	c.HealthController.RegisterRoutes(app)
	c.RoomController.RegisterRoutes(app)
	c.ChatController.RegisterRoutes(app)
}
