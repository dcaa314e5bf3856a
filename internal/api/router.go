package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swagger "github.com/go-swagno/swagno-fiber/swagger"

	"github.com/aicuts/faceshape-api/internal/api/docs"
	"github.com/aicuts/faceshape-api/internal/api/handler"
	"github.com/aicuts/faceshape-api/internal/api/middleware"
	"github.com/aicuts/faceshape-api/internal/mailer"
	"github.com/aicuts/faceshape-api/internal/metrics"
	"github.com/aicuts/faceshape-api/internal/ratelimit"
)

// Dependencies are the collaborators the router wires into the handlers.
type Dependencies struct {
	Classifier handler.Classifier
	Mailer     mailer.Mailer
	Metrics    *metrics.Metrics
}

type Router struct {
	app     *fiber.App
	logger  *slog.Logger
	deps    *Dependencies
	limiter *ratelimit.Limiter
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "AICuts Face Shape API",
		BodyLimit:    8 * 1024 * 1024,
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Swagger documentation
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints
	healthHandler := handler.NewHealthHandler(r.deps.Classifier)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	// Prometheus metrics
	r.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Cooldown limiter shared by both endpoints; the router owns its lifecycle
	r.limiter = ratelimit.New()

	apiGroup := r.app.Group("/api")

	uploadHandler := handler.NewUploadHandler(r.deps.Classifier, r.limiter, r.deps.Metrics, r.logger)
	apiGroup.Post("/upload", uploadHandler.Upload)

	contactHandler := handler.NewContactHandler(r.deps.Mailer, r.limiter, r.deps.Metrics, r.logger)
	apiGroup.Post("/contact", contactHandler.Contact)
}

// Limiter exposes the cooldown limiter. For tests.
func (r *Router) Limiter() *ratelimit.Limiter {
	return r.limiter
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	if r.limiter != nil {
		r.limiter.Stop()
	}

	return r.app.Shutdown()
}
