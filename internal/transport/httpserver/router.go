// Package httpserver provides HTTP server and routing.
package httpserver

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"storefront-catalog-service/internal/app/service"
	"storefront-catalog-service/internal/transport/httpserver/dto"
	"storefront-catalog-service/internal/transport/httpserver/handler"
	"storefront-catalog-service/internal/transport/httpserver/middleware"
	"storefront-catalog-service/internal/validator"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port        int
	BodyLimit   int
	Debug       bool
	CORSOrigins string
	TemplateDir string // defaults to ./web/templates
	PageSize    int
	MaxPageSize int
}

// Services groups the use cases exposed over HTTP.
type Services struct {
	Catalog     *service.CatalogService
	Listings    *service.ListingService
	Accounts    *service.AccountService
	Payments    *service.PaymentService
	Submissions *service.SubmissionService
	Admin       *service.AdminService
	Sync        *service.SyncService
}

// Server wraps Fiber app with handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	cfg ServerConfig,
	svcs Services,
	v *validator.Validator,
	logger *zap.Logger,
	readiness ...middleware.ReadinessCheck,
) *Server {
	templateDir := cfg.TemplateDir
	if templateDir == "" {
		templateDir = "./web/templates"
	}
	engine := html.New(templateDir, ".html")
	if cfg.Debug {
		engine.Reload(true)
	}

	app := fiber.New(fiber.Config{
		AppName:      "storefront-catalog-service",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler(logger),
		Views:        engine,
	})

	// probes first so they bypass the rest of the chain
	app.Use(middleware.NewHealthCheck(readiness...))

	app.Use(requestid.New())
	app.Use(middleware.Recover(logger))
	app.Use(middleware.Logger(logger))
	app.Use(middleware.CORS(cfg.CORSOrigins))
	app.Use(compress.New())

	pages := handler.PageSizes{Default: cfg.PageSize, Max: cfg.MaxPageSize}
	h := handlers{
		catalog:     handler.NewCatalogHandler(svcs.Catalog, v, pages, logger),
		accounts:    handler.NewAccountHandler(svcs.Accounts, v, logger),
		listings:    handler.NewListingHandler(svcs.Listings, v, pages, logger),
		payments:    handler.NewPaymentHandler(svcs.Payments, v, logger),
		submissions: handler.NewSubmissionHandler(svcs.Submissions, v, logger),
		admin:       handler.NewAdminHandler(svcs.Accounts, svcs.Admin, svcs.Sync, v, logger),
		dashboard:   handler.NewDashboardHandler(svcs.Admin, svcs.Sync, logger),
	}

	registerRoutes(app, h, middleware.RequireAuth(svcs.Accounts))

	return &Server{
		App:    app,
		Logger: logger,
	}
}

type handlers struct {
	catalog     *handler.CatalogHandler
	accounts    *handler.AccountHandler
	listings    *handler.ListingHandler
	payments    *handler.PaymentHandler
	submissions *handler.SubmissionHandler
	admin       *handler.AdminHandler
	dashboard   *handler.DashboardHandler
}

// registerRoutes sets up all API routes. Health checks are served by middleware.
func registerRoutes(app *fiber.App, h handlers, requireAuth fiber.Handler) {
	app.Get("/dashboard", h.dashboard.Render)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard")
	})

	v1 := app.Group("/api/v1")

	// Public catalog
	v1.Get("/listings", h.catalog.Browse)
	v1.Get("/listings/:id", h.catalog.Get)

	// Accounts
	authGroup := v1.Group("/auth")
	authGroup.Post("/signup", h.accounts.Signup)
	authGroup.Post("/login", h.accounts.Login)
	authGroup.Post("/admin/login", h.accounts.AdminLogin)
	authGroup.Post("/logout", requireAuth, h.accounts.Logout)

	// Authenticated user
	v1.Post("/listings", requireAuth, h.listings.Create)
	v1.Post("/payments", requireAuth, h.payments.Create)
	v1.Post("/submissions", requireAuth, h.submissions.Create)

	me := v1.Group("/me", requireAuth)
	me.Get("/", h.accounts.Me)
	me.Get("/listings", h.listings.Mine)
	me.Get("/payments", h.payments.History)
	me.Get("/submissions", h.submissions.Mine)

	// Admin
	admin := v1.Group("/admin", requireAuth, middleware.RequireAdmin())
	admin.Get("/listings", h.listings.AdminList)
	admin.Post("/listings/:id/moderation", h.listings.Moderate)
	admin.Get("/users", h.admin.Users)
	admin.Patch("/users/:id/permissions", h.admin.UpdatePermissions)
	admin.Get("/stats", h.admin.Stats)
	admin.Post("/sync", h.admin.SyncAll)
	admin.Post("/sync/:feed", h.admin.SyncFeed)
	admin.Get("/feeds", h.admin.Feeds)
}

// errorHandler logs by status: 404 at DEBUG, other 4xx at WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		switch {
		case code == fiber.StatusNotFound:
			logger.Debug("resource not found",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
		case code >= 500:
			logger.Error("server error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		default:
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		msg := err.Error()
		if code >= 500 {
			msg = "internal server error"
		}
		return c.Status(code).JSON(dto.ErrorResponse{
			Error: msg,
			Code:  "UNHANDLED_ERROR",
		})
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	s.Logger.Info("starting HTTP server", zap.Int("port", port))

	return s.App.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.Logger.Info("shutting down HTTP server")

	return s.App.Shutdown()
}
