package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"storefront-catalog-service/internal/app/service"
)

// DashboardHandler renders the storefront statistics page.
type DashboardHandler struct {
	stats  *service.AdminService
	feeds  *service.SyncService
	logger *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(stats *service.AdminService, feeds *service.SyncService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		stats:  stats,
		feeds:  feeds,
		logger: logger,
	}
}

// Render handles GET /dashboard
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	stats, err := h.stats.SystemStats(c.Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Render("pages/dashboard", fiber.Map{
		"Title": "Storefront Dashboard",
		"Stats": stats,
		"Feeds": h.feeds.FeedNames(),
	}, "layouts/base")
}
