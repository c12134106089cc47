package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"storefront-catalog-service/internal/app/service"
	"storefront-catalog-service/internal/transport/httpserver/dto"
	"storefront-catalog-service/internal/transport/httpserver/middleware"
	"storefront-catalog-service/internal/validator"
)

// AdminHandler handles user administration, statistics and feed sync.
type AdminHandler struct {
	accounts    *service.AccountService
	stats       *service.AdminService
	syncService *service.SyncService
	validator   *validator.Validator
	logger      *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	accounts *service.AccountService,
	stats *service.AdminService,
	syncSvc *service.SyncService,
	v *validator.Validator,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		accounts:    accounts,
		stats:       stats,
		syncService: syncSvc,
		validator:   v,
		logger:      logger,
	}
}

// Users handles GET /api/v1/admin/users
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := h.accounts.ListUsers(c.Context(), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"users": dto.FromDomainUsers(users)})
}

// UpdatePermissions handles PATCH /api/v1/admin/users/:id/permissions
func (h *AdminHandler) UpdatePermissions(c *fiber.Ctx) error {
	var req dto.PermissionsRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	user, err := h.accounts.UpdatePermissions(c.Context(), middleware.CurrentUser(c), c.Params("id"), *req.CanPostAd)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(dto.FromDomainUser(user))
}

// Stats handles GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.stats.SystemStats(c.Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(stats)
}

// SyncAll handles POST /api/v1/admin/sync
func (h *AdminHandler) SyncAll(c *fiber.Ctx) error {
	h.logger.Info("manual sync triggered")

	results := h.syncService.SyncAll(c.Context())

	return c.JSON(dto.FromSyncResults(results))
}

// SyncFeed handles POST /api/v1/admin/sync/:feed
func (h *AdminHandler) SyncFeed(c *fiber.Ctx) error {
	name := c.Params("feed")
	h.logger.Info("manual feed sync triggered", zap.String("feed", name))

	result, err := h.syncService.SyncFeed(c.Context(), name)
	if result == nil {
		return respondError(c, h.logger, err)
	}
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error:   "feed sync failed",
			Code:    "SYNC_FAILED",
			Details: dto.FromSyncResult(*result),
		})
	}

	return c.JSON(dto.FromSyncResult(*result))
}

// Feeds handles GET /api/v1/admin/feeds
func (h *AdminHandler) Feeds(c *fiber.Ctx) error {
	return c.JSON(dto.FromFeedHealth(h.syncService.FeedNames(), h.syncService.FeedHealth(c.Context())))
}
