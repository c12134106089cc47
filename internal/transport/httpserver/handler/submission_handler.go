package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"storefront-catalog-service/internal/app/service"
	"storefront-catalog-service/internal/transport/httpserver/dto"
	"storefront-catalog-service/internal/transport/httpserver/middleware"
	"storefront-catalog-service/internal/validator"
)

// SubmissionHandler handles contact requests.
type SubmissionHandler struct {
	service   *service.SubmissionService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(svc *service.SubmissionService, v *validator.Validator, logger *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Create handles POST /api/v1/submissions
func (h *SubmissionHandler) Create(c *fiber.Ctx) error {
	var req dto.SubmissionRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	sub, err := h.service.Submit(c.Context(), middleware.CurrentUser(c), req.ToInput())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(sub)
}

// Mine handles GET /api/v1/me/submissions
func (h *SubmissionHandler) Mine(c *fiber.Ctx) error {
	subs, err := h.service.Mine(c.Context(), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"submissions": subs})
}
