package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"storefront-catalog-service/internal/app/service"
	"storefront-catalog-service/internal/transport/httpserver/dto"
	"storefront-catalog-service/internal/transport/httpserver/middleware"
	"storefront-catalog-service/internal/validator"
)

// PaymentHandler records payments and serves the payment history.
type PaymentHandler struct {
	service   *service.PaymentService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(svc *service.PaymentService, v *validator.Validator, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Create handles POST /api/v1/payments
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var req dto.PaymentRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	payment, err := h.service.Process(c.Context(), middleware.CurrentUser(c), req.ToInput())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(payment)
}

// History handles GET /api/v1/me/payments
func (h *PaymentHandler) History(c *fiber.Ctx) error {
	var req dto.PaymentHistoryRequest
	if ok, err := parseQuery(c, h.validator, &req); !ok {
		return err
	}

	payments, err := h.service.History(c.Context(), middleware.CurrentUser(c), req.ToFilter())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"payments": payments})
}
