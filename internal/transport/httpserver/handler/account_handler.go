package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"storefront-catalog-service/internal/app/service"
	"storefront-catalog-service/internal/transport/httpserver/dto"
	"storefront-catalog-service/internal/transport/httpserver/middleware"
	"storefront-catalog-service/internal/validator"
)

// AccountHandler handles signup, login and the current user's profile.
type AccountHandler struct {
	service   *service.AccountService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc *service.AccountService, v *validator.Validator, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Signup handles POST /api/v1/auth/signup
func (h *AccountHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	session, err := h.service.Signup(c.Context(), req.ToInput())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.FromSession(session))
}

// Login handles POST /api/v1/auth/login
func (h *AccountHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	session, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.FromSession(session))
}

// AdminLogin handles POST /api/v1/auth/admin/login
func (h *AccountHandler) AdminLogin(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	session, err := h.service.AdminLogin(c.Context(), req.Email, req.Password, req.AdminID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.FromSession(session))
}

// Logout handles POST /api/v1/auth/logout
func (h *AccountHandler) Logout(c *fiber.Ctx) error {
	if err := h.service.Logout(c.Context(), middleware.CurrentToken(c)); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me handles GET /api/v1/me
func (h *AccountHandler) Me(c *fiber.Ctx) error {
	return c.JSON(dto.FromDomainUser(middleware.CurrentUser(c)))
}
