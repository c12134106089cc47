package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"storefront-catalog-service/internal/app/service"
	"storefront-catalog-service/internal/domain"
	"storefront-catalog-service/internal/transport/httpserver/dto"
	"storefront-catalog-service/internal/transport/httpserver/middleware"
	"storefront-catalog-service/internal/validator"
)

// ListingHandler handles posting listings and their moderation.
type ListingHandler struct {
	service   *service.ListingService
	validator *validator.Validator
	pages     PageSizes
	logger    *zap.Logger
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(svc *service.ListingService, v *validator.Validator, pages PageSizes, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{
		service:   svc,
		validator: v,
		pages:     pages,
		logger:    logger,
	}
}

// Create handles POST /api/v1/listings
func (h *ListingHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateListingRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	listing, err := h.service.Submit(c.Context(), middleware.CurrentUser(c), req.ToInput())
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.FromDomainListing(listing, true))
}

// Mine handles GET /api/v1/me/listings
func (h *ListingHandler) Mine(c *fiber.Ctx) error {
	listings, err := h.service.PostsBy(c.Context(), middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"listings": dto.FromDomainListings(listings, true)})
}

// AdminList handles GET /api/v1/admin/listings
func (h *ListingHandler) AdminList(c *fiber.Ctx) error {
	var req dto.AdminListingsRequest
	if ok, err := parseQuery(c, h.validator, &req); !ok {
		return err
	}

	result, err := h.service.AdminQuery(
		c.Context(),
		middleware.CurrentUser(c),
		domain.ListingStatus(req.Status),
		req.ToQuerySpec(h.pages.Default, h.pages.Max),
	)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.FromQueryResult(result, true))
}

// Moderate handles POST /api/v1/admin/listings/:id/moderation
func (h *ListingHandler) Moderate(c *fiber.Ctx) error {
	var req dto.ModerationRequest
	if ok, err := parseBody(c, h.validator, &req); !ok {
		return err
	}

	listing, err := h.service.Moderate(
		c.Context(),
		middleware.CurrentUser(c),
		c.Params("id"),
		domain.ListingStatus(req.Status),
		req.Reason,
	)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.FromDomainListing(listing, true))
}
