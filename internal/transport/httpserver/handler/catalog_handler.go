package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"storefront-catalog-service/internal/app/service"
	"storefront-catalog-service/internal/transport/httpserver/dto"
	"storefront-catalog-service/internal/validator"
)

// PageSizes holds the default and maximum page sizes for list endpoints.
type PageSizes struct {
	Default int
	Max     int
}

// CatalogHandler serves the public catalog.
type CatalogHandler struct {
	service   *service.CatalogService
	validator *validator.Validator
	pages     PageSizes
	logger    *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc *service.CatalogService, v *validator.Validator, pages PageSizes, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:   svc,
		validator: v,
		pages:     pages,
		logger:    logger,
	}
}

// Browse handles GET /api/v1/listings
func (h *CatalogHandler) Browse(c *fiber.Ctx) error {
	var req dto.BrowseRequest
	if ok, err := parseQuery(c, h.validator, &req); !ok {
		return err
	}

	result, err := h.service.Browse(c.Context(), req.ToQuerySpec(h.pages.Default, h.pages.Max))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.FromQueryResult(result, false))
}

// Get handles GET /api/v1/listings/:id
func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	listing, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(dto.FromDomainListing(listing, false))
}
