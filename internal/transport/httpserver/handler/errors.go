// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"storefront-catalog-service/internal/domain"
	"storefront-catalog-service/internal/transport/httpserver/dto"
	"storefront-catalog-service/internal/validator"
)

// statusFor maps a domain error kind to the HTTP status and error code.
func statusFor(kind domain.Kind) (int, string) {
	switch kind {
	case domain.KindInvalidArgument:
		return fiber.StatusBadRequest, "INVALID_ARGUMENT"
	case domain.KindNotFound:
		return fiber.StatusNotFound, "NOT_FOUND"
	case domain.KindConflict:
		return fiber.StatusConflict, "CONFLICT"
	case domain.KindUnauthorized:
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case domain.KindForbidden:
		return fiber.StatusForbidden, "FORBIDDEN"
	default:
		return fiber.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// respondError writes err as an ErrorResponse. Domain errors keep their message;
// anything else is logged and hidden behind a generic 500.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	kind := domain.KindOf(err)
	status, code := statusFor(kind)

	if status >= fiber.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(status).JSON(dto.ErrorResponse{
			Error: "internal server error",
			Code:  code,
		})
	}

	msg := err.Error()
	var de *domain.Error
	if errors.As(err, &de) {
		msg = de.Message
	}

	return c.Status(status).JSON(dto.ErrorResponse{
		Error: msg,
		Code:  code,
	})
}

// parseBody decodes and validates a JSON body into req. It writes the 400
// response itself and reports false when the request should stop.
func parseBody(c *fiber.Ctx, v *validator.Validator, req any) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}
	return validate(c, v, req)
}

// parseQuery is parseBody for query parameters.
func parseQuery(c *fiber.Ctx, v *validator.Validator, req any) (bool, error) {
	if err := c.QueryParser(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}
	return validate(c, v, req)
}

func validate(c *fiber.Ctx, v *validator.Validator, req any) (bool, error) {
	if err := v.Validate(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}
	return true, nil
}
