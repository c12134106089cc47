package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"storefront-catalog-service/internal/auth"
	"storefront-catalog-service/internal/domain"
	"storefront-catalog-service/internal/transport/httpserver/dto"
)

const (
	userKey  = "user"
	tokenKey = "token"
)

// Authenticator resolves the user behind an access token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// authenticated user for the handlers.
func RequireAuth(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := auth.ExtractBearer(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: "missing bearer token",
				Code:  "UNAUTHORIZED",
			})
		}

		user, err := authn.Authenticate(c.Context(), token)
		if err != nil {
			if domain.IsKind(err, domain.KindUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error: "invalid or expired token",
					Code:  "UNAUTHORIZED",
				})
			}
			return err
		}

		c.Locals(userKey, user)
		c.Locals(tokenKey, token)
		return c.Next()
	}
}

// RequireAdmin rejects non-admin users. It must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !CurrentUser(c).IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: "admin access required",
				Code:  "FORBIDDEN",
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil on public routes.
func CurrentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(userKey).(*domain.User)
	return user
}

// CurrentToken returns the raw bearer token of the authenticated request.
func CurrentToken(c *fiber.Ctx) string {
	token, _ := c.Locals(tokenKey).(string)
	return token
}
