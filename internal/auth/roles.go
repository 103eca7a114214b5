package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/casaflow/community-service/internal/domain"
)

// RequireResident ensures an authenticated resident is present.
func RequireResident() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Resident == nil {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}

// RequireOwner ensures the caller is the community owner.
func RequireOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Resident == nil {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if principal.Resident.Role != domain.RoleOwner {
			return fiber.NewError(http.StatusForbidden, "owner role required")
		}
		return c.Next()
	}
}
