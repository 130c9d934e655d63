package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/training-service/pkg/util/errorutil"
)

// RequireAuthenticated ensures a principal is present.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return errorutil.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireSuperAdmin ensures the caller carries the global staff flag.
func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Account == nil || !principal.Account.IsSuperAdmin {
			return errorutil.NewForbidden("super admin required")
		}
		return c.Next()
	}
}
