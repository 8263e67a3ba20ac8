package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"filehub/internal/model"
	"filehub/internal/service"
)

// IdentityLocalKey is the key used to store the resolved identity in Fiber's
// context locals.
const IdentityLocalKey = "identity"

// RequireAuth extracts the bearer token from the Authorization header and
// resolves it to an identity. Requests without a valid token are rejected
// with 401 before reaching the handler.
func RequireAuth(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return fiber.ErrUnauthorized
		}

		ident, err := auth.Resolve(c.UserContext(), token)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals(IdentityLocalKey, ident)
		return c.Next()
	}
}

// RequireRoles allows the request through only when the resolved identity
// holds one of the given roles. Must run after RequireAuth.
func RequireRoles(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, ok := c.Locals(IdentityLocalKey).(*model.Identity)
		if !ok {
			return fiber.ErrUnauthorized
		}
		for _, r := range roles {
			if ident.Role == r {
				return c.Next()
			}
		}
		return fiber.ErrForbidden
	}
}

// IdentityFromCtx returns the identity stored by RequireAuth, or nil when the
// request was not authenticated.
func IdentityFromCtx(c *fiber.Ctx) *model.Identity {
	if ident, ok := c.Locals(IdentityLocalKey).(*model.Identity); ok {
		return ident
	}
	return nil
}
