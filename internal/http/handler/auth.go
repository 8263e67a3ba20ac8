package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"filehub/internal/http/middleware"
	"filehub/internal/service"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login handles POST /auth/login. Bad credentials always produce the same
// 401 regardless of whether the username exists.
func Login(authSvc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if req.Username == "" || req.Password == "" {
			return writeError(c, fiber.StatusBadRequest, "CREDENTIALS_REQUIRED", "username and password are required")
		}

		token, err := authSvc.Login(c.UserContext(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid username or password")
			}
			return serviceError(c, err)
		}

		return c.JSON(loginResponse{AccessToken: token, TokenType: "bearer"})
	}
}

// Me handles GET /auth/me and returns the identity resolved by the auth
// middleware.
func Me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident := middleware.IdentityFromCtx(c)
		if ident == nil {
			return fiber.ErrUnauthorized
		}
		return c.JSON(ident)
	}
}
