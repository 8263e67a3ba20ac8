package handler

import (
	"github.com/gofiber/fiber/v2"

	"filehub/internal/http/middleware"
	"filehub/internal/model"
	"filehub/internal/service"
)

type createUserRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	DepartmentID *int64 `json:"department_id"`
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// CreateUser handles POST /users.
func CreateUser(accSvc service.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createUserRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if req.Username == "" || req.Password == "" {
			return writeError(c, fiber.StatusBadRequest, "CREDENTIALS_REQUIRED", "username and password are required")
		}
		role, ok := model.ParseRole(req.Role)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ROLE", "unknown role")
		}

		acc, err := accSvc.Create(c.UserContext(), req.Username, req.Password, role, req.DepartmentID)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(acc)
	}
}

// ListUsers handles GET /users.
func ListUsers(accSvc service.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accounts, err := accSvc.List(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(accounts)
	}
}

// GetUser handles GET /users/:id. Regular users may only look up themselves.
func GetUser(accSvc service.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		actor := middleware.IdentityFromCtx(c)
		if actor == nil {
			return fiber.ErrUnauthorized
		}
		if actor.Role == model.RoleUser && actor.ID != id {
			return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "operation not allowed")
		}

		acc, err := accSvc.Get(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(acc)
	}
}

// UpdateUserRole handles PUT /users/:id/role.
func UpdateUserRole(accSvc service.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req updateRoleRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		role, ok := model.ParseRole(req.Role)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ROLE", "unknown role")
		}

		acc, err := accSvc.UpdateRole(c.UserContext(), id, role)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(acc)
	}
}

// DeleteUser handles DELETE /users/:id.
func DeleteUser(accSvc service.AccountService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := accSvc.Delete(c.UserContext(), id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
