package handler

import (
	"github.com/gofiber/fiber/v2"

	"filehub/internal/service"
)

type departmentRequest struct {
	Name string `json:"name"`
}

// CreateDepartment handles POST /departments.
func CreateDepartment(deptSvc service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req departmentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if req.Name == "" {
			return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "name is required")
		}

		d, err := deptSvc.Create(c.UserContext(), req.Name)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(d)
	}
}

// ListDepartments handles GET /departments.
func ListDepartments(deptSvc service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		departments, err := deptSvc.List(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(departments)
	}
}

// GetDepartment handles GET /departments/:id.
func GetDepartment(deptSvc service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		d, err := deptSvc.Get(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(d)
	}
}

// RenameDepartment handles PUT /departments/:id.
func RenameDepartment(deptSvc service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req departmentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if req.Name == "" {
			return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "name is required")
		}

		d, err := deptSvc.Rename(c.UserContext(), id, req.Name)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(d)
	}
}

// DeleteDepartment handles DELETE /departments/:id. Deletion is blocked while
// the department still has assigned users.
func DeleteDepartment(deptSvc service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := deptSvc.Delete(c.UserContext(), id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// AssignMember handles POST /departments/:id/assign/:userID. An existing
// assignment is overwritten.
func AssignMember(deptSvc service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deptID, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		userID, err := parseID(c, "userID")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := deptSvc.Assign(c.UserContext(), deptID, userID); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// RemoveMember handles DELETE /departments/:id/remove/:userID.
func RemoveMember(deptSvc service.DepartmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deptID, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		userID, err := parseID(c, "userID")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := deptSvc.Remove(c.UserContext(), deptID, userID); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
