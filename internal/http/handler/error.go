package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"filehub/internal/access"
	"filehub/internal/http/middleware"
	"filehub/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// serviceError translates the services' sentinel errors into the HTTP error
// taxonomy. Anything unrecognized is reported as a server error without
// leaking the underlying cause.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrForbidden):
		return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "operation not allowed")
	case errors.Is(err, service.ErrUsernameTaken):
		return writeError(c, fiber.StatusBadRequest, "USERNAME_TAKEN", "username already exists")
	case errors.Is(err, service.ErrDepartmentExists):
		return writeError(c, fiber.StatusBadRequest, "DEPARTMENT_EXISTS", "department name already exists")
	case errors.Is(err, service.ErrHasMembers):
		return writeError(c, fiber.StatusBadRequest, "DEPARTMENT_HAS_MEMBERS", "department still has assigned users")
	case errors.Is(err, service.ErrNotInDepartment):
		return writeError(c, fiber.StatusBadRequest, "NOT_IN_DEPARTMENT", "user is not in this department")
	case errors.Is(err, service.ErrInvalidVisibility):
		return writeError(c, fiber.StatusBadRequest, "VISIBILITY_NOT_ALLOWED", "visibility not allowed for this role")
	case errors.Is(err, service.ErrVisibilityRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_VISIBILITY", "unknown visibility value")
	case errors.Is(err, access.ErrTooLarge):
		return writeError(c, fiber.StatusBadRequest, "FILE_TOO_LARGE", "file exceeds the size limit for this role")
	case errors.Is(err, access.ErrUnsupportedType):
		return writeError(c, fiber.StatusBadRequest, "UNSUPPORTED_TYPE", "file type not allowed for this role")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "missing or invalid credentials")
		case fiber.StatusForbidden:
			return writeError(c, status, "FORBIDDEN", "operation not allowed")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
