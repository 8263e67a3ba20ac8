package handler

import (
	"github.com/gofiber/fiber/v2"

	"filehub/internal/http/middleware"
	"filehub/internal/model"
	"filehub/internal/service"
)

// UploadFile handles POST /files (multipart/form-data, fields: file,
// visibility).
func UploadFile(fileSvc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.IdentityFromCtx(c)
		if actor == nil {
			return fiber.ErrUnauthorized
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}
		visibility, ok := model.ParseVisibility(c.FormValue("visibility"))
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_VISIBILITY", "unknown visibility value")
		}

		file, err := fileSvc.Upload(c.UserContext(), actor, f, fh.Filename, ct, fh.Size, visibility, nil)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(file)
	}
}

// ListFiles handles GET /files, filtered by the actor's list scope.
func ListFiles(fileSvc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.IdentityFromCtx(c)
		if actor == nil {
			return fiber.ErrUnauthorized
		}

		files, err := fileSvc.List(c.UserContext(), actor)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(files)
	}
}

// GetFile handles GET /files/:id.
func GetFile(fileSvc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.IdentityFromCtx(c)
		if actor == nil {
			return fiber.ErrUnauthorized
		}
		id, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		file, err := fileSvc.Get(c.UserContext(), actor, id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(file)
	}
}

// DownloadFile handles GET /files/:id/download and returns a short-lived
// pre-signed URL instead of proxying the content.
func DownloadFile(fileSvc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.IdentityFromCtx(c)
		if actor == nil {
			return fiber.ErrUnauthorized
		}
		id, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		url, err := fileSvc.Download(c.UserContext(), actor, id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

// DeleteFile handles DELETE /files/:id.
func DeleteFile(fileSvc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := middleware.IdentityFromCtx(c)
		if actor == nil {
			return fiber.ErrUnauthorized
		}
		id, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := fileSvc.Delete(c.UserContext(), actor, id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
