package handler

import (
	"database/sql"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"filehub/internal/http/middleware"
	"filehub/internal/model"
	"filehub/internal/service"
)

// RegisterRoutes attaches all HTTP routes to the provided Fiber app. Role
// gating lives here; ownership and visibility decisions stay in the services.
func RegisterRoutes(
	app *fiber.App,
	db *sql.DB,
	authSvc service.AuthService,
	accSvc service.AccountService,
	deptSvc service.DepartmentService,
	fileSvc service.FileService,
) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/auth/login", Login(authSvc))

	authed := app.Group("", middleware.RequireAuth(authSvc))
	authed.Get("/auth/me", Me())

	adminOnly := middleware.RequireRoles(model.RoleAdmin)
	staff := middleware.RequireRoles(model.RoleAdmin, model.RoleManager)

	users := authed.Group("/users")
	users.Post("", adminOnly, CreateUser(accSvc))
	users.Get("", staff, ListUsers(accSvc))
	users.Get("/:id", GetUser(accSvc))
	users.Put("/:id/role", adminOnly, UpdateUserRole(accSvc))
	users.Delete("/:id", adminOnly, DeleteUser(accSvc))

	departments := authed.Group("/departments")
	departments.Post("", adminOnly, CreateDepartment(deptSvc))
	departments.Get("", staff, ListDepartments(deptSvc))
	departments.Get("/:id", staff, GetDepartment(deptSvc))
	departments.Put("/:id", adminOnly, RenameDepartment(deptSvc))
	departments.Delete("/:id", adminOnly, DeleteDepartment(deptSvc))
	departments.Post("/:id/assign/:userID", adminOnly, AssignMember(deptSvc))
	departments.Delete("/:id/remove/:userID", adminOnly, RemoveMember(deptSvc))

	files := authed.Group("/files")
	files.Post("", UploadFile(fileSvc))
	files.Get("", ListFiles(fileSvc))
	files.Get("/:id", GetFile(fileSvc))
	files.Get("/:id/download", DownloadFile(fileSvc))
	files.Delete("/:id", DeleteFile(fileSvc))
}

// parseID reads a positive int64 route parameter.
func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}
