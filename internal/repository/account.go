package repository

import (
	"context"

	"filehub/internal/model"
)

// AccountRepository defines data access for accounts using SQL queries only.
// No business logic here — strictly persistence operations.
type AccountRepository interface {
	// Create inserts a new account record and returns the stored row.
	Create(ctx context.Context, a *model.Account) (*model.Account, error)

	// FindByID returns an account by its ID.
	FindByID(ctx context.Context, id int64) (*model.Account, error)

	// FindByUsername returns an account by its unique username.
	FindByUsername(ctx context.Context, username string) (*model.Account, error)

	// List returns all accounts.
	List(ctx context.Context) ([]model.Account, error)

	// UpdateRole changes an account's role.
	UpdateRole(ctx context.Context, id int64, role model.Role) error

	// UpdateDepartment sets or clears (nil) an account's department reference.
	UpdateDepartment(ctx context.Context, id int64, departmentID *int64) error

	// Delete removes an account by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id int64) error

	// CountByDepartment returns the number of accounts assigned to the department.
	CountByDepartment(ctx context.Context, departmentID int64) (int, error)
}
