package repository

import (
	"context"

	"filehub/internal/model"
)

// DepartmentRepository defines data access for departments.
type DepartmentRepository interface {
	// Create inserts a new department and returns the stored row.
	Create(ctx context.Context, name string) (*model.Department, error)

	// FindByID returns a department by its ID.
	FindByID(ctx context.Context, id int64) (*model.Department, error)

	// FindByName returns a department by its unique name.
	FindByName(ctx context.Context, name string) (*model.Department, error)

	// List returns all departments.
	List(ctx context.Context) ([]model.Department, error)

	// Rename updates a department's name.
	Rename(ctx context.Context, id int64, name string) (*model.Department, error)

	// Delete removes a department by ID. Membership guarding is the service's
	// concern, not the repository's.
	Delete(ctx context.Context, id int64) error
}
