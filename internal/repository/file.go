package repository

import (
	"context"

	"filehub/internal/access"
	"filehub/internal/model"
)

// FileRepository defines data access for file metadata records.
type FileRepository interface {
	// Create inserts a new file record and returns the stored row.
	Create(ctx context.Context, f *model.File) (*model.File, error)

	// FindByID returns a file record by its ID.
	FindByID(ctx context.Context, id int64) (*model.File, error)

	// List returns the file records visible under the given scope.
	List(ctx context.Context, scope access.ListScope) ([]model.File, error)

	// IncrementDownloadCount bumps the download counter by one.
	IncrementDownloadCount(ctx context.Context, id int64) error

	// Delete removes a file record by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id int64) error
}
