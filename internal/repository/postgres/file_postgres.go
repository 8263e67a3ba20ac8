package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"filehub/internal/access"
	"filehub/internal/model"
	"filehub/internal/repository"
)

// FilePostgres is a PostgreSQL implementation of repository.FileRepository.
// The metadata map is stored as a JSONB column.
type FilePostgres struct {
	db *sql.DB
}

// NewFilePostgres creates a new FilePostgres repository.
func NewFilePostgres(db *sql.DB) *FilePostgres {
	return &FilePostgres{db: db}
}

var _ repository.FileRepository = (*FilePostgres)(nil)

const fileColumns = `id, filename, size, mime_type, visibility, owner_id, department_id, metadata, download_count`

func scanFile(row interface{ Scan(...any) error }) (*model.File, error) {
	var f model.File
	var vis string
	var dept sql.NullInt64
	var meta []byte
	if err := row.Scan(
		&f.ID,
		&f.Filename,
		&f.Size,
		&f.MimeType,
		&vis,
		&f.OwnerID,
		&dept,
		&meta,
		&f.DownloadCount,
	); err != nil {
		return nil, err
	}
	f.Visibility = model.Visibility(vis)
	if dept.Valid {
		f.DepartmentID = &dept.Int64
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &f.Metadata); err != nil {
			return nil, fmt.Errorf("decode file metadata: %w", err)
		}
	}
	return &f, nil
}

// Create inserts a new file record and returns the stored row.
func (r *FilePostgres) Create(ctx context.Context, f *model.File) (*model.File, error) {
	var meta []byte
	if f.Metadata != nil {
		b, err := json.Marshal(f.Metadata)
		if err != nil {
			return nil, fmt.Errorf("encode file metadata: %w", err)
		}
		meta = b
	}

	const q = `
		INSERT INTO files (filename, size, mime_type, visibility, owner_id, department_id, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + fileColumns
	row := r.db.QueryRowContext(ctx, q,
		f.Filename,
		f.Size,
		f.MimeType,
		string(f.Visibility),
		f.OwnerID,
		f.DepartmentID,
		meta,
	)
	return scanFile(row)
}

// FindByID fetches a single file record by its ID.
func (r *FilePostgres) FindByID(ctx context.Context, id int64) (*model.File, error) {
	const q = `SELECT ` + fileColumns + ` FROM files WHERE id = $1`
	return scanFile(r.db.QueryRowContext(ctx, q, id))
}

// List returns file records visible under the scope. An unrestricted scope
// lists everything; otherwise rows are limited to public files, department
// files of the actor's department, and the actor's own files.
func (r *FilePostgres) List(ctx context.Context, scope access.ListScope) ([]model.File, error) {
	var rows *sql.Rows
	var err error

	if scope.All {
		const q = `SELECT ` + fileColumns + ` FROM files ORDER BY id`
		rows, err = r.db.QueryContext(ctx, q)
	} else {
		const q = `
			SELECT ` + fileColumns + `
			FROM files
			WHERE visibility = 'PUBLIC'
			   OR (visibility = 'DEPARTMENT' AND department_id = $1)
			   OR owner_id = $2
			ORDER BY id
		`
		rows, err = r.db.QueryContext(ctx, q, scope.DepartmentID, scope.OwnerID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.File, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// IncrementDownloadCount bumps the counter in a single UPDATE; atomicity comes
// from the database, no read-modify-write in process.
func (r *FilePostgres) IncrementDownloadCount(ctx context.Context, id int64) error {
	const q = `UPDATE files SET download_count = download_count + 1 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a file record by ID. It does not return an error if the row does not exist.
func (r *FilePostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM files WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
