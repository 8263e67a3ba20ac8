package postgres

import (
	"context"
	"database/sql"

	"filehub/internal/model"
	"filehub/internal/repository"
)

// DepartmentPostgres is a PostgreSQL implementation of repository.DepartmentRepository.
type DepartmentPostgres struct {
	db *sql.DB
}

// NewDepartmentPostgres creates a new DepartmentPostgres repository.
func NewDepartmentPostgres(db *sql.DB) *DepartmentPostgres {
	return &DepartmentPostgres{db: db}
}

var _ repository.DepartmentRepository = (*DepartmentPostgres)(nil)

// Create inserts a new department row and returns the stored record.
func (r *DepartmentPostgres) Create(ctx context.Context, name string) (*model.Department, error) {
	const q = `
		INSERT INTO departments (name)
		VALUES ($1)
		RETURNING id, name
	`
	var d model.Department
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&d.ID, &d.Name); err != nil {
		return nil, err
	}
	return &d, nil
}

// FindByID fetches a single department by its ID.
func (r *DepartmentPostgres) FindByID(ctx context.Context, id int64) (*model.Department, error) {
	const q = `SELECT id, name FROM departments WHERE id = $1`
	var d model.Department
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&d.ID, &d.Name); err != nil {
		return nil, err
	}
	return &d, nil
}

// FindByName fetches a single department by its unique name.
func (r *DepartmentPostgres) FindByName(ctx context.Context, name string) (*model.Department, error) {
	const q = `SELECT id, name FROM departments WHERE name = $1`
	var d model.Department
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&d.ID, &d.Name); err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns all departments ordered by id.
func (r *DepartmentPostgres) List(ctx context.Context) ([]model.Department, error) {
	const q = `SELECT id, name FROM departments ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Department, 0)
	for rows.Next() {
		var d model.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Rename updates a department's name and returns the stored record.
// Returns sql.ErrNoRows if the department does not exist.
func (r *DepartmentPostgres) Rename(ctx context.Context, id int64, name string) (*model.Department, error) {
	const q = `
		UPDATE departments SET name = $2 WHERE id = $1
		RETURNING id, name
	`
	var d model.Department
	if err := r.db.QueryRowContext(ctx, q, id, name).Scan(&d.ID, &d.Name); err != nil {
		return nil, err
	}
	return &d, nil
}

// Delete removes a department by ID. It does not return an error if the row does not exist.
func (r *DepartmentPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM departments WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
