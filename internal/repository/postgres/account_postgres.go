package postgres

import (
	"context"
	"database/sql"

	"filehub/internal/model"
	"filehub/internal/repository"
)

// AccountPostgres is a PostgreSQL implementation of repository.AccountRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type AccountPostgres struct {
	db *sql.DB
}

// NewAccountPostgres creates a new AccountPostgres repository.
func NewAccountPostgres(db *sql.DB) *AccountPostgres {
	return &AccountPostgres{db: db}
}

var _ repository.AccountRepository = (*AccountPostgres)(nil)

func scanAccount(row interface{ Scan(...any) error }) (*model.Account, error) {
	var a model.Account
	var dept sql.NullInt64
	var role string
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &role, &dept); err != nil {
		return nil, err
	}
	a.Role = model.Role(role)
	if dept.Valid {
		a.DepartmentID = &dept.Int64
	}
	return &a, nil
}

// Create inserts a new account row and returns the stored record.
func (r *AccountPostgres) Create(ctx context.Context, a *model.Account) (*model.Account, error) {
	const q = `
		INSERT INTO accounts (username, password_hash, role, department_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, password_hash, role, department_id
	`
	row := r.db.QueryRowContext(ctx, q, a.Username, a.PasswordHash, string(a.Role), a.DepartmentID)
	return scanAccount(row)
}

// FindByID fetches a single account by its ID.
func (r *AccountPostgres) FindByID(ctx context.Context, id int64) (*model.Account, error) {
	const q = `
		SELECT id, username, password_hash, role, department_id
		FROM accounts
		WHERE id = $1
	`
	return scanAccount(r.db.QueryRowContext(ctx, q, id))
}

// FindByUsername fetches a single account by its unique username.
func (r *AccountPostgres) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	const q = `
		SELECT id, username, password_hash, role, department_id
		FROM accounts
		WHERE username = $1
	`
	return scanAccount(r.db.QueryRowContext(ctx, q, username))
}

// List returns all accounts ordered by id.
func (r *AccountPostgres) List(ctx context.Context) ([]model.Account, error) {
	const q = `
		SELECT id, username, password_hash, role, department_id
		FROM accounts
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateRole changes the role of an account. Returns sql.ErrNoRows if the
// account does not exist.
func (r *AccountPostgres) UpdateRole(ctx context.Context, id int64, role model.Role) error {
	const q = `UPDATE accounts SET role = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, string(role))
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

// UpdateDepartment sets or clears an account's department reference.
func (r *AccountPostgres) UpdateDepartment(ctx context.Context, id int64, departmentID *int64) error {
	const q = `UPDATE accounts SET department_id = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, departmentID)
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

// Delete removes an account by ID. It does not return an error if the row does not exist.
func (r *AccountPostgres) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM accounts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// CountByDepartment returns the number of accounts referencing the department.
func (r *AccountPostgres) CountByDepartment(ctx context.Context, departmentID int64) (int, error) {
	const q = `SELECT COUNT(*) FROM accounts WHERE department_id = $1`
	var n int
	if err := r.db.QueryRowContext(ctx, q, departmentID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
