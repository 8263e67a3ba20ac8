package postgres

import (
	"context"
	"database/sql"
	"testing"

	"filehub/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func accountRows(a *model.Account) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "department_id"}).
		AddRow(a.ID, a.Username, a.PasswordHash, string(a.Role), a.DepartmentID)
}

func TestAccountPostgres_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountPostgres(db)
	ctx := context.Background()

	in := &model.Account{Username: "alice", PasswordHash: "hash", Role: model.RoleUser}
	stored := &model.Account{ID: 1, Username: "alice", PasswordHash: "hash", Role: model.RoleUser}

	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs("alice", "hash", "USER", nil).
		WillReturnRows(accountRows(stored))

	got, err := repo.Create(ctx, in)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, model.RoleUser, got.Role)
	assert.Nil(t, got.DepartmentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountPostgres_FindByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountPostgres(db)
	ctx := context.Background()

	t.Run("found with department", func(t *testing.T) {
		dept := int64(7)
		stored := &model.Account{ID: 2, Username: "bob", PasswordHash: "h", Role: model.RoleManager, DepartmentID: &dept}

		mock.ExpectQuery("SELECT (.+) FROM accounts WHERE username = ?").
			WithArgs("bob").
			WillReturnRows(accountRows(stored))

		got, err := repo.FindByUsername(ctx, "bob")

		assert.NoError(t, err)
		require.NotNil(t, got.DepartmentID)
		assert.Equal(t, int64(7), *got.DepartmentID)
		assert.Equal(t, model.RoleManager, got.Role)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM accounts WHERE username = ?").
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.FindByUsername(ctx, "ghost")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, got)
	})
}

func TestAccountPostgres_UpdateRole(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountPostgres(db)
	ctx := context.Background()

	t.Run("updated", func(t *testing.T) {
		mock.ExpectExec("UPDATE accounts SET role").
			WithArgs(int64(1), "ADMIN").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateRole(ctx, 1, model.RoleAdmin))
	})

	t.Run("missing account", func(t *testing.T) {
		mock.ExpectExec("UPDATE accounts SET role").
			WithArgs(int64(99), "ADMIN").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateRole(ctx, 99, model.RoleAdmin), sql.ErrNoRows)
	})
}

func TestAccountPostgres_UpdateDepartment(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountPostgres(db)
	ctx := context.Background()

	dept := int64(3)
	mock.ExpectExec("UPDATE accounts SET department_id").
		WithArgs(int64(1), &dept).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpdateDepartment(ctx, 1, &dept))

	// Clearing the reference passes NULL.
	mock.ExpectExec("UPDATE accounts SET department_id").
		WithArgs(int64(1), nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.UpdateDepartment(ctx, 1, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountPostgres_CountByDepartment(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM accounts WHERE department_id = ?").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountByDepartment(ctx, 7)

	assert.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestAccountPostgres_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountPostgres(db)
	ctx := context.Background()

	dept := int64(7)
	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "department_id"}).
		AddRow(1, "alice", "h1", "USER", &dept).
		AddRow(2, "root", "h2", "ADMIN", nil)

	mock.ExpectQuery("SELECT (.+) FROM accounts ORDER BY id").
		WillReturnRows(rows)

	items, err := repo.List(ctx)

	assert.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "alice", items[0].Username)
	assert.Nil(t, items[1].DepartmentID)
}
