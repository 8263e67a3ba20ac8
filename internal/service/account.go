package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"filehub/internal/auth"
	"filehub/internal/model"
	"filehub/internal/repository"
)

// AccountService defines the admin-facing account use cases. Role gating
// happens at the HTTP boundary; the service assumes the caller is allowed.
type AccountService interface {
	// Create registers a new account with a hashed password.
	Create(ctx context.Context, username, password string, role model.Role, departmentID *int64) (*model.Account, error)

	// List returns all accounts.
	List(ctx context.Context) ([]model.Account, error)

	// Get returns a single account by ID.
	Get(ctx context.Context, id int64) (*model.Account, error)

	// UpdateRole changes an account's role.
	UpdateRole(ctx context.Context, id int64, role model.Role) (*model.Account, error)

	// Delete removes an account. Files owned by the account are kept as-is;
	// there is no cascade.
	Delete(ctx context.Context, id int64) error
}

type accountService struct {
	accounts    repository.AccountRepository
	departments repository.DepartmentRepository
}

// NewAccountService constructs a new AccountService.
func NewAccountService(accounts repository.AccountRepository, departments repository.DepartmentRepository) AccountService {
	return &accountService{accounts: accounts, departments: departments}
}

func (s *accountService) Create(ctx context.Context, username, password string, role model.Role, departmentID *int64) (*model.Account, error) {
	if _, err := s.accounts.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if departmentID != nil {
		if _, err := s.departments.FindByID(ctx, *departmentID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("check department: %w", err)
		}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acc, err := s.accounts.Create(ctx, &model.Account{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		DepartmentID: departmentID,
	})
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return acc, nil
}

func (s *accountService) List(ctx context.Context) ([]model.Account, error) {
	return s.accounts.List(ctx)
}

func (s *accountService) Get(ctx context.Context, id int64) (*model.Account, error) {
	acc, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return acc, nil
}

func (s *accountService) UpdateRole(ctx context.Context, id int64, role model.Role) (*model.Account, error) {
	if err := s.accounts.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *accountService) Delete(ctx context.Context, id int64) error {
	if _, err := s.accounts.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.accounts.Delete(ctx, id)
}
