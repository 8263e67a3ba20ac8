package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"filehub/internal/model"
	"filehub/internal/repository"
)

// DepartmentService defines department and membership use cases.
type DepartmentService interface {
	Create(ctx context.Context, name string) (*model.Department, error)
	List(ctx context.Context) ([]model.Department, error)
	Get(ctx context.Context, id int64) (*model.Department, error)
	Rename(ctx context.Context, id int64, name string) (*model.Department, error)

	// Delete removes a department. It fails with ErrHasMembers while any
	// account references the department; file references never block.
	Delete(ctx context.Context, id int64) error

	// Assign puts the user into the department, overwriting any prior
	// assignment.
	Assign(ctx context.Context, departmentID, userID int64) error

	// Remove clears the user's department reference. It fails with
	// ErrNotInDepartment if the user is currently in a different department.
	Remove(ctx context.Context, departmentID, userID int64) error
}

type departmentService struct {
	departments repository.DepartmentRepository
	accounts    repository.AccountRepository
}

// NewDepartmentService constructs a new DepartmentService.
func NewDepartmentService(departments repository.DepartmentRepository, accounts repository.AccountRepository) DepartmentService {
	return &departmentService{departments: departments, accounts: accounts}
}

func (s *departmentService) Create(ctx context.Context, name string) (*model.Department, error) {
	if _, err := s.departments.FindByName(ctx, name); err == nil {
		return nil, ErrDepartmentExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check department name: %w", err)
	}

	d, err := s.departments.Create(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("create department: %w", err)
	}
	return d, nil
}

func (s *departmentService) List(ctx context.Context) ([]model.Department, error) {
	return s.departments.List(ctx)
}

func (s *departmentService) Get(ctx context.Context, id int64) (*model.Department, error) {
	d, err := s.departments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *departmentService) Rename(ctx context.Context, id int64, name string) (*model.Department, error) {
	d, err := s.departments.Rename(ctx, id, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *departmentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	members, err := s.accounts.CountByDepartment(ctx, id)
	if err != nil {
		return fmt.Errorf("count members: %w", err)
	}
	if members > 0 {
		return ErrHasMembers
	}

	return s.departments.Delete(ctx, id)
}

func (s *departmentService) Assign(ctx context.Context, departmentID, userID int64) error {
	if _, err := s.Get(ctx, departmentID); err != nil {
		return err
	}
	if err := s.accounts.UpdateDepartment(ctx, userID, &departmentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *departmentService) Remove(ctx context.Context, departmentID, userID int64) error {
	acc, err := s.accounts.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if acc.DepartmentID == nil || *acc.DepartmentID != departmentID {
		return ErrNotInDepartment
	}
	if err := s.accounts.UpdateDepartment(ctx, userID, nil); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
