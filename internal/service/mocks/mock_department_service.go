package mocks

import (
	"context"

	"filehub/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockDepartmentService struct {
	mock.Mock
}

func (m *MockDepartmentService) Create(ctx context.Context, name string) (*model.Department, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentService) List(ctx context.Context) ([]model.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Department), args.Error(1)
}

func (m *MockDepartmentService) Get(ctx context.Context, id int64) (*model.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentService) Rename(ctx context.Context, id int64, name string) (*model.Department, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDepartmentService) Assign(ctx context.Context, departmentID, userID int64) error {
	args := m.Called(ctx, departmentID, userID)
	return args.Error(0)
}

func (m *MockDepartmentService) Remove(ctx context.Context, departmentID, userID int64) error {
	args := m.Called(ctx, departmentID, userID)
	return args.Error(0)
}
