package mocks

import (
	"context"
	"io"

	"filehub/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Upload(ctx context.Context, actor *model.Identity, r io.Reader, originalFilename, contentType string, size int64, visibility model.Visibility, meta map[string]string) (*model.File, error) {
	args := m.Called(ctx, actor, r, originalFilename, contentType, size, visibility, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileService) List(ctx context.Context, actor *model.Identity) ([]model.File, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.File), args.Error(1)
}

func (m *MockFileService) Get(ctx context.Context, actor *model.Identity, id int64) (*model.File, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.File), args.Error(1)
}

func (m *MockFileService) Download(ctx context.Context, actor *model.Identity, id int64) (string, error) {
	args := m.Called(ctx, actor, id)
	return args.String(0), args.Error(1)
}

func (m *MockFileService) Delete(ctx context.Context, actor *model.Identity, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}
