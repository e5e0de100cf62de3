package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sparkmate/amptrack/internal/domain/project"
)

// ProjectStore is a mock for project.Store.
type ProjectStore struct {
	mock.Mock
}

var _ project.Store = (*ProjectStore)(nil)

func (m *ProjectStore) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectStore) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectStore) List(ctx context.Context) ([]project.Summary, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Summary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectStore) Update(ctx context.Context, id string, fields project.Update) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *ProjectStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
