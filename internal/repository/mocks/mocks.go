package mocks

import (
	"context"
	"time"

	"github.com/outrun/memeverse/internal/domain/project"
	"github.com/outrun/memeverse/internal/domain/session"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// SessionRepository is a mock for session.Repository.
type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Save(ctx context.Context, rec *session.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *SessionRepository) Get(ctx context.Context, id string) (*session.Record, error) {
	args := m.Called(ctx, id)
	if rec, ok := args.Get(0).(*session.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *SessionRepository) DeleteIdle(ctx context.Context, before time.Time) (int, error) {
	args := m.Called(ctx, before)
	return args.Int(0), args.Error(1)
}
