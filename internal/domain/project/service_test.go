package project_test

import (
	"context"
	"errors"
	"testing"

	"github.com/outrun/memeverse/internal/domain/project"
	"github.com/outrun/memeverse/internal/repository"
	"github.com/outrun/memeverse/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProjectService_CreateDefaults(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := project.NewService(repo, nil)
	proj, err := svc.Create(ctx, &project.Project{
		Name:  "Doge",
		Stage: project.StageGenesis,
		Chain: "base",
	})
	require.NoError(t, err)
	require.NotEmpty(t, proj.ID)
	require.Equal(t, project.ModeNormal, proj.Mode)
}

func TestProjectService_CreateValidation(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	svc := project.NewService(repo, nil)

	_, err := svc.Create(ctx, &project.Project{Name: "", Stage: project.StageGenesis, Chain: "base"})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	_, err = svc.Create(ctx, &project.Project{Name: "X", Stage: "Launching", Chain: "base"})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	_, err = svc.Create(ctx, &project.Project{Name: "X", Stage: project.StageGenesis, Mode: "turbo", Chain: "base"})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectService_GetNotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)

	svc := project.NewService(repo, nil)
	_, err := svc.Get(ctx, "missing")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestProjectService_AllLoadsOnce(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("List", ctx).Return([]project.Project{{ID: "p1"}, {ID: "p2"}}, nil).Once()

	svc := project.NewService(repo, nil)
	first, err := svc.All(ctx)
	require.NoError(t, err)
	second, err := svc.All(ctx)
	require.NoError(t, err)

	require.Len(t, first, 2)
	require.Equal(t, first, second)
	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestProjectService_AllRetriesAfterError(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("List", ctx).Return(nil, errors.New("db down")).Once()
	repo.On("List", ctx).Return([]project.Project{{ID: "p1"}}, nil).Once()

	svc := project.NewService(repo, nil)
	_, err := svc.All(ctx)
	require.Error(t, err)

	projects, err := svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
}

func TestProjectService_Summarize(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("List", ctx).Return([]project.Project{
		{ID: "a", Stage: project.StageGenesis, Chain: "Ethereum"},
		{ID: "b", Stage: project.StageGenesis, Chain: "base"},
		{ID: "c", Stage: project.StageLocked, Chain: "ethereum"},
	}, nil)

	svc := project.NewService(repo, nil)
	sum, err := svc.Summarize(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, sum.Total)
	require.Equal(t, 2, sum.ByStage["genesis"])
	require.Equal(t, 0, sum.ByStage["refund"])
	require.Equal(t, 1, sum.ByStage["locked"])
	require.Equal(t, 2, sum.ByChain["ethereum"])
	require.Equal(t, 1, sum.ByChain["base"])
}

func TestParseStage(t *testing.T) {
	for _, st := range project.Stages {
		parsed, ok := project.ParseStage(st.ID())
		require.True(t, ok)
		require.Equal(t, st, parsed)
	}
	_, ok := project.ParseStage("launching")
	require.False(t, ok)
}
