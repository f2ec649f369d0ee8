package service

import (
	"context"
	"testing"

	"crackthechain/internal/common"
	"crackthechain/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProjectRepo struct {
	mock.Mock
}

func (m *mockProjectRepo) Create(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *mockProjectRepo) FindByID(ctx context.Context, id string) (*model.Project, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*model.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProjectRepo) Update(ctx context.Context, project *model.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *mockProjectRepo) List(ctx context.Context, isProject bool, page, limit int) ([]model.ProjectWithReportCount, int, error) {
	args := m.Called(ctx, isProject, page, limit)
	var projects []model.ProjectWithReportCount
	if v := args.Get(0); v != nil {
		projects = v.([]model.ProjectWithReportCount)
	}
	return projects, args.Int(1), args.Error(2)
}

func (m *mockProjectRepo) ListPublished(ctx context.Context, isProject bool, page, limit int) ([]model.ProjectWithReportCount, error) {
	args := m.Called(ctx, isProject, page, limit)
	var projects []model.ProjectWithReportCount
	if v := args.Get(0); v != nil {
		projects = v.([]model.ProjectWithReportCount)
	}
	return projects, args.Error(1)
}

func (m *mockProjectRepo) ListPublishedOptions(ctx context.Context) ([]model.ProjectOption, error) {
	args := m.Called(ctx)
	var options []model.ProjectOption
	if v := args.Get(0); v != nil {
		options = v.([]model.ProjectOption)
	}
	return options, args.Error(1)
}

func TestProjectCreateSlugifiesNameAndStartsUnpublished(t *testing.T) {
	projectRepo := new(mockProjectRepo)
	svc := NewProjectService(projectRepo, newMemSectionRepo())

	projectRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Project")).Return(nil)

	project, err := svc.Create(context.Background(), CreateProjectRequest{
		ProjectName:        "Acme Bug Bounty 2026",
		CompanyID:          "c1",
		ProjectDescription: "Find bugs",
	})
	require.NoError(t, err)
	assert.Equal(t, "acme-bug-bounty-2026", project.Slug)
	assert.True(t, project.IsProject)
	assert.False(t, project.IsPublished)
}

func TestProjectCreateValidation(t *testing.T) {
	svc := NewProjectService(new(mockProjectRepo), newMemSectionRepo())

	_, err := svc.Create(context.Background(), CreateProjectRequest{ProjectName: "Acme"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestProjectUpdateRenameRefreshesSlug(t *testing.T) {
	projectRepo := new(mockProjectRepo)
	svc := NewProjectService(projectRepo, newMemSectionRepo())

	projectRepo.On("FindByID", mock.Anything, "p1").Return(&model.Project{
		ID: "p1", ProjectName: "Old Name", Slug: "old-name",
	}, nil)
	projectRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Project")).Return(nil)

	name := "New Name"
	project, err := svc.Update(context.Background(), "p1", UpdateProjectRequest{ProjectName: &name})
	require.NoError(t, err)
	require.NotNil(t, project)
	assert.Equal(t, "new-name", project.Slug)
}

func TestProjectPublishUnpublishToggle(t *testing.T) {
	projectRepo := new(mockProjectRepo)
	svc := NewProjectService(projectRepo, newMemSectionRepo())

	stored := &model.Project{ID: "p1", ProjectName: "Acme"}
	projectRepo.On("FindByID", mock.Anything, "p1").Return(stored, nil)
	projectRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Project")).Return(nil)

	project, err := svc.Publish(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, project)
	assert.True(t, project.IsPublished)

	project, err = svc.Unpublish(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, project)
	assert.False(t, project.IsPublished)
}

func TestProjectPublishMissingReturnsNil(t *testing.T) {
	projectRepo := new(mockProjectRepo)
	svc := NewProjectService(projectRepo, newMemSectionRepo())
	projectRepo.On("FindByID", mock.Anything, "gone").Return(nil, common.ErrNotFound)

	project, err := svc.Publish(context.Background(), "gone")
	require.NoError(t, err)
	assert.Nil(t, project)
}

func TestProjectGetIncludesSectionsInRankOrder(t *testing.T) {
	projectRepo := new(mockProjectRepo)
	sectionRepo := newMemSectionRepo()
	svc := NewProjectService(projectRepo, sectionRepo)

	projectRepo.On("FindByID", mock.Anything, "p1").Return(&model.Project{ID: "p1", ProjectName: "Acme"}, nil)

	sectionSvc := NewSectionService(sectionRepo)
	mustCreateSection(t, sectionSvc, "p1", "Scope", false)
	mustCreateSection(t, sectionSvc, "p1", "Rules", false)

	details, err := svc.Get(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, details)
	require.Len(t, details.Sections, 2)
	assert.Equal(t, "Scope", details.Sections[0].SectionTitle)
	assert.Equal(t, "Rules", details.Sections[1].SectionTitle)
}

func TestProjectDeleteSoftDeletes(t *testing.T) {
	projectRepo := new(mockProjectRepo)
	svc := NewProjectService(projectRepo, newMemSectionRepo())

	stored := &model.Project{ID: "p1"}
	projectRepo.On("FindByID", mock.Anything, "p1").Return(stored, nil)
	projectRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Project) bool {
		return p.IsDeleted && p.DeletedAt != nil
	})).Return(nil)

	project, err := svc.Delete(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, project)
	assert.True(t, project.IsDeleted)
	projectRepo.AssertExpectations(t)
}
