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

type mockReportRepo struct {
	mock.Mock
}

func (m *mockReportRepo) Create(ctx context.Context, report *model.ProjectReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *mockReportRepo) FindByID(ctx context.Context, id string) (*model.ProjectReport, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*model.ProjectReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReportRepo) Update(ctx context.Context, report *model.ProjectReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *mockReportRepo) ListPublishedByProject(ctx context.Context, projectID string, page, limit int) ([]model.ReportWithUser, int, error) {
	args := m.Called(ctx, projectID, page, limit)
	var reports []model.ReportWithUser
	if v := args.Get(0); v != nil {
		reports = v.([]model.ReportWithUser)
	}
	return reports, args.Int(1), args.Error(2)
}

func (m *mockReportRepo) ListByUser(ctx context.Context, userID string, page, limit int) ([]model.ReportWithProject, int, error) {
	args := m.Called(ctx, userID, page, limit)
	var reports []model.ReportWithProject
	if v := args.Get(0); v != nil {
		reports = v.([]model.ReportWithProject)
	}
	return reports, args.Int(1), args.Error(2)
}

func newReportService(reportRepo *mockReportRepo, projectRepo *mockProjectRepo, userRepo *mockUserRepo) *ReportService {
	if reportRepo == nil {
		reportRepo = new(mockReportRepo)
	}
	if projectRepo == nil {
		projectRepo = new(mockProjectRepo)
	}
	if userRepo == nil {
		userRepo = new(mockUserRepo)
	}
	return NewReportService(reportRepo, projectRepo, userRepo)
}

func TestReportCreateStartsAsDraft(t *testing.T) {
	reportRepo := new(mockReportRepo)
	svc := newReportService(reportRepo, nil, nil)

	reportRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.ProjectReport")).Return(nil)

	report, err := svc.Create(context.Background(), "u1", CreateReportRequest{
		ProjectID:         "p1",
		SelectedAsset:     "api.acme.com",
		Severity:          model.SeverityHigh,
		ReportTitle:       "IDOR on invoices",
		ReportDescription: "Sequential ids leak other tenants",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", report.UserID)
	assert.True(t, report.IsDraft)
	assert.False(t, report.IsAccepted)
	assert.Equal(t, 0, report.Points)
	assert.Equal(t, model.ReportStatusInitiated, report.Status)
}

func TestReportCreateValidation(t *testing.T) {
	svc := newReportService(nil, nil, nil)

	_, err := svc.Create(context.Background(), "u1", CreateReportRequest{ProjectID: "p1"})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Create(context.Background(), "u1", CreateReportRequest{
		ProjectID:         "p1",
		SelectedAsset:     "api.acme.com",
		Severity:          "catastrophic",
		ReportTitle:       "t",
		ReportDescription: "d",
	})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestReportUpdateRejectsUnknownStatus(t *testing.T) {
	reportRepo := new(mockReportRepo)
	svc := newReportService(reportRepo, nil, nil)

	reportRepo.On("FindByID", mock.Anything, "r1").Return(&model.ProjectReport{ID: "r1", Status: model.ReportStatusInitiated}, nil)

	status := "closed"
	_, err := svc.Update(context.Background(), "r1", UpdateReportRequest{Status: &status})
	assert.ErrorIs(t, err, common.ErrValidation)
	reportRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestReportUpdateAcceptsAndAwardsPoints(t *testing.T) {
	reportRepo := new(mockReportRepo)
	svc := newReportService(reportRepo, nil, nil)

	reportRepo.On("FindByID", mock.Anything, "r1").Return(&model.ProjectReport{ID: "r1", Status: model.ReportStatusWorking}, nil)
	reportRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *model.ProjectReport) bool {
		return r.Status == model.ReportStatusAccepted && r.IsAccepted && r.Points == 500
	})).Return(nil)

	status := model.ReportStatusAccepted
	accepted := true
	points := 500
	report, err := svc.Update(context.Background(), "r1", UpdateReportRequest{
		Status: &status, IsAccepted: &accepted, Points: &points,
	})
	require.NoError(t, err)
	require.NotNil(t, report)
	reportRepo.AssertExpectations(t)
}

func TestReportPublishClearsDraftFlag(t *testing.T) {
	reportRepo := new(mockReportRepo)
	svc := newReportService(reportRepo, nil, nil)

	stored := &model.ProjectReport{ID: "r1", IsDraft: true}
	reportRepo.On("FindByID", mock.Anything, "r1").Return(stored, nil)
	reportRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.ProjectReport")).Return(nil)

	report, err := svc.Publish(context.Background(), "r1")
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.False(t, report.IsDraft)

	report, err = svc.Unpublish(context.Background(), "r1")
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.True(t, report.IsDraft)
}

func TestReportPublishedByProjectUnknownProject(t *testing.T) {
	projectRepo := new(mockProjectRepo)
	svc := newReportService(nil, projectRepo, nil)

	projectRepo.On("FindByID", mock.Anything, "gone").Return(nil, common.ErrNotFound)

	result, err := svc.PublishedByProject(context.Background(), "gone", 1, 10)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestReportByUserBundlesUserAndReports(t *testing.T) {
	reportRepo := new(mockReportRepo)
	userRepo := new(mockUserRepo)
	svc := newReportService(reportRepo, nil, userRepo)

	userRepo.On("FindByID", mock.Anything, "u1").Return(&model.User{ID: "u1", Password: "hash"}, nil)
	reportRepo.On("ListByUser", mock.Anything, "u1", 1, 10).Return([]model.ReportWithProject{
		{ProjectReport: model.ProjectReport{ID: "r1"}, ProjectName: "Acme"},
	}, 1, nil)

	result, err := svc.ByUser(context.Background(), "u1", 1, 10)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Empty(t, result.User.Password)
	require.Len(t, result.Reports, 1)
	assert.Equal(t, "Acme", result.Reports[0].ProjectName)
	assert.Equal(t, 1, result.Pagination.TotalCount)
}
