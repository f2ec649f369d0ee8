package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crackthechain/internal/common"
	"crackthechain/internal/domain/model"
	"crackthechain/internal/domain/repository"

	"github.com/google/uuid"
)

type ReportService struct {
	reportRepo  repository.ProjectReportRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

func NewReportService(reportRepo repository.ProjectReportRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo, projectRepo: projectRepo, userRepo: userRepo}
}

type CreateReportRequest struct {
	ProjectID         string `json:"projectId"`
	SelectedAsset     string `json:"selectedAsset"`
	Severity          string `json:"severity"`
	ReportTitle       string `json:"reportTitle"`
	ReportDescription string `json:"reportDescription"`
}

type UpdateReportRequest struct {
	SelectedAsset     *string `json:"selectedAsset"`
	Severity          *string `json:"severity"`
	ReportTitle       *string `json:"reportTitle"`
	ReportDescription *string `json:"reportDescription"`
	Status            *string `json:"status"`
	IsAccepted        *bool   `json:"isAccepted"`
	Points            *int    `json:"points"`
}

type ProjectReportsResult struct {
	Project    *model.Project         `json:"project"`
	Reports    []model.ReportWithUser `json:"reports"`
	Pagination model.Pagination       `json:"pagination"`
}

type UserReportsResult struct {
	User       *model.User               `json:"user"`
	Reports    []model.ReportWithProject `json:"reports"`
	Pagination model.Pagination          `json:"pagination"`
}

func validSeverity(severity string) bool {
	switch severity {
	case model.SeverityLow, model.SeverityMedium, model.SeverityHigh, model.SeverityCritical:
		return true
	}
	return false
}

func validReportStatus(status string) bool {
	switch status {
	case model.ReportStatusInitiated, model.ReportStatusInDiscussion, model.ReportStatusWorking,
		model.ReportStatusAccepted, model.ReportStatusRejected:
		return true
	}
	return false
}

// Create files a new report as a draft owned by the authenticated user.
func (s *ReportService) Create(ctx context.Context, userID string, req CreateReportRequest) (*model.ProjectReport, error) {
	if req.ProjectID == "" || req.SelectedAsset == "" || req.ReportTitle == "" || req.ReportDescription == "" {
		return nil, common.ValidationError("Project, asset, title and description are required")
	}
	if !validSeverity(req.Severity) {
		return nil, common.ValidationError("Invalid severity")
	}

	now := time.Now()
	report := &model.ProjectReport{
		ID:                uuid.NewString(),
		UserID:            userID,
		ProjectID:         req.ProjectID,
		SelectedAsset:     req.SelectedAsset,
		IsDraft:           true,
		Severity:          req.Severity,
		ReportTitle:       req.ReportTitle,
		ReportDescription: req.ReportDescription,
		Points:            0,
		Status:            model.ReportStatusInitiated,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return report, nil
}

func (s *ReportService) Update(ctx context.Context, id string, req UpdateReportRequest) (*model.ProjectReport, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}

	if req.Severity != nil && !validSeverity(*req.Severity) {
		return nil, common.ValidationError("Invalid severity")
	}
	if req.Status != nil && !validReportStatus(*req.Status) {
		return nil, common.ValidationError("Invalid status")
	}

	if req.SelectedAsset != nil {
		report.SelectedAsset = *req.SelectedAsset
	}
	if req.Severity != nil {
		report.Severity = *req.Severity
	}
	if req.ReportTitle != nil {
		report.ReportTitle = *req.ReportTitle
	}
	if req.ReportDescription != nil {
		report.ReportDescription = *req.ReportDescription
	}
	if req.Status != nil {
		report.Status = *req.Status
	}
	if req.IsAccepted != nil {
		report.IsAccepted = *req.IsAccepted
	}
	if req.Points != nil {
		report.Points = *req.Points
	}
	report.UpdatedAt = time.Now()

	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}
	return report, nil
}

func (s *ReportService) Delete(ctx context.Context, id string) (*model.ProjectReport, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}

	now := time.Now()
	report.MarkDeleted(now)
	report.UpdatedAt = now
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to delete report: %w", err)
	}
	return report, nil
}

func (s *ReportService) Restore(ctx context.Context, id string) (*model.ProjectReport, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}

	now := time.Now()
	report.Lifecycle.Restore(now)
	report.UpdatedAt = now
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to restore report: %w", err)
	}
	return report, nil
}

func (s *ReportService) Publish(ctx context.Context, id string) (*model.ProjectReport, error) {
	return s.setDraft(ctx, id, false)
}

func (s *ReportService) Unpublish(ctx context.Context, id string) (*model.ProjectReport, error) {
	return s.setDraft(ctx, id, true)
}

func (s *ReportService) setDraft(ctx context.Context, id string, draft bool) (*model.ProjectReport, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}

	report.IsDraft = draft
	report.UpdatedAt = time.Now()
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}
	return report, nil
}

// PublishedByProject returns a project together with its published reports,
// or nil when the project does not resolve.
func (s *ReportService) PublishedByProject(ctx context.Context, projectID string, page, limit int) (*ProjectReportsResult, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	reports, total, err := s.reportRepo.ListPublishedByProject(ctx, projectID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return &ProjectReportsResult{
		Project:    project,
		Reports:    reports,
		Pagination: model.Pagination{TotalCount: total, CurrentPage: page, CurrentSize: limit},
	}, nil
}

func (s *ReportService) ByUser(ctx context.Context, userID string, page, limit int) (*UserReportsResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	user.Password = ""

	reports, total, err := s.reportRepo.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return &UserReportsResult{
		User:       user,
		Reports:    reports,
		Pagination: model.Pagination{TotalCount: total, CurrentPage: page, CurrentSize: limit},
	}, nil
}

// Get returns the report or nil when the id does not resolve.
func (s *ReportService) Get(ctx context.Context, id string) (*model.ProjectReport, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}
	return report, nil
}
