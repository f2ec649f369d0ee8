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
	"github.com/gosimple/slug"
)

type ProjectService struct {
	projectRepo repository.ProjectRepository
	sectionRepo repository.ProjectSectionRepository
}

func NewProjectService(projectRepo repository.ProjectRepository, sectionRepo repository.ProjectSectionRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, sectionRepo: sectionRepo}
}

type CreateProjectRequest struct {
	ProjectName        string    `json:"projectName"`
	CompanyID          string    `json:"companyId"`
	ProjectDescription string    `json:"projectDescription"`
	MinPrice           float64   `json:"minPrice"`
	MaxPrice           float64   `json:"maxPrice"`
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	StartTime          string    `json:"startTime"`
	EndTime            string    `json:"endTime"`
	ServiceType        string    `json:"serviceType"`
	IsProject          *bool     `json:"isProject"`
	MaxPoints          int       `json:"maxPoints"`
}

type UpdateProjectRequest struct {
	ProjectName        *string    `json:"projectName"`
	ProjectDescription *string    `json:"projectDescription"`
	MinPrice           *float64   `json:"minPrice"`
	MaxPrice           *float64   `json:"maxPrice"`
	StartDate          *time.Time `json:"startDate"`
	EndDate            *time.Time `json:"endDate"`
	StartTime          *string    `json:"startTime"`
	EndTime            *string    `json:"endTime"`
	ServiceType        *string    `json:"serviceType"`
	IsProject          *bool      `json:"isProject"`
	MaxPoints          *int       `json:"maxPoints"`
}

type ProjectListResult struct {
	Projects   []model.ProjectWithReportCount `json:"projects"`
	Pagination model.Pagination               `json:"pagination"`
}

func (s *ProjectService) List(ctx context.Context, isProject bool, page, limit int) (*ProjectListResult, error) {
	projects, total, err := s.projectRepo.List(ctx, isProject, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return &ProjectListResult{
		Projects:   projects,
		Pagination: model.Pagination{TotalCount: total, CurrentPage: page, CurrentSize: limit},
	}, nil
}

func (s *ProjectService) ListPublished(ctx context.Context, isProject bool, page, limit int) ([]model.ProjectWithReportCount, error) {
	projects, err := s.projectRepo.ListPublished(ctx, isProject, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list published projects: %w", err)
	}
	return projects, nil
}

func (s *ProjectService) PublishedDropdown(ctx context.Context) ([]model.ProjectOption, error) {
	options, err := s.projectRepo.ListPublishedOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list project options: %w", err)
	}
	return options, nil
}

// Get returns the project with its sections ordered by rank, or nil when the
// id does not resolve.
func (s *ProjectService) Get(ctx context.Context, id string) (*model.ProjectDetails, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	sections, err := s.sectionRepo.ListAllByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project sections: %w", err)
	}
	return &model.ProjectDetails{Project: *project, Sections: sections}, nil
}

func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest) (*model.Project, error) {
	if req.ProjectName == "" || req.CompanyID == "" || req.ProjectDescription == "" {
		return nil, common.ValidationError("Project name, company and description are required")
	}

	isProject := true
	if req.IsProject != nil {
		isProject = *req.IsProject
	}

	now := time.Now()
	project := &model.Project{
		ID:                 uuid.NewString(),
		ProjectName:        req.ProjectName,
		Slug:               slug.Make(req.ProjectName),
		CompanyID:          req.CompanyID,
		ProjectDescription: req.ProjectDescription,
		MinPrice:           req.MinPrice,
		MaxPrice:           req.MaxPrice,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		ServiceType:        req.ServiceType,
		IsProject:          isProject,
		IsPublished:        false,
		MaxPoints:          req.MaxPoints,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, req UpdateProjectRequest) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	if req.ProjectName != nil {
		project.ProjectName = *req.ProjectName
		project.Slug = slug.Make(*req.ProjectName)
	}
	if req.ProjectDescription != nil {
		project.ProjectDescription = *req.ProjectDescription
	}
	if req.MinPrice != nil {
		project.MinPrice = *req.MinPrice
	}
	if req.MaxPrice != nil {
		project.MaxPrice = *req.MaxPrice
	}
	if req.StartDate != nil {
		project.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = *req.EndDate
	}
	if req.StartTime != nil {
		project.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		project.EndTime = *req.EndTime
	}
	if req.ServiceType != nil {
		project.ServiceType = *req.ServiceType
	}
	if req.IsProject != nil {
		project.IsProject = *req.IsProject
	}
	if req.MaxPoints != nil {
		project.MaxPoints = *req.MaxPoints
	}
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	now := time.Now()
	project.MarkDeleted(now)
	project.UpdatedAt = now
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Restore(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	now := time.Now()
	project.Lifecycle.Restore(now)
	project.UpdatedAt = now
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to restore project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Publish(ctx context.Context, id string) (*model.Project, error) {
	return s.setPublished(ctx, id, true)
}

func (s *ProjectService) Unpublish(ctx context.Context, id string) (*model.Project, error) {
	return s.setPublished(ctx, id, false)
}

// setPublished flips the visibility flag only; no prerequisite validation and
// no side effects on related entities.
func (s *ProjectService) setPublished(ctx context.Context, id string, published bool) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	project.IsPublished = published
	project.UpdatedAt = time.Now()
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}
