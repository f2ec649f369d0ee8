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

type SectionService struct {
	sectionRepo repository.ProjectSectionRepository
}

func NewSectionService(sectionRepo repository.ProjectSectionRepository) *SectionService {
	return &SectionService{sectionRepo: sectionRepo}
}

type CreateSectionRequest struct {
	SectionTitle string           `json:"sectionTitle"`
	SectionType  string           `json:"sectionType"`
	SectionText  string           `json:"sectionText"`
	SectionList  model.StringList `json:"sectionList"`
	IsAsset      bool             `json:"isAsset"`
}

type UpdateSectionRequest struct {
	SectionTitle *string           `json:"sectionTitle"`
	SectionType  *string           `json:"sectionType"`
	SectionText  *string           `json:"sectionText"`
	SectionList  *model.StringList `json:"sectionList"`
	IsAsset      *bool             `json:"isAsset"`
}

type SectionListResult struct {
	Sections   []model.ProjectSection `json:"sections"`
	Pagination model.Pagination       `json:"pagination"`
}

func validSectionType(sectionType string) bool {
	switch sectionType {
	case model.SectionTypeText, model.SectionTypeList, model.SectionTypeStats:
		return true
	}
	return false
}

// Create appends a section at the end of a project's ordering. When the new
// section is an asset, every other asset flag in the project is cleared
// first; the clear and the insert are separate writes, last writer wins.
func (s *SectionService) Create(ctx context.Context, projectID string, req CreateSectionRequest) (*model.ProjectSection, error) {
	if req.SectionTitle == "" {
		return nil, common.ValidationError("Section title is required")
	}
	if !validSectionType(req.SectionType) {
		return nil, common.ValidationError("Invalid section type")
	}

	if req.IsAsset {
		if err := s.sectionRepo.ClearAssetFlags(ctx, projectID); err != nil {
			return nil, fmt.Errorf("failed to clear asset flags: %w", err)
		}
	}

	count, err := s.sectionRepo.CountActive(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to count sections: %w", err)
	}

	now := time.Now()
	section := &model.ProjectSection{
		ID:           uuid.NewString(),
		SectionTitle: req.SectionTitle,
		SectionType:  req.SectionType,
		SectionText:  req.SectionText,
		SectionList:  req.SectionList,
		IsAsset:      req.IsAsset,
		Rank:         count + 1,
		ProjectID:    projectID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.sectionRepo.Create(ctx, section); err != nil {
		return nil, fmt.Errorf("failed to create section: %w", err)
	}
	return section, nil
}

func (s *SectionService) Update(ctx context.Context, id string, req UpdateSectionRequest) (*model.ProjectSection, error) {
	section, err := s.sectionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch section: %w", err)
	}

	if req.SectionType != nil && !validSectionType(*req.SectionType) {
		return nil, common.ValidationError("Invalid section type")
	}

	// Exclusivity only holds among non-deleted sections; a deleted target is
	// updated without touching its siblings.
	if req.IsAsset != nil && *req.IsAsset && !section.IsDeleted {
		if err := s.sectionRepo.ClearAssetFlags(ctx, section.ProjectID); err != nil {
			return nil, fmt.Errorf("failed to clear asset flags: %w", err)
		}
	}

	if req.SectionTitle != nil {
		section.SectionTitle = *req.SectionTitle
	}
	if req.SectionType != nil {
		section.SectionType = *req.SectionType
	}
	if req.SectionText != nil {
		section.SectionText = *req.SectionText
	}
	if req.SectionList != nil {
		section.SectionList = *req.SectionList
	}
	if req.IsAsset != nil {
		section.IsAsset = *req.IsAsset
	}
	section.UpdatedAt = time.Now()

	if err := s.sectionRepo.Update(ctx, section); err != nil {
		return nil, fmt.Errorf("failed to update section: %w", err)
	}
	return section, nil
}

func (s *SectionService) Delete(ctx context.Context, id string) (*model.ProjectSection, error) {
	section, err := s.sectionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch section: %w", err)
	}

	now := time.Now()
	section.MarkDeleted(now)
	section.UpdatedAt = now
	if err := s.sectionRepo.Update(ctx, section); err != nil {
		return nil, fmt.Errorf("failed to delete section: %w", err)
	}
	return section, nil
}

func (s *SectionService) Restore(ctx context.Context, id string) (*model.ProjectSection, error) {
	section, err := s.sectionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch section: %w", err)
	}

	now := time.Now()
	section.Lifecycle.Restore(now)
	section.UpdatedAt = now
	if err := s.sectionRepo.Update(ctx, section); err != nil {
		return nil, fmt.Errorf("failed to restore section: %w", err)
	}
	return section, nil
}

// ChangeRank swaps a section's rank with its neighbor above ("up") or below
// ("down"). The two writes are sequential and not wrapped in a transaction; a
// crash between them leaves the ranks inconsistent until the next swap.
func (s *SectionService) ChangeRank(ctx context.Context, id, direction string) (*model.RankSwap, error) {
	if direction != model.RankDirectionUp && direction != model.RankDirectionDown {
		return nil, common.ValidationError("Direction must be up or down")
	}

	current, err := s.sectionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch section: %w", err)
	}

	adjacent, err := s.sectionRepo.FindAdjacent(ctx, current.ProjectID, current.Rank, direction)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ValidationError("No adjacent section to swap with")
		}
		return nil, fmt.Errorf("failed to find adjacent section: %w", err)
	}

	now := time.Now()
	current.Rank, adjacent.Rank = adjacent.Rank, current.Rank
	current.UpdatedAt = now
	adjacent.UpdatedAt = now

	if err := s.sectionRepo.Update(ctx, current); err != nil {
		return nil, fmt.Errorf("failed to save section: %w", err)
	}
	if err := s.sectionRepo.Update(ctx, adjacent); err != nil {
		return nil, fmt.Errorf("failed to save adjacent section: %w", err)
	}

	return &model.RankSwap{CurrentSection: current, AdjacentSection: adjacent}, nil
}

func (s *SectionService) ListByProject(ctx context.Context, projectID string, page, limit int) (*SectionListResult, error) {
	sections, total, err := s.sectionRepo.ListByProject(ctx, projectID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	return &SectionListResult{
		Sections:   sections,
		Pagination: model.Pagination{TotalCount: total, CurrentPage: page, CurrentSize: limit},
	}, nil
}

func (s *SectionService) ListAssets(ctx context.Context, projectID string, page, limit int) (*SectionListResult, error) {
	sections, total, err := s.sectionRepo.ListAssetsByProject(ctx, projectID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return &SectionListResult{
		Sections:   sections,
		Pagination: model.Pagination{TotalCount: total, CurrentPage: page, CurrentSize: limit},
	}, nil
}
