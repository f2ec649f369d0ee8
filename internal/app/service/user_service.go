package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crackthechain/internal/common"
	"crackthechain/internal/domain/model"
	"crackthechain/internal/domain/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type UpdateUserRequest struct {
	CompanyName  *string           `json:"companyName"`
	FirstName    *string           `json:"firstName"`
	LastName     *string           `json:"lastName"`
	ProfilePhoto *string           `json:"profilePhoto"`
	About        *model.StringList `json:"about"`
	SocialLink   *model.StringList `json:"socialLink"`
}

type UserListResult struct {
	Users      []model.User     `json:"users"`
	Pagination model.Pagination `json:"pagination"`
}

func (s *UserService) Profile(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ValidationError("User does not exist")
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	user.Password = ""
	return user, nil
}

func (s *UserService) List(ctx context.Context, page, limit int) (*UserListResult, error) {
	users, total, err := s.userRepo.List(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].Password = ""
	}
	return &UserListResult{
		Users:      users,
		Pagination: model.Pagination{TotalCount: total, CurrentPage: page, CurrentSize: limit},
	}, nil
}

// Get returns the user or nil when the id does not resolve.
func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	user.Password = ""
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, req UpdateUserRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if req.CompanyName != nil {
		user.CompanyName = *req.CompanyName
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.ProfilePhoto != nil {
		user.ProfilePhoto = *req.ProfilePhoto
	}
	if req.About != nil {
		user.About = *req.About
	}
	if req.SocialLink != nil {
		user.SocialLink = *req.SocialLink
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	user.Password = ""
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	now := time.Now()
	user.MarkDeleted(now)
	user.UpdatedAt = now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	user.Password = ""
	return user, nil
}

// Restore reverses a soft delete. A restored user must verify their email
// again.
func (s *UserService) Restore(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	now := time.Now()
	user.Lifecycle.Restore(now)
	user.IsVerified = false
	user.UpdatedAt = now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to restore user: %w", err)
	}
	user.Password = ""
	return user, nil
}
