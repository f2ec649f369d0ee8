package service

import (
	"context"
	"fmt"

	"crackthechain/internal/domain/model"
	"crackthechain/internal/domain/repository"
)

type StatsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) *StatsService {
	return &StatsService{statsRepo: statsRepo}
}

type LeaderboardResult struct {
	Users []model.LeaderboardEntry `json:"users"`
}

func (s *StatsService) TopResearchers(ctx context.Context, page, limit int) (*LeaderboardResult, error) {
	entries, err := s.statsRepo.TopResearchers(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute leaderboard: %w", err)
	}
	return &LeaderboardResult{Users: entries}, nil
}

func (s *StatsService) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	stats, err := s.statsRepo.Dashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}
	return stats, nil
}
