package usecase

import (
	"context"

	"github.com/riskibarqy/futdraft/internal/domain/leaderboard"
)

type LeaderboardService struct {
	repo leaderboard.Repository
}

func NewLeaderboardService(repo leaderboard.Repository) *LeaderboardService {
	return &LeaderboardService{repo: repo}
}

func (s *LeaderboardService) Top(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Top")
	defer span.End()

	items, err := s.repo.Top(ctx, leaderboard.NormalizeLimit(limit))
	if err != nil {
		return nil, dependencyErr("list leaderboard", err)
	}
	return items, nil
}
