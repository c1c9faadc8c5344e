package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/futdraft/internal/domain/player"
	"github.com/riskibarqy/futdraft/internal/domain/position"
)

type PlayerService struct {
	playerRepo player.Repository
}

func NewPlayerService(playerRepo player.Repository) *PlayerService {
	return &PlayerService{playerRepo: playerRepo}
}

// List searches the player catalog, highest rating first.
func (s *PlayerService) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	filter.Name = strings.TrimSpace(filter.Name)
	if filter.Position != "" {
		filter.Position = position.Normalize(string(filter.Position))
		if !position.Known(filter.Position) {
			return nil, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, filter.Position)
		}
	}
	if filter.MinRating > 0 && filter.MaxRating > 0 && filter.MinRating > filter.MaxRating {
		return nil, fmt.Errorf("%w: min_rating must not exceed max_rating", ErrInvalidInput)
	}
	if filter.MinValueMil > 0 && filter.MaxValueMil > 0 && filter.MinValueMil > filter.MaxValueMil {
		return nil, fmt.Errorf("%w: min_value must not exceed max_value", ErrInvalidInput)
	}
	filter.Limit = filter.NormalizedLimit()

	players, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, dependencyErr("list players", err)
	}
	return players, nil
}

func (s *PlayerService) Get(ctx context.Context, slug string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Get")
	defer span.End()

	slug = strings.TrimSpace(slug)
	if slug == "" {
		return player.Player{}, fmt.Errorf("%w: player slug is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetBySlug(ctx, slug)
	if err != nil {
		return player.Player{}, dependencyErr("get player", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, slug)
	}
	return item, nil
}
