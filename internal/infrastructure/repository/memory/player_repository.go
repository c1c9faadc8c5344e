package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/futdraft/internal/domain/player"
)

type PlayerRepository struct {
	mu     sync.RWMutex
	items  []player.Player
	bySlug map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	items := append([]player.Player(nil), players...)
	// Highest rating first, like the catalog query.
	slices.SortStableFunc(items, func(a, b player.Player) int {
		return cmp.Compare(b.Rating, a.Rating)
	})

	bySlug := make(map[string]player.Player, len(items))
	for _, p := range items {
		bySlug[p.Slug] = p
	}

	return &PlayerRepository{items: items, bySlug: bySlug}
}

func (r *PlayerRepository) List(_ context.Context, filter player.Filter) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.NormalizedLimit()
	out := make([]player.Player, 0, min(limit, len(r.items)))
	for _, p := range r.items {
		if !filter.Match(p) {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}

	return out, nil
}

func (r *PlayerRepository) GetBySlug(_ context.Context, slug string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.bySlug[slug]
	return p, ok, nil
}
