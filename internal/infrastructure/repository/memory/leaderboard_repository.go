package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/riskibarqy/futdraft/internal/domain/leaderboard"
	"github.com/riskibarqy/futdraft/internal/platform/id"
)

type LeaderboardRepository struct {
	mu    sync.RWMutex
	items []leaderboard.Entry
	ids   id.Generator
}

func NewLeaderboardRepository(ids id.Generator) *LeaderboardRepository {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &LeaderboardRepository{ids: ids}
}

func (r *LeaderboardRepository) Append(_ context.Context, entry leaderboard.Entry) error {
	if entry.ID == "" {
		entryID, err := r.ids.NewID()
		if err != nil {
			return fmt.Errorf("generate leaderboard id: %w", err)
		}
		entry.ID = entryID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, entry)
	return nil
}

func (r *LeaderboardRepository) Top(_ context.Context, limit int) ([]leaderboard.Entry, error) {
	r.mu.RLock()
	out := append([]leaderboard.Entry(nil), r.items...)
	r.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b leaderboard.Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	limit = leaderboard.NormalizeLimit(limit)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
