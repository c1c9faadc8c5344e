package redis

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/futdraft/internal/domain/leaderboard"
	"github.com/riskibarqy/futdraft/internal/platform/logging"
)

const warmConcurrency = 8

// MirroredLeaderboard writes to a durable primary and keeps the sorted set as a
// read index. Index failures never fail an Append; Top falls back to the primary.
type MirroredLeaderboard struct {
	primary leaderboard.Repository
	index   *LeaderboardRepository
	logger  *logging.Logger
}

func NewMirroredLeaderboard(primary leaderboard.Repository, index *LeaderboardRepository, logger *logging.Logger) *MirroredLeaderboard {
	if logger == nil {
		logger = logging.Default()
	}
	return &MirroredLeaderboard{primary: primary, index: index, logger: logger}
}

func (m *MirroredLeaderboard) Append(ctx context.Context, entry leaderboard.Entry) error {
	if entry.ID == "" {
		entryID, err := m.index.ids.NewID()
		if err != nil {
			return errors.Wrap(err, "generate leaderboard id")
		}
		entry.ID = entryID
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = m.index.clock.Now()
	}

	if err := m.primary.Append(ctx, entry); err != nil {
		return err
	}
	if err := m.index.Append(ctx, entry); err != nil {
		m.logger.WarnContext(ctx, "leaderboard index write failed", "entry_id", entry.ID, "error", err)
	}
	return nil
}

func (m *MirroredLeaderboard) Top(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	items, err := m.index.Top(ctx, limit)
	if err == nil {
		return items, nil
	}
	m.logger.WarnContext(ctx, "leaderboard index read failed, using primary", "error", err)
	return m.primary.Top(ctx, limit)
}

// Warm copies the primary's top entries into the index.
func (m *MirroredLeaderboard) Warm(ctx context.Context) (int, error) {
	items, err := m.primary.Top(ctx, leaderboard.MaxLimit)
	if err != nil {
		return 0, errors.Wrap(err, "load leaderboard for warmup")
	}

	p := pool.New().WithContext(ctx).WithMaxGoroutines(warmConcurrency)
	for _, item := range items {
		p.Go(func(ctx context.Context) error {
			return m.index.Append(ctx, item)
		})
	}
	if err := p.Wait(); err != nil {
		return 0, errors.Wrap(err, "warm leaderboard index")
	}
	return len(items), nil
}
