// Package redis keeps the leaderboard in a sorted set so Top never scans every entry.
package redis

import (
	"context"
	"fmt"
	"math"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/riskibarqy/futdraft/internal/domain/leaderboard"
	"github.com/riskibarqy/futdraft/internal/platform/id"
)

// LeaderboardRepository stores scores in the sorted set <key> and entry bodies
// in the hash <key>:entries, both keyed by the same member.
type LeaderboardRepository struct {
	client goredis.UniversalClient
	key    string
	ids    id.Generator
	clock  clockwork.Clock
}

func NewLeaderboardRepository(client goredis.UniversalClient, key string, ids id.Generator, clock clockwork.Clock) *LeaderboardRepository {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if key == "" {
		key = "futdraft:leaderboard"
	}
	return &LeaderboardRepository{client: client, key: key, ids: ids, clock: clock}
}

func (r *LeaderboardRepository) entriesKey() string {
	return r.key + ":entries"
}

func (r *LeaderboardRepository) Append(ctx context.Context, entry leaderboard.Entry) error {
	if err := entry.Validate(); err != nil {
		return errors.Wrap(err, "append leaderboard entry")
	}
	if entry.ID == "" {
		entryID, err := r.ids.NewID()
		if err != nil {
			return errors.Wrap(err, "generate leaderboard id")
		}
		entry.ID = entryID
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.clock.Now()
	}

	body, err := sonic.Marshal(toRedisEntry(entry))
	if err != nil {
		return errors.Wrap(err, "encode leaderboard entry")
	}

	member := memberFor(entry)
	_, err = r.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, r.entriesKey(), member, body)
		pipe.ZAdd(ctx, r.key, goredis.Z{Score: float64(entry.Score), Member: member})
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "store leaderboard entry id=%s", entry.ID)
	}
	return nil
}

func (r *LeaderboardRepository) Top(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	limit = leaderboard.NormalizeLimit(limit)

	members, err := r.client.ZRevRange(ctx, r.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "list leaderboard members")
	}
	if len(members) == 0 {
		return []leaderboard.Entry{}, nil
	}

	bodies, err := r.client.HMGet(ctx, r.entriesKey(), members...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "load leaderboard entries")
	}

	out := make([]leaderboard.Entry, 0, len(bodies))
	for i, raw := range bodies {
		body, ok := raw.(string)
		if !ok {
			// Sorted set member without a body; skip rather than fail the board.
			continue
		}
		var item redisEntry
		if err := sonic.UnmarshalString(body, &item); err != nil {
			return nil, errors.Wrapf(err, "decode leaderboard entry member=%s", members[i])
		}
		out = append(out, item.toDomain())
	}
	return out, nil
}

// memberFor orders equal scores by creation time under ZREVRANGE: members
// compare lexicographically, so the inverted timestamp puts older entries first.
func memberFor(entry leaderboard.Entry) string {
	inverted := math.MaxInt64 - entry.CreatedAt.UnixNano()
	return fmt.Sprintf("%019d:%s", inverted, entry.ID)
}
