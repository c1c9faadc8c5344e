package redis

import (
	"time"

	"github.com/riskibarqy/futdraft/internal/domain/leaderboard"
)

type redisEntry struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Score     int64     `json:"score"`
	SessionID string    `json:"session_id,omitempty"`
	Mode      string    `json:"mode,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toRedisEntry(e leaderboard.Entry) redisEntry {
	return redisEntry{
		ID:        e.ID,
		Username:  e.Username,
		Score:     e.Score,
		SessionID: e.SessionID,
		Mode:      e.Mode,
		CreatedAt: e.CreatedAt.UTC(),
	}
}

func (e redisEntry) toDomain() leaderboard.Entry {
	return leaderboard.Entry{
		ID:        e.ID,
		Username:  e.Username,
		Score:     e.Score,
		SessionID: e.SessionID,
		Mode:      e.Mode,
		CreatedAt: e.CreatedAt,
	}
}
