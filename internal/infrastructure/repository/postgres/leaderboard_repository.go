package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/futdraft/internal/domain/leaderboard"
	qb "github.com/riskibarqy/futdraft/internal/platform/querybuilder"
)

type LeaderboardRepository struct {
	db *sqlx.DB
}

type leaderboardTableModel struct {
	ID        string         `db:"id"`
	Username  string         `db:"username"`
	Score     int64          `db:"score"`
	SessionID sql.NullString `db:"session_id"`
	Mode      string         `db:"mode"`
	CreatedAt time.Time      `db:"created_at"`
}

type leaderboardInsertModel struct {
	Username  string         `db:"username"`
	Score     int64          `db:"score"`
	SessionID sql.NullString `db:"session_id"`
	Mode      string         `db:"mode"`
	CreatedAt time.Time      `db:"created_at"`
}

func NewLeaderboardRepository(db *sqlx.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

func (r *LeaderboardRepository) Append(ctx context.Context, entry leaderboard.Entry) error {
	query, args, err := qb.InsertModel("leaderboard_entries", leaderboardInsertModel{
		Username:  entry.Username,
		Score:     entry.Score,
		SessionID: sql.NullString{String: entry.SessionID, Valid: entry.SessionID != ""},
		Mode:      entry.Mode,
		CreatedAt: entry.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert leaderboard entry query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert leaderboard entry: %w", err)
	}
	return nil
}

func (r *LeaderboardRepository) Top(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	query, args, err := qb.Select(
		"id::text AS id", "username", "score", "session_id::text AS session_id", "mode", "created_at",
	).From("leaderboard_entries").
		OrderBy("score DESC", "created_at ASC").
		Limit(leaderboard.NormalizeLimit(limit)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leaderboard query: %w", err)
	}

	var rows []leaderboardTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leaderboard: %w", err)
	}

	out := make([]leaderboard.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, leaderboard.Entry{
			ID:        row.ID,
			Username:  row.Username,
			Score:     row.Score,
			SessionID: nullString(row.SessionID),
			Mode:      row.Mode,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}
