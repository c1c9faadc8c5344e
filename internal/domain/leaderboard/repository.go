package leaderboard

import "context"

type Repository interface {
	Append(ctx context.Context, entry Entry) error
	// Top returns entries by descending score, earlier entries first on ties.
	Top(ctx context.Context, limit int) ([]Entry, error)
}
