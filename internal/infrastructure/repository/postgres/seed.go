package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/futdraft/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/futdraft/internal/platform/querybuilder"
)

// BootstrapSeed fills an empty player catalog and question bank with the built-in
// sample data.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM male_players`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range memory.SeedPlayers() {
		query, args, err := qb.InsertModel("male_players", playerInsertModel{
			Slug:        p.Slug,
			Name:        p.Name,
			FullName:    p.FullName,
			Rating:      p.Rating,
			Position:    string(p.Position),
			Value:       p.ValueText,
			ClubName:    p.Club,
			CountryName: p.Nation,
			Image:       p.ImageURL,
		}, "ON CONFLICT (player_slug) DO NOTHING")
		if err != nil {
			return fmt.Errorf("build seed player %s query: %w", p.Slug, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.Slug, err)
		}
	}

	for _, q := range memory.SeedQuestions() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO bonus_questions (question_text, option_a, option_b, option_c, option_d, correct_answer, reward_amount)
VALUES (:question_text, :option_a, :option_b, :option_c, :option_d, :correct_answer, :reward_amount)`, map[string]any{
			"question_text":  q.Text,
			"option_a":       q.Options["A"],
			"option_b":       q.Options["B"],
			"option_c":       q.Options["C"],
			"option_d":       q.Options["D"],
			"correct_answer": string(q.CorrectAnswer),
			"reward_amount":  q.RewardAmount,
		})
		if err != nil {
			return fmt.Errorf("bind seed question %s query: %w", q.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed question %s: %w", q.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
