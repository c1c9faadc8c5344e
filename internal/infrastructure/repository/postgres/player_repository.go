package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/futdraft/internal/domain/player"
	"github.com/riskibarqy/futdraft/internal/domain/position"
	qb "github.com/riskibarqy/futdraft/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"player_slug",
	"name",
	"full_name",
	"overall_rating",
	"best_position",
	"value",
	"club_name",
	"country_name",
	"image",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	query, args, err := buildPlayerListQuery(filter)
	if err != nil {
		return nil, err
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	// Value bounds apply to the parsed text column, so they run after the query.
	out := make([]player.Player, 0, len(rows))
	limit := filter.NormalizedLimit()
	for _, row := range rows {
		p := row.toDomain()
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

func buildPlayerListQuery(filter player.Filter) (string, []any, error) {
	conditions := make([]qb.Condition, 0, 4)
	if name := strings.TrimSpace(filter.Name); name != "" {
		conditions = append(conditions, qb.ILike("name", name))
	}
	if filter.Position != "" {
		conditions = append(conditions, qb.Eq("best_position", string(filter.Position)))
	}
	if filter.MinRating > 0 {
		conditions = append(conditions, qb.Gte("overall_rating", filter.MinRating))
	}
	if filter.MaxRating > 0 {
		conditions = append(conditions, qb.Lte("overall_rating", filter.MaxRating))
	}

	limit := filter.NormalizedLimit()
	if filter.MinValueMil > 0 || filter.MaxValueMil > 0 {
		limit = player.MaxListLimit * 4
	}

	query, args, err := qb.Select(playerSelectColumns...).From("male_players").
		Where(conditions...).
		OrderBy("overall_rating DESC", "id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build select players query: %w", err)
	}
	return query, args, nil
}

func (r *PlayerRepository) GetBySlug(ctx context.Context, slug string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("male_players").
		Where(qb.Eq("player_slug", slug)).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return row.toDomain(), true, nil
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		Slug:      m.Slug,
		Name:      m.Name,
		FullName:  nullString(m.FullName),
		Rating:    m.Rating,
		Position:  position.Normalize(m.Position),
		ValueText: nullString(m.Value),
		Club:      nullString(m.ClubName),
		Nation:    nullString(m.CountryName),
		ImageURL:  nullString(m.Image),
	}
}
