package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/futdraft/internal/domain/draft"
	qb "github.com/riskibarqy/futdraft/internal/platform/querybuilder"
)

type DraftRepository struct {
	db *sqlx.DB
}

var draftSelectColumns = []string{
	"id::text AS id",
	"mode",
	"purse",
	"bonus_money",
	"formation",
	"squad",
	"target_rating",
	"is_active",
	"started_at",
	"ended_at",
	"final_score",
	"updated_at",
}

func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) Create(ctx context.Context, session draft.NewSession) (string, error) {
	query, args, err := qb.InsertModel("drafts", draftInsertModel{
		Mode:         string(session.Mode),
		Purse:        session.Purse,
		Formation:    session.Formation,
		TargetRating: session.TargetRating,
		IsActive:     true,
		StartedAt:    session.StartedAt,
	}, "RETURNING id::text")
	if err != nil {
		return "", fmt.Errorf("build insert draft query: %w", err)
	}

	var id string
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return "", fmt.Errorf("insert draft: %w", err)
	}
	return id, nil
}

func (r *DraftRepository) Save(ctx context.Context, id string, state draft.State, fields draft.Field) error {
	query, args, err := buildDraftSaveQuery(id, state, fields)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update draft: session %s not found or no longer active", id)
	}
	return nil
}

// buildDraftSaveQuery writes only the selected columns of an active draft.
func buildDraftSaveQuery(id string, state draft.State, fields draft.Field) (string, []any, error) {
	if fields == 0 {
		return "", nil, fmt.Errorf("update draft: no fields selected")
	}

	b := qb.Update("drafts")
	if fields.Has(draft.FieldPurse) {
		b.Set("purse", state.Purse)
	}
	if fields.Has(draft.FieldBonus) {
		b.Set("bonus_money", state.BonusMoney)
	}
	if fields.Has(draft.FieldFormation) {
		b.Set("formation", state.Formation)
	}
	if fields.Has(draft.FieldSquad) {
		squad, err := encodeSquad(state.Squad)
		if err != nil {
			return "", nil, err
		}
		b.SetExpr("squad", "?::jsonb", squad)
	}

	query, args, err := b.SetExpr("updated_at", "NOW()").
		Where(qb.Expr("id = ?::uuid", id), qb.Eq("is_active", true)).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build update draft query: %w", err)
	}
	return query, args, nil
}

// Deactivate keeps the first recorded end time when called again.
func (r *DraftRepository) Deactivate(ctx context.Context, id string, endedAt time.Time, finalScore int64) error {
	query, args, err := qb.Update("drafts").
		Set("is_active", false).
		SetExpr("ended_at", "COALESCE(ended_at, ?)", endedAt).
		SetExpr("final_score", "COALESCE(final_score, ?)", finalScore).
		SetExpr("updated_at", "NOW()").
		Where(qb.Expr("id = ?::uuid", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build deactivate draft query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("deactivate draft: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("deactivate draft: session %s not found", id)
	}
	return nil
}

func (r *DraftRepository) Get(ctx context.Context, id string) (draft.Record, bool, error) {
	query, args, err := qb.Select(draftSelectColumns...).From("drafts").
		Where(qb.Expr("id::text = ?", id)).
		ToSQL()
	if err != nil {
		return draft.Record{}, false, fmt.Errorf("build select draft query: %w", err)
	}

	var row draftTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return draft.Record{}, false, nil
		}
		return draft.Record{}, false, fmt.Errorf("get draft: %w", err)
	}

	rec, err := row.toDomain()
	if err != nil {
		return draft.Record{}, false, err
	}
	return rec, true, nil
}

func (m draftTableModel) toDomain() (draft.Record, error) {
	squad, err := decodeSquad(m.Squad)
	if err != nil {
		return draft.Record{}, err
	}

	rec := draft.Record{
		ID:   m.ID,
		Mode: draft.Mode(m.Mode),
		State: draft.State{
			Purse:      m.Purse,
			BonusMoney: m.BonusMoney,
			Formation:  m.Formation,
			Squad:      squad,
		},
		Active:       m.IsActive,
		TargetRating: m.TargetRating,
		StartedAt:    m.StartedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.EndedAt.Valid {
		endedAt := m.EndedAt.Time
		rec.EndedAt = &endedAt
	}
	if m.FinalScore.Valid {
		score := m.FinalScore.Int64
		rec.FinalScore = &score
	}
	return rec, nil
}
