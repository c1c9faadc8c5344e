package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/futdraft/internal/domain/trivia"
	qb "github.com/riskibarqy/futdraft/internal/platform/querybuilder"
)

type TriviaRepository struct {
	db *sqlx.DB
}

type questionTableModel struct {
	ID            string `db:"id"`
	QuestionText  string `db:"question_text"`
	OptionA       string `db:"option_a"`
	OptionB       string `db:"option_b"`
	OptionC       string `db:"option_c"`
	OptionD       string `db:"option_d"`
	CorrectAnswer string `db:"correct_answer"`
	RewardAmount  int64  `db:"reward_amount"`
}

var questionSelectColumns = []string{
	"id::text AS id",
	"question_text",
	"option_a",
	"option_b",
	"option_c",
	"option_d",
	"correct_answer",
	"reward_amount",
}

func NewTriviaRepository(db *sqlx.DB) *TriviaRepository {
	return &TriviaRepository{db: db}
}

func (r *TriviaRepository) Random(ctx context.Context) (trivia.Question, bool, error) {
	query, args, err := qb.Select(questionSelectColumns...).From("bonus_questions").
		OrderBy("random()").
		Limit(1).
		ToSQL()
	if err != nil {
		return trivia.Question{}, false, fmt.Errorf("build random question query: %w", err)
	}
	return r.getOne(ctx, query, args)
}

func (r *TriviaRepository) GetByID(ctx context.Context, id string) (trivia.Question, bool, error) {
	query, args, err := qb.Select(questionSelectColumns...).From("bonus_questions").
		Where(qb.Expr("id::text = ?", id)).
		ToSQL()
	if err != nil {
		return trivia.Question{}, false, fmt.Errorf("build select question query: %w", err)
	}
	return r.getOne(ctx, query, args)
}

func (r *TriviaRepository) getOne(ctx context.Context, query string, args []any) (trivia.Question, bool, error) {
	var row questionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return trivia.Question{}, false, nil
		}
		return trivia.Question{}, false, fmt.Errorf("get question: %w", err)
	}

	correct, err := trivia.ParseOption(row.CorrectAnswer)
	if err != nil {
		return trivia.Question{}, false, fmt.Errorf("question %s: %w", row.ID, err)
	}
	return trivia.Question{
		ID:   row.ID,
		Text: row.QuestionText,
		Options: map[trivia.Option]string{
			trivia.OptionA: row.OptionA,
			trivia.OptionB: row.OptionB,
			trivia.OptionC: row.OptionC,
			trivia.OptionD: row.OptionD,
		},
		CorrectAnswer: correct,
		RewardAmount:  row.RewardAmount,
	}, true, nil
}
