package trivia

import "context"

type Repository interface {
	Random(ctx context.Context) (Question, bool, error)
	GetByID(ctx context.Context, id string) (Question, bool, error)
}
