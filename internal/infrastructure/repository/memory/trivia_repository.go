package memory

import (
	"context"
	"maps"
	"math/rand/v2"
	"sync"

	"github.com/riskibarqy/futdraft/internal/domain/trivia"
)

type TriviaRepository struct {
	mu    sync.RWMutex
	items []trivia.Question
	byID  map[string]int
	pick  func(n int) int
}

func NewTriviaRepository(questions []trivia.Question) *TriviaRepository {
	r := &TriviaRepository{byID: make(map[string]int, len(questions)), pick: rand.IntN}
	for _, q := range questions {
		r.byID[q.ID] = len(r.items)
		r.items = append(r.items, cloneQuestion(q))
	}
	return r
}

func (r *TriviaRepository) Random(_ context.Context) (trivia.Question, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.items) == 0 {
		return trivia.Question{}, false, nil
	}
	return cloneQuestion(r.items[r.pick(len(r.items))]), true, nil
}

func (r *TriviaRepository) GetByID(_ context.Context, questionID string) (trivia.Question, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[questionID]
	if !ok {
		return trivia.Question{}, false, nil
	}
	return cloneQuestion(r.items[idx]), true, nil
}

func cloneQuestion(q trivia.Question) trivia.Question {
	q.Options = maps.Clone(q.Options)
	return q
}
