package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/futdraft/internal/domain/player"
	"github.com/riskibarqy/futdraft/internal/domain/trivia"
	playermock "github.com/riskibarqy/futdraft/internal/mocks/domain/player"
	triviamock "github.com/riskibarqy/futdraft/internal/mocks/domain/trivia"
)

func TestPlayerRepository_CachesListAndLookup(t *testing.T) {
	t.Parallel()

	next := playermock.NewRepository(t)
	filter := player.Filter{Position: "ST", MinRating: 85}
	next.On("List", mock.Anything, filter).
		Return([]player.Player{{Slug: "harry-kane", Name: "Kane", Rating: 90, Position: "ST"}}, nil).
		Once()
	next.On("GetBySlug", mock.Anything, "nobody").Return(player.Player{}, false, nil).Once()

	repo := NewPlayerRepository(next, time.Minute, clockwork.NewFakeClock())
	for range 3 {
		items, err := repo.List(t.Context(), filter)
		if err != nil || len(items) != 1 {
			t.Fatalf("unexpected list: %+v %v", items, err)
		}
		items[0].Slug = "mutated"
	}
	for range 2 {
		if _, ok, err := repo.GetBySlug(t.Context(), "nobody"); ok || err != nil {
			t.Fatalf("expected cached miss, got ok=%v err=%v", ok, err)
		}
	}
}

func TestTriviaRepository_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	next := triviamock.NewRepository(t)
	next.On("GetByID", mock.Anything, "q1").Return(trivia.Question{}, false, errors.New("timeout")).Once()
	next.On("GetByID", mock.Anything, "q1").Return(trivia.Question{ID: "q1", CorrectAnswer: trivia.OptionA}, true, nil).Once()

	repo := NewTriviaRepository(next, time.Minute, clockwork.NewFakeClock())
	if _, _, err := repo.GetByID(t.Context(), "q1"); err == nil {
		t.Fatalf("expected error on first load")
	}
	for range 2 {
		q, ok, err := repo.GetByID(t.Context(), "q1")
		if err != nil || !ok || q.CorrectAnswer != trivia.OptionA {
			t.Fatalf("unexpected question: %+v ok=%v err=%v", q, ok, err)
		}
	}
}

func TestPlayerRepository_ReloadsAfterTTL(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	next := playermock.NewRepository(t)
	next.On("GetBySlug", mock.Anything, "rodri").
		Return(player.Player{Slug: "rodri", Rating: 91}, true, nil).
		Twice()

	repo := NewPlayerRepository(next, time.Minute, clock)
	for range 2 {
		if _, ok, err := repo.GetBySlug(t.Context(), "rodri"); !ok || err != nil {
			t.Fatalf("unexpected lookup ok=%v err=%v", ok, err)
		}
	}
	clock.Advance(time.Minute)
	if p, ok, err := repo.GetBySlug(t.Context(), "rodri"); !ok || err != nil || p.Rating != 91 {
		t.Fatalf("unexpected reload %+v ok=%v err=%v", p, ok, err)
	}
}
