package cache

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/futdraft/internal/domain/player"
	"github.com/riskibarqy/futdraft/internal/domain/trivia"
	basecache "github.com/riskibarqy/futdraft/internal/platform/cache"
)

// lookup remembers misses as well as hits.
type lookup[T any] struct {
	value  T
	exists bool
}

func cachedLookup[T any](ctx context.Context, store *basecache.Store[lookup[T]], key string, get func(context.Context) (T, bool, error)) (T, bool, error) {
	hit, err := store.GetOrLoad(ctx, key, func(ctx context.Context) (lookup[T], error) {
		v, ok, err := get(ctx)
		return lookup[T]{value: v, exists: ok}, err
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return hit.value, hit.exists, nil
}

// PlayerRepository caches catalog reads. The catalog is read-only at runtime.
type PlayerRepository struct {
	next   player.Repository
	lists  *basecache.Store[[]player.Player]
	bySlug *basecache.Store[lookup[player.Player]]
}

func NewPlayerRepository(next player.Repository, ttl time.Duration, clock clockwork.Clock) *PlayerRepository {
	return &PlayerRepository{
		next:   next,
		lists:  basecache.NewStoreWithClock[[]player.Player](ttl, clock),
		bySlug: basecache.NewStoreWithClock[lookup[player.Player]](ttl, clock),
	}
}

// List hands out a copy so callers cannot edit the cached slice.
func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	items, err := r.lists.GetOrLoad(ctx, playerListKey(filter), func(ctx context.Context) ([]player.Player, error) {
		return r.next.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *PlayerRepository) GetBySlug(ctx context.Context, slug string) (player.Player, bool, error) {
	return cachedLookup(ctx, r.bySlug, slug, func(ctx context.Context) (player.Player, bool, error) {
		return r.next.GetBySlug(ctx, slug)
	})
}

func playerListKey(f player.Filter) string {
	return fmt.Sprintf("%s|%s|%d|%d|%g|%g|%d",
		strings.ToLower(strings.TrimSpace(f.Name)), f.Position, f.MinRating, f.MaxRating, f.MinValueMil, f.MaxValueMil, f.NormalizedLimit())
}

// TriviaRepository caches question lookups by id. Random always reaches the source.
type TriviaRepository struct {
	next trivia.Repository
	byID *basecache.Store[lookup[trivia.Question]]
}

func NewTriviaRepository(next trivia.Repository, ttl time.Duration, clock clockwork.Clock) *TriviaRepository {
	return &TriviaRepository{
		next: next,
		byID: basecache.NewStoreWithClock[lookup[trivia.Question]](ttl, clock),
	}
}

func (r *TriviaRepository) Random(ctx context.Context) (trivia.Question, bool, error) {
	return r.next.Random(ctx)
}

func (r *TriviaRepository) GetByID(ctx context.Context, id string) (trivia.Question, bool, error) {
	return cachedLookup(ctx, r.byID, id, func(ctx context.Context) (trivia.Question, bool, error) {
		return r.next.GetByID(ctx, id)
	})
}
