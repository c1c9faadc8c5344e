// Package resilient guards remote repositories with a circuit breaker so a failing
// store is reported fast instead of stalling every session.
package resilient

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/futdraft/internal/domain/draft"
	"github.com/riskibarqy/futdraft/internal/domain/leaderboard"
	"github.com/riskibarqy/futdraft/internal/platform/resilience"
)

// DraftRepository wraps a draft.Repository. Context cancellation is not counted
// as a store failure.
type DraftRepository struct {
	next    draft.Repository
	breaker *resilience.Breaker
}

func NewDraftRepository(next draft.Repository, breaker *resilience.Breaker) *DraftRepository {
	return &DraftRepository{next: next, breaker: breaker}
}

func (r *DraftRepository) Create(ctx context.Context, session draft.NewSession) (string, error) {
	var id string
	err := r.breaker.Do(func() error {
		var err error
		id, err = r.next.Create(ctx, session)
		return err
	}, isCallerError)
	return id, wrap(err, "create draft")
}

func (r *DraftRepository) Save(ctx context.Context, id string, state draft.State, fields draft.Field) error {
	err := r.breaker.Do(func() error {
		return r.next.Save(ctx, id, state, fields)
	}, isCallerError)
	return wrap(err, "save draft")
}

func (r *DraftRepository) Deactivate(ctx context.Context, id string, endedAt time.Time, finalScore int64) error {
	err := r.breaker.Do(func() error {
		return r.next.Deactivate(ctx, id, endedAt, finalScore)
	}, isCallerError)
	return wrap(err, "deactivate draft")
}

func (r *DraftRepository) Get(ctx context.Context, id string) (draft.Record, bool, error) {
	var (
		rec draft.Record
		ok  bool
	)
	err := r.breaker.Do(func() error {
		var err error
		rec, ok, err = r.next.Get(ctx, id)
		return err
	}, isCallerError)
	if err != nil {
		return draft.Record{}, false, wrap(err, "get draft")
	}
	return rec, ok, nil
}

type LeaderboardRepository struct {
	next    leaderboard.Repository
	breaker *resilience.Breaker
}

func NewLeaderboardRepository(next leaderboard.Repository, breaker *resilience.Breaker) *LeaderboardRepository {
	return &LeaderboardRepository{next: next, breaker: breaker}
}

func (r *LeaderboardRepository) Append(ctx context.Context, entry leaderboard.Entry) error {
	err := r.breaker.Do(func() error {
		return r.next.Append(ctx, entry)
	}, isCallerError)
	return wrap(err, "append leaderboard entry")
}

func (r *LeaderboardRepository) Top(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	var items []leaderboard.Entry
	err := r.breaker.Do(func() error {
		var err error
		items, err = r.next.Top(ctx, limit)
		return err
	}, isCallerError)
	if err != nil {
		return nil, wrap(err, "list leaderboard")
	}
	return items, nil
}

func isCallerError(err error) bool {
	return errors.Is(err, context.Canceled)
}

func wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, op)
}
