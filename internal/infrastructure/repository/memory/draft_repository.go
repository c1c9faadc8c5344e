package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/futdraft/internal/domain/draft"
	"github.com/riskibarqy/futdraft/internal/platform/id"
)

// DraftRepository keeps draft records in process.
type DraftRepository struct {
	mu    sync.RWMutex
	items map[string]draft.Record
	ids   id.Generator
	clock clockwork.Clock
}

func NewDraftRepository(ids id.Generator, clock clockwork.Clock) *DraftRepository {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &DraftRepository{items: make(map[string]draft.Record), ids: ids, clock: clock}
}

func (r *DraftRepository) Create(_ context.Context, session draft.NewSession) (string, error) {
	sessionID, err := r.ids.NewID()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[sessionID] = draft.Record{
		ID:   sessionID,
		Mode: session.Mode,
		State: draft.State{
			Purse:     session.Purse,
			Formation: session.Formation,
			Squad:     []draft.DraftedPlayer{},
		},
		Active:       true,
		TargetRating: session.TargetRating,
		StartedAt:    session.StartedAt,
		UpdatedAt:    r.clock.Now(),
	}
	return sessionID, nil
}

func (r *DraftRepository) Save(_ context.Context, sessionID string, state draft.State, fields draft.Field) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.items[sessionID]
	if !ok {
		return fmt.Errorf("draft session %s not found", sessionID)
	}
	if !rec.Active {
		return fmt.Errorf("draft session %s is no longer active", sessionID)
	}
	rec.State = fields.Merge(rec.State, state)
	rec.UpdatedAt = r.clock.Now()
	r.items[sessionID] = rec
	return nil
}

// Deactivate keeps the end time and score of the first call.
func (r *DraftRepository) Deactivate(_ context.Context, sessionID string, endedAt time.Time, finalScore int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.items[sessionID]
	if !ok {
		return fmt.Errorf("draft session %s not found", sessionID)
	}
	rec.Active = false
	if rec.EndedAt == nil {
		rec.EndedAt = &endedAt
	}
	if rec.FinalScore == nil {
		rec.FinalScore = &finalScore
	}
	rec.UpdatedAt = r.clock.Now()
	r.items[sessionID] = rec
	return nil
}

func (r *DraftRepository) Get(_ context.Context, sessionID string) (draft.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.items[sessionID]
	if !ok {
		return draft.Record{}, false, nil
	}
	return cloneRecord(rec), true, nil
}

func cloneRecord(rec draft.Record) draft.Record {
	rec.State = rec.State.Clone()
	if rec.EndedAt != nil {
		endedAt := *rec.EndedAt
		rec.EndedAt = &endedAt
	}
	if rec.FinalScore != nil {
		score := *rec.FinalScore
		rec.FinalScore = &score
	}
	return rec
}
