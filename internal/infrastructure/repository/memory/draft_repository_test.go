package memory

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/futdraft/internal/domain/draft"
	"github.com/riskibarqy/futdraft/internal/platform/id"
)

func TestDraftRepository_DeactivatedRecordIsFrozen(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC))
	repo := NewDraftRepository(id.NewSequence("draft"), clock)
	ctx := t.Context()

	sessionID, err := repo.Create(ctx, draft.NewSession{Mode: draft.ModeClassic, Purse: 500_000_000, Formation: "4-3-3"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Save(ctx, sessionID, draft.State{Purse: 420_000_000}, draft.FieldPurse); err != nil {
		t.Fatalf("save on active record failed: %v", err)
	}

	firstEnd := clock.Now()
	if err := repo.Deactivate(ctx, sessionID, firstEnd, 420_000_000); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if err := repo.Save(ctx, sessionID, draft.State{Purse: 1}, draft.FieldPurse); err == nil {
		t.Fatalf("expected save on inactive record to fail")
	}

	clock.Advance(time.Minute)
	if err := repo.Deactivate(ctx, sessionID, clock.Now(), 7); err != nil {
		t.Fatalf("second deactivate failed: %v", err)
	}

	rec, ok, err := repo.Get(ctx, sessionID)
	if err != nil || !ok {
		t.Fatalf("get failed: ok=%v err=%v", ok, err)
	}
	if rec.Active || rec.State.Purse != 420_000_000 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.EndedAt == nil || !rec.EndedAt.Equal(firstEnd) {
		t.Fatalf("expected first end time kept, got %v", rec.EndedAt)
	}
	if rec.FinalScore == nil || *rec.FinalScore != 420_000_000 {
		t.Fatalf("expected first final score kept, got %v", rec.FinalScore)
	}
}

func TestDraftRepository_MissingSession(t *testing.T) {
	repo := NewDraftRepository(id.NewSequence("draft"), clockwork.NewFakeClock())
	if err := repo.Save(t.Context(), "nope", draft.State{}, draft.FieldPurse); err == nil {
		t.Fatalf("expected error for unknown session")
	}
	if _, ok, err := repo.Get(t.Context(), "nope"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
}
