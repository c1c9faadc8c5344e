package view

import (
	"testing"
	"time"

	"github.com/riskibarqy/futdraft/internal/domain/draft"
)

func TestNewSnapshot_RoundsRemainingUp(t *testing.T) {
	s := draft.Snapshot{
		ID:        "d1",
		Status:    draft.StatusActive,
		Mode:      draft.ModeWildcard,
		Purse:     1_000_000_000,
		Elapsed:   10*time.Second + 400*time.Millisecond,
		Remaining: 289*time.Second + 600*time.Millisecond,
		Squad: []draft.DraftedPlayer{
			{Slug: "a", BaseRating: 90, DisplayRating: 90, AssignedSlot: "ST"},
			{Slug: "b", BaseRating: 80, DisplayRating: 72, AssignedSlot: "CM1"},
		},
	}

	got := NewSnapshot(s)
	if got.RemainingSeconds != 290 {
		t.Fatalf("expected 290 remaining seconds, got %d", got.RemainingSeconds)
	}
	if got.ElapsedSeconds != 10 {
		t.Fatalf("expected 10 elapsed seconds, got %d", got.ElapsedSeconds)
	}
	if got.AverageRating != 81 {
		t.Fatalf("expected average 81, got %v", got.AverageRating)
	}
	if got.Squad[0].OutOfPosition || !got.Squad[1].OutOfPosition {
		t.Fatalf("unexpected out-of-position flags: %+v", got.Squad)
	}
	if got.StartedAt != nil {
		t.Fatalf("zero start time must be omitted")
	}
}

func TestNewSnapshot_ClassicHasNoRemaining(t *testing.T) {
	got := NewSnapshot(draft.Snapshot{Mode: draft.ModeClassic, Remaining: time.Minute})
	if got.RemainingSeconds != 0 {
		t.Fatalf("classic sessions have no countdown, got %d", got.RemainingSeconds)
	}
	if got.Squad == nil || got.Lineup == nil {
		t.Fatalf("squad and lineup must encode as empty arrays")
	}
}

func TestAdjustment_RemoteUpdate(t *testing.T) {
	purse := int64(500)
	empty := []draft.DraftedPlayer{}

	update := Adjustment{SessionID: " d1 ", Purse: &purse, Squad: &empty}.RemoteUpdate()
	if update.SessionID != "d1" || update.Purse == nil || *update.Purse != 500 {
		t.Fatalf("unexpected update %+v", update)
	}
	if !update.HasSquad || len(update.Squad) != 0 {
		t.Fatalf("explicit empty squad must be carried")
	}

	if (Adjustment{SessionID: "d1"}).RemoteUpdate().HasSquad {
		t.Fatalf("absent squad must not be applied")
	}
}
