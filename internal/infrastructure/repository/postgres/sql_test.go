package postgres

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/futdraft/internal/domain/draft"
	"github.com/riskibarqy/futdraft/internal/domain/player"
)

func TestBuildDraftSaveQuery(t *testing.T) {
	state := draft.State{
		Purse:      315_000_000,
		BonusMoney: 5,
		Formation:  "4-4-2",
		Squad:      []draft.DraftedPlayer{{Slug: "erling-haaland", PrimaryPosition: "ST", BaseRating: 91, DisplayRating: 91, PurchasePrice: 185_000_000, AssignedSlot: "ST1"}},
	}

	t.Run("purse and squad only", func(t *testing.T) {
		query, args, err := buildDraftSaveQuery("d1", state, draft.FieldPurse|draft.FieldSquad)
		if err != nil {
			t.Fatalf("build query: %v", err)
		}
		want := "UPDATE drafts SET purse = $1, squad = $2::jsonb, updated_at = NOW() WHERE id = $3::uuid AND is_active = $4"
		if query != want {
			t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
		}
		if len(args) != 4 || args[0] != int64(315_000_000) || args[2] != "d1" || args[3] != true {
			t.Fatalf("unexpected args: %+v", args)
		}
		squad, ok := args[1].(string)
		if !ok || !strings.Contains(squad, `"player_slug":"erling-haaland"`) || !strings.Contains(squad, `"assigned_slot":"ST1"`) {
			t.Fatalf("unexpected squad payload: %v", args[1])
		}
	})

	t.Run("bonus only", func(t *testing.T) {
		query, _, err := buildDraftSaveQuery("d1", state, draft.FieldBonus)
		if err != nil {
			t.Fatalf("build query: %v", err)
		}
		if strings.Contains(query, "purse") || !strings.Contains(query, "bonus_money = $1") {
			t.Fatalf("unexpected query: %s", query)
		}
	})

	t.Run("no fields", func(t *testing.T) {
		if _, _, err := buildDraftSaveQuery("d1", state, 0); err == nil {
			t.Fatalf("expected error for empty field set")
		}
	})
}

func TestDraftTableModelToDomain(t *testing.T) {
	endedAt := time.Date(2026, 3, 1, 20, 5, 0, 0, time.UTC)
	row := draftTableModel{
		ID:         "d1",
		Mode:       "wildcard",
		Purse:      815_000_000,
		Formation:  "4-3-3",
		Squad:      []byte(`[{"player_slug":"erling-haaland","name":"Haaland","best_position":"ST","base_rating":91,"display_rating":91,"purchase_price":185000000,"assigned_slot":"ST"}]`),
		EndedAt:    sql.NullTime{Time: endedAt, Valid: true},
		FinalScore: sql.NullInt64{Int64: 815_000_000, Valid: true},
	}

	rec, err := row.toDomain()
	if err != nil {
		t.Fatalf("to domain: %v", err)
	}
	if rec.Mode != draft.ModeWildcard || len(rec.State.Squad) != 1 || rec.State.Squad[0].PurchasePrice != 185_000_000 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.EndedAt == nil || !rec.EndedAt.Equal(endedAt) || rec.FinalScore == nil || *rec.FinalScore != 815_000_000 {
		t.Fatalf("unexpected end fields: %+v", rec)
	}

	if _, err := (draftTableModel{Squad: []byte("{")}).toDomain(); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestBuildPlayerListQuery(t *testing.T) {
	query, args, err := buildPlayerListQuery(player.Filter{Name: "kane", Position: "ST", MinRating: 80})
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	want := "SELECT id, player_slug, name, full_name, overall_rating, best_position, value, club_name, country_name, image FROM male_players WHERE name ILIKE $1 AND best_position = $2 AND overall_rating >= $3 ORDER BY overall_rating DESC, id LIMIT 250"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 3 || args[0] != "%kane%" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
