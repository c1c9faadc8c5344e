// Package view holds the wire shapes shared by the HTTP, websocket and NATS surfaces.
package view

import (
	"time"

	"github.com/riskibarqy/futdraft/internal/domain/draft"
)

type DraftPlayer struct {
	Slug          string `json:"player_slug"`
	Name          string `json:"name"`
	Position      string `json:"best_position"`
	BaseRating    int    `json:"base_rating"`
	DisplayRating int    `json:"display_rating"`
	PurchasePrice int64  `json:"purchase_price"`
	AssignedSlot  string `json:"assigned_slot,omitempty"`
	OutOfPosition bool   `json:"out_of_position"`
}

type Snapshot struct {
	ID               string        `json:"id"`
	Status           string        `json:"status"`
	Mode             string        `json:"mode"`
	Purse            int64         `json:"purse"`
	BonusMoney       int64         `json:"bonus_money"`
	FinalScore       int64         `json:"final_score"`
	Formation        string        `json:"formation"`
	Squad            []DraftPlayer `json:"squad"`
	Lineup           []DraftPlayer `json:"lineup"`
	AverageRating    float64       `json:"average_rating"`
	TargetRating     int           `json:"target_rating,omitempty"`
	StartedAt        *time.Time    `json:"started_at,omitempty"`
	ElapsedSeconds   int64         `json:"elapsed_seconds"`
	RemainingSeconds int64         `json:"remaining_seconds,omitempty"`
}

type Summary struct {
	SessionID      string    `json:"session_id"`
	Mode           string    `json:"mode"`
	Username       string    `json:"username,omitempty"`
	FinalScore     int64     `json:"final_score"`
	Purse          int64     `json:"purse"`
	BonusMoney     int64     `json:"bonus_money"`
	PlayerCount    int       `json:"player_count"`
	AverageRating  float64   `json:"average_rating"`
	TotalSpent     int64     `json:"total_spent"`
	ElapsedSeconds int64     `json:"elapsed_seconds"`
	TargetRating   int       `json:"target_rating,omitempty"`
	TargetMet      bool      `json:"target_met"`
	EndedAt        time.Time `json:"ended_at"`
}

// Event is one frame on the realtime channels. Seq grows per session; readers
// drop frames older than the last one seen.
type Event struct {
	Type     string    `json:"type"`
	Seq      uint64    `json:"seq"`
	At       time.Time `json:"at"`
	Snapshot Snapshot  `json:"snapshot"`
	Summary  *Summary  `json:"summary,omitempty"`
}

func NewSnapshot(s draft.Snapshot) Snapshot {
	out := Snapshot{
		ID:             s.ID,
		Status:         string(s.Status),
		Mode:           string(s.Mode),
		Purse:          s.Purse,
		BonusMoney:     s.BonusMoney,
		FinalScore:     s.Purse + s.BonusMoney,
		Formation:      s.Formation,
		Squad:          newPlayers(s.Squad),
		Lineup:         newPlayers(s.Lineup),
		AverageRating:  draft.AverageRating(s.Squad),
		TargetRating:   s.TargetRating,
		ElapsedSeconds: int64(s.Elapsed / time.Second),
	}
	if !s.StartedAt.IsZero() {
		started := s.StartedAt.UTC()
		out.StartedAt = &started
	}
	if s.Mode == draft.ModeWildcard {
		out.RemainingSeconds = int64((s.Remaining + time.Second - 1) / time.Second)
	}
	return out
}

func NewSummary(s draft.Summary) Summary {
	return Summary{
		SessionID:      s.SessionID,
		Mode:           string(s.Mode),
		Username:       s.Username,
		FinalScore:     s.FinalScore,
		Purse:          s.Purse,
		BonusMoney:     s.BonusMoney,
		PlayerCount:    s.PlayerCount,
		AverageRating:  s.AverageRating,
		TotalSpent:     s.TotalSpent,
		ElapsedSeconds: int64(s.Elapsed / time.Second),
		TargetRating:   s.TargetRating,
		TargetMet:      s.TargetMet,
		EndedAt:        s.EndedAt.UTC(),
	}
}

func NewEvent(e draft.Event, seq uint64) Event {
	out := Event{
		Type:     e.Type,
		Seq:      seq,
		At:       e.At.UTC(),
		Snapshot: NewSnapshot(e.Snapshot),
	}
	if e.Summary != nil {
		summary := NewSummary(*e.Summary)
		out.Summary = &summary
	}
	return out
}

func newPlayers(in []draft.DraftedPlayer) []DraftPlayer {
	out := make([]DraftPlayer, 0, len(in))
	for _, p := range in {
		out = append(out, DraftPlayer{
			Slug:          p.Slug,
			Name:          p.Name,
			Position:      string(p.PrimaryPosition),
			BaseRating:    p.BaseRating,
			DisplayRating: p.DisplayRating,
			PurchasePrice: p.PurchasePrice,
			AssignedSlot:  p.AssignedSlot,
			OutOfPosition: p.Assigned() && p.DisplayRating != p.BaseRating,
		})
	}
	return out
}
