package view

import (
	"strings"

	"github.com/riskibarqy/futdraft/internal/domain/draft"
)

// Adjustment is an out-of-band change pushed by another writer of the same
// session record. Absent fields are left untouched.
type Adjustment struct {
	SessionID  string                 `json:"session_id"`
	Purse      *int64                 `json:"purse,omitempty"`
	BonusMoney *int64                 `json:"bonus_money,omitempty"`
	Squad      *[]draft.DraftedPlayer `json:"squad,omitempty"`
}

func (a Adjustment) RemoteUpdate() draft.RemoteUpdate {
	update := draft.RemoteUpdate{
		SessionID:  strings.TrimSpace(a.SessionID),
		Purse:      a.Purse,
		BonusMoney: a.BonusMoney,
	}
	if a.Squad != nil {
		update.Squad = draft.CloneSquad(*a.Squad)
		update.HasSquad = true
	}
	return update
}
