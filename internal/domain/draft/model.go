package draft

import (
	"time"

	"github.com/riskibarqy/futdraft/internal/domain/position"
)

// Mode selects budget and clock rules of a session.
type Mode string

const (
	ModeClassic  Mode = "classic"
	ModeWildcard Mode = "wildcard"
)

func (m Mode) Valid() bool {
	return m == ModeClassic || m == ModeWildcard
}

// Status is the state machine position of a session.
type Status string

const (
	StatusNone    Status = "none"
	StatusActive  Status = "active"
	StatusStopped Status = "stopped"
)

// DraftedPlayer is a squad member. BaseRating is fixed at purchase; DisplayRating and
// AssignedSlot are derived by Assign.
type DraftedPlayer struct {
	Slug            string        `json:"player_slug"`
	Name            string        `json:"name"`
	PrimaryPosition position.Code `json:"best_position"`
	BaseRating      int           `json:"base_rating"`
	DisplayRating   int           `json:"display_rating"`
	PurchasePrice   int64         `json:"purchase_price"`
	AssignedSlot    string        `json:"assigned_slot,omitempty"`
}

func (p DraftedPlayer) Assigned() bool {
	return p.AssignedSlot != ""
}

// State holds the persisted, mutable fields of a session.
type State struct {
	Purse      int64
	BonusMoney int64
	Formation  string
	Squad      []DraftedPlayer
}

func (s State) Clone() State {
	s.Squad = CloneSquad(s.Squad)
	return s
}

func (s State) FinalScore() int64 {
	return s.Purse + s.BonusMoney
}

func (s State) IndexOf(slug string) int {
	for i, p := range s.Squad {
		if p.Slug == slug {
			return i
		}
	}
	return -1
}

// NewSession is the initial record written when a draft starts.
type NewSession struct {
	Mode         Mode
	Purse        int64
	Formation    string
	TargetRating int
	StartedAt    time.Time
}

// Record is the remote view of a session.
type Record struct {
	ID           string
	Mode         Mode
	State        State
	Active       bool
	TargetRating int
	StartedAt    time.Time
	EndedAt      *time.Time
	FinalScore   *int64
	UpdatedAt    time.Time
}

// Snapshot is a read-only view of a session at one instant.
type Snapshot struct {
	ID           string
	Status       Status
	Mode         Mode
	Purse        int64
	BonusMoney   int64
	Formation    string
	Squad        []DraftedPlayer
	Lineup       []DraftedPlayer
	TargetRating int
	StartedAt    time.Time
	Elapsed      time.Duration
	Remaining    time.Duration
}

// Summary is produced when a session stops.
type Summary struct {
	SessionID     string
	Mode          Mode
	Username      string
	FinalScore    int64
	Purse         int64
	BonusMoney    int64
	PlayerCount   int
	AverageRating float64
	TotalSpent    int64
	Elapsed       time.Duration
	TargetRating  int
	TargetMet     bool
	EndedAt       time.Time
}

// RemoteUpdate is an out-of-band change to a session's remote record. Nil fields
// are absent.
type RemoteUpdate struct {
	SessionID  string
	Purse      *int64
	BonusMoney *int64
	Squad      []DraftedPlayer
	HasSquad   bool
}

// Event is published after every confirmed change of a session.
type Event struct {
	Type     string
	Snapshot Snapshot
	Summary  *Summary
	At       time.Time
}

const (
	EventStarted  = "draft.started"
	EventUpdated  = "draft.updated"
	EventStopped  = "draft.stopped"
	EventReset    = "draft.reset"
	EventTick     = "draft.tick"
	EventExternal = "draft.external"
)

func CloneSquad(in []DraftedPlayer) []DraftedPlayer {
	if in == nil {
		return []DraftedPlayer{}
	}
	out := make([]DraftedPlayer, len(in))
	copy(out, in)
	return out
}

// AverageRating is the mean display rating of the squad, 0 when empty.
func AverageRating(squad []DraftedPlayer) float64 {
	if len(squad) == 0 {
		return 0
	}
	total := 0
	for _, p := range squad {
		total += p.DisplayRating
	}
	return float64(total) / float64(len(squad))
}

func TotalSpent(squad []DraftedPlayer) int64 {
	var total int64
	for _, p := range squad {
		total += p.PurchasePrice
	}
	return total
}
