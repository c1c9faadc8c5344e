package draft

import (
	"strings"
	"time"

	"github.com/riskibarqy/futdraft/internal/domain/formation"
	"github.com/riskibarqy/futdraft/internal/domain/position"
)

// Rules stores draft budget and roster parameters.
type Rules struct {
	SquadSize        int
	ClassicBudget    int64
	WildcardBudget   int64
	WildcardDuration time.Duration
	MinTargetRating  int
	MaxTargetRating  int
}

func DefaultRules() Rules {
	return Rules{
		SquadSize:        formation.SlotCount,
		ClassicBudget:    500_000_000,
		WildcardBudget:   1_000_000_000,
		WildcardDuration: 300 * time.Second,
		MinTargetRating:  80,
		MaxTargetRating:  88,
	}
}

// Budget is the starting purse of a mode.
func (r Rules) Budget(mode Mode) int64 {
	if mode == ModeWildcard {
		return r.WildcardBudget
	}
	return r.ClassicBudget
}

// Candidate is a player being considered for purchase.
type Candidate struct {
	Slug     string
	Name     string
	Position position.Code
	Rating   int
	Price    int64
}

// ValidateSquad checks a squad received from outside the rules: slugs are
// unique and the squad fits SquadSize.
func (r Rules) ValidateSquad(squad []DraftedPlayer) error {
	if len(squad) > r.SquadSize {
		return Invalid(ErrSquadFull, "squad has %d players, max %d", len(squad), r.SquadSize)
	}
	seen := make(map[string]struct{}, len(squad))
	for _, p := range squad {
		if strings.TrimSpace(p.Slug) == "" {
			return Invalid(ErrInvalidPlayer, "player slug is required")
		}
		if _, dup := seen[p.Slug]; dup {
			return Invalid(ErrDuplicatePlayer, "%s listed twice", p.Slug)
		}
		seen[p.Slug] = struct{}{}
	}
	return nil
}

// ValidatePurchase reports the first rule the candidate breaks, or nil.
func (r Rules) ValidatePurchase(state State, f formation.Formation, c Candidate) error {
	if strings.TrimSpace(c.Slug) == "" {
		return Invalid(ErrInvalidPlayer, "player slug is required")
	}
	if state.IndexOf(c.Slug) >= 0 {
		return Invalid(ErrDuplicatePlayer, "%s already drafted", c.Slug)
	}
	if len(state.Squad) >= r.SquadSize {
		return Invalid(ErrSquadFull, "squad has %d players", len(state.Squad))
	}
	if c.Price <= 0 {
		return Invalid(ErrInvalidPrice, "%s has no readable value", c.Slug)
	}
	if c.Price > state.Purse {
		return Invalid(ErrInsufficientFunds, "price=%d purse=%d", c.Price, state.Purse)
	}

	role, err := position.Classify(c.Position)
	if err != nil {
		return Misconfigured(err)
	}
	counts := make(map[position.Role]int, len(position.AllRoles))
	for _, p := range state.Squad {
		existing, err := position.Classify(p.PrimaryPosition)
		if err != nil {
			return Misconfigured(err)
		}
		counts[existing]++
	}
	counts[role]++
	capacity := f.RoleCapacity()
	if counts[role] > capacity[role] {
		return Invalid(ErrRoleQuotaExceeded, "%s slots in %s: %d", role, f.Name, capacity[role])
	}

	provisional := append(CloneSquad(state.Squad), c.drafted())
	assigned, err := Assign(provisional, f)
	if err != nil {
		return err
	}
	if !assigned[len(assigned)-1].Assigned() {
		return Invalid(ErrNoSlotAvailable, "no %s slot left in %s", c.Position, f.Name)
	}
	return nil
}

// Purchase returns the state after buying c. The input is not modified.
func (r Rules) Purchase(state State, f formation.Formation, c Candidate) (State, error) {
	if err := r.ValidatePurchase(state, f, c); err != nil {
		return state, err
	}

	next := state.Clone()
	squad, err := Assign(append(next.Squad, c.drafted()), f)
	if err != nil {
		return state, err
	}
	next.Squad = squad
	next.Purse -= c.Price
	return next, nil
}

// Sale returns the state after selling slug with a full refund.
func (r Rules) Sale(state State, f formation.Formation, slug string) (State, error) {
	idx := state.IndexOf(slug)
	if idx < 0 {
		return state, Invalid(ErrPlayerNotInSquad, "%s", slug)
	}

	next := state.Clone()
	refund := next.Squad[idx].PurchasePrice
	remaining := append(next.Squad[:idx:idx], next.Squad[idx+1:]...)
	squad, err := Assign(remaining, f)
	if err != nil {
		return state, err
	}
	next.Squad = squad
	next.Purse += refund
	return next, nil
}

// Reform returns the state after switching to formation f.
func (r Rules) Reform(state State, f formation.Formation) (State, error) {
	next := state.Clone()
	squad, err := Assign(next.Squad, f)
	if err != nil {
		return state, err
	}
	next.Squad = squad
	next.Formation = f.Name
	return next, nil
}

func (c Candidate) drafted() DraftedPlayer {
	return DraftedPlayer{
		Slug:            c.Slug,
		Name:            c.Name,
		PrimaryPosition: c.Position,
		BaseRating:      c.Rating,
		DisplayRating:   c.Rating,
		PurchasePrice:   c.Price,
	}
}
