package draft

import (
	"github.com/riskibarqy/futdraft/internal/domain/formation"
	"github.com/riskibarqy/futdraft/internal/domain/position"
)

// FallbackRating is the display rating of a player placed out of position,
// round(base * 0.9) with halves rounded up.
func FallbackRating(base int) int {
	if base <= 0 {
		return base
	}
	return (base*9 + 5) / 10
}

type slotPool struct {
	taken  []bool
	byCode map[position.Code][]int
	slots  []formation.Slot
}

func newSlotPool(f formation.Formation) *slotPool {
	pool := &slotPool{
		taken:  make([]bool, len(f.Slots)),
		byCode: make(map[position.Code][]int, len(f.Slots)),
		slots:  f.Slots,
	}
	for i, s := range f.Slots {
		pool.byCode[s.Code] = append(pool.byCode[s.Code], i)
	}
	return pool
}

// take claims the first free slot with the given code in formation order.
func (p *slotPool) take(code position.Code) (string, bool) {
	for _, idx := range p.byCode[code] {
		if !p.taken[idx] {
			p.taken[idx] = true
			return p.slots[idx].Name, true
		}
	}
	return "", false
}

// Assign places each squad member into at most one slot of f. Pass one gives
// players their own position in purchase order; pass two walks each remaining
// player's fallback list. The result keeps input order and length.
func Assign(squad []DraftedPlayer, f formation.Formation) ([]DraftedPlayer, error) {
	out := CloneSquad(squad)
	pool := newSlotPool(f)

	deferred := make([]int, 0, len(out))
	for i := range out {
		p := &out[i]
		if _, err := position.Classify(p.PrimaryPosition); err != nil {
			return nil, Misconfigured(err)
		}
		p.AssignedSlot = ""
		p.DisplayRating = p.BaseRating

		if slot, ok := pool.take(p.PrimaryPosition); ok {
			p.AssignedSlot = slot
			continue
		}
		deferred = append(deferred, i)
	}

	for _, i := range deferred {
		p := &out[i]
		fallbacks, err := position.FallbackSlots(p.PrimaryPosition)
		if err != nil {
			return nil, Misconfigured(err)
		}
		for _, code := range fallbacks {
			if slot, ok := pool.take(code); ok {
				p.AssignedSlot = slot
				p.DisplayRating = FallbackRating(p.BaseRating)
				break
			}
		}
	}

	return out, nil
}

// Lineup orders a squad for display: assigned players by formation slot, then the
// unassigned ones in purchase order.
func Lineup(squad []DraftedPlayer, f formation.Formation) []DraftedPlayer {
	bySlot := make(map[string]DraftedPlayer, len(squad))
	unassigned := make([]DraftedPlayer, 0)
	for _, p := range squad {
		if p.Assigned() && f.HasSlot(p.AssignedSlot) {
			bySlot[p.AssignedSlot] = p
			continue
		}
		unassigned = append(unassigned, p)
	}

	out := make([]DraftedPlayer, 0, len(squad))
	for _, s := range f.Slots {
		if p, ok := bySlot[s.Name]; ok {
			out = append(out, p)
		}
	}
	return append(out, unassigned...)
}
