package formation

import "github.com/riskibarqy/futdraft/internal/domain/position"

// SlotCount is the number of slots every formation must define.
const SlotCount = 11

// Slot is one named place on the pitch.
type Slot struct {
	Name string
	Code position.Code
	Role position.Role
}

// Formation is an ordered, immutable list of slots.
type Formation struct {
	Name  string
	Slots []Slot
}

func (f Formation) SlotNames() []string {
	out := make([]string, 0, len(f.Slots))
	for _, s := range f.Slots {
		out = append(out, s.Name)
	}
	return out
}

func (f Formation) HasSlot(name string) bool {
	for _, s := range f.Slots {
		if s.Name == name {
			return true
		}
	}
	return false
}

// RoleCapacity counts slots per role.
func (f Formation) RoleCapacity() map[position.Role]int {
	out := make(map[position.Role]int, len(position.AllRoles))
	for _, s := range f.Slots {
		out[s.Role]++
	}
	return out
}

// SlotIndex returns the position of a slot in formation order, or -1.
func (f Formation) SlotIndex(name string) int {
	for i, s := range f.Slots {
		if s.Name == name {
			return i
		}
	}
	return -1
}
