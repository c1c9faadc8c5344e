package position

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownPosition = errors.New("unknown position code")

// Code is a raw position code such as "ST" or "LCB".
type Code string

// Role is the category used for formation quotas.
type Role string

const (
	RoleKeeper     Role = "keeper"
	RoleDefender   Role = "defender"
	RoleMidfielder Role = "midfielder"
	RoleForward    Role = "forward"
)

var AllRoles = []Role{RoleKeeper, RoleDefender, RoleMidfielder, RoleForward}

type classification struct {
	role      Role
	fallbacks []Code
}

// Fallback lists start with the code itself and continue most-similar first.
var codes = map[Code]classification{
	"GK": {role: RoleKeeper, fallbacks: []Code{"GK"}},

	"CB":  {role: RoleDefender, fallbacks: []Code{"CB", "LCB", "RCB", "LB", "RB", "LWB", "RWB"}},
	"LCB": {role: RoleDefender, fallbacks: []Code{"LCB", "CB", "RCB", "LB", "LWB", "RB", "RWB"}},
	"RCB": {role: RoleDefender, fallbacks: []Code{"RCB", "CB", "LCB", "RB", "RWB", "LB", "LWB"}},
	"LB":  {role: RoleDefender, fallbacks: []Code{"LB", "LWB", "LCB", "CB", "RCB", "RB", "RWB"}},
	"RB":  {role: RoleDefender, fallbacks: []Code{"RB", "RWB", "RCB", "CB", "LCB", "LB", "LWB"}},
	"LWB": {role: RoleDefender, fallbacks: []Code{"LWB", "LB", "LCB", "CB", "RCB", "RB", "RWB"}},
	"RWB": {role: RoleDefender, fallbacks: []Code{"RWB", "RB", "RCB", "CB", "LCB", "LB", "LWB"}},

	"CDM": {role: RoleMidfielder, fallbacks: []Code{"CDM", "LDM", "RDM", "CM", "LCM", "RCM", "CAM"}},
	"LDM": {role: RoleMidfielder, fallbacks: []Code{"LDM", "CDM", "RDM", "LCM", "CM", "RCM", "CAM"}},
	"RDM": {role: RoleMidfielder, fallbacks: []Code{"RDM", "CDM", "LDM", "RCM", "CM", "LCM", "CAM"}},
	"CM":  {role: RoleMidfielder, fallbacks: []Code{"CM", "LCM", "RCM", "CDM", "CAM", "LDM", "RDM"}},
	"LCM": {role: RoleMidfielder, fallbacks: []Code{"LCM", "CM", "RCM", "LDM", "CDM", "CAM", "RDM"}},
	"RCM": {role: RoleMidfielder, fallbacks: []Code{"RCM", "CM", "LCM", "RDM", "CDM", "CAM", "LDM"}},
	"CAM": {role: RoleMidfielder, fallbacks: []Code{"CAM", "CM", "LCM", "RCM", "CDM", "LDM", "RDM"}},
	"LM":  {role: RoleMidfielder, fallbacks: []Code{"LM", "LW"}},
	"RM":  {role: RoleMidfielder, fallbacks: []Code{"RM", "RW"}},

	"ST":  {role: RoleForward, fallbacks: []Code{"ST", "CF", "LST", "RST"}},
	"CF":  {role: RoleForward, fallbacks: []Code{"CF", "ST", "LST", "RST"}},
	"LST": {role: RoleForward, fallbacks: []Code{"LST", "ST", "CF", "RST"}},
	"RST": {role: RoleForward, fallbacks: []Code{"RST", "ST", "CF", "LST"}},
	"LW":  {role: RoleForward, fallbacks: []Code{"LW", "LM"}},
	"RW":  {role: RoleForward, fallbacks: []Code{"RW", "RM"}},
}

// Normalize upper-cases and trims a raw code.
func Normalize(raw string) Code {
	return Code(strings.ToUpper(strings.TrimSpace(raw)))
}

func Known(code Code) bool {
	_, ok := codes[code]
	return ok
}

// Classify maps a position code to its role.
func Classify(code Code) (Role, error) {
	c, ok := codes[code]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPosition, code)
	}
	return c.role, nil
}

// FallbackSlots returns the slot codes a player of this position may occupy, in
// preference order. The returned slice is owned by the caller.
func FallbackSlots(code Code) ([]Code, error) {
	c, ok := codes[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPosition, code)
	}
	return append([]Code(nil), c.fallbacks...), nil
}

// SlotCode strips the numeric suffix of a slot name, so "CB2" becomes "CB".
func SlotCode(slotName string) Code {
	name := strings.TrimSpace(slotName)
	end := len(name)
	for end > 0 && name[end-1] >= '0' && name[end-1] <= '9' {
		end--
	}
	return Normalize(name[:end])
}

// KnownCodes lists every classified code.
func KnownCodes() []Code {
	out := make([]Code, 0, len(codes))
	for code := range codes {
		out = append(out, code)
	}
	return out
}
