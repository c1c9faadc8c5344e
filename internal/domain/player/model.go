package player

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/futdraft/internal/domain/position"
)

// Player is a read-only record from the player catalog.
type Player struct {
	Slug      string
	Name      string
	FullName  string
	Rating    int
	Position  position.Code
	ValueText string
	Club      string
	Nation    string
	ImageURL  string
}

// Price is the parsed market value. Zero means the value could not be read.
func (p Player) Price() int64 {
	return ParseValue(p.ValueText)
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.Slug) == "" {
		return fmt.Errorf("player slug is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if !position.Known(p.Position) {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.Rating <= 0 {
		return fmt.Errorf("player rating must be greater than zero")
	}

	return nil
}

// Filter narrows a catalog listing. Zero values disable a bound.
type Filter struct {
	Name        string
	Position    position.Code
	MinRating   int
	MaxRating   int
	MinValueMil float64
	MaxValueMil float64
	Limit       int
}

const (
	DefaultListLimit = 250
	MaxListLimit     = 500
)

func (f Filter) NormalizedLimit() int {
	switch {
	case f.Limit <= 0:
		return DefaultListLimit
	case f.Limit > MaxListLimit:
		return MaxListLimit
	default:
		return f.Limit
	}
}

// Match applies every bound except Limit.
func (f Filter) Match(p Player) bool {
	if name := strings.TrimSpace(f.Name); name != "" {
		if !strings.Contains(strings.ToLower(p.Name), strings.ToLower(name)) {
			return false
		}
	}
	if f.Position != "" && p.Position != f.Position {
		return false
	}
	if f.MinRating > 0 && p.Rating < f.MinRating {
		return false
	}
	if f.MaxRating > 0 && p.Rating > f.MaxRating {
		return false
	}

	valueMil := float64(p.Price()) / 1_000_000
	if f.MinValueMil > 0 && valueMil < f.MinValueMil {
		return false
	}
	if f.MaxValueMil > 0 && valueMil > f.MaxValueMil {
		return false
	}
	return true
}
