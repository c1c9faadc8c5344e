package formation

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/futdraft/internal/domain/position"
)

var (
	ErrInvalidCatalog    = errors.New("invalid formation catalog")
	ErrUnknownFormation  = errors.New("unknown formation")
	ErrInvalidSlotCount  = errors.New("formation must have exactly 11 slots")
	ErrDuplicateSlotName = errors.New("duplicate slot name in formation")
)

//go:embed formations.yaml
var defaultCatalogYAML []byte

var defaultCatalog = mustLoad(defaultCatalogYAML)

type catalogFile struct {
	Default    string `yaml:"default"`
	Formations []struct {
		Name  string   `yaml:"name"`
		Slots []string `yaml:"slots"`
	} `yaml:"formations"`
}

// Catalog is a read-only set of formations keyed by name.
type Catalog struct {
	defaultName string
	order       []string
	byName      map[string]Formation
}

// Default returns the embedded catalog.
func Default() *Catalog {
	return defaultCatalog
}

// Load parses and validates a YAML catalog. Any unknown slot code, a slot count other
// than 11 or a repeated slot name fails the whole load.
func Load(raw []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %w", ErrInvalidCatalog, err)
	}
	if len(file.Formations) == 0 {
		return nil, fmt.Errorf("%w: no formations defined", ErrInvalidCatalog)
	}

	c := &Catalog{
		order:  make([]string, 0, len(file.Formations)),
		byName: make(map[string]Formation, len(file.Formations)),
	}
	for _, item := range file.Formations {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: formation name is required", ErrInvalidCatalog)
		}
		if _, exists := c.byName[name]; exists {
			return nil, fmt.Errorf("%w: duplicate formation %s", ErrInvalidCatalog, name)
		}

		f, err := build(name, item.Slots)
		if err != nil {
			return nil, err
		}
		c.byName[name] = f
		c.order = append(c.order, name)
	}

	c.defaultName = strings.TrimSpace(file.Default)
	if c.defaultName == "" {
		c.defaultName = c.order[0]
	}
	if _, ok := c.byName[c.defaultName]; !ok {
		return nil, fmt.Errorf("%w: default formation %s is not defined", ErrInvalidCatalog, c.defaultName)
	}

	return c, nil
}

func build(name string, slotNames []string) (Formation, error) {
	if len(slotNames) != SlotCount {
		return Formation{}, fmt.Errorf("%w: %w: %s has %d", ErrInvalidCatalog, ErrInvalidSlotCount, name, len(slotNames))
	}

	seen := make(map[string]struct{}, len(slotNames))
	slots := make([]Slot, 0, len(slotNames))
	for _, raw := range slotNames {
		slotName := strings.ToUpper(strings.TrimSpace(raw))
		if _, dup := seen[slotName]; dup {
			return Formation{}, fmt.Errorf("%w: %w: %s in %s", ErrInvalidCatalog, ErrDuplicateSlotName, slotName, name)
		}
		seen[slotName] = struct{}{}

		code := position.SlotCode(slotName)
		role, err := position.Classify(code)
		if err != nil {
			return Formation{}, fmt.Errorf("%w: slot %s in %s: %w", ErrInvalidCatalog, slotName, name, err)
		}
		slots = append(slots, Slot{Name: slotName, Code: code, Role: role})
	}

	return Formation{Name: name, Slots: slots}, nil
}

func mustLoad(raw []byte) *Catalog {
	c, err := Load(raw)
	if err != nil {
		panic(fmt.Sprintf("load embedded formation catalog: %v", err))
	}
	return c
}

// Get returns the named formation. The returned value shares no memory with the catalog.
func (c *Catalog) Get(name string) (Formation, bool) {
	f, ok := c.byName[strings.TrimSpace(name)]
	if !ok {
		return Formation{}, false
	}
	return Formation{Name: f.Name, Slots: append([]Slot(nil), f.Slots...)}, true
}

// Lookup is Get with an error for unknown names.
func (c *Catalog) Lookup(name string) (Formation, error) {
	f, ok := c.Get(name)
	if !ok {
		return Formation{}, fmt.Errorf("%w: %s", ErrUnknownFormation, name)
	}
	return f, nil
}

func (c *Catalog) DefaultName() string {
	return c.defaultName
}

// All lists formations in catalog order.
func (c *Catalog) All() []Formation {
	out := make([]Formation, 0, len(c.order))
	for _, name := range c.order {
		f, _ := c.Get(name)
		out = append(out, f)
	}
	return out
}
