package draft

import (
	"context"
	"time"
)

// Field selects which parts of State a Save writes.
type Field uint8

const (
	FieldPurse Field = 1 << iota
	FieldSquad
	FieldFormation
	FieldBonus

	FieldsAll = FieldPurse | FieldSquad | FieldFormation | FieldBonus
)

func (f Field) Has(x Field) bool {
	return f&x == x
}

// Merge copies the selected fields of src into dst.
func (f Field) Merge(dst, src State) State {
	if f.Has(FieldPurse) {
		dst.Purse = src.Purse
	}
	if f.Has(FieldBonus) {
		dst.BonusMoney = src.BonusMoney
	}
	if f.Has(FieldFormation) {
		dst.Formation = src.Formation
	}
	if f.Has(FieldSquad) {
		dst.Squad = CloneSquad(src.Squad)
	}
	return dst
}

// Repository persists draft sessions. Every failed call is treated as not applied.
type Repository interface {
	Create(ctx context.Context, session NewSession) (string, error)
	// Save writes the selected fields of state in one statement.
	Save(ctx context.Context, id string, state State, fields Field) error
	Deactivate(ctx context.Context, id string, endedAt time.Time, finalScore int64) error
	Get(ctx context.Context, id string) (Record, bool, error)
}

// Publisher receives confirmed session events.
type Publisher interface {
	Publish(ctx context.Context, sessionID string, event Event) error
}
