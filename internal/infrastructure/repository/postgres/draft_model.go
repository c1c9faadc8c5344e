package postgres

import (
	"database/sql"
	"time"
)

type draftTableModel struct {
	ID           string        `db:"id"`
	Mode         string        `db:"mode"`
	Purse        int64         `db:"purse"`
	BonusMoney   int64         `db:"bonus_money"`
	Formation    string        `db:"formation"`
	Squad        []byte        `db:"squad"`
	TargetRating int           `db:"target_rating"`
	IsActive     bool          `db:"is_active"`
	StartedAt    time.Time     `db:"started_at"`
	EndedAt      sql.NullTime  `db:"ended_at"`
	FinalScore   sql.NullInt64 `db:"final_score"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

type draftInsertModel struct {
	Mode         string    `db:"mode"`
	Purse        int64     `db:"purse"`
	BonusMoney   int64     `db:"bonus_money"`
	Formation    string    `db:"formation"`
	TargetRating int       `db:"target_rating"`
	IsActive     bool      `db:"is_active"`
	StartedAt    time.Time `db:"started_at"`
}
