package leaderboard

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Entry is one recorded final score.
type Entry struct {
	ID        string
	Username  string
	Score     int64
	SessionID string
	Mode      string
	CreatedAt time.Time
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.Username) == "" {
		return fmt.Errorf("leaderboard username is required")
	}
	if len(e.Username) > 64 {
		return fmt.Errorf("leaderboard username must be at most 64 characters")
	}
	return nil
}

func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}
