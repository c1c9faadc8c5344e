package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/futdraft/internal/domain/draft"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func encodeSquad(squad []draft.DraftedPlayer) (string, error) {
	if squad == nil {
		squad = []draft.DraftedPlayer{}
	}
	raw, err := sonic.Marshal(squad)
	if err != nil {
		return "", fmt.Errorf("encode squad: %w", err)
	}
	return string(raw), nil
}

func decodeSquad(raw []byte) ([]draft.DraftedPlayer, error) {
	if len(raw) == 0 {
		return []draft.DraftedPlayer{}, nil
	}
	var squad []draft.DraftedPlayer
	if err := sonic.Unmarshal(raw, &squad); err != nil {
		return nil, fmt.Errorf("decode squad: %w", err)
	}
	return draft.CloneSquad(squad), nil
}

func nullString(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.String
}
