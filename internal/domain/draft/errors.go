package draft

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by a session operation matches exactly one of
// these through errors.Is.
var (
	ErrValidation    = errors.New("draft validation failed")
	ErrPersistence   = errors.New("draft persistence failed")
	ErrConfiguration = errors.New("draft configuration invalid")
)

// Validation reasons.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSquadFull         = errors.New("squad full")
	ErrDuplicatePlayer   = errors.New("duplicate player")
	ErrRoleQuotaExceeded = errors.New("role quota exceeded")
	ErrNoSlotAvailable   = errors.New("no formation slot available")
	ErrInvalidPrice      = errors.New("invalid player price")
	ErrInvalidPlayer     = errors.New("invalid player")
	ErrPlayerNotInSquad  = errors.New("player not in squad")
	ErrUnknownFormation  = errors.New("unknown formation")
	ErrSessionActive     = errors.New("draft session already active")
	ErrSessionNotActive  = errors.New("draft session not active")
)

var reasonCodes = []struct {
	err  error
	code string
}{
	{ErrInsufficientFunds, "insufficientFunds"},
	{ErrSquadFull, "squadFull"},
	{ErrDuplicatePlayer, "duplicatePlayer"},
	{ErrRoleQuotaExceeded, "roleQuotaExceeded"},
	{ErrNoSlotAvailable, "noSlotAvailable"},
	{ErrInvalidPrice, "invalidPrice"},
	{ErrInvalidPlayer, "invalidPlayer"},
	{ErrPlayerNotInSquad, "playerNotInSquad"},
	{ErrUnknownFormation, "unknownFormation"},
	{ErrSessionActive, "sessionActive"},
	{ErrSessionNotActive, "sessionNotActive"},
}

// Invalid builds a validation error carrying a reason sentinel.
func Invalid(reason error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrValidation, reason, fmt.Sprintf(format, args...))
}

// Misconfigured builds a configuration error.
func Misconfigured(err error) error {
	return fmt.Errorf("%w: %w", ErrConfiguration, err)
}

// PersistenceFailed marks a collaborator failure as not applied.
func PersistenceFailed(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

// ReasonCode returns the machine readable reason of a validation error, or "".
func ReasonCode(err error) string {
	for _, rc := range reasonCodes {
		if errors.Is(err, rc.err) {
			return rc.code
		}
	}
	return ""
}
