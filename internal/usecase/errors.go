package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/futdraft/internal/domain/draft"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// Draft error classes are re-exported so callers need only this package.
var (
	ErrValidation    = draft.ErrValidation
	ErrPersistence   = draft.ErrPersistence
	ErrConfiguration = draft.ErrConfiguration
)

func dependencyErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, op, err)
}
