package trivia

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidAnswer = errors.New("invalid trivia answer")

// Option is one of the four answer letters.
type Option string

const (
	OptionA Option = "A"
	OptionB Option = "B"
	OptionC Option = "C"
	OptionD Option = "D"
)

func ParseOption(raw string) (Option, error) {
	switch o := Option(strings.ToUpper(strings.TrimSpace(raw))); o {
	case OptionA, OptionB, OptionC, OptionD:
		return o, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAnswer, raw)
	}
}

// Question is a bonus question. CorrectAnswer never leaves the service boundary.
type Question struct {
	ID            string
	Text          string
	Options       map[Option]string
	CorrectAnswer Option
	RewardAmount  int64
}

// Penalty rules for wrong answers.
const (
	BasePenalty   int64 = 25_000_000
	MaxPenaltyExp       = 16
)

// WrongAnswerPenalty doubles for every consecutive wrong answer already given.
func WrongAnswerPenalty(consecutiveWrong int) int64 {
	if consecutiveWrong < 0 {
		consecutiveWrong = 0
	}
	if consecutiveWrong > MaxPenaltyExp {
		consecutiveWrong = MaxPenaltyExp
	}
	return BasePenalty << consecutiveWrong
}

// ClampAdjustment limits a negative adjustment so that balance+amount never drops
// below zero.
func ClampAdjustment(balance, amount int64) int64 {
	if balance+amount < 0 {
		if balance < 0 {
			return 0
		}
		return -balance
	}
	return amount
}
