package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/riskibarqy/futdraft/internal/domain/draft"
	"github.com/riskibarqy/futdraft/internal/domain/trivia"
)

type AnswerTriviaInput struct {
	SessionID  string
	QuestionID string
	Answer     string
}

type AnswerResult struct {
	Correct          bool
	CorrectAnswer    trivia.Option
	Amount           int64
	ConsecutiveWrong int
	Snapshot         draft.Snapshot
}

// TriviaService turns bonus questions into bonus money for classic drafts.
type TriviaService struct {
	questions trivia.Repository
	drafts    *DraftService

	mu     sync.Mutex
	streak map[string]int
}

func NewTriviaService(questions trivia.Repository, drafts *DraftService) *TriviaService {
	return &TriviaService{
		questions: questions,
		drafts:    drafts,
		streak:    make(map[string]int),
	}
}

// RandomQuestion returns a question with its answer stripped.
func (s *TriviaService) RandomQuestion(ctx context.Context) (trivia.Question, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TriviaService.RandomQuestion")
	defer span.End()

	q, ok, err := s.questions.Random(ctx)
	if err != nil {
		return trivia.Question{}, dependencyErr("random question", err)
	}
	if !ok {
		return trivia.Question{}, fmt.Errorf("%w: no trivia questions", ErrNotFound)
	}
	q.CorrectAnswer = ""
	return q, nil
}

func (s *TriviaService) Answer(ctx context.Context, input AnswerTriviaInput) (AnswerResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TriviaService.Answer")
	defer span.End()

	sessionID := strings.TrimSpace(input.SessionID)
	questionID := strings.TrimSpace(input.QuestionID)
	if questionID == "" {
		return AnswerResult{}, fmt.Errorf("%w: question id is required", ErrInvalidInput)
	}
	answer, err := trivia.ParseOption(input.Answer)
	if err != nil {
		return AnswerResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	session, err := s.drafts.Session(sessionID)
	if err != nil {
		return AnswerResult{}, err
	}
	current := session.Snapshot()
	if current.Status != draft.StatusActive {
		return AnswerResult{}, draft.Invalid(draft.ErrSessionNotActive, "trivia requires an active session")
	}
	if current.Mode != draft.ModeClassic {
		return AnswerResult{}, fmt.Errorf("%w: trivia is only available in classic mode", ErrInvalidInput)
	}

	q, ok, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return AnswerResult{}, dependencyErr("get question", err)
	}
	if !ok {
		return AnswerResult{}, fmt.Errorf("%w: question=%s", ErrNotFound, questionID)
	}

	// Streak read, bonus write and streak update are one step.
	s.mu.Lock()
	defer s.mu.Unlock()

	streak := s.streak[sessionID]
	result := AnswerResult{Correct: answer == q.CorrectAnswer, CorrectAnswer: q.CorrectAnswer}
	amount := q.RewardAmount
	nextStreak := 0
	if !result.Correct {
		amount = -trivia.WrongAnswerPenalty(streak)
		nextStreak = streak + 1
	}

	latest := session.Snapshot()
	amount = trivia.ClampAdjustment(latest.Purse+latest.BonusMoney, amount)

	snapshot, err := session.AddBonus(ctx, amount)
	if err != nil {
		return AnswerResult{}, err
	}
	s.streak[sessionID] = nextStreak

	result.Amount = amount
	result.ConsecutiveWrong = nextStreak
	result.Snapshot = snapshot
	return result, nil
}

// Forget drops the wrong-answer streak of a finished session.
func (s *TriviaService) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.streak, strings.TrimSpace(sessionID))
}
