package httpapi

import (
	"time"

	"github.com/riskibarqy/futdraft/internal/domain/formation"
	"github.com/riskibarqy/futdraft/internal/domain/leaderboard"
	"github.com/riskibarqy/futdraft/internal/domain/player"
	"github.com/riskibarqy/futdraft/internal/domain/trivia"
	"github.com/riskibarqy/futdraft/internal/interfaces/view"
	"github.com/riskibarqy/futdraft/internal/usecase"
)

type startDraftRequest struct {
	Mode string `json:"mode" validate:"required,oneof=classic wildcard"`
}

type buyPlayerRequest struct {
	PlayerSlug string `json:"player_slug" validate:"required,max=128"`
}

type setFormationRequest struct {
	Formation string `json:"formation" validate:"required,max=32"`
}

type stopDraftRequest struct {
	Username *string `json:"username" validate:"omitempty,max=64"`
}

type answerTriviaRequest struct {
	QuestionID string `json:"question_id" validate:"required"`
	Answer     string `json:"answer" validate:"required,len=1"`
}

type formationSlotDTO struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Role string `json:"role"`
}

type formationDTO struct {
	Name    string             `json:"name"`
	Default bool               `json:"default"`
	Slots   []formationSlotDTO `json:"slots"`
}

type playerDTO struct {
	Slug      string  `json:"slug"`
	Name      string  `json:"name"`
	FullName  string  `json:"full_name,omitempty"`
	Rating    int     `json:"overall_rating"`
	Position  string  `json:"best_position"`
	ValueText string  `json:"value"`
	Price     int64   `json:"price"`
	ValueMil  float64 `json:"value_millions"`
	Club      string  `json:"club,omitempty"`
	Nation    string  `json:"nation,omitempty"`
	ImageURL  string  `json:"image_url,omitempty"`
}

type canBuyDTO struct {
	Allowed bool      `json:"allowed"`
	Reason  string    `json:"reason,omitempty"`
	Message string    `json:"message,omitempty"`
	Player  playerDTO `json:"player"`
}

type questionDTO struct {
	ID      string            `json:"id"`
	Text    string            `json:"question"`
	Options map[string]string `json:"options"`
	Reward  int64             `json:"reward_amount"`
}

type answerDTO struct {
	Correct          bool          `json:"correct"`
	CorrectAnswer    string        `json:"correct_answer"`
	Amount           int64         `json:"amount"`
	ConsecutiveWrong int           `json:"consecutive_wrong"`
	Draft            view.Snapshot `json:"draft"`
}

type leaderboardEntryDTO struct {
	Rank      int       `json:"rank"`
	Username  string    `json:"username"`
	Score     int64     `json:"score"`
	Mode      string    `json:"mode,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func formationToDTO(f formation.Formation, defaultName string) formationDTO {
	slots := make([]formationSlotDTO, 0, len(f.Slots))
	for _, s := range f.Slots {
		slots = append(slots, formationSlotDTO{Name: s.Name, Code: string(s.Code), Role: string(s.Role)})
	}
	return formationDTO{Name: f.Name, Default: f.Name == defaultName, Slots: slots}
}

func playerToDTO(p player.Player) playerDTO {
	price := p.Price()
	return playerDTO{
		Slug:      p.Slug,
		Name:      p.Name,
		FullName:  p.FullName,
		Rating:    p.Rating,
		Position:  string(p.Position),
		ValueText: p.ValueText,
		Price:     price,
		ValueMil:  float64(price) / 1_000_000,
		Club:      p.Club,
		Nation:    p.Nation,
		ImageURL:  p.ImageURL,
	}
}

func questionToDTO(q trivia.Question) questionDTO {
	options := make(map[string]string, len(q.Options))
	for k, v := range q.Options {
		options[string(k)] = v
	}
	return questionDTO{ID: q.ID, Text: q.Text, Options: options, Reward: q.RewardAmount}
}

func answerToDTO(res usecase.AnswerResult) answerDTO {
	return answerDTO{
		Correct:          res.Correct,
		CorrectAnswer:    string(res.CorrectAnswer),
		Amount:           res.Amount,
		ConsecutiveWrong: res.ConsecutiveWrong,
		Draft:            view.NewSnapshot(res.Snapshot),
	}
}

func leaderboardToDTO(items []leaderboard.Entry) []leaderboardEntryDTO {
	out := make([]leaderboardEntryDTO, 0, len(items))
	for i, e := range items {
		out = append(out, leaderboardEntryDTO{
			Rank:      i + 1,
			Username:  e.Username,
			Score:     e.Score,
			Mode:      e.Mode,
			SessionID: e.SessionID,
			CreatedAt: e.CreatedAt.UTC(),
		})
	}
	return out
}
