package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/riskibarqy/futdraft/internal/domain/player"
	"github.com/riskibarqy/futdraft/internal/domain/position"
	"github.com/riskibarqy/futdraft/internal/usecase"
)

func (h *Handler) ListFormations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFormations")
	defer span.End()

	defaultName := h.drafts.DefaultFormation()
	formations := h.drafts.Formations()
	items := make([]formationDTO, 0, len(formations))
	for _, f := range formations {
		items = append(items, formationToDTO(f, defaultName))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	filter, err := parsePlayerFilter(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.players.List(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	p, err := h.players.Get(ctx, r.PathValue("slug"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, playerToDTO(p))
}

func (h *Handler) RandomQuestion(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RandomQuestion")
	defer span.End()

	q, err := h.trivia.RandomQuestion(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, questionToDTO(q))
}

func (h *Handler) AnswerTrivia(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AnswerTrivia")
	defer span.End()

	draftID := strings.TrimSpace(r.PathValue("draftID"))
	var req answerTriviaRequest
	if err := h.decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	res, err := h.trivia.Answer(ctx, usecase.AnswerTriviaInput{
		SessionID:  draftID,
		QuestionID: req.QuestionID,
		Answer:     req.Answer,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "answer trivia failed", "draft_id", draftID, "question_id", req.QuestionID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, answerToDTO(res))
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Leaderboard")
	defer span.End()

	limit, err := queryInt(r.URL.Query(), "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.leaderboard.Top(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(items))
}

func parsePlayerFilter(q url.Values) (player.Filter, error) {
	filter := player.Filter{
		Name:     strings.TrimSpace(q.Get("name")),
		Position: position.Normalize(q.Get("position")),
	}

	var err error
	if filter.MinRating, err = queryInt(q, "min_rating"); err != nil {
		return player.Filter{}, err
	}
	if filter.MaxRating, err = queryInt(q, "max_rating"); err != nil {
		return player.Filter{}, err
	}
	if filter.MinValueMil, err = queryFloat(q, "min_value"); err != nil {
		return player.Filter{}, err
	}
	if filter.MaxValueMil, err = queryFloat(q, "max_value"); err != nil {
		return player.Filter{}, err
	}
	if filter.Limit, err = queryInt(q, "limit"); err != nil {
		return player.Filter{}, err
	}
	return filter, nil
}

func queryInt(q url.Values, key string) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}

func queryFloat(q url.Values, key string) (float64, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", usecase.ErrInvalidInput, key)
	}
	return v, nil
}
