package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/riskibarqy/futdraft/internal/domain/draft"
	"github.com/riskibarqy/futdraft/internal/interfaces/view"
	"github.com/riskibarqy/futdraft/internal/usecase"
)

func (h *Handler) StartDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartDraft")
	defer span.End()

	var req startDraftRequest
	if err := h.decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	req.Mode = strings.ToLower(strings.TrimSpace(req.Mode))
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.drafts.Start(ctx, draft.Mode(req.Mode))
	if err != nil {
		h.logger.WarnContext(ctx, "start draft failed", "mode", req.Mode, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, view.NewSnapshot(snapshot))
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraft")
	defer span.End()

	snapshot, err := h.drafts.Snapshot(r.PathValue("draftID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, view.NewSnapshot(snapshot))
}

func (h *Handler) ResumeDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResumeDraft")
	defer span.End()

	draftID := strings.TrimSpace(r.PathValue("draftID"))
	snapshot, err := h.drafts.Resume(ctx, draftID)
	if err != nil {
		h.logger.WarnContext(ctx, "resume draft failed", "draft_id", draftID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, view.NewSnapshot(snapshot))
}

func (h *Handler) CanBuy(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CanBuy")
	defer span.End()

	p, err := h.drafts.CheckPurchase(ctx, r.PathValue("draftID"), r.PathValue("slug"))
	switch {
	case err == nil:
		writeSuccess(ctx, w, http.StatusOK, canBuyDTO{Allowed: true, Player: playerToDTO(p)})
	case errors.Is(err, usecase.ErrValidation) && p.Slug != "":
		writeSuccess(ctx, w, http.StatusOK, canBuyDTO{
			Allowed: false,
			Reason:  draft.ReasonCode(err),
			Message: err.Error(),
			Player:  playerToDTO(p),
		})
	default:
		writeError(ctx, w, err)
	}
}

func (h *Handler) BuyPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BuyPlayer")
	defer span.End()

	draftID := strings.TrimSpace(r.PathValue("draftID"))
	var req buyPlayerRequest
	if err := h.decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.drafts.Buy(ctx, draftID, req.PlayerSlug)
	if err != nil {
		h.logger.WarnContext(ctx, "buy player failed", "draft_id", draftID, "player_slug", req.PlayerSlug, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, view.NewSnapshot(snapshot))
}

func (h *Handler) SellPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SellPlayer")
	defer span.End()

	draftID := strings.TrimSpace(r.PathValue("draftID"))
	slug := strings.TrimSpace(r.PathValue("slug"))
	snapshot, err := h.drafts.Sell(ctx, draftID, slug)
	if err != nil {
		h.logger.WarnContext(ctx, "sell player failed", "draft_id", draftID, "player_slug", slug, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, view.NewSnapshot(snapshot))
}

func (h *Handler) SetFormation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetFormation")
	defer span.End()

	draftID := strings.TrimSpace(r.PathValue("draftID"))
	var req setFormationRequest
	if err := h.decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.drafts.SetFormation(ctx, draftID, req.Formation)
	if err != nil {
		h.logger.WarnContext(ctx, "set formation failed", "draft_id", draftID, "formation", req.Formation, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, view.NewSnapshot(snapshot))
}

func (h *Handler) RefreshDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshDraft")
	defer span.End()

	snapshot, err := h.drafts.Refresh(ctx, r.PathValue("draftID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, view.NewSnapshot(snapshot))
}

func (h *Handler) StopDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StopDraft")
	defer span.End()

	draftID := strings.TrimSpace(r.PathValue("draftID"))
	var req stopDraftRequest
	if err := h.decodeBody(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.drafts.Snapshot(draftID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	username := stopUsername(req.Username, snapshot.Mode)

	summary, err := h.drafts.Stop(ctx, draftID, username)
	if summary.SessionID != "" {
		// A summary means the session ended, even when the leaderboard write failed.
		h.trivia.Forget(draftID)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "stop draft failed", "draft_id", draftID, "stopped", summary.SessionID != "", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, view.NewSummary(summary))
}

func (h *Handler) ResetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetDraft")
	defer span.End()

	draftID := strings.TrimSpace(r.PathValue("draftID"))
	if err := h.drafts.Reset(draftID); err != nil {
		writeError(ctx, w, err)
		return
	}
	h.trivia.Forget(draftID)
	w.WriteHeader(http.StatusNoContent)
}

// stopUsername fills the leaderboard name of a manual stop.
func stopUsername(requested *string, mode draft.Mode) string {
	if requested != nil {
		if name := strings.TrimSpace(*requested); name != "" {
			return name
		}
	}
	if mode == draft.ModeWildcard {
		return usecase.WildcardUsername
	}
	return DefaultClassicUsername
}
