package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/formations", handler.ListFormations)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{slug}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/trivia/question", handler.RandomQuestion)
	mux.HandleFunc("GET /v1/leaderboard", handler.Leaderboard)
}

func registerDraftRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/drafts", handler.StartDraft)
	mux.HandleFunc("GET /v1/drafts/{draftID}", handler.GetDraft)
	mux.HandleFunc("DELETE /v1/drafts/{draftID}", handler.ResetDraft)
	mux.HandleFunc("POST /v1/drafts/{draftID}/resume", handler.ResumeDraft)
	mux.HandleFunc("GET /v1/drafts/{draftID}/can-buy/{slug}", handler.CanBuy)
	mux.HandleFunc("POST /v1/drafts/{draftID}/players", handler.BuyPlayer)
	mux.HandleFunc("DELETE /v1/drafts/{draftID}/players/{slug}", handler.SellPlayer)
	mux.HandleFunc("PUT /v1/drafts/{draftID}/formation", handler.SetFormation)
	mux.HandleFunc("POST /v1/drafts/{draftID}/refresh", handler.RefreshDraft)
	mux.HandleFunc("POST /v1/drafts/{draftID}/stop", handler.StopDraft)
	mux.HandleFunc("POST /v1/drafts/{draftID}/trivia", handler.AnswerTrivia)
}

// registerStreamRoutes keeps websocket upgrades outside the rate limiter.
func registerStreamRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/drafts/{draftID}/stream", handler.StreamDraft)
}
