package httpapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/riskibarqy/futdraft/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/futdraft/internal/interfaces/realtime"
	"github.com/riskibarqy/futdraft/internal/interfaces/view"
	"github.com/riskibarqy/futdraft/internal/platform/id"
	"github.com/riskibarqy/futdraft/internal/platform/logging"
	"github.com/riskibarqy/futdraft/internal/usecase"
)

type envelope[T any] struct {
	APIVersion string     `json:"apiVersion"`
	Data       T          `json:"data"`
	Error      *errorBody `json:"error"`
}

type testAPI struct {
	router http.Handler
	drafts *usecase.DraftService
}

func newTestAPI(t *testing.T) testAPI {
	t.Helper()

	logger := logging.NewNop()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	hub, err := realtime.NewHub(realtime.HubConfig{PoolSize: 2, QueueSize: 8, Logger: logger})
	if err != nil {
		t.Fatalf("new hub: %v", err)
	}

	players := memory.NewPlayerRepository(memory.SeedPlayers())
	leaderboardRepo := memory.NewLeaderboardRepository(nil)
	drafts := usecase.NewDraftService(usecase.DraftSessionConfig{
		Repository:  memory.NewDraftRepository(id.NewSequence("draft"), clock),
		Leaderboard: leaderboardRepo,
		Publisher:   hub,
		Clock:       clock,
		Logger:      logger,
	}, players)
	t.Cleanup(func() {
		drafts.Shutdown()
		hub.Close()
	})

	handler := NewHandler(HandlerDeps{
		Drafts:      drafts,
		Players:     usecase.NewPlayerService(players),
		Trivia:      usecase.NewTriviaService(memory.NewTriviaRepository(memory.SeedQuestions()), drafts),
		Leaderboard: usecase.NewLeaderboardService(leaderboardRepo),
		Hub:         hub,
		Logger:      logger,
		StreamPing:  time.Second,
	})
	return testAPI{
		router: NewRouter(handler, RouterConfig{Logger: logger, SwaggerEnabled: true, CORSAllowedOrigins: []string{"*"}}),
		drafts: drafts,
	}
}

func (a testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var out envelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	if out.APIVersion != "2.0" {
		t.Fatalf("expected apiVersion 2.0, got %q", out.APIVersion)
	}
	return out
}

func expectReason(t *testing.T, rec *httptest.ResponseRecorder, status int, reason string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	body := decode[any](t, rec)
	if body.Error == nil || len(body.Error.Errors) == 0 {
		t.Fatalf("expected error body, got %s", rec.Body.String())
	}
	if got := body.Error.Errors[0].Reason; got != reason {
		t.Fatalf("expected reason %q, got %q", reason, got)
	}
}

func startClassic(t *testing.T, api testAPI) view.Snapshot {
	t.Helper()
	rec := api.do(t, http.MethodPost, "/v1/drafts", `{"mode":"classic"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start draft: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	return decode[view.Snapshot](t, rec).Data
}

func TestListFormations(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/v1/formations", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	items := decode[[]formationDTO](t, rec).Data
	if len(items) != 9 {
		t.Fatalf("expected 9 formations, got %d", len(items))
	}
	defaults := 0
	for _, f := range items {
		if len(f.Slots) != 11 {
			t.Fatalf("formation %s has %d slots", f.Name, len(f.Slots))
		}
		if f.Default {
			defaults++
			if f.Name != "4-3-3" {
				t.Fatalf("unexpected default formation %s", f.Name)
			}
		}
	}
	if defaults != 1 {
		t.Fatalf("expected exactly one default formation, got %d", defaults)
	}
}

func TestClassicDraftFlow(t *testing.T) {
	api := newTestAPI(t)
	started := startClassic(t, api)
	if started.Purse != 500_000_000 || started.Formation != "4-3-3" || started.Status != "active" {
		t.Fatalf("unexpected start snapshot %+v", started)
	}
	base := "/v1/drafts/" + started.ID

	rec := api.do(t, http.MethodPost, base+"/players", `{"player_slug":"rodri"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("buy: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	bought := decode[view.Snapshot](t, rec).Data
	if bought.Purse != 388_000_000 || len(bought.Squad) != 1 {
		t.Fatalf("unexpected snapshot after buy %+v", bought)
	}

	rec = api.do(t, http.MethodGet, base+"/can-buy/rodri", "")
	verdict := decode[canBuyDTO](t, rec).Data
	if verdict.Allowed || verdict.Reason != "duplicatePlayer" {
		t.Fatalf("expected duplicate verdict, got %+v", verdict)
	}

	rec = api.do(t, http.MethodPost, base+"/players", `{"player_slug":"rodri"}`)
	expectReason(t, rec, http.StatusBadRequest, "duplicatePlayer")

	rec = api.do(t, http.MethodPut, base+"/formation", `{"formation":"9-0-1"}`)
	expectReason(t, rec, http.StatusBadRequest, "unknownFormation")

	rec = api.do(t, http.MethodDelete, base+"/players/rodri", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("sell: expected 200, got %d", rec.Code)
	}
	if sold := decode[view.Snapshot](t, rec).Data; sold.Purse != 500_000_000 || len(sold.Squad) != 0 {
		t.Fatalf("unexpected snapshot after sell %+v", sold)
	}

	rec = api.do(t, http.MethodPost, base+"/stop", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("stop: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	summary := decode[view.Summary](t, rec).Data
	if summary.Username != DefaultClassicUsername || summary.FinalScore != 500_000_000 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	rec = api.do(t, http.MethodPost, base+"/players", `{"player_slug":"rodri"}`)
	expectReason(t, rec, http.StatusConflict, "sessionNotActive")

	rec = api.do(t, http.MethodGet, "/v1/leaderboard?limit=5", "")
	entries := decode[[]leaderboardEntryDTO](t, rec).Data
	if len(entries) != 1 || entries[0].Username != DefaultClassicUsername || entries[0].Rank != 1 {
		t.Fatalf("unexpected leaderboard %+v", entries)
	}

	rec = api.do(t, http.MethodDelete, base, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("reset: expected 204, got %d", rec.Code)
	}
	rec = api.do(t, http.MethodGet, base, "")
	expectReason(t, rec, http.StatusNotFound, "notFound")
}

func TestStartDraft_RejectsBadPayloads(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "unknown mode", body: `{"mode":"hardcore"}`},
		{name: "unknown field", body: `{"mode":"classic","purse":1}`},
		{name: "malformed", body: `{"mode":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(t, http.MethodPost, "/v1/drafts", tt.body)
			expectReason(t, rec, http.StatusBadRequest, "invalidInput")
		})
	}
}

func TestBuyPlayer_UnknownPlayer(t *testing.T) {
	api := newTestAPI(t)
	started := startClassic(t, api)

	rec := api.do(t, http.MethodPost, "/v1/drafts/"+started.ID+"/players", `{"player_slug":"nobody"}`)
	expectReason(t, rec, http.StatusNotFound, "notFound")
}

func TestTriviaFlow(t *testing.T) {
	api := newTestAPI(t)
	started := startClassic(t, api)

	rec := api.do(t, http.MethodGet, "/v1/trivia/question", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("question: expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "correct") {
		t.Fatalf("question must not reveal its answer: %s", rec.Body.String())
	}

	rec = api.do(t, http.MethodPost, "/v1/drafts/"+started.ID+"/trivia", `{"question_id":"q-world-cup-2010","answer":"b"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("answer: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	res := decode[answerDTO](t, rec).Data
	if !res.Correct || res.Amount != 50_000_000 || res.Draft.BonusMoney != 50_000_000 {
		t.Fatalf("unexpected answer result %+v", res)
	}

	rec = api.do(t, http.MethodPost, "/v1/drafts/"+started.ID+"/trivia", `{"question_id":"q-world-cup-2010","answer":"E"}`)
	expectReason(t, rec, http.StatusBadRequest, "invalidInput")
}

func TestListPlayers_Filters(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/v1/players?position=gk&min_rating=88", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	items := decode[[]playerDTO](t, rec).Data
	if len(items) != 2 || items[0].Slug != "thibaut-courtois" || items[1].Slug != "alisson" {
		t.Fatalf("unexpected players %+v", items)
	}

	rec = api.do(t, http.MethodGet, "/v1/players?min_rating=abc", "")
	expectReason(t, rec, http.StatusBadRequest, "invalidInput")
}

func TestStreamDraft_SendsSnapshotThenEvents(t *testing.T) {
	api := newTestAPI(t)
	started := startClassic(t, api)

	srv := httptest.NewServer(api.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/drafts/" + started.ID + "/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial stream: %v", err)
	}
	defer resp.Body.Close()
	defer conn.Close()

	read := func() view.Event {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read frame: %v", err)
		}
		var ev view.Event
		if err := sonic.Unmarshal(data, &ev); err != nil {
			t.Fatalf("decode frame: %v", err)
		}
		return ev
	}

	if first := read(); first.Type != streamSnapshotType || first.Snapshot.ID != started.ID {
		t.Fatalf("unexpected first frame %+v", first)
	}

	rec := api.do(t, http.MethodPost, "/v1/drafts/"+started.ID+"/players", `{"player_slug":"alisson"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("buy: expected 200, got %d", rec.Code)
	}
	next := read()
	if next.Type != "draft.updated" || next.Seq == 0 || len(next.Snapshot.Squad) != 1 {
		t.Fatalf("unexpected update frame %+v", next)
	}
}

func TestStreamDraft_UnknownSession(t *testing.T) {
	api := newTestAPI(t)
	rec := api.do(t, http.MethodGet, "/v1/drafts/missing/stream", "")
	expectReason(t, rec, http.StatusNotFound, "notFound")
}

func TestDocsRoutes(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/openapi.yaml", "")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "application/yaml") {
		t.Fatalf("unexpected openapi response: %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "/v1/drafts/{draftID}/stream") {
		t.Fatalf("openapi document misses stream route")
	}

	rec = api.do(t, http.MethodGet, "/docs", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "SwaggerUIBundle") {
		t.Fatalf("unexpected docs response: %d", rec.Code)
	}
}
