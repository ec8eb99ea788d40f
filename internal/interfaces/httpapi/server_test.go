package httpapi

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/draft-league/internal/domain/roster"
	"github.com/riskibarqy/draft-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/draft-league/internal/platform/cache"
	"github.com/riskibarqy/draft-league/internal/usecase"
)

const (
	testAdminToken = "test-admin-token"
	testJobToken   = "test-job-token"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	teamRepo := memory.NewTeamRepository(nil)
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	draftRepo := memory.NewDraftRepository(playerRepo)
	wishlistRepo := memory.NewWishlistRepository()
	listings := cache.NewStore(0)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := NewHandler(
		usecase.NewLeagueService(leagueRepo, teamRepo, playerRepo, draftRepo, wishlistRepo, logger),
		usecase.NewTeamService(teamRepo, playerRepo),
		usecase.NewPlayerService(leagueRepo, playerRepo, listings),
		usecase.NewDraftService(leagueRepo, teamRepo, playerRepo, draftRepo, wishlistRepo, roster.DefaultRules(), listings, nil, logger),
		usecase.NewWishlistService(teamRepo, playerRepo, wishlistRepo, logger),
		usecase.NewIngestionService(leagueRepo, playerRepo, nil, listings, nil, logger),
		logger,
	)

	return NewRouter(handler, logger, []string{"*"}, testAdminToken, testJobToken)
}

func doRequest(t *testing.T, router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope struct {
		APIVersion string         `json:"apiVersion"`
		Data       map[string]any `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v (body: %s)", err, rec.Body.String())
	}
	if envelope.APIVersion != "2.0" {
		t.Fatalf("unexpected apiVersion %q", envelope.APIVersion)
	}

	return envelope.Data
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := decodeEnvelope(t, rec)
	if data["status"] != "ok" {
		t.Fatalf("unexpected health payload: %v", data)
	}
}

func TestRouter_DraftFlow(t *testing.T) {
	router := newTestRouter(t)
	admin := map[string]string{"X-Admin-Token": testAdminToken}

	setupBody := `{"snake":true,"teams":[{"name":"Anfield Army","owner":"alice"},{"name":"Blue Moon","owner":"bob"}]}`
	rec := doRequest(t, router, http.MethodPost, "/v1/leagues/"+memory.LeagueIDPremierLeague+"/draft/setup", setupBody, admin)
	if rec.Code != http.StatusCreated {
		t.Fatalf("setup: expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	data := decodeEnvelope(t, rec)
	if got, ok := data["current_pick"].(float64); !ok || got != 1 {
		t.Fatalf("setup: expected current_pick 1, got %v", data["current_pick"])
	}

	pickBody := `{"player_id":"epl-mid-01"}`
	rec = doRequest(t, router, http.MethodPost, "/v1/leagues/"+memory.LeagueIDPremierLeague+"/draft/picks", pickBody, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("pick: expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	data = decodeEnvelope(t, rec)
	pick, ok := data["player"].(map[string]any)
	if !ok || pick["name"] != "Salah" {
		t.Fatalf("pick: unexpected player payload: %v", data["player"])
	}

	rec = doRequest(t, router, http.MethodPost, "/v1/leagues/"+memory.LeagueIDPremierLeague+"/draft/picks", pickBody, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("repeat pick: expected 409, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/leagues/"+memory.LeagueIDPremierLeague+"/draft", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("state: expected 200, got %d", rec.Code)
	}
	data = decodeEnvelope(t, rec)
	if got, ok := data["current_pick"].(float64); !ok || got != 2 {
		t.Fatalf("state: expected current_pick 2, got %v", data["current_pick"])
	}
}

func TestRouter_AdminRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	setupBody := `{"snake":true,"teams":[{"name":"Anfield Army","owner":"alice"}]}`
	rec := doRequest(t, router, http.MethodPost, "/v1/leagues/"+memory.LeagueIDPremierLeague+"/draft/setup", setupBody, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_RejectsUnknownFields(t *testing.T) {
	router := newTestRouter(t)
	admin := map[string]string{"X-Admin-Token": testAdminToken}

	setupBody := `{"snake":true,"nope":1,"teams":[{"name":"Anfield Army","owner":"alice"}]}`
	rec := doRequest(t, router, http.MethodPost, "/v1/leagues/"+memory.LeagueIDPremierLeague+"/draft/setup", setupBody, admin)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestRouter_ListPlayers(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/leagues/"+memory.LeagueIDPremierLeague+"/players?position=fwd&sort=total_points&order=desc", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 4 {
		t.Fatalf("expected 4 forwards, got %d", len(envelope.Data))
	}
	if envelope.Data[0]["name"] != "Haaland" {
		t.Fatalf("expected Haaland first, got %v", envelope.Data[0]["name"])
	}
}
