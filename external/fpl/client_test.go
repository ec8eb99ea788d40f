package fpl

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/riskibarqy/draft-league/internal/platform/resilience"
	"github.com/riskibarqy/draft-league/internal/usecase"
)

const bootstrapFixture = `{
	"teams": [
		{"id": 1, "name": "Arsenal"},
		{"id": 2, "name": "Liverpool"}
	],
	"elements": [
		{
			"id": 101, "web_name": "Saka", "first_name": "Bukayo", "second_name": "Saka",
			"team": 1, "element_type": 3, "status": "a",
			"now_cost": 90, "total_points": 205, "points_per_game": "5.4",
			"goals_scored": 12, "assists": 9, "minutes": 2900
		},
		{
			"id": 102, "web_name": "Salah", "first_name": "Mohamed", "second_name": "Salah",
			"team": 2, "element_type": 3, "status": "d",
			"now_cost": 130, "total_points": 260, "points_per_game": "7.1",
			"goals_scored": 22, "assists": 12, "minutes": 3100
		},
		{
			"id": 103, "web_name": "Mystery", "first_name": "", "second_name": "",
			"team": 1, "element_type": 5, "status": "a",
			"now_cost": 40, "total_points": 0, "points_per_game": "",
			"goals_scored": 0, "assists": 0, "minutes": 0
		}
	]
}`

func TestClient_FetchPlayers_MapsBootstrap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bootstrap-static/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(bootstrapFixture))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	rows, err := client.FetchPlayers(t.Context())
	if err != nil {
		t.Fatalf("fetch players failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 mappable players, got %d", len(rows))
	}

	saka := rows[0]
	if saka.ExternalID != "fpl-101" || saka.Name != "Saka" || saka.FullName != "Bukayo Saka" {
		t.Fatalf("unexpected first row: %+v", saka)
	}
	if saka.Club != "Arsenal" || saka.Position != "MID" || saka.Status != "a" {
		t.Fatalf("unexpected first row mapping: %+v", saka)
	}
	if saka.NowCost == nil || *saka.NowCost != 9.0 {
		t.Fatalf("expected now cost 9.0, got %v", saka.NowCost)
	}
	if saka.PointsPerGame == nil || *saka.PointsPerGame != 5.4 {
		t.Fatalf("expected points per game 5.4, got %v", saka.PointsPerGame)
	}
	if saka.TotalPoints == nil || *saka.TotalPoints != 205 {
		t.Fatalf("expected total points 205, got %v", saka.TotalPoints)
	}

	salah := rows[1]
	if salah.Status != "i" {
		t.Fatalf("doubtful status must map to injured, got %s", salah.Status)
	}
}

func TestClient_FetchPlayers_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(bootstrapFixture))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, MaxRetries: 2})

	rows, err := client.FetchPlayers(t.Context())
	if err != nil {
		t.Fatalf("fetch players failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 players after retry, got %d", len(rows))
	}
	if calls.Load() != 2 {
		t.Fatalf("expected exactly one retry, got %d calls", calls.Load())
	}
}

func TestClient_FetchPlayers_NonRetryableStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, MaxRetries: 3})

	_, err := client.FetchPlayers(t.Context())
	if err == nil {
		t.Fatalf("expected error on forbidden status")
	}
	if calls.Load() != 1 {
		t.Fatalf("non-retryable status must not be retried, got %d calls", calls.Load())
	}
}

func TestClient_FetchPlayers_CircuitOpenRejectsFast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
		},
	})

	if _, err := client.FetchPlayers(t.Context()); err == nil {
		t.Fatalf("expected failure from provider")
	}

	_, err := client.FetchPlayers(t.Context())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected circuit rejection, got %v", err)
	}
}
