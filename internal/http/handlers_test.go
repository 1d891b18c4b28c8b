package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mauv0809/la-canchita/internal/asado"
	"github.com/mauv0809/la-canchita/internal/config"
	"github.com/mauv0809/la-canchita/internal/database"
	"github.com/mauv0809/la-canchita/internal/league"
	"github.com/mauv0809/la-canchita/internal/metrics"
	"github.com/mauv0809/la-canchita/internal/notifier"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminUID = "admin-uid"

var (
	teamA = []string{"p1", "p2", "p3", "p4", "p5"}
	teamB = []string{"p6", "p7", "p8", "p9", "p10"}
)

// setupTestServer initializes a new server with a test database and a mock notifier.
func setupTestServer(t *testing.T) (*Server, *notifier.Mock, *metrics.Mock, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	leagueStore := league.New(db)
	asadoStore := asado.New(db)
	counters := metrics.New(db)
	metricsSvc := metrics.NewMock()
	notifierMock := notifier.NewMock()

	reg := prometheus.NewRegistry()
	metricsHandler := metrics.NewMetricsHandler(reg)

	server := NewServer(leagueStore, asadoStore, metricsSvc, counters, metricsHandler, config.Config{}, notifierMock)
	return server, notifierMock, metricsSvc, dbTeardown
}

func doRequest(t *testing.T, server *Server, method, target, uid string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if uid != "" {
		req.Header.Set("X-User-ID", uid)
	}
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func createSeason(t *testing.T, server *Server) *league.Season {
	t.Helper()

	rec := doRequest(t, server, "POST", "/seasons", "", map[string]any{
		"name":   "Clausura 2025",
		"admins": []string{adminUID},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var season league.Season
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&season))
	return &season
}

func TestHealthCheck(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	rec := doRequest(t, server, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK!", rec.Body.String())
}

func TestCreateAndGetSeason(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	season := createSeason(t, server)
	assert.Equal(t, "Clausura 2025", season.Name)
	assert.Equal(t, league.DefaultPointValues(), season.Points)

	rec := doRequest(t, server, "GET", "/seasons/"+season.ID, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, server, "GET", "/seasons/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminOnly(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	season := createSeason(t, server)
	body := map[string]any{"name": "Tolo"}

	rec := doRequest(t, server, "POST", "/seasons/"+season.ID+"/players", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "missing header")

	rec = doRequest(t, server, "POST", "/seasons/"+season.ID+"/players", "random-uid", body)
	assert.Equal(t, http.StatusForbidden, rec.Code, "non-admin uid")

	rec = doRequest(t, server, "POST", "/seasons/"+season.ID+"/players", adminUID, body)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateMatch_FullFlow(t *testing.T) {
	server, notifierMock, metricsSvc, teardown := setupTestServer(t)
	defer teardown()

	season := createSeason(t, server)

	rec := doRequest(t, server, "POST", "/seasons/"+season.ID+"/matches", adminUID, map[string]any{
		"date":      time.Date(2025, 6, 1, 21, 0, 0, 0, time.UTC),
		"team_a":    teamA,
		"team_b":    teamB,
		"goal_diff": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var match league.Match
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&match))
	assert.Equal(t, adminUID, match.CreatedBy)

	rec = doRequest(t, server, "GET", "/seasons/"+season.ID+"/standings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var standings map[string]league.Standing
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&standings))
	assert.Equal(t, 2, standings["p1"].Points)
	assert.Equal(t, 0, standings["p6"].Points)

	require.Len(t, notifierMock.SendMatchResultCalls, 1)
	assert.Equal(t, 1, metricsSvc.MatchesRecorded())

	rec = doRequest(t, server, "GET", "/stats", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var counters map[string]int
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&counters))
	assert.Equal(t, 1, counters["matches_recorded"])
}

func TestCreateMatch_Validation(t *testing.T) {
	server, notifierMock, _, teardown := setupTestServer(t)
	defer teardown()

	season := createSeason(t, server)

	rec := doRequest(t, server, "POST", "/seasons/"+season.ID+"/matches", adminUID, map[string]any{
		"team_a":    []string{"p1"},
		"team_b":    teamB,
		"goal_diff": 1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, notifierMock.SendMatchResultCalls)
}

func TestCreateMatch_SeasonNotFound(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	// adminOnly rejects before the store runs, unknown seasons have no admins.
	rec := doRequest(t, server, "POST", "/seasons/missing/matches", adminUID, map[string]any{
		"team_a": teamA, "team_b": teamB, "goal_diff": 1,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteMatch(t *testing.T) {
	server, _, metricsSvc, teardown := setupTestServer(t)
	defer teardown()

	season := createSeason(t, server)
	rec := doRequest(t, server, "POST", "/seasons/"+season.ID+"/matches", adminUID, map[string]any{
		"team_a": teamA, "team_b": teamB, "goal_diff": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var match league.Match
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&match))

	rec = doRequest(t, server, "DELETE", fmt.Sprintf("/seasons/%s/matches/%s", season.ID, match.ID), adminUID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, metricsSvc.MatchesDeleted())
	assert.Equal(t, 1, metricsSvc.RebuildsRun())

	rec = doRequest(t, server, "GET", "/seasons/"+season.ID+"/standings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var standings map[string]league.Standing
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&standings))
	assert.Empty(t, standings)
}

func TestSeasonTable(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	season := createSeason(t, server)

	// The table only includes rostered players, register two.
	for _, name := range []string{"p1", "p6"} {
		rec := doRequest(t, server, "POST", "/seasons/"+season.ID+"/players", adminUID, map[string]any{"name": name})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doRequest(t, server, "GET", "/seasons/"+season.ID+"/table", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	assert.Len(t, rows, 2)
}

func TestHeadToHead_RequiresBothPlayers(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	season := createSeason(t, server)

	rec := doRequest(t, server, "GET", "/seasons/"+season.ID+"/h2h?a=p1", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, server, "GET", "/seasons/"+season.ID+"/h2h?a=p1&b=p1", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, server, "GET", "/seasons/"+season.ID+"/h2h?a=p1&b=p2", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPlayerProfile_NotFound(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	season := createSeason(t, server)

	rec := doRequest(t, server, "GET", "/seasons/"+season.ID+"/players/ghost/profile", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAsadoFlow(t *testing.T) {
	server, notifierMock, metricsSvc, teardown := setupTestServer(t)
	defer teardown()

	season := createSeason(t, server)

	rec := doRequest(t, server, "POST", "/seasons/"+season.ID+"/asados", adminUID, map[string]any{
		"date":               time.Date(2025, 6, 7, 13, 0, 0, 0, time.UTC),
		"venue":              "lo de Tolo",
		"present_player_ids": []string{"p1", "p2"},
		"host_player_id":     "p1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, notifierMock.SendAsadoRecordedCalls, 1)
	assert.Equal(t, 1, metricsSvc.AsadosRecorded())

	rec = doRequest(t, server, "GET", "/seasons/"+season.ID+"/asado-standings", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var standings map[string]asado.AsadoStanding
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&standings))
	assert.Equal(t, 2, standings["p1"].Points)
	assert.Equal(t, 1, standings["p2"].Points)
}

func TestDeleteAsado_Nonexistent(t *testing.T) {
	server, _, _, teardown := setupTestServer(t)
	defer teardown()

	season := createSeason(t, server)

	rec := doRequest(t, server, "DELETE", "/seasons/"+season.ID+"/asados/never-existed", adminUID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
