package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightout11/cracked-ice/internal/combos"
	"github.com/insightout11/cracked-ice/internal/complement"
	"github.com/insightout11/cracked-ice/internal/engine"
	"github.com/insightout11/cracked-ice/internal/roster"
	"github.com/insightout11/cracked-ice/internal/schedtest"
	"github.com/insightout11/cracked-ice/internal/setmath"
	"github.com/insightout11/cracked-ice/internal/tiers"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestServer(t *testing.T) (*httptest.Server, *engine.Engine) {
	t.Helper()
	eng, err := engine.NewFromStore(schedtest.League(21, 180), 2, quietLogger())
	require.NoError(t, err)
	srv := httptest.NewServer(NewRouter(eng, Options{
		Logger:   quietLogger(),
		Boundary: tiers.Boundary{SeasonStart: schedtest.SeasonStart},
	}))
	t.Cleanup(srv.Close)
	return srv, eng
}

func get(t *testing.T, srv *httptest.Server, path string, out any) int {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealthAndReady(t *testing.T) {
	srv, _ := newTestServer(t)

	var health map[string]any
	assert.Equal(t, http.StatusOK, get(t, srv, "/health", &health))
	assert.Equal(t, "ok", health["status"])

	var ready map[string]any
	assert.Equal(t, http.StatusOK, get(t, srv, "/ready", &ready))
	assert.Equal(t, "ready", ready["status"])
}

func TestNotReady(t *testing.T) {
	eng := engine.New(engine.Options{DataPath: filepath.Join(t.TempDir(), "missing.json"), Logger: quietLogger()})
	srv := httptest.NewServer(NewRouter(eng, Options{Logger: quietLogger()}))
	defer srv.Close()

	var health map[string]any
	assert.Equal(t, http.StatusOK, get(t, srv, "/health", &health))

	for _, path := range []string{
		"/ready",
		"/api/v1/teams",
		"/api/v1/complements/BOS",
		"/api/v1/added-starts?roster=BOS&candidate=TOR",
		"/api/v1/added-starts/bulk?roster=BOS",
		"/api/v1/best-matches/2",
		"/api/v1/tiers?playoffStart=2025-02-24",
	} {
		var body ErrorResponse
		assert.Equal(t, http.StatusServiceUnavailable, get(t, srv, path, &body), path)
		assert.Equal(t, engine.CodeDataNotReady, body.Code, path)
		assert.NotEmpty(t, body.Message, path)
	}
}

func TestTeams(t *testing.T) {
	srv, _ := newTestServer(t)
	var body struct {
		Teams []engine.Team `json:"teams"`
		Count int           `json:"count"`
	}
	assert.Equal(t, http.StatusOK, get(t, srv, "/api/v1/teams", &body))
	assert.Equal(t, 32, body.Count)
	assert.Equal(t, "ANA", body.Teams[0].Code)
}

func TestComplements(t *testing.T) {
	srv, eng := newTestServer(t)

	var body struct {
		Seed    string              `json:"seed"`
		Window  setmath.Window      `json:"window"`
		Results []complement.Result `json:"results"`
	}
	code := get(t, srv, "/api/v1/complements/bos?start=2024-11-01&end=2024-12-31", &body)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body.Results, 31)
	assert.Equal(t, "2024-11-01", body.Window.Start)

	want, err := eng.RankComplements("BOS", setmath.Window{Start: "2024-11-01", End: "2024-12-31"})
	require.NoError(t, err)
	assert.Equal(t, want, body.Results)
	for _, r := range body.Results {
		assert.NotNil(t, r.ComplementDates)
	}
}

func TestCallerErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		path string
		code string
	}{
		{"/api/v1/complements/XXX", engine.CodeUnknownTeam},
		{"/api/v1/complements/BOS?start=2030-01-01", engine.CodeEmptySeedInWindow},
		{"/api/v1/complements/BOS?start=2024-12-01&end=2024-11-01", engine.CodeInvalidWindow},
		{"/api/v1/complements/BOS?start=Nov", engine.CodeInvalidWindow},
		{"/api/v1/added-starts?roster=BOS,QQQ&candidate=TOR", engine.CodeUnknownRosterTeam},
		{"/api/v1/added-starts?roster=BOS", engine.CodeUnknownTeam},
		{"/api/v1/added-starts?candidate=TOR", engine.CodeInvalidRoster},
		{"/api/v1/added-starts?roster=BOS&candidate=TOR&slots=zero", engine.CodeInvalidSlots},
		{"/api/v1/added-starts/bulk?roster=BOS,TOR,MTL,OTT,EDM,SEA", engine.CodeInvalidRoster},
		{"/api/v1/added-starts/bulk?roster=BOS,TOR,MTL,OTT,EDM,XXX", engine.CodeUnknownRosterTeam},
		{"/api/v1/added-starts/bulk?roster=BOS&slots=0", engine.CodeInvalidSlots},
		{"/api/v1/best-matches/5", engine.CodeInvalidSize},
		{"/api/v1/best-matches/pair", engine.CodeInvalidSize},
		{"/api/v1/tiers", engine.CodeInvalidPlayoffStart},
		{"/api/v1/tiers?playoffStart=Feb", engine.CodeInvalidPlayoffStart},
		{"/api/v1/tiers?playoffWeek=x", engine.CodeInvalidPlayoffStart},
		{"/api/v1/tiers?playoffWeek=20&offNightWeight=heavy", engine.CodeInvalidRequest},
	}
	for _, tt := range tests {
		var body ErrorResponse
		assert.Equal(t, http.StatusBadRequest, get(t, srv, tt.path, &body), tt.path)
		assert.Equal(t, tt.code, body.Code, tt.path)
		assert.Equal(t, "Bad Request", body.Error, tt.path)
	}
}

func TestAddedStarts(t *testing.T) {
	srv, eng := newTestServer(t)

	var single roster.Result
	require.Equal(t, http.StatusOK, get(t, srv, "/api/v1/added-starts?roster=BOS,TOR&candidate=MTL&slots=1", &single))
	want, err := eng.AddedStarts([]string{"BOS", "TOR"}, "MTL", setmath.Window{}, 1)
	require.NoError(t, err)
	assert.Equal(t, *want, single)

	var bulk struct {
		Roster []string     `json:"roster"`
		Rows   []roster.Row `json:"rows"`
	}
	require.Equal(t, http.StatusOK, get(t, srv, "/api/v1/added-starts/bulk?roster=BOS,%20TOR&slots=1", &bulk))
	assert.Equal(t, []string{"BOS", "TOR"}, bulk.Roster)
	assert.Len(t, bulk.Rows, 30)
	for _, row := range bulk.Rows {
		if row.TeamCode == "MTL" {
			assert.Equal(t, single.AddedStarts, row.AddedStarts)
		}
	}
}

func TestBestMatches(t *testing.T) {
	srv, _ := newTestServer(t)
	var body struct {
		K       int            `json:"k"`
		Entries []combos.Entry `json:"entries"`
	}
	require.Equal(t, http.StatusOK, get(t, srv, "/api/v1/best-matches/4?end=2024-12-31", &body))
	assert.Equal(t, 4, body.K)
	assert.Len(t, body.Entries, combos.TopN)
	for _, e := range body.Entries {
		assert.Len(t, e.Teams, 4)
	}
}

func TestTiers(t *testing.T) {
	srv, _ := newTestServer(t)

	var byWeek tiers.Report
	require.Equal(t, http.StatusOK, get(t, srv, "/api/v1/tiers?playoffWeek=20&gameVolumeWeight=0.9", &byWeek))
	start, err := tiers.PlayoffStartForWeek(schedtest.SeasonStart, 20)
	require.NoError(t, err)
	assert.Equal(t, start, byWeek.PlayoffStart)
	assert.Equal(t, tiers.Weights{OffNight: 0.5, GameVolume: 0.9}, byWeek.Weights)
	assert.Len(t, byWeek.Teams, 32)

	var byDate tiers.Report
	require.Equal(t, http.StatusOK, get(t, srv, "/api/v1/tiers?playoffStart="+start, &byDate))
	assert.Equal(t, start, byDate.PlayoffStart)
}

func TestCORS(t *testing.T) {
	srv, _ := newTestServer(t)
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
