package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ffl/syncer/internal/repository"
	"ffl/syncer/internal/scheduler"
	"ffl/syncer/internal/standings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "sekrit"

type fakeRunner struct {
	jobs   []scheduler.JobInfo
	runErr error
	ran    []string
}

func (f *fakeRunner) Jobs() []scheduler.JobInfo {
	return f.jobs
}

func (f *fakeRunner) Run(ctx context.Context, name string) error {
	f.ran = append(f.ran, name)
	return f.runErr
}

type fakeStandings struct {
	points   []standings.Standing
	records  []standings.RecordStanding
	survivor []standings.Standing
	err      error
}

func (f *fakeStandings) PointsStandings(ctx context.Context) ([]standings.Standing, error) {
	return f.points, f.err
}

func (f *fakeStandings) RecordStandings(ctx context.Context) ([]standings.RecordStanding, error) {
	return f.records, f.err
}

func (f *fakeStandings) SurvivorStandings(ctx context.Context) ([]standings.Standing, error) {
	return f.survivor, f.err
}

type fakeHealth struct {
	err error
}

func (f *fakeHealth) Health(ctx context.Context) error {
	return f.err
}

func newTestHandler(runner *fakeRunner, st *fakeStandings, health *fakeHealth) http.Handler {
	return NewHandler(runner, st, health, testSecret).Routes()
}

func doRequest(t *testing.T, h http.Handler, method, path, secret string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if secret != "" {
		req.Header.Set(SecretHeader, secret)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth_NoSecretRequired(t *testing.T) {
	h := newTestHandler(&fakeRunner{}, &fakeStandings{}, &fakeHealth{})

	rec := doRequest(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestHealth_Degraded(t *testing.T) {
	h := newTestHandler(&fakeRunner{}, &fakeStandings{}, &fakeHealth{err: errors.New("pool exhausted")})

	rec := doRequest(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "pool exhausted", body["error"])
}

func TestSecretGate(t *testing.T) {
	h := newTestHandler(&fakeRunner{}, &fakeStandings{}, &fakeHealth{})

	tests := []struct {
		name   string
		secret string
		want   int
	}{
		{"missing secret", "", http.StatusUnauthorized},
		{"wrong secret", "nope", http.StatusUnauthorized},
		{"correct secret", testSecret, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, http.MethodGet, "/jobs", tt.secret)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestListJobs(t *testing.T) {
	lastRun := time.Date(2025, 9, 28, 17, 5, 0, 0, time.UTC)
	runner := &fakeRunner{jobs: []scheduler.JobInfo{
		{Name: "sync-scores", Spec: "*/5 * * * *", LastRunAt: lastRun, LastStatus: scheduler.StatusSuccess},
		{Name: "sync-players", Spec: "0 4 * * 2"},
	}}
	h := newTestHandler(runner, &fakeStandings{}, &fakeHealth{})

	rec := doRequest(t, h, http.MethodGet, "/jobs", testSecret)
	require.Equal(t, http.StatusOK, rec.Code)

	jobs := decodeBody(t, rec)["jobs"].([]any)
	require.Len(t, jobs, 2)
	first := jobs[0].(map[string]any)
	assert.Equal(t, "sync-scores", first["name"])
	assert.Equal(t, "success", first["last_status"])
}

func TestRunJob(t *testing.T) {
	tests := []struct {
		name     string
		runErr   error
		wantCode int
		wantErr  string
	}{
		{"success", nil, http.StatusOK, ""},
		{"unknown job", scheduler.ErrUnknownJob, http.StatusNotFound, "unknown job"},
		{"already running", scheduler.ErrJobBusy, http.StatusConflict, "job is already running"},
		{"work failure", errors.New("provider timeout"), http.StatusInternalServerError, "provider timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{runErr: tt.runErr}
			h := newTestHandler(runner, &fakeStandings{}, &fakeHealth{})

			rec := doRequest(t, h, http.MethodPost, "/jobs/sync-scores/run", testSecret)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, []string{"sync-scores"}, runner.ran)

			body := decodeBody(t, rec)
			if tt.wantErr == "" {
				assert.Equal(t, true, body["success"])
				assert.Equal(t, "sync-scores", body["job"])
			} else {
				assert.Contains(t, body["error"], tt.wantErr)
			}
		})
	}
}

func TestPointsStandings(t *testing.T) {
	st := &fakeStandings{points: []standings.Standing{
		{ID: "t1", Name: "Alpha", Rank: 1, Metric: 812.5},
		{ID: "t2", Name: "Beta", Rank: 2, Metric: 701.0},
	}}
	h := newTestHandler(&fakeRunner{}, st, &fakeHealth{})

	rec := doRequest(t, h, http.MethodGet, "/standings/points", testSecret)
	require.Equal(t, http.StatusOK, rec.Code)

	result := decodeBody(t, rec)["standings"].([]any)
	require.Len(t, result, 2)
	first := result[0].(map[string]any)
	assert.Equal(t, "Alpha", first["name"])
	assert.Equal(t, float64(1), first["rank"])
}

func TestStandings_NoCurrentSeason(t *testing.T) {
	st := &fakeStandings{err: repository.ErrNoCurrentSeason}
	h := newTestHandler(&fakeRunner{}, st, &fakeHealth{})

	for _, path := range []string{"/standings/points", "/standings/records", "/standings/survivor"} {
		rec := doRequest(t, h, http.MethodGet, path, testSecret)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestStandings_InternalError(t *testing.T) {
	st := &fakeStandings{err: errors.New("query timeout")}
	h := newTestHandler(&fakeRunner{}, st, &fakeHealth{})

	rec := doRequest(t, h, http.MethodGet, "/standings/survivor", testSecret)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "query timeout")
}
