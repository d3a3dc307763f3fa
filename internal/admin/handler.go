// Package admin exposes the manual trigger surface: job registry listing,
// on-demand job runs, and standings reads. Every call is gated by a shared
// secret that must match on each request.
package admin

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"ffl/syncer/internal/repository"
	"ffl/syncer/internal/scheduler"
	"ffl/syncer/internal/standings"

	"github.com/rs/zerolog/log"
)

// SecretHeader carries the shared sync secret on every admin request.
const SecretHeader = "X-Sync-Secret"

// JobRunner exposes the scheduler to the admin surface.
// *scheduler.Scheduler satisfies this.
type JobRunner interface {
	Jobs() []scheduler.JobInfo
	Run(ctx context.Context, name string) error
}

// StandingsReader computes standings on demand.
// *standings.Service satisfies this.
type StandingsReader interface {
	PointsStandings(ctx context.Context) ([]standings.Standing, error)
	RecordStandings(ctx context.Context) ([]standings.RecordStanding, error)
	SurvivorStandings(ctx context.Context) ([]standings.Standing, error)
}

// HealthChecker reports storage health. *repository.Database satisfies this.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handler serves the admin HTTP surface
type Handler struct {
	jobs      JobRunner
	standings StandingsReader
	db        HealthChecker
	secret    string
}

// NewHandler creates an admin handler
func NewHandler(jobs JobRunner, st StandingsReader, db HealthChecker, secret string) *Handler {
	return &Handler{
		jobs:      jobs,
		standings: st,
		db:        db,
		secret:    secret,
	}
}

// Routes returns the admin mux
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("GET /jobs", h.withSecret(h.listJobs))
	mux.HandleFunc("POST /jobs/{name}/run", h.withSecret(h.runJob))
	mux.HandleFunc("GET /standings/points", h.withSecret(h.pointsStandings))
	mux.HandleFunc("GET /standings/records", h.withSecret(h.recordStandings))
	mux.HandleFunc("GET /standings/survivor", h.withSecret(h.survivorStandings))

	return mux
}

// withSecret rejects any request whose shared secret does not match
func (h *Handler) withSecret(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get(SecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.secret)) != 1 {
			log.Warn().
				Str("path", r.URL.Path).
				Str("remote", r.RemoteAddr).
				Msg("Rejected admin request with bad secret")
			writeError(w, http.StatusUnauthorized, "invalid sync secret")
			return
		}
		next(w, r)
	}
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.Health(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) listJobs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"jobs": h.jobs.Jobs()})
}

// runJob triggers a job outside its cron schedule. The work function's error
// is returned verbatim so an operator sees exactly what failed.
func (h *Handler) runJob(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	err := h.jobs.Run(r.Context(), name)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "job": name})
	case errors.Is(err, scheduler.ErrUnknownJob):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, scheduler.ErrJobBusy):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Str("job", name).Msg("Manual job run failed")
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) pointsStandings(w http.ResponseWriter, r *http.Request) {
	result, err := h.standings.PointsStandings(r.Context())
	if err != nil {
		h.standingsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"standings": result})
}

func (h *Handler) recordStandings(w http.ResponseWriter, r *http.Request) {
	result, err := h.standings.RecordStandings(r.Context())
	if err != nil {
		h.standingsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"standings": result})
}

func (h *Handler) survivorStandings(w http.ResponseWriter, r *http.Request) {
	result, err := h.standings.SurvivorStandings(r.Context())
	if err != nil {
		h.standingsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"standings": result})
}

func (h *Handler) standingsError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNoCurrentSeason) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	log.Error().Err(err).Msg("Standings computation failed")
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
