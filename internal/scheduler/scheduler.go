// Package scheduler maintains a registry of named, cron-scheduled jobs and
// executes them on schedule or on explicit manual request.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ffl/syncer/internal/metrics"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

var (
	// ErrAlreadyRegistered is returned when a job name is registered twice.
	// This is a startup configuration error.
	ErrAlreadyRegistered = errors.New("job already registered")

	// ErrUnknownJob is returned by Run for a name that was never registered.
	ErrUnknownJob = errors.New("unknown job")

	// ErrJobBusy is returned by Run when an invocation of the same job name
	// is already in flight. Callers may retry later.
	ErrJobBusy = errors.New("job is already running")
)

// Job status values
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// WorkFunc is the unit of work a job executes.
type WorkFunc func(ctx context.Context) error

// JobInfo is a read-only snapshot of one registry entry.
type JobInfo struct {
	Name       string    `json:"name"`
	Spec       string    `json:"cron"`
	LastRunAt  time.Time `json:"last_run_at"`
	LastStatus string    `json:"last_status,omitempty"`
}

type job struct {
	name string
	spec string
	fn   WorkFunc

	// runMu serializes executions of this job name, whether cron-triggered
	// or manual. Two overlapping runs of identical work would double-upsert.
	runMu sync.Mutex

	mu         sync.Mutex // guards the fields below
	lastRunAt  time.Time
	lastStatus string
}

// Scheduler owns the job registry and the cron dispatch loop.
type Scheduler struct {
	cron *cron.Cron

	mu    sync.RWMutex
	jobs  map[string]*job
	order []string

	wg      sync.WaitGroup
	baseCtx context.Context
	cancel  context.CancelFunc
}

// New creates an empty scheduler. Register jobs before calling Start.
func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:    cron.New(),
		jobs:    make(map[string]*job),
		baseCtx: ctx,
		cancel:  cancel,
	}
}

// Register adds a named job with a standard 5-field cron expression.
// Registering a duplicate name or an invalid expression fails.
func (s *Scheduler) Register(name, spec string, fn WorkFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}

	j := &job{
		name: name,
		spec: spec,
		fn:   fn,
	}

	if _, err := s.cron.AddFunc(spec, func() { s.runFromCron(j) }); err != nil {
		return fmt.Errorf("invalid cron expression %q for job %s: %w", spec, name, err)
	}

	s.jobs[name] = j
	s.order = append(s.order, name)

	log.Info().
		Str("job", name).
		Str("schedule", spec).
		Msg("Job registered")

	return nil
}

// Start begins the cron dispatch loop.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Int("jobs", len(s.order)).Msg("Scheduler started")
}

// Stop halts the dispatch loop and waits for in-flight runs to finish,
// bounded by ctx. Abandoning a run mid-write could leave a week's scores
// partially upserted.
func (s *Scheduler) Stop(ctx context.Context) error {
	cronCtx := s.cron.Stop()

	manualDone := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(manualDone)
	}()

	select {
	case <-cronCtx.Done():
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop timed out: %w", ctx.Err())
	}

	select {
	case <-manualDone:
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop timed out: %w", ctx.Err())
	}

	s.cancel()
	log.Info().Msg("Scheduler stopped")
	return nil
}

// Run executes a job by name immediately, outside its cron schedule, and
// returns the work function's error to the caller. A concurrent run of the
// same name is rejected with ErrJobBusy; other jobs are unaffected.
func (s *Scheduler) Run(ctx context.Context, name string) error {
	s.mu.RLock()
	j, ok := s.jobs[name]
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}

	if !j.runMu.TryLock() {
		return fmt.Errorf("%w: %s", ErrJobBusy, name)
	}
	defer j.runMu.Unlock()

	return s.execute(ctx, j, "manual")
}

// Jobs returns a snapshot of the registry in registration order.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]JobInfo, 0, len(s.order))
	for _, name := range s.order {
		j := s.jobs[name]
		j.mu.Lock()
		infos = append(infos, JobInfo{
			Name:       j.name,
			Spec:       j.spec,
			LastRunAt:  j.lastRunAt,
			LastStatus: j.lastStatus,
		})
		j.mu.Unlock()
	}

	return infos
}

// runFromCron is the dispatch boundary for cron-triggered runs: failures are
// logged and recorded on the job, never propagated. An overlapping run of the
// same name is skipped rather than queued.
func (s *Scheduler) runFromCron(j *job) {
	if !j.runMu.TryLock() {
		log.Warn().Str("job", j.name).Msg("Previous run still in flight, skipping tick")
		return
	}
	defer j.runMu.Unlock()

	if err := s.execute(s.baseCtx, j, "cron"); err != nil {
		log.Error().Err(err).Str("job", j.name).Msg("Scheduled job failed")
	}
}

// execute runs the work function with the job's runMu held, recording
// status, timing and metrics. A panicking work function is recovered here so
// it cannot take down the dispatch loop.
func (s *Scheduler) execute(ctx context.Context, j *job, trigger string) (err error) {
	s.wg.Add(1)
	defer s.wg.Done()

	start := time.Now()
	log.Info().
		Str("job", j.name).
		Str("trigger", trigger).
		Msg("Job starting")

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", j.name, r)
		}

		status := StatusSuccess
		if err != nil {
			status = StatusFailed
			metrics.RecordError("scheduler", "job_failed")
		}

		j.mu.Lock()
		j.lastRunAt = start
		j.lastStatus = status
		j.mu.Unlock()

		duration := time.Since(start)
		metrics.RecordJobRun(j.name, trigger, status, duration.Seconds())

		log.Info().
			Str("job", j.name).
			Str("trigger", trigger).
			Str("status", status).
			Dur("duration", duration).
			Msg("Job finished")
	}()

	err = j.fn(ctx)
	return err
}
