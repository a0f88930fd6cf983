// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs such as notification
// retention and store health checks.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// jobTimeout bounds a single run of any job.
const jobTimeout = time.Minute

// Job is a named task run on a cron schedule.
type Job struct {
	Name        string
	Description string
	// Schedule is a standard five-field cron expression or a descriptor
	// such as "@hourly" or "@every 1m".
	Schedule string
	Run      func(ctx context.Context) error
}

type registeredJob struct {
	job     Job
	entryID cron.EntryID
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name        string
	Description string
	Schedule    string
	LastRun     time.Time
	NextRun     time.Time
}

// Scheduler runs registered jobs on their schedules.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger

	mu   sync.RWMutex
	jobs map[string]*registeredJob
	ctx  context.Context
}

// New creates a new scheduler instance. A run that is still going when its
// next tick arrives makes that tick skip.
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger,
		jobs:   make(map[string]*registeredJob),
		ctx:    context.Background(),
	}
}

// Add registers job. Names must be unique.
func (s *Scheduler) Add(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[job.Name]; ok {
		return fmt.Errorf("job %q already registered", job.Name)
	}
	id, err := s.cron.AddFunc(job.Schedule, func() { s.run(job) })
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %q: %w", job.Schedule, job.Name, err)
	}
	s.jobs[job.Name] = &registeredJob{job: job, entryID: id}
	s.logger.Debug("registered scheduled job", "name", job.Name, "schedule", job.Schedule)
	return nil
}

func (s *Scheduler) run(job Job) error {
	s.mu.RLock()
	parent := s.ctx
	s.mu.RUnlock()

	ctx, cancel := context.WithTimeout(parent, jobTimeout)
	defer cancel()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		s.logger.Error("scheduled job failed", "name", job.Name, "error", err)
		return err
	}
	s.logger.Debug("scheduled job finished", "name", job.Name, "duration", time.Since(start))
	return nil
}

// Start begins running jobs. Jobs receive contexts derived from ctx.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// List returns all registered jobs sorted by name.
func (s *Scheduler) List() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]JobInfo, 0, len(s.jobs))
	for _, rj := range s.jobs {
		entry := s.cron.Entry(rj.entryID)
		result = append(result, JobInfo{
			Name:        rj.job.Name,
			Description: rj.job.Description,
			Schedule:    rj.job.Schedule,
			LastRun:     entry.Prev,
			NextRun:     entry.Next,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// TriggerNow runs the named job immediately and returns its error.
func (s *Scheduler) TriggerNow(name string) error {
	s.mu.RLock()
	rj, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("job not found: %s", name)
	}

	s.logger.Info("manually triggering job", "name", name)
	return s.run(rj.job)
}
