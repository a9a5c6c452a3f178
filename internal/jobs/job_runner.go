package jobs

import (
	"rentdesk-backend/internal/config"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository/postgres"
	"rentdesk-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store    *postgres.Store
	emailSvc service.EmailService
	config   *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *postgres.Store, emailSvc service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:    store,
		emailSvc: emailSvc,
		config:   cfg,
	}
}

// Config returns the runner's configuration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.MarkOverdueHandoffs()
	jr.SendScheduleReminders()
}
